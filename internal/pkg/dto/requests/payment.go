package requests

import (
	"github.com/shopspring/decimal"
)

type CardPaymentIntentRequest struct {
	ConsultationID int64           `json:"consultation_id" validate:"required,gt=0"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency" validate:"omitempty,len=3"`
	CustomerEmail  string          `json:"customer_email" validate:"omitempty,email"`
	CustomerName   string          `json:"customer_name" validate:"max=120"`
}

type ConfirmCardPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

type MobileMoneyPaymentRequest struct {
	ConsultationID int64           `json:"consultation_id" validate:"required,gt=0"`
	Amount         decimal.Decimal `json:"amount"`
	PhoneNumber    string          `json:"phone_number" validate:"required,phone_number"`
	Provider       string          `json:"provider" validate:"required,max=60"`
	CustomerEmail  string          `json:"customer_email" validate:"omitempty,email"`
	CustomerName   string          `json:"customer_name" validate:"max=120"`
}

type PayPalPaymentRequest struct {
	ConsultationID int64           `json:"consultation_id" validate:"required,gt=0"`
	PayPalOrderID  string          `json:"paypal_order_id" validate:"required,max=120"`
	Amount         decimal.Decimal `json:"amount"`
	CustomerEmail  string          `json:"customer_email" validate:"omitempty,email"`
	CustomerName   string          `json:"customer_name" validate:"max=120"`
}

type RefundPaymentRequest struct {
	PaymentID string           `json:"-"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Reason    string           `json:"reason" validate:"max=500"`
}

// WalletChargeRequest is the synchronous charge call shared by the mobile
// money and PayPal gateways.
type WalletChargeRequest struct {
	PaymentID     string          `json:"payment_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PhoneNumber   string          `json:"phone_number,omitempty"`
	Provider      string          `json:"provider,omitempty"`
	OrderID       string          `json:"order_id,omitempty"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
}
