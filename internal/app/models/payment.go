package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PaymentMethodPayPal       PaymentMethod = "PAYPAL"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentMethodCard:         "Credit Card",
	PaymentMethodMobileMoney:  "Mobile Money",
	PaymentMethodPayPal:       "PayPal",
	PaymentMethodBankTransfer: "Bank Transfer",
}

func (m PaymentMethod) Label() string {
	if label, ok := paymentMethodLabels[m]; ok {
		return label
	}
	return string(m)
}

func (m PaymentMethod) Valid() bool {
	_, ok := paymentMethodLabels[m]
	return ok
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentSucceeded PaymentStatus = "SUCCEEDED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentExpired   PaymentStatus = "EXPIRED"
)

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentPending:   "Pending",
	PaymentSucceeded: "Succeeded",
	PaymentFailed:    "Failed",
	PaymentCancelled: "Cancelled",
	PaymentExpired:   "Expired",
}

func (s PaymentStatus) Label() string {
	if label, ok := paymentStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

type RefundStatus string

const (
	NotRefunded       RefundStatus = "NOT_REFUNDED"
	PartiallyRefunded RefundStatus = "PARTIALLY_REFUNDED"
	FullyRefunded     RefundStatus = "FULLY_REFUNDED"
	RefundPending     RefundStatus = "REFUND_PENDING"
	RefundFailed      RefundStatus = "REFUND_FAILED"
)

var refundStatusLabels = map[RefundStatus]string{
	NotRefunded:       "Not Refunded",
	PartiallyRefunded: "Partially Refunded",
	FullyRefunded:     "Fully Refunded",
	RefundPending:     "Refund Pending",
	RefundFailed:      "Refund Failed",
}

func (s RefundStatus) Label() string {
	if label, ok := refundStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Payment is one attempt to collect the price of a consultation.
// PaymentID is the external-facing identifier (processor intent id for card,
// ledger-generated for wallet methods); ID is the storage serial.
type Payment struct {
	ID                  int64           `json:"id"`
	PaymentID           string          `json:"payment_id"`
	ConsultationID      int64           `json:"consultation_id"`
	PatientID           int64           `json:"patient_id"`
	DoctorID            int64           `json:"doctor_id"`
	Amount              decimal.Decimal `json:"amount"`
	Currency            string          `json:"currency"`
	Method              PaymentMethod   `json:"payment_method"`
	Status              PaymentStatus   `json:"status"`
	TransactionID       string          `json:"transaction_id,omitempty"`
	CustomerEmail       string          `json:"customer_email,omitempty"`
	CustomerName        string          `json:"customer_name,omitempty"`
	PhoneNumber         string          `json:"phone_number,omitempty"`
	MobileMoneyProvider string          `json:"mobile_money_provider,omitempty"`
	PayPalOrderID       string          `json:"paypal_order_id,omitempty"`
	RefundedAmount      decimal.Decimal `json:"refunded_amount"`
	RefundStatus        RefundStatus    `json:"refund_status"`
	RefundReason        string          `json:"refund_reason,omitempty"`
	ErrorMessage        string          `json:"error_message,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	RefundedAt          *time.Time      `json:"refunded_at,omitempty"`
	ConfirmationSent    bool            `json:"confirmation_sent"`
	ConfirmationSentAt  *time.Time      `json:"confirmation_sent_at,omitempty"`
}

// RemainingAmount is the maximum still refundable on this payment.
func (p *Payment) RemainingAmount() decimal.Decimal {
	return p.Amount.Sub(p.RefundedAmount)
}

func (p *Payment) IsFullyRefunded() bool {
	return p.RefundedAmount.GreaterThanOrEqual(p.Amount)
}

func (p *Payment) IsPartiallyRefunded() bool {
	return p.RefundedAmount.IsPositive() && p.RefundedAmount.LessThan(p.Amount)
}

// PaymentStatistics aggregates succeeded payments over a reporting window.
type PaymentStatistics struct {
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
