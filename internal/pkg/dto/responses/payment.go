package responses

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentIntent is what the card processor hands back when an intent is
// opened: the processor-side id plus the secret the browser needs to
// complete the charge.
type PaymentIntent struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret"`
	Status          string `json:"status"`
}

// CardIntentStatus is the processor's view of an intent at confirmation time.
type CardIntentStatus struct {
	Status         string `json:"status"`
	TransactionID  string `json:"transaction_id,omitempty"`
	FailureMessage string `json:"failure_message,omitempty"`
}

// WalletChargeResult is the synchronous outcome of a mobile money or PayPal
// charge.
type WalletChargeResult struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
	Message       string `json:"message,omitempty"`
}

// PaymentResult is the uniform outcome every ledger entry point returns.
type PaymentResult struct {
	PaymentID     string          `json:"payment_id"`
	Status        string          `json:"status"`
	Method        string          `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	ClientSecret  string          `json:"client_secret,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	ErrorMessage  string          `json:"error_message,omitempty"`
}

type PaymentStatisticsResponse struct {
	MonthlyCount  int64           `json:"monthly_count"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	Since         time.Time       `json:"since"`
}
