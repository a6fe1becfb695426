package contracts

import (
	"context"

	"tabib-service/internal/pkg/dto/requests"
	"tabib-service/internal/pkg/dto/responses"

	"github.com/shopspring/decimal"
)

const (
	CardIntentStatusSucceeded = "succeeded"
	CardIntentStatusCanceled  = "canceled"

	WalletChargeStatusSucceeded = "SUCCESS"

	GatewayRefundStatusSucceeded = "succeeded"
)

// CardPaymentProcessor is the card network integration. One constructed
// client instance is injected at startup; the ledger only books outcomes.
type CardPaymentProcessor interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency string) (*responses.PaymentIntent, error)
	RetrieveStatus(ctx context.Context, paymentIntentID string) (*responses.CardIntentStatus, error)
	Refund(ctx context.Context, paymentIntentID string, amount decimal.Decimal) (string, error)
}

// WalletPaymentProcessor is the single synchronous charge call exposed by
// the mobile money and PayPal gateways.
type WalletPaymentProcessor interface {
	Charge(ctx context.Context, request *requests.WalletChargeRequest) (*responses.WalletChargeResult, error)
}
