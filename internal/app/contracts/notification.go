package contracts

import (
	"context"
	"tabib-service/internal/app/models"

	"github.com/shopspring/decimal"
)

// NotificationService delivers best-effort confirmation emails. Failures are
// logged by callers and never roll back a ledger update.
type NotificationService interface {
	SendPaymentConfirmation(ctx context.Context, payment *models.Payment) error
	SendRefundConfirmation(ctx context.Context, payment *models.Payment, refundAmount decimal.Decimal) error
}
