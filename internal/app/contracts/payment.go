package contracts

import (
	"context"
	"tabib-service/internal/app/models"
	"time"

	"tabib-service/internal/pkg/dto/requests"
	"tabib-service/internal/pkg/dto/responses"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	// FindByPaymentID looks up by the external payment identifier, not the
	// storage serial.
	FindByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error)
	FindPendingByConsultationAndMethod(ctx context.Context, consultationID int64, method models.PaymentMethod) (*models.Payment, error)
	UpdatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	MarkConfirmationSent(ctx context.Context, paymentID string, sentAt time.Time) error
	FindByPatientID(ctx context.Context, patientID int64) ([]models.Payment, error)
	FindByDoctorID(ctx context.Context, doctorID int64) ([]models.Payment, error)
	FindByConsultationID(ctx context.Context, consultationID int64) ([]models.Payment, error)
	SucceededStatisticsSince(ctx context.Context, since time.Time) (*models.PaymentStatistics, error)
}

// PaymentLedger records payment attempts per method and drives the
// consultation forward on success.
type PaymentLedger interface {
	CreateCardIntent(ctx context.Context, request *requests.CardPaymentIntentRequest) (*responses.PaymentResult, error)
	ConfirmCardPayment(ctx context.Context, paymentIntentID string) (*responses.PaymentResult, error)
	ProcessMobileMoney(ctx context.Context, request *requests.MobileMoneyPaymentRequest) (*responses.PaymentResult, error)
	ProcessPayPal(ctx context.Context, request *requests.PayPalPaymentRequest) (*responses.PaymentResult, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error)
	ListByPatient(ctx context.Context, patientID int64) ([]models.Payment, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]models.Payment, error)
	ListByConsultation(ctx context.Context, consultationID int64) ([]models.Payment, error)
	MonthlyStatistics(ctx context.Context) (*responses.PaymentStatisticsResponse, error)
}

// RefundLedger applies partial and full refunds on top of the payment ledger.
type RefundLedger interface {
	Refund(ctx context.Context, request *requests.RefundPaymentRequest) (*responses.PaymentResult, error)
}
