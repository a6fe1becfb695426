package payments

import (
	"context"
	"testing"
	"time"

	"tabib-service/internal/app/models"
	"tabib-service/internal/pkg/dto/requests"
	"tabib-service/internal/pkg/exceptions"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type refundFixture struct {
	usecase       *refundUsecase
	payments      *memoryPaymentRepository
	consultations *memoryConsultationStore
	card          *fakeCardProcessor
	notifier      *recordingNotifier
}

func newRefundFixture(consultationState models.ConsultationState) *refundFixture {
	fixture := &refundFixture{
		payments:      newMemoryPaymentRepository(),
		consultations: newMemoryConsultationStore(),
		card:          &fakeCardProcessor{},
		notifier:      &recordingNotifier{},
	}
	fixture.consultations.consultations[10] = &models.Consultation{
		ID:         10,
		DoctorID:   7,
		PatientID:  3,
		State:      consultationState,
		TotalPrice: decimal.NewFromInt(200),
	}
	fixture.payments.payments["pi_paid"] = &models.Payment{
		PaymentID:      "pi_paid",
		ConsultationID: 10,
		PatientID:      3,
		DoctorID:       7,
		Amount:         decimal.NewFromInt(200),
		Currency:       "MAD",
		Method:         models.PaymentMethodCard,
		Status:         models.PaymentSucceeded,
		RefundedAmount: decimal.Zero,
		RefundStatus:   models.NotRefunded,
		CustomerEmail:  "patient@tabib.life",
		CreatedAt:      time.Now(),
	}
	fixture.usecase = NewRefundUsecase(
		fixture.payments,
		fixture.consultations,
		fixture.card,
		fixture.notifier,
		passthroughTxManager{},
		paymentTestConfig(),
		zap.NewNop(),
	).(*refundUsecase)
	return fixture
}

func refundAmount(value int64) *decimal.Decimal {
	amount := decimal.NewFromInt(value)
	return &amount
}

func TestRefundPayment(t *testing.T) {
	t.Run("Partial Refund Leaves The Consultation Alone", func(t *testing.T) {
		fixture := newRefundFixture(models.ConsultationAccepted)

		result, err := fixture.usecase.Refund(context.Background(), &requests.RefundPaymentRequest{
			PaymentID: "pi_paid",
			Amount:    refundAmount(50),
			Reason:    "late reschedule",
		})
		require.NoError(t, err)
		assert.Equal(t, string(models.PartiallyRefunded), result.Status)

		stored, _ := fixture.payments.FindByPaymentID(context.Background(), "pi_paid")
		assert.True(t, stored.RefundedAmount.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, "late reschedule", stored.RefundReason)
		assert.NotNil(t, stored.RefundedAt)

		consultation, _ := fixture.consultations.FindConsultationByID(context.Background(), 10)
		assert.Equal(t, models.ConsultationAccepted, consultation.State)
	})

	t.Run("Completing The Refund Cancels The Consultation", func(t *testing.T) {
		fixture := newRefundFixture(models.ConsultationAccepted)

		_, err := fixture.usecase.Refund(context.Background(), &requests.RefundPaymentRequest{
			PaymentID: "pi_paid",
			Amount:    refundAmount(50),
		})
		require.NoError(t, err)

		result, err := fixture.usecase.Refund(context.Background(), &requests.RefundPaymentRequest{
			PaymentID: "pi_paid",
			Amount:    refundAmount(150),
		})
		require.NoError(t, err)
		assert.Equal(t, string(models.FullyRefunded), result.Status)

		stored, _ := fixture.payments.FindByPaymentID(context.Background(), "pi_paid")
		assert.True(t, stored.RefundedAmount.Equal(decimal.NewFromInt(200)))

		consultation, _ := fixture.consultations.FindConsultationByID(context.Background(), 10)
		assert.Equal(t, models.ConsultationCancelled, consultation.State)

		assert.Eventually(t, func() bool {
			return fixture.notifier.refundCount() == 2
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("Omitted Amount Refunds The Remainder", func(t *testing.T) {
		fixture := newRefundFixture(models.ConsultationPending)

		result, err := fixture.usecase.Refund(context.Background(), &requests.RefundPaymentRequest{PaymentID: "pi_paid"})
		require.NoError(t, err)
		assert.Equal(t, string(models.FullyRefunded), result.Status)

		consultation, _ := fixture.consultations.FindConsultationByID(context.Background(), 10)
		assert.Equal(t, models.ConsultationCancelled, consultation.State)
	})

	t.Run("Refund Beyond The Balance Is Rejected", func(t *testing.T) {
		fixture := newRefundFixture(models.ConsultationAccepted)

		_, err := fixture.usecase.Refund(context.Background(), &requests.RefundPaymentRequest{
			PaymentID: "pi_paid",
			Amount:    refundAmount(300),
		})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))

		stored, _ := fixture.payments.FindByPaymentID(context.Background(), "pi_paid")
		assert.True(t, stored.RefundedAmount.IsZero(), "nothing is booked on rejection")
	})

	t.Run("Completed Consultation Keeps Its State On Full Refund", func(t *testing.T) {
		fixture := newRefundFixture(models.ConsultationCompleted)

		result, err := fixture.usecase.Refund(context.Background(), &requests.RefundPaymentRequest{PaymentID: "pi_paid"})
		require.NoError(t, err)
		assert.Equal(t, string(models.FullyRefunded), result.Status)

		consultation, _ := fixture.consultations.FindConsultationByID(context.Background(), 10)
		assert.Equal(t, models.ConsultationCompleted, consultation.State, "a held consultation is never cancelled by a refund")
	})

	t.Run("Only Succeeded Payments Are Refundable", func(t *testing.T) {
		fixture := newRefundFixture(models.ConsultationAccepted)
		fixture.payments.payments["pi_open"] = &models.Payment{
			PaymentID:      "pi_open",
			ConsultationID: 10,
			Amount:         decimal.NewFromInt(200),
			Method:         models.PaymentMethodCard,
			Status:         models.PaymentPending,
			RefundedAmount: decimal.Zero,
		}

		_, err := fixture.usecase.Refund(context.Background(), &requests.RefundPaymentRequest{PaymentID: "pi_open"})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidState))
	})

	t.Run("Fully Refunded Payment Is Closed", func(t *testing.T) {
		fixture := newRefundFixture(models.ConsultationAccepted)

		_, err := fixture.usecase.Refund(context.Background(), &requests.RefundPaymentRequest{PaymentID: "pi_paid"})
		require.NoError(t, err)

		_, err = fixture.usecase.Refund(context.Background(), &requests.RefundPaymentRequest{
			PaymentID: "pi_paid",
			Amount:    refundAmount(1),
		})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidState))
	})

	t.Run("Processor Failure Books Refund Failed", func(t *testing.T) {
		fixture := newRefundFixture(models.ConsultationAccepted)
		fixture.card.refundErr = exceptions.ErrPaymentGateway(assert.AnError, "stripe")

		_, err := fixture.usecase.Refund(context.Background(), &requests.RefundPaymentRequest{
			PaymentID: "pi_paid",
			Amount:    refundAmount(50),
		})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindProcessor))

		stored, _ := fixture.payments.FindByPaymentID(context.Background(), "pi_paid")
		assert.Equal(t, models.RefundFailed, stored.RefundStatus)
		assert.Equal(t, err.Error(), stored.ErrorMessage, "the processor reason is recorded on the entry")
		assert.True(t, stored.RefundedAmount.IsZero(), "no partial credit is booked on failure")

		consultation, _ := fixture.consultations.FindConsultationByID(context.Background(), 10)
		assert.Equal(t, models.ConsultationAccepted, consultation.State)
	})

	t.Run("Wallet Refund Is Booked Without A Processor Call", func(t *testing.T) {
		fixture := newRefundFixture(models.ConsultationAccepted)
		fixture.payments.payments["MM_paid"] = &models.Payment{
			PaymentID:      "MM_paid",
			ConsultationID: 10,
			Amount:         decimal.NewFromInt(200),
			Method:         models.PaymentMethodMobileMoney,
			Status:         models.PaymentSucceeded,
			RefundedAmount: decimal.Zero,
			RefundStatus:   models.NotRefunded,
		}

		result, err := fixture.usecase.Refund(context.Background(), &requests.RefundPaymentRequest{PaymentID: "MM_paid"})
		require.NoError(t, err)
		assert.Equal(t, string(models.FullyRefunded), result.Status)
		assert.Zero(t, fixture.card.refundedCalls, "wallet refunds never touch the card processor")
	})

	t.Run("Unknown Payment Is Not Found", func(t *testing.T) {
		fixture := newRefundFixture(models.ConsultationAccepted)

		_, err := fixture.usecase.Refund(context.Background(), &requests.RefundPaymentRequest{PaymentID: "pi_missing"})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})
}
