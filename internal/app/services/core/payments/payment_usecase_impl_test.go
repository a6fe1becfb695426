package payments

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"tabib-service/internal/app/config"
	"tabib-service/internal/app/contracts"
	"tabib-service/internal/app/models"
	"tabib-service/internal/pkg/dto/requests"
	"tabib-service/internal/pkg/dto/responses"
	"tabib-service/internal/pkg/exceptions"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryPaymentRepository struct {
	mu       sync.Mutex
	payments map[string]*models.Payment
	nextID   int64
}

func newMemoryPaymentRepository() *memoryPaymentRepository {
	return &memoryPaymentRepository{
		payments: make(map[string]*models.Payment),
		nextID:   1,
	}
}

func (m *memoryPaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *payment
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.payments[stored.PaymentID] = &stored
	m.nextID++
	result := stored
	return &result, nil
}

func (m *memoryPaymentRepository) FindByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[paymentID]
	if !ok {
		return nil, nil
	}
	result := *payment
	return &result, nil
}

func (m *memoryPaymentRepository) FindPendingByConsultationAndMethod(ctx context.Context, consultationID int64, method models.PaymentMethod) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, payment := range m.payments {
		if payment.ConsultationID == consultationID && payment.Method == method && payment.Status == models.PaymentPending {
			result := *payment
			return &result, nil
		}
	}
	return nil, nil
}

func (m *memoryPaymentRepository) UpdatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.payments[payment.PaymentID]
	if !ok {
		return nil, nil
	}
	stored.Status = payment.Status
	stored.TransactionID = payment.TransactionID
	stored.RefundedAmount = payment.RefundedAmount
	stored.RefundStatus = payment.RefundStatus
	stored.RefundReason = payment.RefundReason
	stored.ErrorMessage = payment.ErrorMessage
	stored.RefundedAt = payment.RefundedAt
	stored.UpdatedAt = time.Now()
	result := *stored
	return &result, nil
}

func (m *memoryPaymentRepository) MarkConfirmationSent(ctx context.Context, paymentID string, sentAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if stored, ok := m.payments[paymentID]; ok {
		stored.ConfirmationSent = true
		stored.ConfirmationSentAt = &sentAt
	}
	return nil
}

func (m *memoryPaymentRepository) FindByPatientID(ctx context.Context, patientID int64) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []models.Payment
	for _, payment := range m.payments {
		if payment.PatientID == patientID {
			result = append(result, *payment)
		}
	}
	return result, nil
}

func (m *memoryPaymentRepository) FindByDoctorID(ctx context.Context, doctorID int64) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []models.Payment
	for _, payment := range m.payments {
		if payment.DoctorID == doctorID {
			result = append(result, *payment)
		}
	}
	return result, nil
}

func (m *memoryPaymentRepository) FindByConsultationID(ctx context.Context, consultationID int64) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []models.Payment
	for _, payment := range m.payments {
		if payment.ConsultationID == consultationID {
			result = append(result, *payment)
		}
	}
	return result, nil
}

func (m *memoryPaymentRepository) SucceededStatisticsSince(ctx context.Context, since time.Time) (*models.PaymentStatistics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	statistics := &models.PaymentStatistics{TotalAmount: decimal.Zero}
	for _, payment := range m.payments {
		if payment.Status == models.PaymentSucceeded && !payment.CreatedAt.Before(since) {
			statistics.Count++
			statistics.TotalAmount = statistics.TotalAmount.Add(payment.Amount)
		}
	}
	return statistics, nil
}

type memoryConsultationStore struct {
	mu            sync.Mutex
	consultations map[int64]*models.Consultation
}

func newMemoryConsultationStore() *memoryConsultationStore {
	return &memoryConsultationStore{consultations: make(map[int64]*models.Consultation)}
}

func (m *memoryConsultationStore) CreateConsultation(ctx context.Context, consultation *models.Consultation) (*models.Consultation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *consultation
	m.consultations[stored.ID] = &stored
	result := stored
	return &result, nil
}

func (m *memoryConsultationStore) FindConsultationByID(ctx context.Context, consultationID int64) (*models.Consultation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	consultation, ok := m.consultations[consultationID]
	if !ok {
		return nil, nil
	}
	result := *consultation
	return &result, nil
}

func (m *memoryConsultationStore) FindByDoctorID(ctx context.Context, doctorID int64) ([]models.Consultation, error) {
	return nil, nil
}

func (m *memoryConsultationStore) FindByPatientID(ctx context.Context, patientID int64) ([]models.Consultation, error) {
	return nil, nil
}

func (m *memoryConsultationStore) FindPendingByDoctorID(ctx context.Context, doctorID int64) ([]models.Consultation, error) {
	return nil, nil
}

func (m *memoryConsultationStore) FindByDoctorBetween(ctx context.Context, doctorID int64, from, to time.Time) ([]models.Consultation, error) {
	return nil, nil
}

func (m *memoryConsultationStore) UpdateConsultationState(ctx context.Context, consultationID int64, state models.ConsultationState) (*models.Consultation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	consultation, ok := m.consultations[consultationID]
	if !ok {
		return nil, nil
	}
	consultation.State = state
	result := *consultation
	return &result, nil
}

type fakeCardProcessor struct {
	intentStatus   string
	failureMessage string
	openedIntents  int
	refundErr      error
	refundedCalls  int
}

func (f *fakeCardProcessor) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string) (*responses.PaymentIntent, error) {
	f.openedIntents++
	intentID := fmt.Sprintf("pi_test_%d", f.openedIntents)
	return &responses.PaymentIntent{
		PaymentIntentID: intentID,
		ClientSecret:    intentID + "_secret",
		Status:          "requires_payment_method",
	}, nil
}

func (f *fakeCardProcessor) RetrieveStatus(ctx context.Context, paymentIntentID string) (*responses.CardIntentStatus, error) {
	status := f.intentStatus
	if status == "" {
		status = contracts.CardIntentStatusSucceeded
	}
	return &responses.CardIntentStatus{
		Status:         status,
		TransactionID:  "ch_test_1",
		FailureMessage: f.failureMessage,
	}, nil
}

func (f *fakeCardProcessor) Refund(ctx context.Context, paymentIntentID string, amount decimal.Decimal) (string, error) {
	f.refundedCalls++
	if f.refundErr != nil {
		return "", f.refundErr
	}
	return "re_test_1", nil
}

type fakeWalletProcessor struct {
	result         *responses.WalletChargeResult
	err            error
	waitForContext bool
}

func (f *fakeWalletProcessor) Charge(ctx context.Context, request *requests.WalletChargeRequest) (*responses.WalletChargeResult, error) {
	if f.waitForContext {
		<-ctx.Done()
		return nil, exceptions.ErrPaymentGatewayTimeout(ctx.Err())
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &responses.WalletChargeResult{
		Status:        contracts.WalletChargeStatusSucceeded,
		TransactionID: "wallet_txn_1",
	}, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	payments []string
	refunds  []string
}

func (r *recordingNotifier) SendPaymentConfirmation(ctx context.Context, payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, payment.PaymentID)
	return nil
}

func (r *recordingNotifier) SendRefundConfirmation(ctx context.Context, payment *models.Payment, refundAmount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refunds = append(r.refunds, payment.PaymentID)
	return nil
}

func (r *recordingNotifier) paymentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payments)
}

func (r *recordingNotifier) refundCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.refunds)
}

type passthroughTxManager struct{}

func (passthroughTxManager) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

func paymentTestConfig() *config.InternalConfig {
	return &config.InternalConfig{
		App: config.App{
			DefaultCurrency:                "MAD",
			PaymentGatewayTimeoutInSeconds: 5,
		},
	}
}

type paymentFixture struct {
	usecase       *paymentUsecase
	payments      *memoryPaymentRepository
	consultations *memoryConsultationStore
	card          *fakeCardProcessor
	mobileMoney   *fakeWalletProcessor
	paypal        *fakeWalletProcessor
	notifier      *recordingNotifier
}

func newPaymentFixture() *paymentFixture {
	fixture := &paymentFixture{
		payments:      newMemoryPaymentRepository(),
		consultations: newMemoryConsultationStore(),
		card:          &fakeCardProcessor{},
		mobileMoney:   &fakeWalletProcessor{},
		paypal:        &fakeWalletProcessor{},
		notifier:      &recordingNotifier{},
	}
	fixture.consultations.consultations[10] = &models.Consultation{
		ID:          10,
		DoctorID:    7,
		PatientID:   3,
		ScheduledAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		State:       models.ConsultationPending,
		Price:       decimal.NewFromInt(200),
		TotalPrice:  decimal.NewFromInt(200),
	}
	fixture.usecase = NewPaymentUsecase(
		fixture.payments,
		fixture.consultations,
		fixture.card,
		fixture.mobileMoney,
		fixture.paypal,
		fixture.notifier,
		passthroughTxManager{},
		paymentTestConfig(),
		zap.NewNop(),
	).(*paymentUsecase)
	return fixture
}

func TestCreateCardIntent(t *testing.T) {
	t.Run("Opens Intent And Books Pending Entry", func(t *testing.T) {
		fixture := newPaymentFixture()

		result, err := fixture.usecase.CreateCardIntent(context.Background(), &requests.CardPaymentIntentRequest{
			ConsultationID: 10,
			CustomerEmail:  "patient@tabib.life",
		})
		require.NoError(t, err)
		assert.Equal(t, "pi_test_1", result.PaymentID)
		assert.Equal(t, "pi_test_1_secret", result.ClientSecret)
		assert.Equal(t, string(models.PaymentPending), result.Status)
		assert.True(t, result.Amount.Equal(decimal.NewFromInt(200)), "amount defaults to the consultation total")
		assert.Equal(t, "MAD", result.Currency)

		stored, err := fixture.payments.FindByPaymentID(context.Background(), "pi_test_1")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, models.NotRefunded, stored.RefundStatus)
	})

	t.Run("Open Intent Is Reused", func(t *testing.T) {
		fixture := newPaymentFixture()
		request := &requests.CardPaymentIntentRequest{ConsultationID: 10}

		first, err := fixture.usecase.CreateCardIntent(context.Background(), request)
		require.NoError(t, err)
		second, err := fixture.usecase.CreateCardIntent(context.Background(), request)
		require.NoError(t, err)

		assert.Equal(t, first.PaymentID, second.PaymentID)
		assert.Empty(t, second.ClientSecret, "the secret is only handed out when the intent is opened")
		assert.Len(t, fixture.payments.payments, 1, "no second entry is booked")
	})

	t.Run("Unknown Consultation Is Rejected", func(t *testing.T) {
		fixture := newPaymentFixture()

		_, err := fixture.usecase.CreateCardIntent(context.Background(), &requests.CardPaymentIntentRequest{ConsultationID: 404})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})

	t.Run("Negative Amount Is Rejected", func(t *testing.T) {
		fixture := newPaymentFixture()

		_, err := fixture.usecase.CreateCardIntent(context.Background(), &requests.CardPaymentIntentRequest{
			ConsultationID: 10,
			Amount:         decimal.NewFromInt(-5),
		})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})
}

func TestConfirmCardPayment(t *testing.T) {
	openIntent := func(fixture *paymentFixture) string {
		result, err := fixture.usecase.CreateCardIntent(context.Background(), &requests.CardPaymentIntentRequest{
			ConsultationID: 10,
			CustomerEmail:  "patient@tabib.life",
		})
		if err != nil {
			panic(err)
		}
		return result.PaymentID
	}

	t.Run("Settlement Accepts The Consultation", func(t *testing.T) {
		fixture := newPaymentFixture()
		paymentID := openIntent(fixture)

		result, err := fixture.usecase.ConfirmCardPayment(context.Background(), paymentID)
		require.NoError(t, err)
		assert.Equal(t, string(models.PaymentSucceeded), result.Status)
		assert.Equal(t, "ch_test_1", result.TransactionID)

		consultation, err := fixture.consultations.FindConsultationByID(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, models.ConsultationAccepted, consultation.State)

		assert.Eventually(t, func() bool {
			return fixture.notifier.paymentCount() == 1
		}, time.Second, 10*time.Millisecond, "confirmation email is queued")

		assert.Eventually(t, func() bool {
			stored, _ := fixture.payments.FindByPaymentID(context.Background(), paymentID)
			return stored != nil && stored.ConfirmationSent
		}, time.Second, 10*time.Millisecond, "confirmation bookkeeping is recorded")
	})

	t.Run("Second Confirmation Is A No Op", func(t *testing.T) {
		fixture := newPaymentFixture()
		paymentID := openIntent(fixture)

		_, err := fixture.usecase.ConfirmCardPayment(context.Background(), paymentID)
		require.NoError(t, err)
		again, err := fixture.usecase.ConfirmCardPayment(context.Background(), paymentID)
		require.NoError(t, err)
		assert.Equal(t, string(models.PaymentSucceeded), again.Status)

		consultation, _ := fixture.consultations.FindConsultationByID(context.Background(), 10)
		assert.Equal(t, models.ConsultationAccepted, consultation.State)
	})

	t.Run("Unsettled Intent Stays Pending", func(t *testing.T) {
		fixture := newPaymentFixture()
		paymentID := openIntent(fixture)
		fixture.card.intentStatus = "requires_payment_method"

		result, err := fixture.usecase.ConfirmCardPayment(context.Background(), paymentID)
		require.NoError(t, err)
		assert.Equal(t, "requires_payment_method", result.Status)

		stored, _ := fixture.payments.FindByPaymentID(context.Background(), paymentID)
		assert.Equal(t, models.PaymentPending, stored.Status)
		consultation, _ := fixture.consultations.FindConsultationByID(context.Background(), 10)
		assert.Equal(t, models.ConsultationPending, consultation.State)
	})

	t.Run("Canceled Intent Books The Failure", func(t *testing.T) {
		fixture := newPaymentFixture()
		paymentID := openIntent(fixture)
		fixture.card.intentStatus = contracts.CardIntentStatusCanceled
		fixture.card.failureMessage = "card was declined"

		result, err := fixture.usecase.ConfirmCardPayment(context.Background(), paymentID)
		require.NoError(t, err)
		assert.Equal(t, string(models.PaymentFailed), result.Status)
		assert.Equal(t, "card was declined", result.ErrorMessage)

		stored, _ := fixture.payments.FindByPaymentID(context.Background(), paymentID)
		assert.Equal(t, models.PaymentFailed, stored.Status)
		assert.Equal(t, "card was declined", stored.ErrorMessage)
		consultation, _ := fixture.consultations.FindConsultationByID(context.Background(), 10)
		assert.Equal(t, models.ConsultationPending, consultation.State)

		// The dead intent no longer blocks the consultation: the next
		// request opens a fresh intent instead of handing it back.
		fresh, err := fixture.usecase.CreateCardIntent(context.Background(), &requests.CardPaymentIntentRequest{ConsultationID: 10})
		require.NoError(t, err)
		assert.NotEqual(t, paymentID, fresh.PaymentID)
		assert.NotEmpty(t, fresh.ClientSecret)
	})

	t.Run("Canceled Intent Without A Processor Reason Still Records One", func(t *testing.T) {
		fixture := newPaymentFixture()
		paymentID := openIntent(fixture)
		fixture.card.intentStatus = contracts.CardIntentStatusCanceled

		result, err := fixture.usecase.ConfirmCardPayment(context.Background(), paymentID)
		require.NoError(t, err)
		assert.Equal(t, string(models.PaymentFailed), result.Status)
		assert.NotEmpty(t, result.ErrorMessage)
	})

	t.Run("Unknown Intent Is Not Found", func(t *testing.T) {
		fixture := newPaymentFixture()

		_, err := fixture.usecase.ConfirmCardPayment(context.Background(), "pi_missing")
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})
}

func TestProcessWalletPayments(t *testing.T) {
	t.Run("Mobile Money Success Settles Immediately", func(t *testing.T) {
		fixture := newPaymentFixture()

		result, err := fixture.usecase.ProcessMobileMoney(context.Background(), &requests.MobileMoneyPaymentRequest{
			ConsultationID: 10,
			PhoneNumber:    "+212612345678",
			Provider:       "orange",
		})
		require.NoError(t, err)
		assert.Equal(t, string(models.PaymentSucceeded), result.Status)
		assert.Contains(t, result.PaymentID, "MM_")
		assert.Equal(t, "wallet_txn_1", result.TransactionID)

		consultation, _ := fixture.consultations.FindConsultationByID(context.Background(), 10)
		assert.Equal(t, models.ConsultationAccepted, consultation.State)
	})

	t.Run("PayPal Success Settles Immediately", func(t *testing.T) {
		fixture := newPaymentFixture()

		result, err := fixture.usecase.ProcessPayPal(context.Background(), &requests.PayPalPaymentRequest{
			ConsultationID: 10,
			PayPalOrderID:  "ORDER-1",
		})
		require.NoError(t, err)
		assert.Equal(t, string(models.PaymentSucceeded), result.Status)
		assert.Contains(t, result.PaymentID, "PP_")
	})

	t.Run("Declined Charge Is Booked As Failed", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.mobileMoney.result = &responses.WalletChargeResult{
			Status:  "DECLINED",
			Message: "insufficient funds",
		}

		result, err := fixture.usecase.ProcessMobileMoney(context.Background(), &requests.MobileMoneyPaymentRequest{
			ConsultationID: 10,
			PhoneNumber:    "+212612345678",
			Provider:       "orange",
		})
		require.NoError(t, err)
		assert.Equal(t, string(models.PaymentFailed), result.Status)
		assert.Equal(t, "insufficient funds", result.ErrorMessage)

		consultation, _ := fixture.consultations.FindConsultationByID(context.Background(), 10)
		assert.Equal(t, models.ConsultationPending, consultation.State, "a declined charge leaves the consultation untouched")
	})

	t.Run("Gateway Error Books A Failed Entry", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.mobileMoney.err = exceptions.ErrPaymentGateway(assert.AnError, "mobile_money")

		_, err := fixture.usecase.ProcessMobileMoney(context.Background(), &requests.MobileMoneyPaymentRequest{
			ConsultationID: 10,
			PhoneNumber:    "+212612345678",
			Provider:       "orange",
		})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindProcessor))

		payments, _ := fixture.payments.FindByConsultationID(context.Background(), 10)
		require.Len(t, payments, 1)
		assert.Equal(t, models.PaymentFailed, payments[0].Status)
		assert.NotEmpty(t, payments[0].ErrorMessage)
	})

	t.Run("Gateway Timeout Leaves The Entry Pending", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.usecase.InternalConfig.App.PaymentGatewayTimeoutInSeconds = 1
		fixture.mobileMoney.waitForContext = true

		_, err := fixture.usecase.ProcessMobileMoney(context.Background(), &requests.MobileMoneyPaymentRequest{
			ConsultationID: 10,
			PhoneNumber:    "+212612345678",
			Provider:       "orange",
		})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindProcessor))

		payments, _ := fixture.payments.FindByConsultationID(context.Background(), 10)
		require.Len(t, payments, 1)
		assert.Equal(t, models.PaymentPending, payments[0].Status, "a timed out charge is left for reconciliation")
	})

	t.Run("Open Wallet Entry Blocks A Second Charge", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.payments.payments["MM_open"] = &models.Payment{
			PaymentID:      "MM_open",
			ConsultationID: 10,
			Method:         models.PaymentMethodMobileMoney,
			Status:         models.PaymentPending,
		}

		_, err := fixture.usecase.ProcessMobileMoney(context.Background(), &requests.MobileMoneyPaymentRequest{
			ConsultationID: 10,
			PhoneNumber:    "+212612345678",
			Provider:       "orange",
		})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindConflict))
	})

	t.Run("Missing Order ID Is Rejected", func(t *testing.T) {
		fixture := newPaymentFixture()

		_, err := fixture.usecase.ProcessPayPal(context.Background(), &requests.PayPalPaymentRequest{ConsultationID: 10})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})
}

func TestMonthlyStatistics(t *testing.T) {
	fixture := newPaymentFixture()
	fixture.payments.payments["pi_a"] = &models.Payment{
		PaymentID: "pi_a",
		Status:    models.PaymentSucceeded,
		Amount:    decimal.NewFromInt(200),
		CreatedAt: time.Now(),
	}
	fixture.payments.payments["pi_b"] = &models.Payment{
		PaymentID: "pi_b",
		Status:    models.PaymentFailed,
		Amount:    decimal.NewFromInt(300),
		CreatedAt: time.Now(),
	}

	statistics, err := fixture.usecase.MonthlyStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), statistics.MonthlyCount, "only succeeded payments count")
	assert.True(t, statistics.MonthlyAmount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 1, statistics.Since.Day(), "the window opens on the first of the month")
}
