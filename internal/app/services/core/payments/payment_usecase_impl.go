package payments

import (
	"context"
	"fmt"
	"tabib-service/internal/app/config"
	"tabib-service/internal/app/contracts"
	"tabib-service/internal/app/models"
	"tabib-service/internal/pkg/constvars"
	"tabib-service/internal/pkg/dto/requests"
	"tabib-service/internal/pkg/dto/responses"
	"tabib-service/internal/pkg/exceptions"
	"tabib-service/internal/pkg/utils"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultGatewayTimeout = 30 * time.Second

type paymentUsecase struct {
	PaymentRepository      contracts.PaymentRepository
	ConsultationRepository contracts.ConsultationRepository
	CardProcessor          contracts.CardPaymentProcessor
	MobileMoneyProcessor   contracts.WalletPaymentProcessor
	PayPalProcessor        contracts.WalletPaymentProcessor
	NotificationService    contracts.NotificationService
	TransactionManager     contracts.TransactionManager
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

func NewPaymentUsecase(
	paymentRepository contracts.PaymentRepository,
	consultationRepository contracts.ConsultationRepository,
	cardProcessor contracts.CardPaymentProcessor,
	mobileMoneyProcessor contracts.WalletPaymentProcessor,
	paypalProcessor contracts.WalletPaymentProcessor,
	notificationService contracts.NotificationService,
	transactionManager contracts.TransactionManager,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentLedger {
	return &paymentUsecase{
		PaymentRepository:      paymentRepository,
		ConsultationRepository: consultationRepository,
		CardProcessor:          cardProcessor,
		MobileMoneyProcessor:   mobileMoneyProcessor,
		PayPalProcessor:        paypalProcessor,
		NotificationService:    notificationService,
		TransactionManager:     transactionManager,
		InternalConfig:         internalConfig,
		Log:                    logger,
	}
}

func (uc *paymentUsecase) CreateCardIntent(ctx context.Context, request *requests.CardPaymentIntentRequest) (*responses.PaymentResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CreateCardIntent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingConsultationIDKey, request.ConsultationID),
	)

	consultation, err := uc.findConsultation(ctx, request.ConsultationID)
	if err != nil {
		return nil, err
	}

	amount, err := resolveAmount(request.Amount, consultation)
	if err != nil {
		return nil, err
	}
	currency := uc.resolveCurrency(request.Currency)

	// An open intent for the same consultation is handed back instead of
	// opening a second one on the processor.
	existing, err := uc.PaymentRepository.FindPendingByConsultationAndMethod(ctx, request.ConsultationID, models.PaymentMethodCard)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		uc.Log.Info("paymentUsecase.CreateCardIntent reusing open intent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, existing.PaymentID),
		)
		return paymentResult(existing), nil
	}

	gatewayCtx, cancel := uc.gatewayContext(ctx)
	defer cancel()
	intent, err := uc.CardProcessor.CreateIntent(gatewayCtx, amount, currency)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		PaymentID:      intent.PaymentIntentID,
		ConsultationID: consultation.ID,
		PatientID:      consultation.PatientID,
		DoctorID:       consultation.DoctorID,
		Amount:         amount,
		Currency:       currency,
		Method:         models.PaymentMethodCard,
		Status:         models.PaymentPending,
		CustomerEmail:  request.CustomerEmail,
		CustomerName:   request.CustomerName,
		RefundedAmount: decimal.Zero,
		RefundStatus:   models.NotRefunded,
	}
	created, err := uc.PaymentRepository.CreatePayment(ctx, payment)
	if err != nil {
		return nil, err
	}

	result := paymentResult(created)
	result.ClientSecret = intent.ClientSecret
	return result, nil
}

func (uc *paymentUsecase) ConfirmCardPayment(ctx context.Context, paymentIntentID string) (*responses.PaymentResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.ConfirmCardPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, paymentIntentID),
	)

	payment, err := uc.PaymentRepository.FindByPaymentID(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(fmt.Errorf("payment %s not found", paymentIntentID))
	}
	if payment.Status == models.PaymentSucceeded {
		// Confirming twice is a no-op.
		return paymentResult(payment), nil
	}
	if payment.Status != models.PaymentPending {
		return nil, exceptions.ErrPaymentNotPending(string(payment.Status))
	}

	gatewayCtx, cancel := uc.gatewayContext(ctx)
	defer cancel()
	status, err := uc.CardProcessor.RetrieveStatus(gatewayCtx, paymentIntentID)
	if err != nil {
		return nil, err
	}

	if status.Status == contracts.CardIntentStatusCanceled {
		// The intent is dead on the processor side: book the failure so a
		// fresh intent can be opened for the consultation.
		payment.Status = models.PaymentFailed
		payment.ErrorMessage = status.FailureMessage
		if payment.ErrorMessage == "" {
			payment.ErrorMessage = fmt.Sprintf("payment intent %s was canceled by the processor", paymentIntentID)
		}
		failed, err := uc.PaymentRepository.UpdatePayment(ctx, payment)
		if err != nil {
			return nil, err
		}
		uc.Log.Info("paymentUsecase.ConfirmCardPayment intent canceled, failure booked",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, paymentIntentID),
		)
		return paymentResult(failed), nil
	}

	if status.Status != contracts.CardIntentStatusSucceeded {
		uc.Log.Info("paymentUsecase.ConfirmCardPayment intent not settled yet",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, paymentIntentID),
			zap.String(constvars.LoggingPaymentStatusKey, status.Status),
		)
		result := paymentResult(payment)
		result.Status = status.Status
		result.ErrorMessage = status.FailureMessage
		return result, nil
	}

	settled, err := uc.settlePayment(ctx, payment, status.TransactionID)
	if err != nil {
		return nil, err
	}
	return paymentResult(settled), nil
}

func (uc *paymentUsecase) ProcessMobileMoney(ctx context.Context, request *requests.MobileMoneyPaymentRequest) (*responses.PaymentResult, error) {
	if request.PhoneNumber == "" {
		return nil, exceptions.ErrMissingPaymentField("phone_number", string(models.PaymentMethodMobileMoney))
	}
	payment := &models.Payment{
		PaymentID:           utils.GenerateLedgerPaymentID(constvars.MobileMoneyPaymentIDPrefix),
		Method:              models.PaymentMethodMobileMoney,
		CustomerEmail:       request.CustomerEmail,
		CustomerName:        request.CustomerName,
		PhoneNumber:         request.PhoneNumber,
		MobileMoneyProvider: request.Provider,
	}
	return uc.processWalletPayment(ctx, uc.MobileMoneyProcessor, payment, request.ConsultationID, request.Amount, &requests.WalletChargeRequest{
		PhoneNumber: request.PhoneNumber,
		Provider:    request.Provider,
	})
}

func (uc *paymentUsecase) ProcessPayPal(ctx context.Context, request *requests.PayPalPaymentRequest) (*responses.PaymentResult, error) {
	if request.PayPalOrderID == "" {
		return nil, exceptions.ErrMissingPaymentField("paypal_order_id", string(models.PaymentMethodPayPal))
	}
	payment := &models.Payment{
		PaymentID:     utils.GenerateLedgerPaymentID(constvars.PayPalPaymentIDPrefix),
		Method:        models.PaymentMethodPayPal,
		CustomerEmail: request.CustomerEmail,
		CustomerName:  request.CustomerName,
		PayPalOrderID: request.PayPalOrderID,
	}
	return uc.processWalletPayment(ctx, uc.PayPalProcessor, payment, request.ConsultationID, request.Amount, &requests.WalletChargeRequest{
		OrderID: request.PayPalOrderID,
	})
}

// processWalletPayment runs the synchronous charge flow shared by mobile
// money and PayPal: book a PENDING entry, call the gateway, settle or fail
// the entry on the outcome. A gateway timeout leaves the entry PENDING for
// reconciliation.
func (uc *paymentUsecase) processWalletPayment(
	ctx context.Context,
	processor contracts.WalletPaymentProcessor,
	payment *models.Payment,
	consultationID int64,
	requestedAmount decimal.Decimal,
	charge *requests.WalletChargeRequest,
) (*responses.PaymentResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.processWalletPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingConsultationIDKey, consultationID),
		zap.String(constvars.LoggingPaymentMethodKey, string(payment.Method)),
	)

	consultation, err := uc.findConsultation(ctx, consultationID)
	if err != nil {
		return nil, err
	}

	amount, err := resolveAmount(requestedAmount, consultation)
	if err != nil {
		return nil, err
	}

	existing, err := uc.PaymentRepository.FindPendingByConsultationAndMethod(ctx, consultationID, payment.Method)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrPendingPaymentExists()
	}

	payment.ConsultationID = consultation.ID
	payment.PatientID = consultation.PatientID
	payment.DoctorID = consultation.DoctorID
	payment.Amount = amount
	payment.Currency = uc.resolveCurrency("")
	payment.Status = models.PaymentPending
	payment.RefundedAmount = decimal.Zero
	payment.RefundStatus = models.NotRefunded

	created, err := uc.PaymentRepository.CreatePayment(ctx, payment)
	if err != nil {
		return nil, err
	}

	charge.PaymentID = created.PaymentID
	charge.Amount = created.Amount
	charge.Currency = created.Currency
	charge.CustomerEmail = created.CustomerEmail
	charge.CustomerName = created.CustomerName

	gatewayCtx, cancel := uc.gatewayContext(ctx)
	defer cancel()
	outcome, err := processor.Charge(gatewayCtx, charge)
	if err != nil {
		if exceptions.IsKind(err, exceptions.KindProcessor) && gatewayCtx.Err() != nil {
			// Timed out: the charge may still land, so the entry stays
			// PENDING until reconciliation settles it.
			uc.Log.Error("paymentUsecase.processWalletPayment gateway timed out, entry left pending",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentIDKey, created.PaymentID),
				zap.Error(err),
			)
			return nil, err
		}
		created.Status = models.PaymentFailed
		created.ErrorMessage = err.Error()
		if _, updateErr := uc.PaymentRepository.UpdatePayment(ctx, created); updateErr != nil {
			uc.Log.Error("paymentUsecase.processWalletPayment failed to record gateway failure",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentIDKey, created.PaymentID),
				zap.Error(updateErr),
			)
		}
		return nil, err
	}

	if outcome.Status != contracts.WalletChargeStatusSucceeded {
		created.Status = models.PaymentFailed
		created.TransactionID = outcome.TransactionID
		created.ErrorMessage = outcome.Message
		failed, err := uc.PaymentRepository.UpdatePayment(ctx, created)
		if err != nil {
			return nil, err
		}
		return paymentResult(failed), nil
	}

	settled, err := uc.settlePayment(ctx, created, outcome.TransactionID)
	if err != nil {
		return nil, err
	}
	return paymentResult(settled), nil
}

// settlePayment books the success and moves the consultation to ACCEPTED
// in the same transaction, then queues the confirmation email.
func (uc *paymentUsecase) settlePayment(ctx context.Context, payment *models.Payment, transactionID string) (*models.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var settled *models.Payment
	err := uc.TransactionManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		payment.Status = models.PaymentSucceeded
		payment.TransactionID = transactionID
		payment.ErrorMessage = ""

		var err error
		settled, err = uc.PaymentRepository.UpdatePayment(txCtx, payment)
		if err != nil {
			return err
		}
		if settled == nil {
			return exceptions.ErrPaymentNotFound(fmt.Errorf("payment %s disappeared during settlement", payment.PaymentID))
		}

		consultation, err := uc.ConsultationRepository.FindConsultationByID(txCtx, payment.ConsultationID)
		if err != nil {
			return err
		}
		if consultation != nil && consultation.State.CanTransitionTo(models.ConsultationAccepted) {
			if _, err := uc.ConsultationRepository.UpdateConsultationState(txCtx, consultation.ID, models.ConsultationAccepted); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.Log.Info("paymentUsecase.settlePayment payment settled",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, settled.PaymentID),
		zap.Int64(constvars.LoggingConsultationIDKey, settled.ConsultationID),
	)

	uc.notifyPaymentConfirmed(settled)
	return settled, nil
}

// notifyPaymentConfirmed queues the confirmation email off the request path.
// A failure here never affects the settled payment.
func (uc *paymentUsecase) notifyPaymentConfirmed(payment *models.Payment) {
	snapshot := *payment
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultGatewayTimeout)
		defer cancel()

		if err := uc.NotificationService.SendPaymentConfirmation(ctx, &snapshot); err != nil {
			uc.Log.Error("paymentUsecase failed to queue payment confirmation",
				zap.String(constvars.LoggingPaymentIDKey, snapshot.PaymentID),
				zap.Error(err),
			)
			return
		}
		if err := uc.PaymentRepository.MarkConfirmationSent(ctx, snapshot.PaymentID, time.Now()); err != nil {
			uc.Log.Error("paymentUsecase failed to mark confirmation as sent",
				zap.String(constvars.LoggingPaymentIDKey, snapshot.PaymentID),
				zap.Error(err),
			)
		}
	}()
}

func (uc *paymentUsecase) GetByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, err := uc.PaymentRepository.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(fmt.Errorf("payment %s not found", paymentID))
	}
	return payment, nil
}

func (uc *paymentUsecase) ListByPatient(ctx context.Context, patientID int64) ([]models.Payment, error) {
	return uc.PaymentRepository.FindByPatientID(ctx, patientID)
}

func (uc *paymentUsecase) ListByDoctor(ctx context.Context, doctorID int64) ([]models.Payment, error) {
	return uc.PaymentRepository.FindByDoctorID(ctx, doctorID)
}

func (uc *paymentUsecase) ListByConsultation(ctx context.Context, consultationID int64) ([]models.Payment, error) {
	return uc.PaymentRepository.FindByConsultationID(ctx, consultationID)
}

func (uc *paymentUsecase) MonthlyStatistics(ctx context.Context) (*responses.PaymentStatisticsResponse, error) {
	now := time.Now().UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	statistics, err := uc.PaymentRepository.SucceededStatisticsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	return &responses.PaymentStatisticsResponse{
		MonthlyCount:  statistics.Count,
		MonthlyAmount: statistics.TotalAmount,
		Since:         since,
	}, nil
}

func (uc *paymentUsecase) findConsultation(ctx context.Context, consultationID int64) (*models.Consultation, error) {
	consultation, err := uc.ConsultationRepository.FindConsultationByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if consultation == nil {
		return nil, exceptions.ErrConsultationNotFound(fmt.Errorf("consultation %d not found", consultationID))
	}
	return consultation, nil
}

func (uc *paymentUsecase) gatewayContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(uc.InternalConfig.App.PaymentGatewayTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultGatewayTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (uc *paymentUsecase) resolveCurrency(requested string) string {
	if requested != "" {
		return requested
	}
	if uc.InternalConfig.App.DefaultCurrency != "" {
		return uc.InternalConfig.App.DefaultCurrency
	}
	return constvars.DefaultCurrency
}

// resolveAmount falls back to the consultation total when the caller does
// not name an amount.
func resolveAmount(requested decimal.Decimal, consultation *models.Consultation) (decimal.Decimal, error) {
	amount := requested
	if amount.IsZero() {
		amount = consultation.TotalPrice
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, exceptions.ErrInvalidAmount()
	}
	return amount, nil
}

func paymentResult(payment *models.Payment) *responses.PaymentResult {
	return &responses.PaymentResult{
		PaymentID:     payment.PaymentID,
		Status:        string(payment.Status),
		Method:        string(payment.Method),
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		TransactionID: payment.TransactionID,
		ErrorMessage:  payment.ErrorMessage,
	}
}
