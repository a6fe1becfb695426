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
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type refundUsecase struct {
	PaymentRepository      contracts.PaymentRepository
	ConsultationRepository contracts.ConsultationRepository
	CardProcessor          contracts.CardPaymentProcessor
	NotificationService    contracts.NotificationService
	TransactionManager     contracts.TransactionManager
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

func NewRefundUsecase(
	paymentRepository contracts.PaymentRepository,
	consultationRepository contracts.ConsultationRepository,
	cardProcessor contracts.CardPaymentProcessor,
	notificationService contracts.NotificationService,
	transactionManager contracts.TransactionManager,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.RefundLedger {
	return &refundUsecase{
		PaymentRepository:      paymentRepository,
		ConsultationRepository: consultationRepository,
		CardProcessor:          cardProcessor,
		NotificationService:    notificationService,
		TransactionManager:     transactionManager,
		InternalConfig:         internalConfig,
		Log:                    logger,
	}
}

func (uc *refundUsecase) Refund(ctx context.Context, request *requests.RefundPaymentRequest) (*responses.PaymentResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("refundUsecase.Refund called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, request.PaymentID),
	)

	payment, err := uc.PaymentRepository.FindByPaymentID(ctx, request.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(fmt.Errorf("payment %s not found", request.PaymentID))
	}
	if payment.Status != models.PaymentSucceeded {
		return nil, exceptions.ErrPaymentNotSucceeded(string(payment.Status))
	}
	if payment.IsFullyRefunded() {
		return nil, exceptions.ErrPaymentFullyRefunded()
	}

	remaining := payment.RemainingAmount()
	amount := remaining
	if request.Amount != nil {
		amount = *request.Amount
	}
	if !amount.IsPositive() {
		return nil, exceptions.ErrInvalidAmount()
	}
	if amount.GreaterThan(remaining) {
		return nil, exceptions.ErrRefundExceedsBalance()
	}

	// Card refunds go back through the processor. Wallet refunds are booked
	// ledger-side only and settled manually with the operator.
	if payment.Method == models.PaymentMethodCard {
		timeout := time.Duration(uc.InternalConfig.App.PaymentGatewayTimeoutInSeconds) * time.Second
		if timeout <= 0 {
			timeout = defaultGatewayTimeout
		}
		gatewayCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if _, err := uc.CardProcessor.Refund(gatewayCtx, payment.PaymentID, amount); err != nil {
			uc.Log.Error("refundUsecase.Refund processor rejected refund",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentIDKey, payment.PaymentID),
				zap.Error(err),
			)
			payment.RefundStatus = models.RefundFailed
			payment.ErrorMessage = err.Error()
			if _, updateErr := uc.PaymentRepository.UpdatePayment(ctx, payment); updateErr != nil {
				uc.Log.Error("refundUsecase.Refund failed to record refund failure",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingPaymentIDKey, payment.PaymentID),
					zap.Error(updateErr),
				)
			}
			return nil, err
		}
	}

	now := time.Now()
	payment.RefundedAmount = payment.RefundedAmount.Add(amount)
	payment.RefundedAt = &now
	if request.Reason != "" {
		payment.RefundReason = request.Reason
	}
	fullyRefunded := payment.IsFullyRefunded()
	if fullyRefunded {
		payment.RefundStatus = models.FullyRefunded
	} else {
		payment.RefundStatus = models.PartiallyRefunded
	}

	var updated *models.Payment
	err = uc.TransactionManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = uc.PaymentRepository.UpdatePayment(txCtx, payment)
		if err != nil {
			return err
		}
		if updated == nil {
			return exceptions.ErrPaymentNotFound(fmt.Errorf("payment %s disappeared during refund", payment.PaymentID))
		}

		if !fullyRefunded {
			return nil
		}

		// A full refund cancels the consultation when its lifecycle still
		// permits it. A consultation already held stays COMPLETED.
		consultation, err := uc.ConsultationRepository.FindConsultationByID(txCtx, payment.ConsultationID)
		if err != nil {
			return err
		}
		if consultation != nil && consultation.State.CanTransitionTo(models.ConsultationCancelled) {
			if _, err := uc.ConsultationRepository.UpdateConsultationState(txCtx, consultation.ID, models.ConsultationCancelled); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.Log.Info("refundUsecase.Refund refund booked",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, updated.PaymentID),
		zap.String(constvars.LoggingRefundStatusKey, string(updated.RefundStatus)),
		zap.String(constvars.LoggingAmountKey, amount.String()),
	)

	uc.notifyRefundBooked(updated, amount)

	result := paymentResult(updated)
	result.Status = string(updated.RefundStatus)
	return result, nil
}

func (uc *refundUsecase) notifyRefundBooked(payment *models.Payment, amount decimal.Decimal) {
	snapshot := *payment
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultGatewayTimeout)
		defer cancel()

		if err := uc.NotificationService.SendRefundConfirmation(ctx, &snapshot, amount); err != nil {
			uc.Log.Error("refundUsecase failed to queue refund confirmation",
				zap.String(constvars.LoggingPaymentIDKey, snapshot.PaymentID),
				zap.Error(err),
			)
		}
	}()
}
