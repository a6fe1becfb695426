package mailer

import (
	"context"
	"fmt"
	"tabib-service/internal/app/contracts"
	"tabib-service/internal/app/models"
	"tabib-service/internal/pkg/constvars"
	"tabib-service/internal/pkg/dto/requests"
	"tabib-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// mailerService queues confirmation emails on RabbitMQ; the worker drains
// the queue and talks SMTP. Callers treat every method as best effort.
type mailerService struct {
	Channel *amqp091.Channel
	Queue   string
	Log     *zap.Logger
}

func NewMailerService(rabbitMQConnection *amqp091.Connection, queue string, logger *zap.Logger) (contracts.NotificationService, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}
	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &mailerService{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
	}, nil
}

func (s *mailerService) SendPaymentConfirmation(ctx context.Context, payment *models.Payment) error {
	if payment.CustomerEmail == "" {
		return nil
	}
	body := fmt.Sprintf(
		"Dear %s,\n\nYour payment of %s %s for consultation #%d was received via %s.\nPayment reference: %s\n\nThank you,\nTabib.life",
		customerName(payment),
		payment.Amount.StringFixed(2),
		payment.Currency,
		payment.ConsultationID,
		payment.Method.Label(),
		payment.PaymentID,
	)
	return s.publish(ctx, &requests.EmailPayload{
		To:      payment.CustomerEmail,
		Subject: constvars.EmailPaymentConfirmationSubject,
		Body:    body,
	})
}

func (s *mailerService) SendRefundConfirmation(ctx context.Context, payment *models.Payment, refundAmount decimal.Decimal) error {
	if payment.CustomerEmail == "" {
		return nil
	}
	body := fmt.Sprintf(
		"Dear %s,\n\nA refund of %s %s was issued on payment %s (%s of the original %s %s).\n\nThank you,\nTabib.life",
		customerName(payment),
		refundAmount.StringFixed(2),
		payment.Currency,
		payment.PaymentID,
		payment.RefundStatus.Label(),
		payment.Amount.StringFixed(2),
		payment.Currency,
	)
	return s.publish(ctx, &requests.EmailPayload{
		To:      payment.CustomerEmail,
		Subject: constvars.EmailRefundConfirmationSubject,
		Body:    body,
	})
}

func (s *mailerService) publish(ctx context.Context, payload *requests.EmailPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}

	s.Log.Info("mailerService queued email",
		zap.String(constvars.LoggingQueueNameKey, s.Queue),
		zap.String(constvars.LoggingEmailKey, payload.To),
	)
	return nil
}

func customerName(payment *models.Payment) string {
	if payment.CustomerName != "" {
		return payment.CustomerName
	}
	return "patient"
}
