package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"tabib-service/internal/app/drivers/mailer"
	"tabib-service/internal/pkg/constvars"
	"tabib-service/internal/pkg/dto/requests"
	"tabib-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// MailerWorker drains the email queue and delivers over SMTP. A message
// that cannot be decoded is dropped; a delivery failure is nacked for
// redelivery.
type MailerWorker struct {
	Channel *amqp091.Channel
	Client  *mailer.SMTPClient
	Queue   string
	Log     *zap.Logger
}

func NewMailerWorker(rabbitMQConnection *amqp091.Connection, client *mailer.SMTPClient, queue string, logger *zap.Logger) (*MailerWorker, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}
	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &MailerWorker{
		Channel: channel,
		Client:  client,
		Queue:   queue,
		Log:     logger,
	}, nil
}

func (w *MailerWorker) Run(ctx context.Context) error {
	deliveries, err := w.Channel.ConsumeWithContext(ctx, w.Queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return nil
			}
			w.handle(delivery)
		}
	}
}

func (w *MailerWorker) handle(delivery amqp091.Delivery) {
	var payload requests.EmailPayload
	if err := json.Unmarshal(delivery.Body, &payload); err != nil {
		w.Log.Error("mailerWorker dropping undecodable message",
			zap.String(constvars.LoggingQueueNameKey, w.Queue),
			zap.Error(err),
		)
		_ = delivery.Nack(false, false)
		return
	}

	if err := w.send(&payload); err != nil {
		w.Log.Error("mailerWorker failed to send email",
			zap.String(constvars.LoggingQueueNameKey, w.Queue),
			zap.String(constvars.LoggingEmailKey, payload.To),
			zap.Error(err),
		)
		_ = delivery.Nack(false, true)
		return
	}

	w.Log.Info("mailerWorker delivered email",
		zap.String(constvars.LoggingQueueNameKey, w.Queue),
		zap.String(constvars.LoggingEmailKey, payload.To),
	)
	_ = delivery.Ack(false)
}

func (w *MailerWorker) send(payload *requests.EmailPayload) error {
	msg := []byte(fmt.Sprintf(constvars.EmailSendBasicEmailFormat, payload.To, payload.Subject, payload.Body))
	addr := fmt.Sprintf("%s:%d", w.Client.Host, w.Client.Port)
	err := smtp.SendMail(addr, w.Client.Auth, w.Client.Sender, []string{payload.To}, msg)
	if err != nil {
		return exceptions.ErrSMTPSendEmail(err, w.Client.Host)
	}
	return nil
}
