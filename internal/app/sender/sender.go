// Package sender содержит приложение, которое доставляет напоминания владельцу по почте.
package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/messmate/internal/config"
	"github.com/magabrotheeeer/messmate/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/messmate/internal/lib/sl"
	"github.com/magabrotheeeer/messmate/internal/lib/smtp"
	senderservice "github.com/magabrotheeeer/messmate/internal/services/sender"
)

// App представляет приложение отправителя писем.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	retry         rabbitmq.RetryPolicy
	logger        *slog.Logger
}

// New подключается к RabbitMQ и готовит SMTP транспорт.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "sender.New"

	if cfg.SMTP.OwnerEmail == "" {
		return nil, fmt.Errorf("%s: smtp.owner_email is not set", op)
	}

	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Error("failed to close connection", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	senderService := senderservice.NewSenderService(transport, cfg.SMTP.OwnerEmail, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		retry: rabbitmq.RetryPolicy{
			MaxAttempts: cfg.RabbitMQ.ConsumerMaxAttempts,
			Delay:       cfg.RabbitMQ.ConsumerRetryDelay,
		},
		logger: logger,
	}, nil
}

// Run запускает потребителей обеих очередей и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	handlers := map[string]rabbitmq.Handler{
		rabbitmq.RoutingRenewal: a.senderService.SendRenewalNotice,
		rabbitmq.RoutingPayment: a.senderService.SendPaymentNotice,
	}
	for _, q := range rabbitmq.GetNotificationQueues() {
		if err := rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, q.QueueName, a.retry, handlers[q.RoutingKey]); err != nil {
			a.logger.Error("failed to start consumer", slog.String("queue", q.QueueName), sl.Err(err))
			return err
		}
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return nil
}
