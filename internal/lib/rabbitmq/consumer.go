package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/messmate/internal/lib/sl"
)

// ErrPermanent помечает ошибку обработчика, которую повтор не исправит
// (например, тело сообщения не разбирается). Такое сообщение отбрасывается.
var ErrPermanent = errors.New("rabbitmq: permanent failure")

// RetryHeader хранит номер попытки, с которой сообщение было переопубликовано.
const RetryHeader = "x-retry"

// Handler обрабатывает тело сообщения.
type Handler func(ctx context.Context, body []byte) error

// RetryPolicy ограничивает повторы временных ошибок.
type RetryPolicy struct {
	MaxAttempts int           // Всего попыток, включая первую
	Delay       time.Duration // Пауза перед повторной публикацией
}

// ConsumerMessage запускает потребителя очереди queueName.
// Одновременно обрабатывается не больше 10 сообщений; работа прекращается по отмене ctx.
func ConsumerMessage(ctx context.Context, log *slog.Logger, ch *amqp.Channel, queueName string, policy RetryPolicy, handler Handler) error {
	const op = "rabbitmq.ConsumerMessage"
	deliveries, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log = log.With(sl.Op(op), slog.String("queue", queueName))
	sem := make(chan struct{}, 10)
	go func() {
		for {
			select {
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-sem }()
					handleDelivery(ctx, log, ch, d, policy, handler)
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// handleDelivery подтверждает успешное сообщение, отбрасывает сообщение с ErrPermanent
// и при временной ошибке переопубликует копию с увеличенным RetryHeader,
// пока не исчерпан policy.MaxAttempts.
func handleDelivery(ctx context.Context, log *slog.Logger, pub Channel, d amqp.Delivery, policy RetryPolicy, handler Handler) {
	err := handler(ctx, d.Body)
	if err == nil {
		if ackErr := d.Ack(false); ackErr != nil {
			log.Error("failed to ack message", sl.Err(ackErr))
		}
		return
	}

	attempt := retryCount(d.Headers) + 1
	switch {
	case errors.Is(err, ErrPermanent):
		log.Error("dropping message with permanent failure", sl.Err(err), slog.Int("bytes", len(d.Body)))
		reject(log, d, false)
		return
	case attempt >= max(1, policy.MaxAttempts):
		log.Error("dropping message after retries", sl.Err(err), slog.Int("attempts", attempt))
		reject(log, d, false)
		return
	}

	log.Warn("handler failed, scheduling retry", sl.Err(err), slog.Int("attempt", attempt))
	select {
	case <-ctx.Done():
		reject(log, d, true)
		return
	case <-time.After(policy.Delay):
	}

	headers := amqp.Table{}
	for k, v := range d.Headers {
		headers[k] = v
	}
	headers[RetryHeader] = int32(attempt)

	retry := amqp.Publishing{
		Headers:      headers,
		ContentType:  d.ContentType,
		Type:         d.Type,
		Timestamp:    d.Timestamp,
		Body:         d.Body,
		DeliveryMode: amqp.Persistent,
	}
	if pubErr := pub.Publish(d.Exchange, d.RoutingKey, false, false, retry); pubErr != nil {
		log.Error("failed to republish message, requeue", sl.Err(pubErr))
		reject(log, d, true)
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		log.Error("failed to ack message", sl.Err(ackErr))
	}
}

func reject(log *slog.Logger, d amqp.Delivery, requeue bool) {
	if err := d.Nack(false, requeue); err != nil {
		log.Error("failed to nack message", sl.Err(err))
	}
}

func retryCount(h amqp.Table) int {
	switch v := h[RetryHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
