// Package services содержит планировщик напоминаний: он периодически читает
// документ состояния и публикует напоминания в RabbitMQ.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/messmate/internal/ledger"
	"github.com/magabrotheeeer/messmate/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/messmate/internal/lib/sl"
	"github.com/magabrotheeeer/messmate/internal/models"
)

// StateLoader читает актуальный документ состояния.
type StateLoader interface {
	Load(ctx context.Context) (models.State, error)
}

// AlertSource вычисляет напоминания по состоянию.
type AlertSource interface {
	Alerts(st models.State) ledger.Alerts
}

// SchedulerService публикует напоминания о продлении и долгах.
type SchedulerService struct {
	loader   StateLoader
	alerts   AlertSource
	channel  rabbitmq.Channel
	interval time.Duration
	log      *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(loader StateLoader, alerts AlertSource, channel rabbitmq.Channel, interval time.Duration, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		loader:   loader,
		alerts:   alerts,
		channel:  channel,
		interval: interval,
		log:      log,
	}
}

// Run выполняет проверку сразу и затем каждые interval, пока ctx не отменён.
func (s *SchedulerService) Run(ctx context.Context) {
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *SchedulerService) runOnce(ctx context.Context) {
	renewals, payments, err := s.Publish(ctx)
	if err != nil {
		s.log.Error("failed to publish alerts", sl.Err(err))
		return
	}
	s.log.Info("alerts published", slog.Int("renewals", renewals), slog.Int("payments", payments))
}

// Publish загружает состояние и публикует по сообщению на каждое напоминание.
// Ошибка публикации отдельного сообщения логируется и не прерывает остальные.
func (s *SchedulerService) Publish(ctx context.Context) (renewals, payments int, err error) {
	const op = "services.SchedulerService.Publish"

	st, err := s.loader.Load(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	alerts := s.alerts.Alerts(st)

	for _, a := range alerts.Renewals {
		notice := models.RenewalNotice{
			CustomerID:     a.Customer.ID,
			Name:           a.Customer.Name,
			Phone:          a.Customer.Phone,
			DaysToExpiry:   a.DaysToExpiry,
			MealsRemaining: a.Customer.MealsRemaining,
			UrgencyScore:   a.UrgencyScore,
			ExpiringSoon:   a.ExpiringSoon,
			LowMeals:       a.LowMeals,
		}
		if err := rabbitmq.PublishMessage(s.channel, rabbitmq.Exchange, rabbitmq.RoutingRenewal, notice); err != nil {
			s.log.Error("failed to publish renewal", slog.String("customer", a.Customer.ID), sl.Err(err))
			continue
		}
		renewals++
	}

	for _, c := range alerts.PendingPayments {
		notice := models.PaymentNotice{
			CustomerID: c.ID,
			Name:       c.Name,
			Phone:      c.Phone,
			Balance:    c.Balance,
		}
		if err := rabbitmq.PublishMessage(s.channel, rabbitmq.Exchange, rabbitmq.RoutingPayment, notice); err != nil {
			s.log.Error("failed to publish payment", slog.String("customer", c.ID), sl.Err(err))
			continue
		}
		payments++
	}
	return renewals, payments, nil
}
