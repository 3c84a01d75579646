// Package services содержит отправителя писем владельцу по напоминаниям из очереди.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"strings"

	"github.com/magabrotheeeer/messmate/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/messmate/internal/lib/sl"
	"github.com/magabrotheeeer/messmate/internal/lib/smtp"
	"github.com/magabrotheeeer/messmate/internal/models"
)

// SenderService отправляет владельцу письма о продлениях и долгах.
type SenderService struct {
	transport smtp.TransportInterface
	owner     string
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, ownerEmail string, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		owner:     ownerEmail,
		log:       log,
	}
}

// SendRenewalNotice обрабатывает сообщение из очереди продлений.
func (s *SenderService) SendRenewalNotice(_ context.Context, body []byte) error {
	const op = "services.SenderService.SendRenewalNotice"
	var notice models.RenewalNotice
	if err := json.Unmarshal(body, &notice); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("%s: %w: error unmarshalling message: %w", op, rabbitmq.ErrPermanent, err)
	}

	var reasons []string
	if notice.ExpiringSoon {
		reasons = append(reasons, fmt.Sprintf("план заканчивается через %d дн.", notice.DaysToExpiry))
	}
	if notice.LowMeals {
		reasons = append(reasons, fmt.Sprintf("осталось обедов: %d", notice.MealsRemaining))
	}

	subject := "Напоминание о продлении: " + notice.Name
	bodyText := fmt.Sprintf("Клиент %s (%s) скоро должен продлить план: %s.\n\nСрочность: %d.",
		notice.Name, notice.Phone, strings.Join(reasons, ", "), notice.UrgencyScore)

	if err := s.sendEmail(subject, bodyText); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SendPaymentNotice обрабатывает сообщение из очереди долгов.
func (s *SenderService) SendPaymentNotice(_ context.Context, body []byte) error {
	const op = "services.SenderService.SendPaymentNotice"
	var notice models.PaymentNotice
	if err := json.Unmarshal(body, &notice); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("%s: %w: error unmarshalling message: %w", op, rabbitmq.ErrPermanent, err)
	}

	subject := "Задолженность клиента: " + notice.Name
	bodyText := fmt.Sprintf("Клиент %s (%s) должен %s.\n\nПожалуйста, напомните об оплате.",
		notice.Name, notice.Phone, notice.Balance.StringFixed(2))

	if err := s.sendEmail(subject, bodyText); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// sendEmail отправляет письмо владельцу. Тема кодируется как encoded-word (RFC 2047).
func (s *SenderService) sendEmail(subject, bodyText string) error {
	from := s.transport.From()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + s.owner,
		"Subject: " + mime.QEncoding.Encode("utf-8", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			s.log.Debug("failed to close SMTP client", sl.Err(err))
		}
	}()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}
	if err := client.Rcpt(s.owner); err != nil {
		s.log.Error("failed to set RCPT TO", slog.String("recipient", s.owner), sl.Err(err))
		return err
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.String("to", s.owner), slog.String("subject", subject))
	return nil
}
