// Package storage реализует адаптер сохранения документа состояния.
//
// Store хранит весь models.State одним документом поверх Blob, хранилища
// «ключ-значение» для одного значения. Реализации Blob находятся в подпакетах
// file, redis и postgres.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/messmate/internal/lib/sl"
	"github.com/magabrotheeeer/messmate/internal/models"
)

// Blob описывает хранилище одного документа.
type Blob interface {
	// Get возвращает документ; found=false, если он ещё не сохранялся.
	Get(ctx context.Context) (data []byte, found bool, err error)
	// Put перезаписывает документ.
	Put(ctx context.Context, data []byte) error
}

// Store загружает и сохраняет состояние.
type Store struct {
	blob    Blob
	log     *slog.Logger
	retries int
	delay   time.Duration
}

// Option настраивает Store.
type Option func(*Store)

// WithRetries задаёт число попыток записи и паузу между ними.
func WithRetries(retries int, delay time.Duration) Option {
	return func(s *Store) {
		s.retries = max(1, retries)
		s.delay = delay
	}
}

// New создаёт Store поверх blob.
func New(blob Blob, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		blob:    blob,
		log:     log,
		retries: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load возвращает сохранённое состояние. Если документа нет, создаёт
// документ по умолчанию и сразу его сохраняет.
func (s *Store) Load(ctx context.Context) (models.State, error) {
	const op = "storage.Load"
	data, found, err := s.blob.Get(ctx)
	if err != nil {
		return models.State{}, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		st := Defaults()
		s.log.Info("no saved document, seeding defaults")
		if err := s.Save(ctx, st); err != nil {
			return models.State{}, fmt.Errorf("%s: %w", op, err)
		}
		return st, nil
	}
	st, err := Decode(data)
	if err != nil {
		return models.State{}, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}

// Save перезаписывает документ, повторяя запись при ошибке.
func (s *Store) Save(ctx context.Context, st models.State) error {
	const op = "storage.Save"
	data, err := Encode(st)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for attempt := 1; ; attempt++ {
		err = s.blob.Put(ctx, data)
		if err == nil {
			return nil
		}
		if attempt >= s.retries {
			break
		}
		s.log.Warn("failed to write document, retrying", slog.Int("attempt", attempt), sl.Err(err))
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(s.delay):
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
