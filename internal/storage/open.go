package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/magabrotheeeer/messmate/internal/config"
	"github.com/magabrotheeeer/messmate/internal/migrations"
	"github.com/magabrotheeeer/messmate/internal/storage/filestore"
	"github.com/magabrotheeeer/messmate/internal/storage/pgstore"
	"github.com/magabrotheeeer/messmate/internal/storage/redisstore"
)

// Драйверы хранилища, допустимые в config.Storage.Driver.
const (
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// ErrUnknownDriver возвращается для неизвестного storage.driver.
var ErrUnknownDriver = errors.New("storage: unknown driver")

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open создаёт Store поверх выбранного в конфиге бэкенда.
// Возвращённый io.Closer освобождает соединение бэкенда.
func Open(ctx context.Context, cfg config.Storage, log *slog.Logger) (*Store, io.Closer, error) {
	const op = "storage.Open"

	var (
		blob   Blob
		closer io.Closer
	)
	switch cfg.Driver {
	case DriverFile, "":
		blob, closer = filestore.New(cfg.Path), nopCloser{}
	case DriverRedis:
		b, err := redisstore.InitServer(ctx, cfg.Redis, cfg.Key)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		blob, closer = b, b
	case DriverPostgres:
		s, err := pgstore.New(cfg.StorageConnectionString, cfg.Key)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := migrations.Run(s.DB, cfg.MigrationsPath); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := pgstore.CheckDatabaseReady(ctx, s); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		blob, closer = s, s
	default:
		return nil, nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownDriver, cfg.Driver)
	}

	log.Info("storage opened", slog.String("driver", cfg.Driver))
	return New(blob, log, WithRetries(cfg.SaveRetries, cfg.SaveRetryDelay)), closer, nil
}
