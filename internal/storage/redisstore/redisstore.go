// Package redisstore хранит документ состояния под одним ключом Redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/messmate/internal/config"
)

// Blob — документ под ключом key.
type Blob struct {
	Db  *redis.Client
	key string
}

// InitServer подключается к Redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection, key string) (*Blob, error) {
	const op = "redisstore.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Blob{Db: db, key: key}, nil
}

// Get возвращает документ.
func (b *Blob) Get(ctx context.Context) ([]byte, bool, error) {
	const op = "redisstore.Get"
	val, err := b.Db.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

// Put перезаписывает документ без срока жизни.
func (b *Blob) Put(ctx context.Context, data []byte) error {
	const op = "redisstore.Put"
	if err := b.Db.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение.
func (b *Blob) Close() error {
	return b.Db.Close()
}
