// Package pgstore хранит документ состояния в PostgreSQL,
// в таблице documents с колонкой jsonb.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage инкапсулирует соединение с PostgreSQL.
type Storage struct {
	DB  *sql.DB
	key string
}

// New создаёт подключение к PostgreSQL. Документ хранится в строке с ключом key.
func New(storageConnectionString, key string) (*Storage, error) {
	const op = "pgstore.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB:  db,
		key: key,
	}, nil
}

// CheckDatabaseReady проверяет, что миграции применены.
func CheckDatabaseReady(ctx context.Context, s *Storage) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'documents'
    )`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("pgstore.CheckDatabaseReady: %w", err)
	}
	if !exists {
		return errors.New("pgstore.CheckDatabaseReady: required table documents missing")
	}
	return nil
}

// Get возвращает документ.
func (s *Storage) Get(ctx context.Context) ([]byte, bool, error) {
	const op = "pgstore.Get"

	var body []byte
	err := s.DB.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = $1`, s.key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return body, true, nil
}

// Put вставляет или перезаписывает документ.
func (s *Storage) Put(ctx context.Context, data []byte) error {
	const op = "pgstore.Put"

	query := `INSERT INTO documents (key, body, updated_at)
			  VALUES ($1, $2, now())
			  ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`
	if _, err := s.DB.ExecContext(ctx, query, s.key, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}
