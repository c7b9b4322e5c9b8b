package medium

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// SQLite keeps every key in a single kv_store table.
type SQLite struct {
	db  *sql.DB
	log *zap.Logger
}

func NewSQLite(db *sql.DB, log *zap.Logger) *SQLite {
	return &SQLite{
		db:  db,
		log: log.With(zap.String("medium", "sqlite")),
	}
}

// Migrate creates the kv_store table when missing.
func (s *SQLite) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("migrate sqlite kv_store: %w", err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		s.log.Error("Failed to read key", zap.String("key", key), zap.Error(err))
		return "", false, fmt.Errorf("sqlite get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		s.log.Error("Failed to write key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("sqlite set %s: %w", key, err)
	}
	return nil
}
