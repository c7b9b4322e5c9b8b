package medium

import (
	"context"
	"errors"
	"fmt"

	"room-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Postgres struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPostgres(db database.PgxIface, log *zap.Logger) *Postgres {
	return &Postgres{
		db:  db,
		log: log.With(zap.String("medium", "postgres")),
	}
}

// Migrate creates the kv_store table when missing.
func (p *Postgres) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := p.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("migrate postgres kv_store: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`

	var value string
	err := p.db.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		p.log.Error("Failed to read key", zap.String("key", key), zap.Error(err))
		return "", false, fmt.Errorf("postgres get %s: %w", key, err)
	}
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
	if _, err := p.db.Exec(ctx, query, key, value); err != nil {
		p.log.Error("Failed to write key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("postgres set %s: %w", key, err)
	}
	return nil
}
