package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const postgresUpsert = `
INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

// Postgres stores each key as one row of the kv_store table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Store backed by pool. Call EnsureSchema once at startup.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the kv_store table when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create kv_store: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	err := p.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return raw, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	if _, err := p.pool.Exec(ctx, postgresUpsert, key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (p *Postgres) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	tag, err := p.pool.Exec(ctx,
		`INSERT INTO kv_store (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`, key, value)
	if err != nil {
		return false, fmt.Errorf("insert %s: %w", key, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (p *Postgres) SetMany(ctx context.Context, entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		for k, v := range entries {
			if _, err := tx.Exec(ctx, postgresUpsert, k, v); err != nil {
				return fmt.Errorf("upsert %s: %w", k, err)
			}
		}
		return nil
	})
}
