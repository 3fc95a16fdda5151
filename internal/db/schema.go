package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS inscricoes (
	id         BIGSERIAL PRIMARY KEY,
	nome       TEXT NOT NULL,
	email      TEXT NOT NULL,
	curso      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// EnsureSchema creates the inscricoes table when it does not exist yet.
// Existing tables are left untouched.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)

	return err
}
