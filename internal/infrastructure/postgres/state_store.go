package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-hojas/internal/domain/repository"
)

var _ repository.StateStore = (*StateStore)(nil)

// Querier abstrae pool y transacción para las consultas del almacén.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const createKVStore = `CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// StateStore implementa repository.StateStore sobre la tabla kv_store.
type StateStore struct {
	db Querier
}

// NewStateStore construye el almacén y crea la tabla si no existe.
func NewStateStore(ctx context.Context, db Querier) (*StateStore, error) {
	if _, err := db.Exec(ctx, createKVStore); err != nil && !isUniqueViolation(err) {
		// Dos procesos creando la tabla a la vez chocan en pg_type (23505); la tabla ya existe.
		return nil, fmt.Errorf("crear kv_store: %w", err)
	}
	return &StateStore{db: db}, nil
}

// isUniqueViolation indica un unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// NewStateStoreFromPool atajo para el arranque desde un *pgxpool.Pool.
func NewStateStoreFromPool(ctx context.Context, pool *pgxpool.Pool) (*StateStore, error) {
	return NewStateStore(ctx, pool)
}

// Get lee la clave. Ausente => found=false sin error.
func (s *StateStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("postgres get %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserta o reemplaza el valor (upsert por clave).
func (s *StateStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("postgres set %s: %w", key, err)
	}
	return nil
}
