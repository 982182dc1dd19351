// Package store contains the Postgres persistence for the application
// state. No business logic lives here — only SQL and JSON mapping. The
// whole schema is one key-value table: each key holds a self-contained
// JSON document and every write replaces the document wholesale.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/milelog/backend/internal/state"
)

// db is the minimal interface satisfied by *pgxpool.Pool and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows
// integration tests to pass a transaction that is rolled back after each
// test, giving free per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PG implements state.Store on the app_state table.
type PG struct {
	db db
}

// NewPG constructs a PG store. In production pass *pgxpool.Pool; in tests
// pass a pgx.Tx for rollback isolation.
func NewPG(db db) *PG {
	return &PG{db: db}
}

const upsertSQL = `
	INSERT INTO app_state (key, value)
	VALUES (@key, @value::jsonb)
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value, updated_at = now()`

// Read decodes the document stored under key into dest.
// Returns state.ErrNoValue when the key has never been written.
func (s *PG) Read(ctx context.Context, key string, dest any) error {
	const q = `SELECT value FROM app_state WHERE key = @key`

	var raw []byte
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return state.ErrNoValue
	}
	if err != nil {
		return fmt.Errorf("store.PG.Read: %w", err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("store.PG.Read: decode %q: %w", key, err)
	}
	return nil
}

// Write replaces the document stored under key.
func (s *PG) Write(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store.PG.Write: encode %q: %w", key, err)
	}

	_, err = s.db.Exec(ctx, upsertSQL, pgx.NamedArgs{"key": key, "value": string(raw)})
	if err != nil {
		return fmt.Errorf("store.PG.Write: %w", err)
	}
	return nil
}

// WriteAll replaces several documents in one transaction: either every
// entry is written or none is.
func (s *PG) WriteAll(ctx context.Context, entries map[string]any) error {
	encoded := make(map[string]string, len(entries))
	for key, value := range entries {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("store.PG.WriteAll: encode %q: %w", key, err)
		}
		encoded[key] = string(raw)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("store.PG.WriteAll: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck — rollback after commit is a no-op

	for key, raw := range encoded {
		if _, err := tx.Exec(ctx, upsertSQL, pgx.NamedArgs{"key": key, "value": raw}); err != nil {
			return fmt.Errorf("store.PG.WriteAll: write %q: %w", key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("store.PG.WriteAll: commit: %w", err)
	}
	return nil
}

// compile-time check: PG must satisfy state.Store.
var _ state.Store = (*PG)(nil)
