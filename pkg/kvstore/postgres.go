package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jmoiron/sqlx"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PostgresBackend keeps entries in a single key/value table.
type PostgresBackend struct {
	db    *sqlx.DB
	table string
	now   func() time.Time
}

// NewPostgresBackend binds the backend to table, which must be a plain SQL identifier.
func NewPostgresBackend(db *sqlx.DB, table string) (*PostgresBackend, error) {
	if table == "" {
		table = "kv_entries"
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid store table name %q", table)
	}
	return &PostgresBackend{db: db, table: table, now: time.Now}, nil
}

// EnsureSchema creates the backing table when it does not exist.
func (b *PostgresBackend) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, b.table)
	if _, err := b.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create store table: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, b.table)
	if err := b.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get store entry: %w", err)
	}
	return value, true, nil
}

func (b *PostgresBackend) Set(ctx context.Context, key, value string) error {
	query := fmt.Sprintf(`INSERT INTO %s (key, value, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`, b.table)
	if _, err := b.db.ExecContext(ctx, query, key, value, b.now().UTC()); err != nil {
		return fmt.Errorf("set store entry: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, b.table)
	if _, err := b.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete store entry: %w", err)
	}
	return nil
}
