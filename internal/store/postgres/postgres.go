// Package postgres persists accounts as rows and record collections as one
// JSONB array per (username, collection) pair, mirroring the flat-file
// layout so the two backends stay interchangeable.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Connect opens a pooled connection and verifies it with a ping.
func Connect(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS accounts (
		username      TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		business_name TEXT NOT NULL DEFAULT '',
		business_type TEXT NOT NULL DEFAULT 'other',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS collections (
		username   TEXT NOT NULL,
		collection TEXT NOT NULL,
		records    JSONB NOT NULL DEFAULT '[]',
		PRIMARY KEY (username, collection)
	);
`

// Bootstrap creates the schema if it does not exist yet.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func getRecords[T any](ctx context.Context, db *sql.DB, username, collection string) ([]T, error) {
	query := `SELECT records FROM collections WHERE username = $1 AND collection = $2`

	var raw []byte

	err := db.QueryRowContext(ctx, query, username, collection).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("getting %s: %w", collection, err)
	}

	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", collection, err)
	}

	return out, nil
}

func appendRecord[T any](ctx context.Context, db *sql.DB, username, collection string, item T) error {
	buf, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encoding %s record: %w", collection, err)
	}

	query := `
		INSERT INTO collections (username, collection, records)
		VALUES ($1, $2, jsonb_build_array($3::jsonb))
		ON CONFLICT (username, collection)
		DO UPDATE SET records = collections.records || jsonb_build_array($3::jsonb)
	`

	if _, err := db.ExecContext(ctx, query, username, collection, buf); err != nil {
		return fmt.Errorf("appending %s record: %w", collection, err)
	}

	return nil
}

func replaceRecords[T any](ctx context.Context, db *sql.DB, username, collection string, items []T) error {
	if items == nil {
		items = []T{}
	}

	buf, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s records: %w", collection, err)
	}

	query := `
		INSERT INTO collections (username, collection, records)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (username, collection)
		DO UPDATE SET records = EXCLUDED.records
	`

	if _, err := db.ExecContext(ctx, query, username, collection, buf); err != nil {
		return fmt.Errorf("replacing %s records: %w", collection, err)
	}

	return nil
}
