package db

import (
	"context"
	"database/sql"
	"fmt"
)

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const usersTable = `CREATE TABLE IF NOT EXISTS users (
	id VARCHAR(36) NOT NULL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	role VARCHAR(16) NOT NULL,
	password_hash VARCHAR(255) NOT NULL DEFAULT '',
	created_at VARCHAR(32) NOT NULL
)`

// Migrate creates the schema when missing. The DDL is valid for MySQL and SQLite.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, usersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

// HasTable reports whether table exists; errors count as missing.
func HasTable(ctx context.Context, q QueryRower, driver, table string) bool {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1`
	if driver == "sqlite" {
		query = `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ? LIMIT 1`
	}

	var name sql.NullString
	if err := q.QueryRowContext(ctx, query, table).Scan(&name); err != nil {
		return false
	}
	return name.Valid && name.String != ""
}
