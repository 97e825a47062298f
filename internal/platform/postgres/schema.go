package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaDDL creates the two tables the application needs. Schema migrations
// are out of scope, so the schema is bootstrapped idempotently at startup.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	hashed_password TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT,
	status TEXT NOT NULL CHECK (status IN ('pending', 'completed')),
	priority TEXT NOT NULL CHECK (priority IN ('low', 'medium', 'high')),
	created_at TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema creates the application tables if they do not already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}
	return nil
}
