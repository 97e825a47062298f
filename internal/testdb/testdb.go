// Package testdb provides utilities for database integration testing.
// It maintains a clean dependency structure by only depending on the
// schema helpers and standard database packages, not on specific store
// implementations.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// GetTestDatabaseURL returns the database URL for tests.
// It checks DATABASE_URL and TASKAPI_TEST_DB_URL environment variables
// in that order, returning the first non-empty value.
func GetTestDatabaseURL() string {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("TASKAPI_TEST_DB_URL")
	}
	return dbURL
}

// ShouldSkipDatabaseTest returns true if no database URL environment
// variable is set, indicating that integration tests should be skipped.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// NewTestDB opens a connection to the test database, verifies it, and
// ensures the schema exists. The connection is closed automatically when
// the test finishes. Callers should check ShouldSkipDatabaseTest first.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	require.NotEmpty(t, dbURL, "no test database URL configured")

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	require.NoError(t, db.PingContext(ctx), "Failed to ping test database")
	require.NoError(t, postgres.EnsureSchema(ctx, db), "Failed to ensure test schema")

	return db
}

// WithTx executes a test function within a transaction, automatically
// rolling back after the test completes. This ensures test isolation and
// prevents side effects between tests sharing a database.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if tx is already committed or rolled back
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Errorf("Failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
