// Package testutil holds the database plumbing shared by integration tests.
// Every helper that needs Postgres reads TEST_DATABASE_URL and skips the
// calling test when it is unset.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" driver for database/sql
	"github.com/stretchr/testify/require"
)

// DSNEnv names the environment variable holding the test database URL.
const DSNEnv = "TEST_DATABASE_URL"

// NewPool returns a pool on the test database, closed when t finishes.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn(t))
	require.NoError(t, err, "open pool")
	t.Cleanup(pool.Close)

	require.NoError(t, pool.Ping(ctx), "ping")
	return pool
}

// NewTx begins a transaction that is rolled back when t finishes. Repos built
// on it see their own writes and leave the database untouched.
func NewTx(t *testing.T) pgx.Tx {
	t.Helper()

	tx, err := NewPool(t).Begin(context.Background())
	require.NoError(t, err, "begin")
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })
	return tx
}

// NewSQLDB returns a database/sql handle for goose, closed when t finishes.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := openSQL(dsn(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// MustOpenSQLDB is NewSQLDB for TestMain, where there is no *testing.T to
// skip or fail. The caller closes the handle.
func MustOpenSQLDB(url string) *sql.DB {
	db, err := openSQL(url)
	if err != nil {
		panic(err)
	}
	return db
}

func openSQL(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("testutil: open: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("testutil: ping: %w", err)
	}
	return db, nil
}

func dsn(t *testing.T) string {
	t.Helper()
	url := os.Getenv(DSNEnv)
	if url == "" {
		t.Skip(DSNEnv + " not set; skipping integration test")
	}
	return url
}
