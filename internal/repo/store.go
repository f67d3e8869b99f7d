// Package repo contains all database access logic for the SmartTrav API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here; only SQL and type mapping.
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/smarttrav/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup. Begin on a pgx.Tx opens a
// savepoint, so InTx nests cleanly inside a test transaction.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repos bundles every repository bound to the same connection or transaction.
type Repos struct {
	Users        UserRepo
	Destinations DestinationRepo
	Itineraries  ItineraryRepo
	Links        LinkRepo
	Expenses     ExpenseRepo
	Saved        SavedRepo
}

// NewRepos constructs all repositories on top of db.
func NewRepos(db db) Repos {
	return Repos{
		Users:        NewUserRepo(db),
		Destinations: NewDestinationRepo(db),
		Itineraries:  NewItineraryRepo(db),
		Links:        NewLinkRepo(db),
		Expenses:     NewExpenseRepo(db),
		Saved:        NewSavedRepo(db),
	}
}

// Store runs a unit of work in a single database transaction.
// The service layer uses it when several rows must change together.
type Store interface {
	// InTx calls fn with repositories bound to a fresh transaction.
	// The transaction commits if fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(Repos) error) error
}

type pgStore struct {
	db db
}

// NewStore constructs a Store backed by db.
func NewStore(db db) Store {
	return &pgStore{db: db}
}

func (s *pgStore) InTx(ctx context.Context, fn func(Repos) error) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return fn(NewRepos(tx))
	})
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Postgres SQLSTATE codes mapped onto domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapError converts driver errors into domain sentinels where one applies.
// A missing row becomes ErrNotFound, a unique violation ErrConflict and a
// dangling foreign key ErrNotFound (the referenced row does not exist).
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return domain.ErrConflict
		case pgForeignKeyViolation:
			return domain.ErrNotFound
		}
	}
	return err
}
