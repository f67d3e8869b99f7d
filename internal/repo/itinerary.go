package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pkordes/smarttrav/internal/domain"
)

// ItineraryRepo defines the persistence operations for Itineraries.
// Every read and write is scoped by the owning user's ID; an itinerary that
// belongs to somebody else is reported as domain.ErrNotFound.
type ItineraryRepo interface {
	// Create inserts a new itinerary and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// GetByID retrieves a single itinerary owned by userID.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Itinerary, error)

	// ListPaged returns one page of the user's itineraries, newest first, and the total count.
	ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error)

	// ListRecent returns the user's n most recently created itineraries.
	ListRecent(ctx context.Context, userID uuid.UUID, n int) ([]domain.Itinerary, error)

	// ListByDestination returns every itinerary, of any owner, that links
	// destinationID.
	ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Itinerary, error)

	// Stats returns the itinerary count, the budget total and the number of
	// itineraries starting on or after today.
	Stats(ctx context.Context, userID uuid.UUID, today time.Time) (count int, totalBudget decimal.Decimal, upcoming int, err error)

	// Update overwrites the mutable fields of an existing itinerary and returns
	// the updated record.
	Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// Delete removes an itinerary; its links and expenses go with it (ON DELETE CASCADE).
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgItineraryRepo is the Postgres implementation of ItineraryRepo.
type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

const itineraryColumns = `id, user_id, title, start_date, end_date, budget, notes, created_at, updated_at`

func (r *pgItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		INSERT INTO itineraries (user_id, title, start_date, end_date, budget, notes)
		VALUES (@user_id, @title, @start_date, @end_date, @budget, @notes)
		RETURNING ` + itineraryColumns

	args := pgx.NamedArgs{
		"user_id":    it.UserID,
		"title":      it.Title,
		"start_date": it.StartDate,
		"end_date":   it.EndDate,
		"budget":     it.Budget,
		"notes":      it.Notes,
	}

	result, err := scanItinerary(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", mapError(err))
	}
	return result, nil
}

func (r *pgItineraryRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Itinerary, error) {
	const q = `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		WHERE id = @id AND user_id = @user_id`

	result, err := scanItinerary(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", mapError(err))
	}
	return result, nil
}

func (r *pgItineraryRepo) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	var total int64
	const countQ = `SELECT count(*) FROM itineraries WHERE user_id = @user_id`
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"user_id": userID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		WHERE user_id = @user_id
		ORDER BY start_date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	items, err := r.list(ctx, q, pgx.NamedArgs{"user_id": userID, "limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: %w", err)
	}
	return items, total, nil
}

func (r *pgItineraryRepo) ListRecent(ctx context.Context, userID uuid.UUID, n int) ([]domain.Itinerary, error) {
	const q = `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		WHERE user_id = @user_id
		ORDER BY created_at DESC
		LIMIT @n`

	items, err := r.list(ctx, q, pgx.NamedArgs{"user_id": userID, "n": n})
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListRecent: %w", err)
	}
	return items, nil
}

func (r *pgItineraryRepo) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Itinerary, error) {
	const q = `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		WHERE id IN (SELECT itinerary_id FROM itinerary_destinations WHERE destination_id = @destination_id)
		ORDER BY id`

	items, err := r.list(ctx, q, pgx.NamedArgs{"destination_id": destinationID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByDestination: %w", err)
	}
	return items, nil
}

func (r *pgItineraryRepo) Stats(ctx context.Context, userID uuid.UUID, today time.Time) (int, decimal.Decimal, int, error) {
	const q = `
		SELECT count(*),
		       coalesce(sum(budget), 0),
		       count(*) FILTER (WHERE start_date >= @today::date)
		FROM itineraries
		WHERE user_id = @user_id`

	var (
		count, upcoming int
		total           decimal.Decimal
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID, "today": today}).Scan(&count, &total, &upcoming)
	if err != nil {
		return 0, decimal.Zero, 0, fmt.Errorf("repo.ItineraryRepo.Stats: %w", err)
	}
	return count, total, upcoming, nil
}

func (r *pgItineraryRepo) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		UPDATE itineraries
		SET title      = @title,
		    start_date = @start_date,
		    end_date   = @end_date,
		    budget     = @budget,
		    notes      = @notes,
		    updated_at = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + itineraryColumns

	args := pgx.NamedArgs{
		"id":         it.ID,
		"user_id":    it.UserID,
		"title":      it.Title,
		"start_date": it.StartDate,
		"end_date":   it.EndDate,
		"budget":     it.Budget,
		"notes":      it.Notes,
	}

	result, err := scanItinerary(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", mapError(err))
	}
	return result, nil
}

func (r *pgItineraryRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM itineraries WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgItineraryRepo) list(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Itinerary, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.Itinerary{}
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

// scanItinerary maps a single database row into a domain.Itinerary.
func scanItinerary(s scanner) (domain.Itinerary, error) {
	var (
		it        domain.Itinerary
		id, owner pgtype.UUID
		start     pgtype.Date
		end       pgtype.Date
	)

	err := s.Scan(&id, &owner, &it.Title, &start, &end, &it.Budget, &it.Notes, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return domain.Itinerary{}, err
	}

	it.ID = uuid.UUID(id.Bytes)
	it.UserID = uuid.UUID(owner.Bytes)
	it.StartDate = start.Time
	it.EndDate = end.Time
	return it, nil
}
