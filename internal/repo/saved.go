package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/smarttrav/internal/domain"
)

// SavedRepo defines the persistence operations for a user's saved destinations.
type SavedRepo interface {
	// Save bookmarks a destination. Saving twice is not an error.
	// Returns domain.ErrNotFound if the destination does not exist.
	Save(ctx context.Context, userID, destinationID uuid.UUID) error

	// Remove deletes a bookmark. Returns domain.ErrNotFound if it was not saved.
	Remove(ctx context.Context, userID, destinationID uuid.UUID) error

	// ListByUser returns the user's bookmarks, most recent first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedDestination, error)

	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type pgSavedRepo struct {
	db db
}

// NewSavedRepo constructs a SavedRepo backed by the provided db connection.
func NewSavedRepo(db db) SavedRepo {
	return &pgSavedRepo{db: db}
}

func (r *pgSavedRepo) Save(ctx context.Context, userID, destinationID uuid.UUID) error {
	const q = `
		INSERT INTO saved_destinations (user_id, destination_id)
		VALUES (@user_id, @destination_id)
		ON CONFLICT (user_id, destination_id) DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID, "destination_id": destinationID})
	if err != nil {
		return fmt.Errorf("repo.SavedRepo.Save: %w", mapError(err))
	}
	return nil
}

func (r *pgSavedRepo) Remove(ctx context.Context, userID, destinationID uuid.UUID) error {
	const q = `DELETE FROM saved_destinations WHERE user_id = @user_id AND destination_id = @destination_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID, "destination_id": destinationID})
	if err != nil {
		return fmt.Errorf("repo.SavedRepo.Remove: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SavedRepo.Remove: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgSavedRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedDestination, error) {
	const q = `
		SELECT s.id, s.user_id, s.saved_at, ` + destinationColumnsD + `
		FROM saved_destinations s
		JOIN destinations d ON d.id = s.destination_id
		WHERE s.user_id = @user_id
		ORDER BY s.saved_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.SavedRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	saved := []domain.SavedDestination{}
	for rows.Next() {
		var (
			sd        domain.SavedDestination
			id, owner pgtype.UUID
		)
		err := scanDestinationWithPrefix(rows, &sd.Destination, &id, &owner, &sd.SavedAt)
		if err != nil {
			return nil, fmt.Errorf("repo.SavedRepo.ListByUser: scan: %w", err)
		}
		sd.ID = uuid.UUID(id.Bytes)
		sd.UserID = uuid.UUID(owner.Bytes)
		saved = append(saved, sd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SavedRepo.ListByUser: rows: %w", err)
	}
	return saved, nil
}

func (r *pgSavedRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM saved_destinations WHERE user_id = @user_id`,
		pgx.NamedArgs{"user_id": userID}).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repo.SavedRepo.CountByUser: %w", err)
	}
	return n, nil
}
