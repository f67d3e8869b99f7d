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

// LinkRepo defines the persistence operations for itinerary_destinations.
// All single-row operations are scoped by itineraryID to enforce ownership;
// callers verify the itinerary belongs to the user first.
type LinkRepo interface {
	// Create inserts a link with its already computed price.
	// Returns domain.ErrConflict if the destination is already on the itinerary.
	Create(ctx context.Context, l domain.Link) (domain.Link, error)

	// GetByID retrieves a link, with its destination, scoped to itineraryID.
	GetByID(ctx context.Context, itineraryID, linkID uuid.UUID) (domain.Link, error)

	// ListByItinerary returns every link of an itinerary with its destination,
	// ordered by visit date (unscheduled last) then insertion time.
	ListByItinerary(ctx context.Context, itineraryID uuid.UUID) ([]domain.Link, error)

	// ListByDestination returns every link to a catalog destination across
	// all itineraries. Used to re-price links when the catalog price changes.
	ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Link, error)

	// Save writes the mutable fields and the cached price of an existing link.
	Save(ctx context.Context, l domain.Link) (domain.Link, error)

	// Delete removes a link scoped to itineraryID.
	Delete(ctx context.Context, itineraryID, linkID uuid.UUID) error
}

type pgLinkRepo struct {
	db db
}

// NewLinkRepo constructs a LinkRepo backed by the provided db connection.
func NewLinkRepo(db db) LinkRepo {
	return &pgLinkRepo{db: db}
}

const linkSelect = `
	SELECT l.id, l.itinerary_id, l.destination_id, l.visit_date, l.visit_time,
	       l.notes, l.calculated_price, l.added_at,
	       ` + destinationColumnsD + `
	FROM itinerary_destinations l
	JOIN destinations d ON d.id = l.destination_id`

func (r *pgLinkRepo) Create(ctx context.Context, l domain.Link) (domain.Link, error) {
	const q = `
		INSERT INTO itinerary_destinations
		       (itinerary_id, destination_id, visit_date, visit_time, notes, calculated_price)
		VALUES (@itinerary_id, @destination_id, @visit_date, @visit_time, @notes, @calculated_price)
		RETURNING id`

	args, err := linkArgs(l)
	if err != nil {
		return domain.Link{}, fmt.Errorf("repo.LinkRepo.Create: %w", err)
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return domain.Link{}, fmt.Errorf("repo.LinkRepo.Create: %w", mapError(err))
	}
	return r.GetByID(ctx, l.ItineraryID, uuid.UUID(id.Bytes))
}

func (r *pgLinkRepo) GetByID(ctx context.Context, itineraryID, linkID uuid.UUID) (domain.Link, error) {
	const q = linkSelect + `
		WHERE l.id = @id AND l.itinerary_id = @itinerary_id`

	result, err := scanLink(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": linkID, "itinerary_id": itineraryID}))
	if err != nil {
		return domain.Link{}, fmt.Errorf("repo.LinkRepo.GetByID: %w", mapError(err))
	}
	return result, nil
}

func (r *pgLinkRepo) ListByItinerary(ctx context.Context, itineraryID uuid.UUID) ([]domain.Link, error) {
	const q = linkSelect + `
		WHERE l.itinerary_id = @itinerary_id
		ORDER BY l.visit_date NULLS LAST, l.visit_time NULLS LAST, l.added_at`

	links, err := r.list(ctx, q, pgx.NamedArgs{"itinerary_id": itineraryID})
	if err != nil {
		return nil, fmt.Errorf("repo.LinkRepo.ListByItinerary: %w", err)
	}
	return links, nil
}

func (r *pgLinkRepo) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Link, error) {
	const q = linkSelect + `
		WHERE l.destination_id = @destination_id
		ORDER BY l.itinerary_id, l.added_at`

	links, err := r.list(ctx, q, pgx.NamedArgs{"destination_id": destinationID})
	if err != nil {
		return nil, fmt.Errorf("repo.LinkRepo.ListByDestination: %w", err)
	}
	return links, nil
}

func (r *pgLinkRepo) Save(ctx context.Context, l domain.Link) (domain.Link, error) {
	const q = `
		UPDATE itinerary_destinations
		SET visit_date       = @visit_date,
		    visit_time       = @visit_time,
		    notes            = @notes,
		    calculated_price = @calculated_price
		WHERE id = @id AND itinerary_id = @itinerary_id`

	args, err := linkArgs(l)
	if err != nil {
		return domain.Link{}, fmt.Errorf("repo.LinkRepo.Save: %w", err)
	}
	args["id"] = l.ID

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return domain.Link{}, fmt.Errorf("repo.LinkRepo.Save: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Link{}, fmt.Errorf("repo.LinkRepo.Save: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, l.ItineraryID, l.ID)
}

func (r *pgLinkRepo) Delete(ctx context.Context, itineraryID, linkID uuid.UUID) error {
	const q = `DELETE FROM itinerary_destinations WHERE id = @id AND itinerary_id = @itinerary_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": linkID, "itinerary_id": itineraryID})
	if err != nil {
		return fmt.Errorf("repo.LinkRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LinkRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgLinkRepo) list(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Link, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []domain.Link{}
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return links, nil
}

// linkArgs builds the named arguments shared by Create and Save.
func linkArgs(l domain.Link) (pgx.NamedArgs, error) {
	visitTime, err := toPgTime(l.VisitTime)
	if err != nil {
		return nil, err
	}
	return pgx.NamedArgs{
		"itinerary_id":     l.ItineraryID,
		"destination_id":   l.DestinationID,
		"visit_date":       l.VisitDate, // nil becomes NULL
		"visit_time":       visitTime,
		"notes":            l.Notes,
		"calculated_price": l.CalculatedPrice(),
	}, nil
}

// scanLink maps a joined link + destination row into a domain.Link.
func scanLink(s scanner) (domain.Link, error) {
	var (
		l                domain.Link
		d                domain.Destination
		id, itID, destID pgtype.UUID
		visitDate        pgtype.Date
		visitTime        pgtype.Time
		price            decimal.NullDecimal
	)

	err := scanDestinationWithPrefix(s, &d,
		&id, &itID, &destID, &visitDate, &visitTime, &l.Notes, &price, &l.AddedAt)
	if err != nil {
		return domain.Link{}, err
	}

	l.ID = uuid.UUID(id.Bytes)
	l.ItineraryID = uuid.UUID(itID.Bytes)
	l.DestinationID = uuid.UUID(destID.Bytes)
	if visitDate.Valid {
		vd := visitDate.Time
		l.VisitDate = &vd
	}
	l.VisitTime = fromPgTime(visitTime)
	l.HydrateCalculatedPrice(price)
	l.Destination = &d
	return l, nil
}

// toPgTime parses an optional "15:04" clock value into a pgtype.Time.
func toPgTime(s *string) (pgtype.Time, error) {
	if s == nil {
		return pgtype.Time{}, nil
	}
	t, err := time.Parse("15:04", *s)
	if err != nil {
		return pgtype.Time{}, fmt.Errorf("visit_time %q: %w", *s, err)
	}
	us := int64(t.Hour())*int64(time.Hour/time.Microsecond) + int64(t.Minute())*int64(time.Minute/time.Microsecond)
	return pgtype.Time{Microseconds: us, Valid: true}, nil
}

// fromPgTime formats a nullable TIME column back to "15:04".
func fromPgTime(t pgtype.Time) *string {
	if !t.Valid {
		return nil
	}
	d := time.Duration(t.Microseconds) * time.Microsecond
	s := fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
	return &s
}
