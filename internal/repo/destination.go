package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/smarttrav/internal/domain"
)

// DestinationRepo defines the persistence operations for the destination catalog.
type DestinationRepo interface {
	// Create inserts a catalog entry. Returns domain.ErrConflict on a duplicate name.
	Create(ctx context.Context, d domain.Destination) (domain.Destination, error)

	// GetByID retrieves a catalog entry by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error)

	// ListPaged returns one page of destinations matching f, ordered by name,
	// and the total number of matches.
	ListPaged(ctx context.Context, f domain.DestinationFilter, p domain.PaginationParams) ([]domain.Destination, int64, error)

	// ListAll returns the whole catalog ordered by name.
	ListAll(ctx context.Context) ([]domain.Destination, error)

	// Update overwrites the mutable catalog fields. The image path is left alone.
	Update(ctx context.Context, d domain.Destination) (domain.Destination, error)

	// UpsertByName inserts a destination, or overwrites the one with the same
	// name. created reports which of the two happened.
	UpsertByName(ctx context.Context, d domain.Destination) (result domain.Destination, created bool, err error)

	// SetImagePath records the object key of the destination's image.
	SetImagePath(ctx context.Context, id uuid.UUID, path string) (domain.Destination, error)
}

type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db connection.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

const destinationColumns = `id, name, description, location, category, price_per_day, tags, image_path, created_at, updated_at`

// destinationColumnsD is destinationColumns qualified with the "d" alias for joins.
const destinationColumnsD = `d.id, d.name, d.description, d.location, d.category, d.price_per_day, d.tags, d.image_path, d.created_at, d.updated_at`

func (r *pgDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	const q = `
		INSERT INTO destinations (name, description, location, category, price_per_day, tags)
		VALUES (@name, @description, @location, @category, @price_per_day, @tags)
		RETURNING ` + destinationColumns

	result, err := scanDestination(r.db.QueryRow(ctx, q, destinationArgs(d)))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", mapError(err))
	}
	return result, nil
}

func (r *pgDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	const q = `SELECT ` + destinationColumns + ` FROM destinations WHERE id = @id`

	result, err := scanDestination(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", mapError(err))
	}
	return result, nil
}

// filterClause matches on category when one is given, and on a case-insensitive
// substring of name, location or tags when a query is given.
const filterClause = `
	WHERE (@category::text = '' OR category = @category)
	  AND (@query::text = ''
	       OR name     ILIKE '%' || @query || '%'
	       OR location ILIKE '%' || @query || '%'
	       OR tags     ILIKE '%' || @query || '%')`

func (r *pgDestinationRepo) ListPaged(ctx context.Context, f domain.DestinationFilter, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	args := pgx.NamedArgs{
		"category": string(f.Category),
		"query":    f.Query,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM destinations`+filterClause, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.DestinationRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + destinationColumns + ` FROM destinations` + filterClause + `
		ORDER BY name
		LIMIT @limit OFFSET @offset`

	items, err := r.list(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.DestinationRepo.ListPaged: %w", err)
	}
	return items, total, nil
}

func (r *pgDestinationRepo) ListAll(ctx context.Context) ([]domain.Destination, error) {
	items, err := r.list(ctx, `SELECT `+destinationColumns+` FROM destinations ORDER BY name`, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListAll: %w", err)
	}
	return items, nil
}

func (r *pgDestinationRepo) Update(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	const q = `
		UPDATE destinations
		SET name          = @name,
		    description   = @description,
		    location      = @location,
		    category      = @category,
		    price_per_day = @price_per_day,
		    tags          = @tags,
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + destinationColumns

	args := destinationArgs(d)
	args["id"] = d.ID

	result, err := scanDestination(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", mapError(err))
	}
	return result, nil
}

// UpsertByName relies on xmax being zero only for freshly inserted row
// versions to tell an insert from a conflict update.
func (r *pgDestinationRepo) UpsertByName(ctx context.Context, d domain.Destination) (domain.Destination, bool, error) {
	const q = `
		INSERT INTO destinations (name, description, location, category, price_per_day, tags)
		VALUES (@name, @description, @location, @category, @price_per_day, @tags)
		ON CONFLICT (name) DO UPDATE
		SET description   = EXCLUDED.description,
		    location      = EXCLUDED.location,
		    category      = EXCLUDED.category,
		    price_per_day = EXCLUDED.price_per_day,
		    tags          = EXCLUDED.tags,
		    updated_at    = now()
		RETURNING ` + destinationColumns + `, (xmax = 0)`

	var (
		result  domain.Destination
		created bool
	)
	err := scanDestinationWith(r.db.QueryRow(ctx, q, destinationArgs(d)), &result, &created)
	if err != nil {
		return domain.Destination{}, false, fmt.Errorf("repo.DestinationRepo.UpsertByName: %w", mapError(err))
	}
	return result, created, nil
}

func (r *pgDestinationRepo) SetImagePath(ctx context.Context, id uuid.UUID, path string) (domain.Destination, error) {
	const q = `
		UPDATE destinations
		SET image_path = @image_path, updated_at = now()
		WHERE id = @id
		RETURNING ` + destinationColumns

	result, err := scanDestination(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "image_path": path}))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.SetImagePath: %w", mapError(err))
	}
	return result, nil
}

func (r *pgDestinationRepo) list(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Destination, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

func destinationArgs(d domain.Destination) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":          d.Name,
		"description":   d.Description,
		"location":      d.Location,
		"category":      string(d.Category),
		"price_per_day": d.PricePerDay,
		"tags":          d.Tags,
	}
}

// scanDestination maps a single database row into a domain.Destination.
func scanDestination(s scanner) (domain.Destination, error) {
	var d domain.Destination
	if err := scanDestinationWith(s, &d); err != nil {
		return domain.Destination{}, err
	}
	return d, nil
}

// scanDestinationWith scans the destination columns into d followed by any
// extra trailing columns.
func scanDestinationWith(s scanner, d *domain.Destination, extra ...any) error {
	return scanDestinationAround(s, d, nil, extra)
}

// scanDestinationWithPrefix scans leading columns from a join followed by the
// destination columns.
func scanDestinationWithPrefix(s scanner, d *domain.Destination, prefix ...any) error {
	return scanDestinationAround(s, d, prefix, nil)
}

func scanDestinationAround(s scanner, d *domain.Destination, prefix, suffix []any) error {
	var (
		id        pgtype.UUID
		category  string
		imagePath pgtype.Text
	)
	dest := make([]any, 0, len(prefix)+10+len(suffix))
	dest = append(dest, prefix...)
	dest = append(dest,
		&id, &d.Name, &d.Description, &d.Location, &category, &d.PricePerDay,
		&d.Tags, &imagePath, &d.CreatedAt, &d.UpdatedAt,
	)
	dest = append(dest, suffix...)

	if err := s.Scan(dest...); err != nil {
		return err
	}
	d.ID = uuid.UUID(id.Bytes)
	d.Category = domain.Category(category)
	d.ImagePath = imagePath.String
	return nil
}
