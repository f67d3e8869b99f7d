package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/smarttrav/internal/domain"
	"github.com/pkordes/smarttrav/internal/repo"
	"github.com/pkordes/smarttrav/internal/storage"
)

// DestinationService manages the shared catalog.
type DestinationService struct {
	store        repo.Store
	destinations repo.DestinationRepo
	bucket       storage.Bucket
	log          *slog.Logger
}

// NewDestinationService constructs a DestinationService. bucket may be nil,
// in which case image uploads fail with domain.ErrUnavailable.
func NewDestinationService(store repo.Store, destinations repo.DestinationRepo, bucket storage.Bucket, log *slog.Logger) *DestinationService {
	return &DestinationService{store: store, destinations: destinations, bucket: bucket, log: orDiscard(log)}
}

// List returns one page of the catalog narrowed by f.
func (s *DestinationService) List(ctx context.Context, f domain.DestinationFilter, p domain.PaginationParams) (domain.Page[domain.Destination], error) {
	if f.Category != "" && !f.Category.Valid() {
		return domain.Page[domain.Destination]{}, validationError("unknown category %q", f.Category)
	}
	f.Query = strings.TrimSpace(f.Query)
	items, total, err := s.destinations.ListPaged(ctx, f, p)
	if err != nil {
		return domain.Page[domain.Destination]{}, fmt.Errorf("service.DestinationService.List: %w", err)
	}
	return domain.NewPage(items, total, p), nil
}

func (s *DestinationService) Get(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	d, err := s.destinations.GetByID(ctx, id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Get: %w", err)
	}
	return d, nil
}

// Create validates and persists a catalog entry.
func (s *DestinationService) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	d = normalizeDestination(d)
	if err := validateDestination(d); err != nil {
		return domain.Destination{}, err
	}
	created, err := s.destinations.Create(ctx, d)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	return created, nil
}

// Update validates and overwrites a catalog entry, then re-prices every
// itinerary link to it at the new per-day price. The catalog row and the
// links are written in one transaction.
func (s *DestinationService) Update(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	d = normalizeDestination(d)
	if err := validateDestination(d); err != nil {
		return domain.Destination{}, err
	}

	var updated domain.Destination
	err := s.store.InTx(ctx, func(tx repo.Repos) error {
		var err error
		updated, err = tx.Destinations.Update(ctx, d)
		if err != nil {
			return err
		}
		n, err := repriceLinks(ctx, tx, updated)
		if err != nil {
			return err
		}
		s.log.DebugContext(ctx, "destination links repriced", "destination_id", updated.ID, "links", n)
		return nil
	})
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}
	return updated, nil
}

// repriceLinks recomputes the cached price of every link to d against its
// itinerary's current duration and returns how many links were saved.
func repriceLinks(ctx context.Context, tx repo.Repos, d domain.Destination) (int, error) {
	its, err := tx.Itineraries.ListByDestination(ctx, d.ID)
	if err != nil {
		return 0, err
	}
	byID := make(map[uuid.UUID]*domain.Itinerary, len(its))
	for i := range its {
		byID[its[i].ID] = &its[i]
	}

	links, err := tx.Links.ListByDestination(ctx, d.ID)
	if err != nil {
		return 0, err
	}
	for _, l := range links {
		l.Recompute(byID[l.ItineraryID], &d)
		if _, err := tx.Links.Save(ctx, l); err != nil {
			return 0, fmt.Errorf("link %s: %w", l.ID, err)
		}
	}
	return len(links), nil
}

// UploadImage resizes the uploaded image, stores it in the bucket and records
// its key on the destination.
func (s *DestinationService) UploadImage(ctx context.Context, id uuid.UUID, image io.Reader) (domain.Destination, error) {
	if s.bucket == nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.UploadImage: image storage not configured: %w", domain.ErrUnavailable)
	}
	if _, err := s.destinations.GetByID(ctx, id); err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.UploadImage: %w", err)
	}

	body, err := storage.PrepareImage(image)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.UploadImage: %w", err)
	}
	key := storage.ImageKey(id)
	if err := s.bucket.Upload(ctx, key, "image/jpeg", body); err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.UploadImage: %w", err)
	}

	d, err := s.destinations.SetImagePath(ctx, id, key)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.UploadImage: %w", err)
	}
	s.log.InfoContext(ctx, "destination image stored", "destination_id", id, "key", key, "bytes", len(body))
	return d, nil
}

// ImageURL returns the public URL of d's image, or "" when it has none or
// storage is not configured.
func (s *DestinationService) ImageURL(d domain.Destination) string {
	if s.bucket == nil || d.ImagePath == "" {
		return ""
	}
	return s.bucket.PublicURL(d.ImagePath)
}

// ImportResult counts the rows an import inserted and overwrote.
type ImportResult struct {
	Created int
	Updated int
}

// importHeader is the required first line of a catalog CSV.
var importHeader = []string{"name", "description", "location", "category", "price_per_day", "tags"}

// ImportCSV upserts catalog rows by name from a CSV with importHeader as its
// first line. The whole file is applied in one transaction: a bad row aborts
// the import and reports its line number. Links to overwritten rows are
// re-priced like Update does.
func (s *DestinationService) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(importHeader)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("service.DestinationService.ImportCSV: read header: %v: %w", err, domain.ErrValidation)
	}
	for i, want := range importHeader {
		if strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))) != want {
			return ImportResult{}, validationError("column %d must be %q, got %q", i+1, want, header[i])
		}
	}

	var rows []domain.Destination
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ImportResult{}, fmt.Errorf("service.DestinationService.ImportCSV: %v: %w", err, domain.ErrValidation)
		}
		line, _ := cr.FieldPos(0)
		d, err := destinationFromRecord(rec)
		if err != nil {
			return ImportResult{}, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, d)
	}

	var res ImportResult
	err = s.store.InTx(ctx, func(tx repo.Repos) error {
		res = ImportResult{}
		for _, d := range rows {
			saved, created, err := tx.Destinations.UpsertByName(ctx, d)
			if err != nil {
				return fmt.Errorf("%s: %w", d.Name, err)
			}
			if created {
				res.Created++
				continue
			}
			res.Updated++
			if _, err := repriceLinks(ctx, tx, saved); err != nil {
				return fmt.Errorf("%s: %w", d.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, fmt.Errorf("service.DestinationService.ImportCSV: %w", err)
	}
	s.log.InfoContext(ctx, "catalog imported", "created", res.Created, "updated", res.Updated)
	return res, nil
}

func destinationFromRecord(rec []string) (domain.Destination, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(rec[4]))
	if err != nil {
		return domain.Destination{}, validationError("price_per_day %q is not a number", rec[4])
	}
	d := normalizeDestination(domain.Destination{
		Name:        rec[0],
		Description: rec[1],
		Location:    rec[2],
		Category:    domain.Category(strings.ToLower(strings.TrimSpace(rec[3]))),
		PricePerDay: price,
		Tags:        rec[5],
	})
	return d, validateDestination(d)
}

func normalizeDestination(d domain.Destination) domain.Destination {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Location = strings.TrimSpace(d.Location)
	d.Tags = strings.Join(d.TagList(), ",")
	return d
}

// validateDestination enforces the catalog rules shared by Create, Update and ImportCSV.
func validateDestination(d domain.Destination) error {
	if err := required("name", d.Name); err != nil {
		return err
	}
	if err := required("location", d.Location); err != nil {
		return err
	}
	if !d.Category.Valid() {
		return validationError("unknown category %q", d.Category)
	}
	if d.PricePerDay.IsNegative() {
		return validationError("price_per_day must not be negative")
	}
	return nil
}
