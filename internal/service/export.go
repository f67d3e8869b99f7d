package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/smarttrav/internal/domain"
)

// detailLoader is the slice of ItineraryService an export needs.
type detailLoader interface {
	Detail(ctx context.Context, userID, id uuid.UUID) (domain.ItineraryDetail, error)
}

// ExportService flattens an itinerary into rows for CSV and PDF rendering.
type ExportService struct {
	itineraries detailLoader
}

// NewExportService constructs an ExportService on top of an itinerary detail source.
func NewExportService(itineraries detailLoader) *ExportService {
	return &ExportService{itineraries: itineraries}
}

// Export returns one row per linked destination, in visit order, followed by
// one row per expense, in date order, together with the financial summary.
func (s *ExportService) Export(ctx context.Context, userID, itineraryID uuid.UUID) (domain.ItineraryExport, error) {
	detail, err := s.itineraries.Detail(ctx, userID, itineraryID)
	if err != nil {
		return domain.ItineraryExport{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(detail.Links)+len(detail.Expenses))
	for _, l := range detail.Links {
		row := domain.ExportRow{
			Kind:  domain.ExportDestination,
			Date:  l.VisitDate,
			Notes: l.Notes,
		}
		if l.Destination != nil {
			row.Name = l.Destination.Name
			row.Category = l.Destination.Category.Label()
		}
		if l.VisitTime != nil {
			row.VisitTime = *l.VisitTime
		}
		if p := l.CalculatedPrice(); p.Valid {
			row.Amount = p.Decimal
		} else {
			row.Unpriced = true
		}
		rows = append(rows, row)
	}
	for _, e := range detail.Expenses {
		date := e.Date
		rows = append(rows, domain.ExportRow{
			Kind:     domain.ExportExpense,
			Name:     e.Description,
			Category: string(e.Category),
			Date:     &date,
			Amount:   e.Amount,
		})
	}

	return domain.ItineraryExport{
		Itinerary:    detail.Itinerary,
		DurationDays: detail.Itinerary.DurationDays(),
		Rows:         rows,
		Summary:      detail.Summary,
	}, nil
}
