package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies a catalog destination.
type Category string

const (
	CategoryResort         Category = "resort"
	CategoryRestaurant     Category = "restaurant"
	CategoryAttraction     Category = "attraction"
	CategoryBeach          Category = "beach"
	CategoryHistoricalSite Category = "historical_site"
)

// Categories lists every destination category in display order.
var Categories = []Category{
	CategoryResort,
	CategoryRestaurant,
	CategoryAttraction,
	CategoryBeach,
	CategoryHistoricalSite,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryResort, CategoryRestaurant, CategoryAttraction, CategoryBeach, CategoryHistoricalSite:
		return true
	}
	return false
}

// Label returns the human-readable name used in exports.
func (c Category) Label() string {
	switch c {
	case CategoryResort:
		return "Resort"
	case CategoryRestaurant:
		return "Restaurant"
	case CategoryAttraction:
		return "Attraction"
	case CategoryBeach:
		return "Beach"
	case CategoryHistoricalSite:
		return "Historical Site"
	}
	return string(c)
}

// Destination is a catalog entry shared by every itinerary that links it.
// Tags is free text, comma-separated. ImagePath is the object key inside the
// image bucket, empty when no image has been uploaded.
type Destination struct {
	ID          uuid.UUID
	Name        string
	Description string
	Location    string
	Category    Category
	PricePerDay decimal.Decimal
	Tags        string
	ImagePath   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TagList splits Tags on commas, trimming blanks.
func (d Destination) TagList() []string {
	out := []string{}
	for _, part := range strings.Split(d.Tags, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// DestinationFilter narrows a catalog listing. Zero values match everything.
type DestinationFilter struct {
	Category Category
	Query    string
}

// SavedDestination is a user's bookmark of a catalog entry.
type SavedDestination struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Destination Destination
	SavedAt     time.Time
}
