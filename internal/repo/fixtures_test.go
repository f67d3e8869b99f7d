package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/smarttrav/internal/domain"
	"github.com/pkordes/smarttrav/internal/repo"
	"github.com/pkordes/smarttrav/testutil"
)

// newTestRepos opens a transaction against the test database and returns every
// repository bound to it, plus a Store on the same transaction. The transaction
// is rolled back when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; TestMain applies the migrations.
func newTestRepos(t *testing.T) (repo.Repos, repo.Store) {
	t.Helper()
	tx := testutil.NewTx(t)
	return repo.NewRepos(tx), repo.NewStore(tx)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// mustCreateUser inserts a user with a unique username and email.
func mustCreateUser(t *testing.T, r repo.Repos) domain.User {
	t.Helper()
	suffix := uuid.NewString()[:8]
	u, err := r.Users.Create(context.Background(), domain.User{
		Username:     "traveller-" + suffix,
		Email:        "traveller-" + suffix + "@example.com",
		PasswordHash: []byte("$2a$10$notarealhash"),
	})
	require.NoError(t, err, "create user")
	return u
}

// mustCreateDestination inserts a catalog entry priced at pricePerDay.
func mustCreateDestination(t *testing.T, r repo.Repos, pricePerDay string) domain.Destination {
	t.Helper()
	d, err := r.Destinations.Create(context.Background(), domain.Destination{
		Name:        "Boracay " + uuid.NewString()[:8],
		Description: "White sand beach",
		Location:    "Aklan",
		Category:    domain.CategoryBeach,
		PricePerDay: dec(pricePerDay),
		Tags:        "beach,sunset",
	})
	require.NoError(t, err, "create destination")
	return d
}

// mustCreateItinerary inserts a three-day itinerary (June 1 to 3) owned by u.
func mustCreateItinerary(t *testing.T, r repo.Repos, u domain.User) domain.Itinerary {
	t.Helper()
	it, err := r.Itineraries.Create(context.Background(), domain.Itinerary{
		UserID:    u.ID,
		Title:     "Visayas Loop",
		StartDate: date(2025, 6, 1),
		EndDate:   date(2025, 6, 3),
		Budget:    dec("10000"),
		Notes:     "test notes",
	})
	require.NoError(t, err, "create itinerary")
	return it
}
