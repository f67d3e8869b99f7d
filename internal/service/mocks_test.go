package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/smarttrav/internal/domain"
	"github.com/pkordes/smarttrav/internal/repo"
	"github.com/pkordes/smarttrav/internal/storage"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field; set only the ones your test needs.

type mockUserRepo struct {
	create        func(ctx context.Context, u domain.User) (domain.User, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByUsername func(ctx context.Context, username string) (domain.User, error)
	getByEmail    func(ctx context.Context, email string) (domain.User, error)
	updateProfile func(ctx context.Context, u domain.User) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return m.getByUsername(ctx, username)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) UpdateProfile(ctx context.Context, u domain.User) (domain.User, error) {
	return m.updateProfile(ctx, u)
}

type mockDestinationRepo struct {
	create       func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	listPaged    func(ctx context.Context, f domain.DestinationFilter, p domain.PaginationParams) ([]domain.Destination, int64, error)
	listAll      func(ctx context.Context) ([]domain.Destination, error)
	update       func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	upsertByName func(ctx context.Context, d domain.Destination) (domain.Destination, bool, error)
	setImagePath func(ctx context.Context, id uuid.UUID, path string) (domain.Destination, error)
}

func (m *mockDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, d)
}
func (m *mockDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	return m.getByID(ctx, id)
}
func (m *mockDestinationRepo) ListPaged(ctx context.Context, f domain.DestinationFilter, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	return m.listPaged(ctx, f, p)
}
func (m *mockDestinationRepo) ListAll(ctx context.Context) ([]domain.Destination, error) {
	return m.listAll(ctx)
}
func (m *mockDestinationRepo) Update(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.update(ctx, d)
}
func (m *mockDestinationRepo) UpsertByName(ctx context.Context, d domain.Destination) (domain.Destination, bool, error) {
	return m.upsertByName(ctx, d)
}
func (m *mockDestinationRepo) SetImagePath(ctx context.Context, id uuid.UUID, path string) (domain.Destination, error) {
	return m.setImagePath(ctx, id, path)
}

type mockItineraryRepo struct {
	create     func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	getByID    func(ctx context.Context, userID, id uuid.UUID) (domain.Itinerary, error)
	listPaged  func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
	listRecent func(ctx context.Context, userID uuid.UUID, n int) ([]domain.Itinerary, error)
	listByDest func(ctx context.Context, destinationID uuid.UUID) ([]domain.Itinerary, error)
	stats      func(ctx context.Context, userID uuid.UUID, today time.Time) (int, decimal.Decimal, int, error)
	update     func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return m.create(ctx, it)
}
func (m *mockItineraryRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Itinerary, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockItineraryRepo) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	return m.listPaged(ctx, userID, p)
}
func (m *mockItineraryRepo) ListRecent(ctx context.Context, userID uuid.UUID, n int) ([]domain.Itinerary, error) {
	return m.listRecent(ctx, userID, n)
}
func (m *mockItineraryRepo) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Itinerary, error) {
	return m.listByDest(ctx, destinationID)
}
func (m *mockItineraryRepo) Stats(ctx context.Context, userID uuid.UUID, today time.Time) (int, decimal.Decimal, int, error) {
	return m.stats(ctx, userID, today)
}
func (m *mockItineraryRepo) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return m.update(ctx, it)
}
func (m *mockItineraryRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockLinkRepo struct {
	create          func(ctx context.Context, l domain.Link) (domain.Link, error)
	getByID         func(ctx context.Context, itineraryID, linkID uuid.UUID) (domain.Link, error)
	listByItinerary func(ctx context.Context, itineraryID uuid.UUID) ([]domain.Link, error)
	listByDest      func(ctx context.Context, destinationID uuid.UUID) ([]domain.Link, error)
	save            func(ctx context.Context, l domain.Link) (domain.Link, error)
	delete          func(ctx context.Context, itineraryID, linkID uuid.UUID) error
}

func (m *mockLinkRepo) Create(ctx context.Context, l domain.Link) (domain.Link, error) {
	return m.create(ctx, l)
}
func (m *mockLinkRepo) GetByID(ctx context.Context, itineraryID, linkID uuid.UUID) (domain.Link, error) {
	return m.getByID(ctx, itineraryID, linkID)
}
func (m *mockLinkRepo) ListByItinerary(ctx context.Context, itineraryID uuid.UUID) ([]domain.Link, error) {
	return m.listByItinerary(ctx, itineraryID)
}
func (m *mockLinkRepo) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Link, error) {
	return m.listByDest(ctx, destinationID)
}
func (m *mockLinkRepo) Save(ctx context.Context, l domain.Link) (domain.Link, error) {
	return m.save(ctx, l)
}
func (m *mockLinkRepo) Delete(ctx context.Context, itineraryID, linkID uuid.UUID) error {
	return m.delete(ctx, itineraryID, linkID)
}

type mockExpenseRepo struct {
	create          func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	listByItinerary func(ctx context.Context, itineraryID uuid.UUID) ([]domain.Expense, error)
}

func (m *mockExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.create(ctx, e)
}
func (m *mockExpenseRepo) ListByItinerary(ctx context.Context, itineraryID uuid.UUID) ([]domain.Expense, error) {
	return m.listByItinerary(ctx, itineraryID)
}

type mockSavedRepo struct {
	save        func(ctx context.Context, userID, destinationID uuid.UUID) error
	remove      func(ctx context.Context, userID, destinationID uuid.UUID) error
	listByUser  func(ctx context.Context, userID uuid.UUID) ([]domain.SavedDestination, error)
	countByUser func(ctx context.Context, userID uuid.UUID) (int, error)
}

func (m *mockSavedRepo) Save(ctx context.Context, userID, destinationID uuid.UUID) error {
	return m.save(ctx, userID, destinationID)
}
func (m *mockSavedRepo) Remove(ctx context.Context, userID, destinationID uuid.UUID) error {
	return m.remove(ctx, userID, destinationID)
}
func (m *mockSavedRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedDestination, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockSavedRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return m.countByUser(ctx, userID)
}

// fakeStore runs fn directly against repos. Tests that care about atomicity
// inspect what fn returned; real rollback is covered by the repo tests.
type fakeStore struct {
	repos repo.Repos
	calls int
}

func (s *fakeStore) InTx(_ context.Context, fn func(repo.Repos) error) error {
	s.calls++
	return fn(s.repos)
}

type mockBucket struct {
	upload func(ctx context.Context, key, contentType string, body []byte) error
}

func (m *mockBucket) Upload(ctx context.Context, key, contentType string, body []byte) error {
	return m.upload(ctx, key, contentType, body)
}
func (m *mockBucket) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

// compile-time checks: every mock must satisfy its interface.
var (
	_ repo.UserRepo        = (*mockUserRepo)(nil)
	_ repo.DestinationRepo = (*mockDestinationRepo)(nil)
	_ repo.ItineraryRepo   = (*mockItineraryRepo)(nil)
	_ repo.LinkRepo        = (*mockLinkRepo)(nil)
	_ repo.ExpenseRepo     = (*mockExpenseRepo)(nil)
	_ repo.SavedRepo       = (*mockSavedRepo)(nil)
	_ repo.Store           = (*fakeStore)(nil)
	_ storage.Bucket       = (*mockBucket)(nil)
)

// ---- shared fixtures -------------------------------------------------------

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func itineraryFixture(userID uuid.UUID) domain.Itinerary {
	return domain.Itinerary{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     "Visayas Loop",
		StartDate: date(2025, 6, 1),
		EndDate:   date(2025, 6, 3),
		Budget:    dec("10000"),
	}
}

func destinationFixture(price string) domain.Destination {
	return domain.Destination{
		ID:          uuid.New(),
		Name:        "Boracay",
		Location:    "Aklan",
		Category:    domain.CategoryBeach,
		PricePerDay: dec(price),
	}
}

// ownedBy returns a getByID that only finds it for its owner.
func ownedBy(it domain.Itinerary) func(context.Context, uuid.UUID, uuid.UUID) (domain.Itinerary, error) {
	return func(_ context.Context, userID, id uuid.UUID) (domain.Itinerary, error) {
		if userID != it.UserID || id != it.ID {
			return domain.Itinerary{}, domain.ErrNotFound
		}
		return it, nil
	}
}
