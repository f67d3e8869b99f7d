package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/smarttrav/internal/domain"
	"github.com/pkordes/smarttrav/internal/handler"
	"github.com/pkordes/smarttrav/internal/service"
)

// Each mock is a test double for one servicer interface.
// Set only the method fields your test needs.

type mockAuth struct {
	register      func(ctx context.Context, in service.RegisterInput) (domain.User, error)
	login         func(ctx context.Context, login, password string) (domain.Session, error)
	logout        func(ctx context.Context, p domain.Principal) error
	profile       func(ctx context.Context, userID uuid.UUID) (domain.User, error)
	updateProfile func(ctx context.Context, u domain.User) (domain.User, error)
}

func (m *mockAuth) Register(ctx context.Context, in service.RegisterInput) (domain.User, error) {
	return m.register(ctx, in)
}
func (m *mockAuth) Login(ctx context.Context, login, password string) (domain.Session, error) {
	return m.login(ctx, login, password)
}
func (m *mockAuth) Logout(ctx context.Context, p domain.Principal) error { return m.logout(ctx, p) }
func (m *mockAuth) Profile(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	return m.profile(ctx, userID)
}
func (m *mockAuth) UpdateProfile(ctx context.Context, u domain.User) (domain.User, error) {
	return m.updateProfile(ctx, u)
}

type mockDestinations struct {
	list        func(ctx context.Context, f domain.DestinationFilter, p domain.PaginationParams) (domain.Page[domain.Destination], error)
	get         func(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	create      func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	update      func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	uploadImage func(ctx context.Context, id uuid.UUID, image io.Reader) (domain.Destination, error)
}

func (m *mockDestinations) List(ctx context.Context, f domain.DestinationFilter, p domain.PaginationParams) (domain.Page[domain.Destination], error) {
	return m.list(ctx, f, p)
}
func (m *mockDestinations) Get(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	return m.get(ctx, id)
}
func (m *mockDestinations) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, d)
}
func (m *mockDestinations) Update(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.update(ctx, d)
}
func (m *mockDestinations) UploadImage(ctx context.Context, id uuid.UUID, image io.Reader) (domain.Destination, error) {
	return m.uploadImage(ctx, id, image)
}
func (m *mockDestinations) ImageURL(d domain.Destination) string {
	if d.ImagePath == "" {
		return ""
	}
	return "https://cdn.example.com/" + d.ImagePath
}

type mockItineraries struct {
	create            func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	list              func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Itinerary], error)
	detail            func(ctx context.Context, userID, id uuid.UUID) (domain.ItineraryDetail, error)
	update            func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	delete            func(ctx context.Context, userID, id uuid.UUID) error
	addDestination    func(ctx context.Context, userID uuid.UUID, l domain.Link) (domain.Link, error)
	updateLink        func(ctx context.Context, userID uuid.UUID, l domain.Link) (domain.Link, error)
	removeDestination func(ctx context.Context, userID, itineraryID, linkID uuid.UUID) error
	addExpense        func(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error)
	listExpenses      func(ctx context.Context, userID, itineraryID uuid.UUID) ([]domain.Expense, error)
}

func (m *mockItineraries) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return m.create(ctx, it)
}
func (m *mockItineraries) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Itinerary], error) {
	return m.list(ctx, userID, p)
}
func (m *mockItineraries) Detail(ctx context.Context, userID, id uuid.UUID) (domain.ItineraryDetail, error) {
	return m.detail(ctx, userID, id)
}
func (m *mockItineraries) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return m.update(ctx, it)
}
func (m *mockItineraries) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}
func (m *mockItineraries) AddDestination(ctx context.Context, userID uuid.UUID, l domain.Link) (domain.Link, error) {
	return m.addDestination(ctx, userID, l)
}
func (m *mockItineraries) UpdateLink(ctx context.Context, userID uuid.UUID, l domain.Link) (domain.Link, error) {
	return m.updateLink(ctx, userID, l)
}
func (m *mockItineraries) RemoveDestination(ctx context.Context, userID, itineraryID, linkID uuid.UUID) error {
	return m.removeDestination(ctx, userID, itineraryID, linkID)
}
func (m *mockItineraries) AddExpense(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error) {
	return m.addExpense(ctx, userID, e)
}
func (m *mockItineraries) ListExpenses(ctx context.Context, userID, itineraryID uuid.UUID) ([]domain.Expense, error) {
	return m.listExpenses(ctx, userID, itineraryID)
}

type mockSaved struct {
	list   func(ctx context.Context, userID uuid.UUID) ([]domain.SavedDestination, error)
	save   func(ctx context.Context, userID, destinationID uuid.UUID) error
	remove func(ctx context.Context, userID, destinationID uuid.UUID) error
}

func (m *mockSaved) List(ctx context.Context, userID uuid.UUID) ([]domain.SavedDestination, error) {
	return m.list(ctx, userID)
}
func (m *mockSaved) Save(ctx context.Context, userID, destinationID uuid.UUID) error {
	return m.save(ctx, userID, destinationID)
}
func (m *mockSaved) Remove(ctx context.Context, userID, destinationID uuid.UUID) error {
	return m.remove(ctx, userID, destinationID)
}

type mockDashboard struct {
	get func(ctx context.Context, userID uuid.UUID) (domain.Dashboard, error)
}

func (m *mockDashboard) Get(ctx context.Context, userID uuid.UUID) (domain.Dashboard, error) {
	return m.get(ctx, userID)
}

type mockExport struct {
	export func(ctx context.Context, userID, itineraryID uuid.UUID) (domain.ItineraryExport, error)
}

func (m *mockExport) Export(ctx context.Context, userID, itineraryID uuid.UUID) (domain.ItineraryExport, error) {
	return m.export(ctx, userID, itineraryID)
}

// compile-time checks: every mock must satisfy its servicer interface.
var (
	_ handler.AuthServicer        = (*mockAuth)(nil)
	_ handler.DestinationServicer = (*mockDestinations)(nil)
	_ handler.ItineraryServicer   = (*mockItineraries)(nil)
	_ handler.SavedServicer       = (*mockSaved)(nil)
	_ handler.DashboardServicer   = (*mockDashboard)(nil)
	_ handler.ExportServicer      = (*mockExport)(nil)
)

// ---- authentication --------------------------------------------------------

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

var (
	testUserID  = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testAdminID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

// stubAuthenticator accepts exactly two tokens: one per role.
type stubAuthenticator struct{}

func (stubAuthenticator) Authenticate(_ context.Context, token string) (domain.Principal, error) {
	switch token {
	case userToken:
		return domain.Principal{UserID: testUserID, TokenID: "jti-user"}, nil
	case adminToken:
		return domain.Principal{UserID: testAdminID, IsAdmin: true, TokenID: "jti-admin"}, nil
	}
	return domain.Principal{}, domain.ErrUnauthorized
}

// ---- helpers ---------------------------------------------------------------

// newRouter wires a Server with the given mocks into a chi router.
// This mirrors how main.go wires it in production.
func newRouter(svc handler.Services) http.Handler {
	r := chi.NewRouter()
	handler.NewServer(svc, nil).Routes(r, handler.RouteOptions{Authenticator: stubAuthenticator{}})
	return r
}

// do sends a request with an optional JSON body and bearer token.
func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Error.Code
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func itineraryFixture() domain.Itinerary {
	return domain.Itinerary{
		ID:        uuid.New(),
		UserID:    testUserID,
		Title:     "Palawan",
		StartDate: date(2025, 6, 1),
		EndDate:   date(2025, 6, 3),
		Budget:    dec("10000"),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func destinationFixture() domain.Destination {
	return domain.Destination{
		ID:          uuid.New(),
		Name:        "Nacpan Beach",
		Location:    "El Nido",
		Category:    domain.CategoryBeach,
		PricePerDay: dec("1000"),
		Tags:        "sunset,swimming",
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}
