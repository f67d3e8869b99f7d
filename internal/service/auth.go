package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/smarttrav/internal/auth"
	"github.com/pkordes/smarttrav/internal/domain"
	"github.com/pkordes/smarttrav/internal/repo"
)

// RegisterInput is the payload of a sign-up.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService handles accounts and bearer-token sessions.
type AuthService struct {
	users    repo.UserRepo
	tokens   *auth.TokenIssuer
	denylist auth.Denylist
	log      *slog.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repo.UserRepo, tokens *auth.TokenIssuer, denylist auth.Denylist, log *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, denylist: denylist, log: orDiscard(log)}
}

// Register validates the input, hashes the password and creates the account.
// Returns domain.ErrConflict if the username or email is taken.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	u := domain.User{
		Username:  strings.TrimSpace(in.Username),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	}
	if err := required("username", u.Username); err != nil {
		return domain.User{}, err
	}
	if strings.Contains(u.Username, "@") {
		return domain.User{}, validationError("username must not contain @")
	}
	if err := validateEmail(u.Email); err != nil {
		return domain.User{}, err
	}
	if len(in.Password) < auth.MinPasswordLength {
		return domain.User{}, validationError("password must be at least %d characters", auth.MinPasswordLength)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	u.PasswordHash = hash

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	s.log.InfoContext(ctx, "user registered", "user_id", created.ID)
	return created, nil
}

// Login accepts either an email address or a username. The login is trimmed
// and lower-cased; one containing "@" is tried as an email first and then as
// a username. Unknown accounts and wrong passwords both yield
// domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, login, password string) (domain.Session, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	if login == "" || password == "" {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
	}

	u, err := s.lookup(ctx, login)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return domain.Session{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *AuthService) lookup(ctx context.Context, login string) (domain.User, error) {
	if strings.Contains(login, "@") {
		u, err := s.users.GetByEmail(ctx, login)
		if !errors.Is(err, domain.ErrNotFound) {
			return u, err
		}
	}
	return s.users.GetByUsername(ctx, login)
}

// Authenticate verifies a bearer token and checks it has not been revoked.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("service.AuthService.Authenticate: %w", err)
	}
	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("service.AuthService.Authenticate: %w", err)
	}
	if revoked {
		return domain.Principal{}, fmt.Errorf("service.AuthService.Authenticate: token revoked: %w", domain.ErrUnauthorized)
	}
	userID, err := claims.UserID()
	if err != nil {
		return domain.Principal{}, fmt.Errorf("service.AuthService.Authenticate: %w", err)
	}
	return domain.Principal{
		UserID:    userID,
		IsAdmin:   claims.IsAdmin,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Logout revokes the caller's token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, p domain.Principal) error {
	if err := s.denylist.Revoke(ctx, p.TokenID, p.ExpiresAt); err != nil {
		return fmt.Errorf("service.AuthService.Logout: %w", err)
	}
	return nil
}

// Profile returns the caller's account.
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Profile: %w", err)
	}
	return u, nil
}

// UpdateProfile changes the caller's email and display names.
func (s *AuthService) UpdateProfile(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	if err := validateEmail(u.Email); err != nil {
		return domain.User{}, err
	}
	updated, err := s.users.UpdateProfile(ctx, u)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.UpdateProfile: %w", err)
	}
	return updated, nil
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return validationError("email must be a valid address")
	}
	return nil
}
