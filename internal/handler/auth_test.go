package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/smarttrav/internal/domain"
	"github.com/pkordes/smarttrav/internal/handler"
	"github.com/pkordes/smarttrav/internal/service"
)

func userFixture() domain.User {
	return domain.User{
		ID:           testUserID,
		Username:     "juan",
		Email:        "juan@example.com",
		PasswordHash: []byte("$2a$10$secret"),
		FirstName:    "Juan",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestRegister_201(t *testing.T) {
	var got service.RegisterInput
	svc := &mockAuth{
		register: func(_ context.Context, in service.RegisterInput) (domain.User, error) {
			got = in
			return userFixture(), nil
		},
	}

	rec := do(t, newRouter(handler.Services{Auth: svc}), http.MethodPost, "/auth/register", "", map[string]any{
		"username": "juan",
		"email":    "juan@example.com",
		"password": "longenough",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "juan", got.Username)
	assert.Equal(t, "longenough", got.Password)

	resp := decode[handler.User](t, rec)
	assert.Equal(t, testUserID, resp.ID)
	assert.NotContains(t, rec.Body.String(), "secret", "password hash must never be serialized")
}

func TestRegister_409_Duplicate(t *testing.T) {
	svc := &mockAuth{
		register: func(_ context.Context, _ service.RegisterInput) (domain.User, error) {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", domain.ErrConflict)
		},
	}

	rec := do(t, newRouter(handler.Services{Auth: svc}), http.MethodPost, "/auth/register", "", map[string]any{
		"username": "juan", "email": "juan@example.com", "password": "longenough",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", errorCode(t, rec))
}

func TestRegister_422_ValidationMessage(t *testing.T) {
	svc := &mockAuth{
		register: func(_ context.Context, _ service.RegisterInput) (domain.User, error) {
			return domain.User{}, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
		},
	}

	rec := do(t, newRouter(handler.Services{Auth: svc}), http.MethodPost, "/auth/register", "", map[string]any{
		"username": "juan", "email": "juan@example.com", "password": "short",
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode[handler.ErrorResponse](t, rec)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "password must be at least 8 characters", resp.Error.Message)
}

func TestRegister_422_MissingBody(t *testing.T) {
	rec := do(t, newRouter(handler.Services{Auth: &mockAuth{}}), http.MethodPost, "/auth/register", "", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLogin_200(t *testing.T) {
	expires := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	svc := &mockAuth{
		login: func(_ context.Context, login, password string) (domain.Session, error) {
			assert.Equal(t, "Juan@Example.com", login, "normalization belongs to the service")
			assert.Equal(t, "longenough", password)
			return domain.Session{Token: "jwt", ExpiresAt: expires, User: userFixture()}, nil
		},
	}

	rec := do(t, newRouter(handler.Services{Auth: svc}), http.MethodPost, "/auth/login", "", map[string]any{
		"login": "Juan@Example.com", "password": "longenough",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handler.Session](t, rec)
	assert.Equal(t, "jwt", resp.Token)
	assert.True(t, expires.Equal(resp.ExpiresAt))
	assert.Equal(t, "juan", resp.User.Username)
}

func TestLogin_401_DoesNotRevealWhichPartFailed(t *testing.T) {
	svc := &mockAuth{
		login: func(_ context.Context, _, _ string) (domain.Session, error) {
			return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
		},
	}

	rec := do(t, newRouter(handler.Services{Auth: svc}), http.MethodPost, "/auth/login", "", map[string]any{
		"login": "nobody", "password": "whatever1",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decode[handler.ErrorResponse](t, rec).Error.Message)
}

func TestLogout_204_RevokesCallerToken(t *testing.T) {
	var revoked domain.Principal
	svc := &mockAuth{
		logout: func(_ context.Context, p domain.Principal) error {
			revoked = p
			return nil
		},
	}

	rec := do(t, newRouter(handler.Services{Auth: svc}), http.MethodPost, "/auth/logout", userToken, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "jti-user", revoked.TokenID)
}

func TestLogout_401_WithoutToken(t *testing.T) {
	rec := do(t, newRouter(handler.Services{Auth: &mockAuth{}}), http.MethodPost, "/auth/logout", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMe_200(t *testing.T) {
	svc := &mockAuth{
		profile: func(_ context.Context, id uuid.UUID) (domain.User, error) {
			assert.Equal(t, testUserID, id)
			return userFixture(), nil
		},
	}

	rec := do(t, newRouter(handler.Services{Auth: svc}), http.MethodGet, "/me", userToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "juan@example.com", decode[handler.User](t, rec).Email)
}

func TestUpdateMe_UsesCallerID(t *testing.T) {
	svc := &mockAuth{
		updateProfile: func(_ context.Context, u domain.User) (domain.User, error) {
			assert.Equal(t, testUserID, u.ID)
			assert.Equal(t, "new@example.com", u.Email)
			u.Username = "juan"
			return u, nil
		},
	}

	rec := do(t, newRouter(handler.Services{Auth: svc}), http.MethodPut, "/me", userToken, map[string]any{
		"email": "new@example.com", "first_name": "Juan", "last_name": "Cruz",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cruz", decode[handler.User](t, rec).LastName)
}
