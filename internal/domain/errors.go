package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database, or exists but belongs to another user.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing title, negative budget, unknown category).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would violate a uniqueness rule:
// a destination linked twice to the same itinerary, a taken username or email.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned for bad credentials or an invalid token.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when an authenticated user lacks the role
// required for an operation (catalog writes are admin-only).
var ErrForbidden = errors.New("forbidden")

// ErrUnavailable is returned when an optional backing service (image storage)
// is not configured. Handlers should map this to HTTP 503.
var ErrUnavailable = errors.New("unavailable")
