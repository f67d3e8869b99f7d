// Package service contains the business logic for the SmartTrav API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pkordes/smarttrav/internal/domain"
)

// orDiscard substitutes a no-op logger when a constructor is handed a nil logger.
func orDiscard(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return log
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrValidation}, args...)...)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return validationError("%s is required", field)
	}
	return nil
}

// visitTimeLayout is the wall-clock format of Link.VisitTime.
const visitTimeLayout = "15:04"

func validateVisitTime(s *string) error {
	if s == nil {
		return nil
	}
	if _, err := time.Parse(visitTimeLayout, *s); err != nil {
		return validationError("visit_time must be HH:MM")
	}
	return nil
}
