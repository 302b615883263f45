package ports

import (
	"context"

	"github.com/citylink/citylink-api/internal/core/domain"
)

// SessionStore caches the currently logged-in account and per-account UI
// preferences. Entries expire with the session token; a miss is reported as
// domain.ErrAccountNotFound so callers can fall back to the directory.
type SessionStore interface {
	SaveSession(ctx context.Context, account *domain.Account) error
	LoadSession(ctx context.Context, accountID string) (*domain.Account, error)
	DeleteSession(ctx context.Context, accountID string) error

	// SaveTheme stores "dark" or "light". LoadTheme returns "light" when no
	// preference has been saved.
	SaveTheme(ctx context.Context, accountID, theme string) error
	LoadTheme(ctx context.Context, accountID string) (string, error)
}
