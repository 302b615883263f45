package ports

import (
	"context"

	"github.com/citylink/citylink-api/internal/core/domain"
)

// RegisterInput carries the citizen self-registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	City     string
	State    string
	Address  string
	Phone    string
}

// ProvisionCityAdminInput carries the super admin's city-admin creation form.
type ProvisionCityAdminInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	City     string
}

// AccountService defines account and authentication use cases.
type AccountService interface {
	// Register creates a citizen account and returns it with a session token.
	Register(ctx context.Context, input RegisterInput) (string, *domain.Account, error)
	// ProvisionCityAdmin creates a city-admin account scoped to one city.
	ProvisionCityAdmin(ctx context.Context, input ProvisionCityAdminInput) (*domain.Account, error)
	// Login authenticates by email and password and returns a signed token.
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	// Logout discards the stored session for the account.
	Logout(ctx context.Context, accountID string) error
	// CurrentAccount restores the session-cached account, falling back to the
	// directory when the cache has expired.
	CurrentAccount(ctx context.Context, accountID string) (*domain.Account, error)
	// Bootstrap creates the singleton super admin when absent. Idempotent.
	Bootstrap(ctx context.Context) error
	ListCityAdmins(ctx context.Context) ([]*domain.Account, error)
	DeleteCityAdmin(ctx context.Context, id string) error
}
