package ports

import (
	"context"

	"github.com/citylink/citylink-api/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
//
// Email matching is exact-case everywhere: uniqueness and lookup both compare
// the stored string byte-for-byte.
type AccountRepository interface {
	// Create inserts a new account. Returns domain.ErrEmailTaken when another
	// account already holds the same email; nothing is persisted in that case.
	Create(ctx context.Context, account *domain.Account) error
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// ListByRole returns all accounts holding the role, in persisted order.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.Account, error)
	// CountByRole reports how many accounts hold the role.
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	// Delete removes the account with the given id. Deleting an absent id is a
	// benign no-op. Issues authored by the account are never touched.
	Delete(ctx context.Context, id string) error
}
