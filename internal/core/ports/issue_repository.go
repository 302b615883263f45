package ports

import (
	"context"
	"time"

	"github.com/citylink/citylink-api/internal/core/domain"
)

// IssueRepository defines persistence operations for issues.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	FindByID(ctx context.Context, id string) (*domain.Issue, error)
	// UpdateStatus sets status and updated_at on the matching issue. A missing
	// id mutates nothing and returns nil (benign no-op).
	UpdateStatus(ctx context.Context, id string, status domain.IssueStatus, updatedAt time.Time) error
	// SetSummary stores the analysis text verbatim. It does not touch
	// updated_at. A missing id mutates nothing and returns nil.
	SetSummary(ctx context.Context, id string, summary string) error
	// ListByCity matches the city case-insensitively and returns issues in
	// persisted order.
	ListByCity(ctx context.Context, city string) ([]*domain.Issue, error)
	// ListByAuthor matches author_id exactly and returns issues in persisted order.
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Issue, error)
	// ListAll returns every issue, unfiltered. Privileged aggregation only.
	ListAll(ctx context.Context) ([]*domain.Issue, error)
}
