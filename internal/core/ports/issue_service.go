package ports

import (
	"context"

	"github.com/citylink/citylink-api/internal/core/domain"
)

// ReportIssueInput carries a citizen's issue report. City, AuthorID and
// AuthorName come from the authenticated account, not the form.
type ReportIssueInput struct {
	Title       string
	Description string
	Category    string
	Address     string
	City        string
	AuthorID    string
	AuthorName  string
}

// Actor identifies who is performing an issue operation; the service uses it
// to enforce city and author partitioning.
type Actor struct {
	ID   string
	Role domain.Role
	City string
}

// IssueService defines issue-registry use cases.
type IssueService interface {
	Report(ctx context.Context, input ReportIssueInput) (*domain.Issue, error)
	// Get returns a single issue, restricted to its author, a city admin of
	// the same city, or the super admin.
	Get(ctx context.Context, actor Actor, id string) (*domain.Issue, error)
	// UpdateStatus sets the status. City admins may only touch issues in their
	// own city; the super admin is unscoped.
	UpdateStatus(ctx context.Context, actor Actor, id string, status domain.IssueStatus) (*domain.Issue, error)
	// Analyze asks the summarization collaborator for an analysis of the issue
	// and persists the result. Failure leaves the issue untouched and returns
	// domain.ErrSummaryUnavailable; the call may simply be retried.
	Analyze(ctx context.Context, actor Actor, id string) (*domain.Issue, error)
	// ListByCity lists a city's issues. Citizens and city admins are pinned to
	// their own city; the super admin may name any city.
	ListByCity(ctx context.Context, actor Actor, city string) ([]*domain.Issue, error)
	// ListByAuthor lists an author's issues. Citizens may only list their own.
	ListByAuthor(ctx context.Context, actor Actor, authorID string) ([]*domain.Issue, error)
	// ListAll returns every issue. Super admin only.
	ListAll(ctx context.Context, actor Actor) ([]*domain.Issue, error)
}
