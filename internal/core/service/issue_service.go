package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/citylink/citylink-api/internal/core/domain"
	"github.com/citylink/citylink-api/internal/core/ports"
)

const defaultAnalysisTimeout = 15 * time.Second

// IssueService implements the issue registry use cases and their city/author
// partitioning rules.
type IssueService struct {
	repo            ports.IssueRepository
	summarizer      ports.Summarizer
	analysisTimeout time.Duration
	logger          zerolog.Logger
}

func NewIssueService(repo ports.IssueRepository, summarizer ports.Summarizer, analysisTimeout time.Duration, logger zerolog.Logger) *IssueService {
	if analysisTimeout <= 0 {
		analysisTimeout = defaultAnalysisTimeout
	}
	return &IssueService{
		repo:            repo,
		summarizer:      summarizer,
		analysisTimeout: analysisTimeout,
		logger:          logger,
	}
}

// Report creates a new issue with status PENDING.
func (s *IssueService) Report(ctx context.Context, input ports.ReportIssueInput) (*domain.Issue, error) {
	now := time.Now().UTC()
	issue := &domain.Issue{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Address:     input.Address,
		City:        input.City,
		AuthorID:    input.AuthorID,
		AuthorName:  input.AuthorName,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, issue); err != nil {
		s.logger.Error().Err(err).Str("city", input.City).Msg("failed to create issue")
		return nil, err
	}

	s.logger.Info().Str("issue_id", issue.ID).Str("city", issue.City).Str("category", issue.Category).Msg("issue reported")
	return issue, nil
}

// Get returns one issue, visible to its author, a same-city admin, or the
// super admin.
func (s *IssueService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Issue, error) {
	issue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// UpdateStatus sets any of the three statuses in any order; there is no
// transition table. Only status and updated_at change.
func (s *IssueService) UpdateStatus(ctx context.Context, actor ports.Actor, id string, status domain.IssueStatus) (*domain.Issue, error) {
	issue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAdmin(actor, issue); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, err
	}
	issue.Status = status
	issue.UpdatedAt = now

	s.logger.Info().Str("issue_id", id).Str("status", string(status)).Msg("issue status updated")
	return issue, nil
}

// Analyze asks the summarization collaborator for an analysis and stores the
// text verbatim. The call is bounded by the configured timeout; any failure
// leaves the issue untouched and is retryable.
func (s *IssueService) Analyze(ctx context.Context, actor ports.Actor, id string) (*domain.Issue, error) {
	issue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAdmin(actor, issue); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.analysisTimeout)
	defer cancel()

	summary, err := s.summarizer.Summarize(callCtx, ports.SummarizeInput{
		Title:       issue.Title,
		Description: issue.Description,
		Category:    issue.Category,
		Address:     issue.Address,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("issue_id", id).Msg("issue analysis failed")
		return nil, domain.ErrSummaryUnavailable
	}

	if err := s.repo.SetSummary(ctx, id, summary); err != nil {
		return nil, err
	}
	issue.AISummary = summary

	s.logger.Info().Str("issue_id", id).Msg("issue analyzed")
	return issue, nil
}

// ListByCity lists a city's issues. Citizens and city admins are pinned to
// their own city regardless of the requested one.
func (s *IssueService) ListByCity(ctx context.Context, actor ports.Actor, city string) ([]*domain.Issue, error) {
	switch actor.Role {
	case domain.RoleSuperAdmin:
		// unscoped
	case domain.RoleCityAdmin, domain.RoleCitizen:
		if actor.City == "" {
			return nil, domain.ErrForbidden
		}
		city = actor.City
	default:
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByCity(ctx, city)
}

// ListByAuthor lists an author's issues. Citizens may only list their own.
func (s *IssueService) ListByAuthor(ctx context.Context, actor ports.Actor, authorID string) ([]*domain.Issue, error) {
	if actor.Role != domain.RoleSuperAdmin && actor.ID != authorID {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByAuthor(ctx, authorID)
}

// ListAll returns every issue. Super admin only.
func (s *IssueService) ListAll(ctx context.Context, actor ports.Actor) ([]*domain.Issue, error) {
	if actor.Role != domain.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListAll(ctx)
}

// authorize gates read access: author, same-city admin, or super admin.
func (s *IssueService) authorize(actor ports.Actor, issue *domain.Issue) error {
	switch actor.Role {
	case domain.RoleSuperAdmin:
		return nil
	case domain.RoleCityAdmin:
		return s.sameCity(actor, issue)
	case domain.RoleCitizen:
		if actor.ID == issue.AuthorID {
			return nil
		}
		return s.sameCity(actor, issue)
	default:
		return domain.ErrForbidden
	}
}

// authorizeAdmin gates mutations: same-city admin or super admin.
func (s *IssueService) authorizeAdmin(actor ports.Actor, issue *domain.Issue) error {
	switch actor.Role {
	case domain.RoleSuperAdmin:
		return nil
	case domain.RoleCityAdmin:
		return s.sameCity(actor, issue)
	default:
		return domain.ErrForbidden
	}
}

func (s *IssueService) sameCity(actor ports.Actor, issue *domain.Issue) error {
	if actor.City != "" && strings.EqualFold(actor.City, issue.City) {
		return nil
	}
	return domain.ErrForbidden
}
