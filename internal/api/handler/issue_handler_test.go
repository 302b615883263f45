package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/citylink/citylink-api/internal/core/domain"
	"github.com/citylink/citylink-api/internal/core/ports"
)

type stubIssueService struct {
	reportFn       func(ctx context.Context, input ports.ReportIssueInput) (*domain.Issue, error)
	getFn          func(ctx context.Context, actor ports.Actor, id string) (*domain.Issue, error)
	updateStatusFn func(ctx context.Context, actor ports.Actor, id string, status domain.IssueStatus) (*domain.Issue, error)
	analyzeFn      func(ctx context.Context, actor ports.Actor, id string) (*domain.Issue, error)
	listByCityFn   func(ctx context.Context, actor ports.Actor, city string) ([]*domain.Issue, error)
	listByAuthorFn func(ctx context.Context, actor ports.Actor, authorID string) ([]*domain.Issue, error)
	listAllFn      func(ctx context.Context, actor ports.Actor) ([]*domain.Issue, error)
}

func (s *stubIssueService) Report(ctx context.Context, input ports.ReportIssueInput) (*domain.Issue, error) {
	return s.reportFn(ctx, input)
}

func (s *stubIssueService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Issue, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubIssueService) UpdateStatus(ctx context.Context, actor ports.Actor, id string, status domain.IssueStatus) (*domain.Issue, error) {
	return s.updateStatusFn(ctx, actor, id, status)
}

func (s *stubIssueService) Analyze(ctx context.Context, actor ports.Actor, id string) (*domain.Issue, error) {
	return s.analyzeFn(ctx, actor, id)
}

func (s *stubIssueService) ListByCity(ctx context.Context, actor ports.Actor, city string) ([]*domain.Issue, error) {
	return s.listByCityFn(ctx, actor, city)
}

func (s *stubIssueService) ListByAuthor(ctx context.Context, actor ports.Actor, authorID string) ([]*domain.Issue, error) {
	return s.listByAuthorFn(ctx, actor, authorID)
}

func (s *stubIssueService) ListAll(ctx context.Context, actor ports.Actor) ([]*domain.Issue, error) {
	return s.listAllFn(ctx, actor)
}

func TestIssueHandler_Report_CityAndAuthorFromToken(t *testing.T) {
	stub := &stubIssueService{
		reportFn: func(ctx context.Context, input ports.ReportIssueInput) (*domain.Issue, error) {
			if input.City != "Chicago" || input.AuthorID != "acc-1" || input.AuthorName != "Jane Smith" {
				t.Fatalf("identity must come from the token, got %+v", input)
			}
			return &domain.Issue{
				ID:       "iss-1",
				Title:    input.Title,
				Category: input.Category,
				City:     input.City,
				AuthorID: input.AuthorID,
				Status:   domain.StatusPending,
			}, nil
		},
	}
	handler := NewIssueHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/issues",
		`{"title":"Streetlight out","description":"Dark corner at night","category":"Street Lighting","address":"5th and Main","city":"Springfield","authorId":"someone-else"}`)
	c.Set("account_id", "acc-1")
	c.Set("name", "Jane Smith")
	c.Set("role", "citizen")
	c.Set("city", "Chicago")

	if err := handler.Report(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var issue domain.Issue
	if err := json.Unmarshal(rec.Body.Bytes(), &issue); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if issue.Status != domain.StatusPending {
		t.Fatalf("expected PENDING, got %s", issue.Status)
	}
}

func TestIssueHandler_Report_UnknownCategory(t *testing.T) {
	stub := &stubIssueService{
		reportFn: func(ctx context.Context, input ports.ReportIssueInput) (*domain.Issue, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewIssueHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/issues",
		`{"title":"t","description":"d","category":"Volcanoes","address":"a"}`)
	c.Set("account_id", "acc-1")
	c.Set("role", "citizen")
	c.Set("city", "Chicago")

	err := handler.Report(c)
	if code := httpErrorCode(t, err); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestIssueHandler_List_SuperAdminUnfiltered(t *testing.T) {
	listAllCalled := false
	stub := &stubIssueService{
		listAllFn: func(ctx context.Context, actor ports.Actor) ([]*domain.Issue, error) {
			listAllCalled = true
			return []*domain.Issue{{ID: "iss-1"}, {ID: "iss-2"}}, nil
		},
		listByCityFn: func(ctx context.Context, actor ports.Actor, city string) ([]*domain.Issue, error) {
			t.Fatalf("should not be called without a city filter")
			return nil, nil
		},
	}
	handler := NewIssueHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/v1/issues", "")
	c.Set("account_id", "SA-998877")
	c.Set("role", "super_admin")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !listAllCalled {
		t.Fatalf("expected the unfiltered listing")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestIssueHandler_List_SuperAdminCityFilter(t *testing.T) {
	stub := &stubIssueService{
		listByCityFn: func(ctx context.Context, actor ports.Actor, city string) ([]*domain.Issue, error) {
			if city != "Chicago" {
				t.Fatalf("expected Chicago filter, got %q", city)
			}
			return nil, nil
		},
	}
	handler := NewIssueHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/v1/issues?city=Chicago", "")
	c.Set("account_id", "SA-998877")
	c.Set("role", "super_admin")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestIssueHandler_List_CityAdminScoped(t *testing.T) {
	stub := &stubIssueService{
		listByCityFn: func(ctx context.Context, actor ports.Actor, city string) ([]*domain.Issue, error) {
			if actor.City != "Chicago" {
				t.Fatalf("expected actor city Chicago, got %q", actor.City)
			}
			return nil, nil
		},
	}
	handler := NewIssueHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/v1/issues", "")
	c.Set("account_id", "adm-1")
	c.Set("role", "city_admin")
	c.Set("city", "Chicago")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestIssueHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	stub := &stubIssueService{
		updateStatusFn: func(ctx context.Context, actor ports.Actor, id string, status domain.IssueStatus) (*domain.Issue, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewIssueHandler(stub)

	c, _ := newTestContext(t, http.MethodPatch, "/v1/issues/iss-1/status", `{"status":"DONE"}`)
	c.SetParamNames("id")
	c.SetParamValues("iss-1")
	c.Set("account_id", "adm-1")
	c.Set("role", "city_admin")
	c.Set("city", "Chicago")

	err := handler.UpdateStatus(c)
	if code := httpErrorCode(t, err); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestIssueHandler_UpdateStatus_Success(t *testing.T) {
	stub := &stubIssueService{
		updateStatusFn: func(ctx context.Context, actor ports.Actor, id string, status domain.IssueStatus) (*domain.Issue, error) {
			if id != "iss-1" || status != domain.StatusInProgress {
				t.Fatalf("unexpected args: %s %s", id, status)
			}
			return &domain.Issue{ID: id, Status: status}, nil
		},
	}
	handler := NewIssueHandler(stub)

	c, rec := newTestContext(t, http.MethodPatch, "/v1/issues/iss-1/status", `{"status":"IN_PROGRESS"}`)
	c.SetParamNames("id")
	c.SetParamValues("iss-1")
	c.Set("account_id", "adm-1")
	c.Set("role", "city_admin")
	c.Set("city", "Chicago")

	if err := handler.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestIssueHandler_Analyze_Unavailable(t *testing.T) {
	stub := &stubIssueService{
		analyzeFn: func(ctx context.Context, actor ports.Actor, id string) (*domain.Issue, error) {
			return nil, domain.ErrSummaryUnavailable
		},
	}
	handler := NewIssueHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/issues/iss-1/analyze", "")
	c.SetParamNames("id")
	c.SetParamValues("iss-1")
	c.Set("account_id", "adm-1")
	c.Set("role", "city_admin")
	c.Set("city", "Chicago")

	err := handler.Analyze(c)
	if !errors.Is(err, domain.ErrSummaryUnavailable) {
		t.Fatalf("expected ErrSummaryUnavailable to propagate, got %v", err)
	}
}

func TestIssueHandler_Get_NotFound(t *testing.T) {
	stub := &stubIssueService{
		getFn: func(ctx context.Context, actor ports.Actor, id string) (*domain.Issue, error) {
			return nil, domain.ErrIssueNotFound
		},
	}
	handler := NewIssueHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/v1/issues/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	c.Set("account_id", "acc-1")
	c.Set("role", "citizen")
	c.Set("city", "Chicago")

	err := handler.Get(c)
	if !errors.Is(err, domain.ErrIssueNotFound) {
		t.Fatalf("expected ErrIssueNotFound to propagate, got %v", err)
	}
}

func TestIssueHandler_ListMine_UsesCallerIdentity(t *testing.T) {
	stub := &stubIssueService{
		listByAuthorFn: func(ctx context.Context, actor ports.Actor, authorID string) ([]*domain.Issue, error) {
			if authorID != "acc-1" || actor.ID != "acc-1" {
				t.Fatalf("expected the caller's own id, got %q", authorID)
			}
			return []*domain.Issue{{ID: "iss-1", AuthorID: authorID}}, nil
		},
	}
	handler := NewIssueHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/v1/issues/mine", "")
	c.Set("account_id", "acc-1")
	c.Set("role", "citizen")
	c.Set("city", "Chicago")

	if err := handler.ListMine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
