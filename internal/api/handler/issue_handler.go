package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/citylink/citylink-api/internal/api/metrics"
	"github.com/citylink/citylink-api/internal/core/domain"
	"github.com/citylink/citylink-api/internal/core/ports"
)

// IssueHandler handles HTTP requests for the issue registry.
type IssueHandler struct {
	service ports.IssueService
}

func NewIssueHandler(service ports.IssueService) *IssueHandler {
	return &IssueHandler{service: service}
}

type reportIssueRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category"    validate:"required"`
	Address     string `json:"address"     validate:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING IN_PROGRESS RESOLVED"`
}

// Report handles POST /v1/issues. The issue's city and author come from the
// authenticated citizen, never from the payload.
//
// @Summary      Report a new issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reportIssueRequest  true  "Issue details"
// @Success      201   {object}  domain.Issue
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/issues [post]
func (h *IssueHandler) Report(c echo.Context) error {
	var req reportIssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	// oneof cannot express values containing spaces, so the category catalog
	// is checked here.
	if !domain.ValidCategory(req.Category) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "category must be one of the issue categories")
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	issue, err := h.service.Report(c.Request().Context(), ports.ReportIssueInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Address:     req.Address,
		City:        actor.City,
		AuthorID:    actor.ID,
		AuthorName:  ctxName(c),
	})
	if err != nil {
		return err
	}

	metrics.IssuesCreatedTotal.WithLabelValues(issue.Category).Inc()
	return c.JSON(http.StatusCreated, issue)
}

// Get handles GET /v1/issues/:id.
//
// @Summary      Get a single issue
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Issue id"
// @Success      200  {object}  domain.Issue
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/issues/{id} [get]
func (h *IssueHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	issue, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issue)
}

// ListMine handles GET /v1/issues/mine — the citizen's own reports.
//
// @Summary      List the caller's issues
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Issue
// @Failure      401  {object}  errorResponse
// @Router       /v1/issues/mine [get]
func (h *IssueHandler) ListMine(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	issues, err := h.service.ListByAuthor(c.Request().Context(), actor, actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issues)
}

// ListCommunity handles GET /v1/issues/community — all issues in the
// citizen's own city.
//
// @Summary      List issues in the caller's city
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Issue
// @Failure      401  {object}  errorResponse
// @Router       /v1/issues/community [get]
func (h *IssueHandler) ListCommunity(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	issues, err := h.service.ListByCity(c.Request().Context(), actor, actor.City)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issues)
}

// List handles GET /v1/issues. A city admin sees their own city; the super
// admin sees the named ?city= or, with no filter, everything.
//
// @Summary      List issues for triage
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Param        city  query     string  false  "City filter (super admin only)"
// @Success      200   {array}   domain.Issue
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/issues [get]
func (h *IssueHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	city := c.QueryParam("city")
	if actor.Role == domain.RoleSuperAdmin && city == "" {
		issues, err := h.service.ListAll(c.Request().Context(), actor)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, issues)
	}

	issues, err := h.service.ListByCity(c.Request().Context(), actor, city)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issues)
}

// UpdateStatus handles PATCH /v1/issues/:id/status.
//
// @Summary      Update an issue's status
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Issue id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.Issue
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/issues/{id}/status [patch]
func (h *IssueHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	issue, err := h.service.UpdateStatus(c.Request().Context(), actor, c.Param("id"), domain.IssueStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.IssueStatusUpdatesTotal.WithLabelValues(string(issue.Status)).Inc()
	return c.JSON(http.StatusOK, issue)
}

// Analyze handles POST /v1/issues/:id/analyze — attaches an AI-generated
// analysis to the issue.
//
// @Summary      Generate an AI analysis for an issue
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Issue id"
// @Success      200  {object}  domain.Issue
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/issues/{id}/analyze [post]
func (h *IssueHandler) Analyze(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	issue, err := h.service.Analyze(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		metrics.IssueAnalysesTotal.WithLabelValues("unavailable").Inc()
		return err
	}

	metrics.IssueAnalysesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, issue)
}
