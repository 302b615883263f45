package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/citylink/citylink-api/internal/core/ports"
)

// MeHandler serves the authenticated account's own profile and preferences.
type MeHandler struct {
	accountService ports.AccountService
	sessions       ports.SessionStore
}

func NewMeHandler(accountService ports.AccountService, sessions ports.SessionStore) *MeHandler {
	return &MeHandler{accountService: accountService, sessions: sessions}
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=dark light"`
}

type themeResponse struct {
	Theme string `json:"theme"`
}

// Current handles GET /v1/me — the session-restored account record.
//
// @Summary      Get the current account
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Account
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/me [get]
func (h *MeHandler) Current(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	account, err := h.accountService.CurrentAccount(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// GetTheme handles GET /v1/me/theme.
//
// @Summary      Get the theme preference
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  themeResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me/theme [get]
func (h *MeHandler) GetTheme(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	theme, err := h.sessions.LoadTheme(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themeResponse{Theme: theme})
}

// SetTheme handles PUT /v1/me/theme.
//
// @Summary      Save the theme preference
// @Tags         me
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      themeRequest  true  "dark or light"
// @Success      200   {object}  themeResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/me/theme [put]
func (h *MeHandler) SetTheme(c echo.Context) error {
	var req themeRequest
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

	if err := h.sessions.SaveTheme(c.Request().Context(), actor.ID, req.Theme); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themeResponse{Theme: req.Theme})
}
