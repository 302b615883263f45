package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/citylink/citylink-api/internal/api/metrics"
	"github.com/citylink/citylink-api/internal/core/domain"
	"github.com/citylink/citylink-api/internal/core/ports"
)

// AdminHandler handles the super admin's city-admin management endpoints.
type AdminHandler struct {
	accountService ports.AccountService
}

func NewAdminHandler(accountService ports.AccountService) *AdminHandler {
	return &AdminHandler{accountService: accountService}
}

type provisionAdminRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
	City     string `json:"city"     validate:"required"`
}

// ListCityAdmins handles GET /v1/admin/city-admins.
//
// @Summary      List city administrators
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Account
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/city-admins [get]
func (h *AdminHandler) ListCityAdmins(c echo.Context) error {
	admins, err := h.accountService.ListCityAdmins(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admins)
}

// ProvisionCityAdmin handles POST /v1/admin/city-admins.
//
// @Summary      Provision a city administrator
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      provisionAdminRequest  true  "Admin details"
// @Success      201   {object}  domain.Account
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/city-admins [post]
func (h *AdminHandler) ProvisionCityAdmin(c echo.Context) error {
	var req provisionAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if !domain.ValidCity(req.City) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "city must be one of the served cities")
	}

	account, err := h.accountService.ProvisionCityAdmin(c.Request().Context(), ports.ProvisionCityAdminInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		City:     req.City,
	})
	if err != nil {
		return err
	}

	metrics.AccountsCreatedTotal.WithLabelValues(string(domain.RoleCityAdmin)).Inc()
	return c.JSON(http.StatusCreated, account)
}

// DeleteCityAdmin handles DELETE /v1/admin/city-admins/:id. Deleting an
// unknown id succeeds; issues authored by the admin are never touched.
//
// @Summary      Delete a city administrator
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Account id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/city-admins/{id} [delete]
func (h *AdminHandler) DeleteCityAdmin(c echo.Context) error {
	if err := h.accountService.DeleteCityAdmin(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
