package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/citylink/citylink-api/internal/core/domain"
)

// MetaHandler serves the static catalogs and the access-policy endpoint that
// drives the client's routing guards.
type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// Categories handles GET /v1/meta/categories.
//
// @Summary      List issue categories
// @Tags         meta
// @Produce      json
// @Success      200  {array}  string
// @Router       /v1/meta/categories [get]
func (h *MetaHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.IssueCategories)
}

// Cities handles GET /v1/meta/cities.
//
// @Summary      List served cities
// @Tags         meta
// @Produce      json
// @Success      200  {array}  string
// @Router       /v1/meta/cities [get]
func (h *MetaHandler) Cities(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.Cities)
}

// Access handles GET /v1/access/:area — evaluates the access policy for the
// caller's role against the named area. Unknown areas are 404.
//
// @Summary      Evaluate the access policy for an area
// @Tags         meta
// @Produce      json
// @Security     BearerAuth
// @Param        area  path      string  true  "Area name"
// @Success      200   {object}  domain.AccessDecision
// @Failure      404   {object}  errorResponse
// @Router       /v1/access/{area} [get]
func (h *MetaHandler) Access(c echo.Context) error {
	area, ok := domain.Areas[c.Param("area")]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown area")
	}

	roleClaim, _ := c.Get("role").(string)
	return c.JSON(http.StatusOK, domain.Decide(domain.Role(roleClaim), area))
}
