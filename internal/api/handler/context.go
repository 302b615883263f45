package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/citylink/citylink-api/internal/core/domain"
	"github.com/citylink/citylink-api/internal/core/ports"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - account id and role must be non-empty (presence proves the middleware ran).
//   - citizen and city-admin tokens require a city; without it the JWT is
//     structurally valid but operationally unusable — reject with 401.
func ctxActor(c echo.Context) (ports.Actor, error) {
	id, _ := c.Get("account_id").(string)
	roleClaim, _ := c.Get("role").(string)
	if id == "" || roleClaim == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role := domain.Role(roleClaim)
	city, _ := c.Get("city").(string)
	if (role == domain.RoleCitizen || role == domain.RoleCityAdmin) && city == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing city assignment")
	}

	return ports.Actor{ID: id, Role: role, City: city}, nil
}

// ctxName returns the display-name claim, if present.
func ctxName(c echo.Context) string {
	name, _ := c.Get("name").(string)
	return name
}
