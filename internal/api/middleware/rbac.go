package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/citylink/citylink-api/internal/core/domain"
)

// RBAC enforces role-based access control using the domain's allowed-set rule.
// Routes gated by RBAC must run Auth first so the role claim is present.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleClaim, _ := c.Get("role").(string)
			role := domain.Role(roleClaim)
			if !domain.ValidRole(role) || !domain.RoleAllowed(role, allowedRoles) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
