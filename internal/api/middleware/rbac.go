package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ValenCardozo/expert-pancake/internal/auth/guard"
)

// RBAC is the role-restricted route guard. It must run after Auth: an
// authenticated session with a role outside allowedRoles is sent to the
// access-denied view (browser) or rejected with 403 (API).
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := guard.RoleRequired(Identity(c), c.Request().URL.RequestURI(), allowedRoles...)
			if decision.Allow {
				return next(c)
			}
			if wantsHTML(c) {
				return c.Redirect(http.StatusSeeOther, decision.Redirect)
			}
			if decision.Redirect == guard.ForbiddenPath {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
		}
	}
}
