package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ValenCardozo/expert-pancake/internal/api/middleware"
	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: an empty identity means the middleware
// did not run or the session is indeterminate, and an indeterminate session
// is never treated as authorized.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity := middleware.Identity(c)
	if identity.IsZero() {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
