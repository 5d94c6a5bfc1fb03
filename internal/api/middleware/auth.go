package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ValenCardozo/expert-pancake/internal/api/metrics"
	"github.com/ValenCardozo/expert-pancake/internal/auth/guard"
	"github.com/ValenCardozo/expert-pancake/internal/auth/token"
	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
)

// identityKey is the echo context key under which Auth stores the decoded
// identity.
const identityKey = "identity"

// Identity returns the identity injected by Auth, or the zero identity when
// the request is unauthenticated. Guards treat the zero value as "no
// session", never as authorized.
func Identity(c echo.Context) domain.Identity {
	identity, _ := c.Get(identityKey).(domain.Identity)
	return identity
}

// sessionFromRequest decodes the bearer credential, if any, into an
// identity. Returns the zero identity and the rejection when there is no
// usable session.
func sessionFromRequest(c echo.Context, validator *token.Validator) (domain.Identity, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	identity, err := validator.Decode(parts[1], time.Now().UTC())
	if err != nil {
		var ite *token.InvalidTokenError
		if errors.As(err, &ite) {
			metrics.TokenRejectionsTotal.WithLabelValues(ite.Reason).Inc()
		}
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	return identity, nil
}

// Auth is the authenticated-only route guard. It validates the bearer
// credential and injects the identity; without a valid session the request
// is redirected to login (browser) or rejected with 401 (API).
func Auth(validator *token.Validator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, rejection := sessionFromRequest(c, validator)

			decision := guard.AuthRequired(identity, c.Request().URL.RequestURI())
			if !decision.Allow {
				if wantsHTML(c) {
					return c.Redirect(http.StatusSeeOther, decision.Redirect)
				}
				return rejection
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// PublicOnly admits only unauthenticated requests; an authenticated caller
// is sent home. Used on login and register so an established session cannot
// re-enter the public flow.
func PublicOnly(validator *token.Validator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := domain.Identity{}
			if c.Request().Header.Get("Authorization") != "" {
				// A broken or expired credential counts as no session.
				identity, _ = sessionFromRequest(c, validator)
			}

			decision := guard.PublicOnly(identity)
			if !decision.Allow {
				return c.Redirect(http.StatusSeeOther, decision.Redirect)
			}
			return next(c)
		}
	}
}

// wantsHTML reports whether the client negotiated a browser-style response,
// in which case guards redirect instead of answering JSON.
func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), echo.MIMETextHTML)
}
