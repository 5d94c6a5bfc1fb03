package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ValenCardozo/expert-pancake/internal/auth/guard"
	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
)

func rbacContext(e *echo.Echo, identity domain.Identity, accept string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if !identity.IsZero() {
		c.Set(identityKey, identity)
	}
	return c, rec
}

func TestRBAC_AllowedRole(t *testing.T) {
	e := echo.New()
	admin := domain.Identity{ID: "1", Name: "a", Email: "a@x", Role: domain.RoleAdmin}
	c, rec := rbacContext(e, admin, "")

	called := false
	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("admin must be admitted, code=%d", rec.Code)
	}
}

func TestRBAC_WrongRole(t *testing.T) {
	e := echo.New()
	user := domain.Identity{ID: "2", Name: "b", Email: "b@x", Role: domain.RoleUser}
	c, rec := rbacContext(e, user, "")

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_WrongRole_Browser(t *testing.T) {
	e := echo.New()
	user := domain.Identity{ID: "2", Name: "b", Email: "b@x", Role: domain.RoleUser}
	c, rec := rbacContext(e, user, "text/html")

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != guard.ForbiddenPath {
		t.Fatalf("expected redirect to access denied, got %q", loc)
	}
}

func TestRBAC_NoSession(t *testing.T) {
	e := echo.New()
	c, rec := rbacContext(e, domain.Identity{}, "")

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
