package guard

import (
	"testing"

	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
)

func TestPublicOnly(t *testing.T) {
	if d := PublicOnly(domain.Identity{}); !d.Allow {
		t.Fatalf("empty session must render, got %+v", d)
	}

	session := domain.Identity{ID: "1", Name: "a", Email: "a@x", Role: domain.RoleUser}
	if d := PublicOnly(session); d.Allow || d.Redirect != HomePath {
		t.Fatalf("authenticated session must redirect home, got %+v", d)
	}
}

func TestAuthRequired(t *testing.T) {
	session := domain.Identity{ID: "1", Name: "a", Email: "a@x", Role: domain.RoleUser}
	if d := AuthRequired(session, "/products"); !d.Allow {
		t.Fatalf("authenticated session must render, got %+v", d)
	}

	d := AuthRequired(domain.Identity{}, "/products/9")
	if d.Allow {
		t.Fatalf("empty session must redirect")
	}
	if d.Redirect != "/login?next=%2Fproducts%2F9" {
		t.Fatalf("redirect must carry requested location, got %q", d.Redirect)
	}

	// No next loop when login itself was requested.
	if d := AuthRequired(domain.Identity{}, LoginPath); d.Redirect != LoginPath {
		t.Fatalf("login target must not chain next, got %q", d.Redirect)
	}
}

func TestRoleRequired(t *testing.T) {
	admin := domain.Identity{ID: "1", Name: "a", Email: "a@x", Role: domain.RoleAdmin}
	user := domain.Identity{ID: "2", Name: "b", Email: "b@x", Role: domain.RoleUser}

	if d := RoleRequired(admin, "/users", domain.RoleAdmin); !d.Allow {
		t.Fatalf("admin must render, got %+v", d)
	}
	if d := RoleRequired(user, "/users", domain.RoleAdmin); d.Allow || d.Redirect != ForbiddenPath {
		t.Fatalf("wrong role must redirect to access denied, got %+v", d)
	}
	if d := RoleRequired(domain.Identity{}, "/users", domain.RoleAdmin); d.Allow || d.Redirect != "/login?next=%2Fusers" {
		t.Fatalf("empty session must redirect to login, got %+v", d)
	}
}
