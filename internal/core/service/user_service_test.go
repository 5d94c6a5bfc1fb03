package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
	"github.com/ValenCardozo/expert-pancake/internal/core/ports"
)

func seedUser(t *testing.T, svc *UserService, name, email, role string) *domain.User {
	t.Helper()
	u, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: name, Email: email, Password: "pw", Role: role,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func TestUserService_Create_RejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "x", Email: "x@example.com", Password: "pw", Role: "superuser",
	}); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_Create_DefaultsRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	u := seedUser(t, svc, "x", "x@example.com", "")
	if u.Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, u.Role)
	}
}

func TestUserService_UpdateRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())
	admin := seedUser(t, svc, "Admin", "admin@example.com", domain.RoleAdmin)
	other := seedUser(t, svc, "Other", "other@example.com", domain.RoleUser)

	updated, err := svc.UpdateRole(context.Background(), admin.ID, other.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("role not updated: %+v", updated)
	}
}

func TestUserService_UpdateRole_SelfRejected(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())
	admin := seedUser(t, svc, "Admin", "admin@example.com", domain.RoleAdmin)

	if _, err := svc.UpdateRole(context.Background(), admin.ID, admin.ID, domain.RoleUser); err != domain.ErrSelfRoleChange {
		t.Fatalf("expected ErrSelfRoleChange, got %v", err)
	}
}

func TestUserService_UpdateRole_UnknownRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())
	admin := seedUser(t, svc, "Admin", "admin@example.com", domain.RoleAdmin)
	other := seedUser(t, svc, "Other", "other@example.com", domain.RoleUser)

	if _, err := svc.UpdateRole(context.Background(), admin.ID, other.ID, "root"); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_UpdateAndDelete(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())
	u := seedUser(t, svc, "Grace", "grace@example.com", domain.RoleUser)

	updated, err := svc.Update(context.Background(), u.ID, ports.UpdateUserInput{
		Name: "Grace H", Phone: "555-0100", Address: "1 Main St",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Grace H" || updated.Phone != "555-0100" {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := svc.Delete(context.Background(), u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), u.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}

	if err := svc.Delete(context.Background(), u.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestUserService_ListPagination(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		seedUser(t, svc, "u", email, domain.RoleUser)
	}

	result, err := svc.List(context.Background(), ports.ListUsersFilter{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 3 || len(result.Items) != 2 || result.TotalPages != 2 {
		t.Fatalf("unexpected page: total=%d items=%d pages=%d", result.Total, len(result.Items), result.TotalPages)
	}
}
