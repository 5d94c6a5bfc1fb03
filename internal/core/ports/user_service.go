package ports

import (
	"context"

	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
)

// CreateUserInput carries the fields an admin supplies when creating an
// account directly from the user management screen.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Age      int
	Role     string
}

// UpdateUserInput carries the mutable profile fields. Role changes go
// through UpdateRole only.
type UpdateUserInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Age     int
}

// ListUsersResult is a page of users with pagination totals.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines use-case operations for user management.
type UserService interface {
	List(ctx context.Context, filter ListUsersFilter) (*ListUsersResult, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	// UpdateRole assigns a role. actorID is the authenticated admin making
	// the change; changing one's own role is rejected.
	UpdateRole(ctx context.Context, actorID, id, role string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
