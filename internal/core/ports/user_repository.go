package ports

import (
	"context"

	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
)

// ListUsersFilter carries pagination for the user list. The lists are small
// and client-paginated; Page is 1-based and Limit is capped by the service.
type ListUsersFilter struct {
	Page  int
	Limit int
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateRole sets only the role field.
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
	// UpdatePassword sets only the password hash.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
