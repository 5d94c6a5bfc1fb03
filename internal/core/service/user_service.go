package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
	"github.com/ValenCardozo/expert-pancake/internal/core/ports"
)

// UserService implements user management for the admin screens.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) List(ctx context.Context, filter ports.ListUsersFilter) (*ports.ListUsersResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListUsersResult{
		Items:      users,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// Create makes an account from the admin screen. Unlike self-registration
// the role can be set directly, but it must be a known one.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.KnownRole(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		Age:          input.Age,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created")
	return created, nil
}

func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	user.Phone = input.Phone
	user.Address = input.Address
	if input.Age > 0 {
		user.Age = input.Age
	}
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

// UpdateRole assigns a role to another user. Admins cannot change their own
// role, which keeps at least the acting admin in place.
func (s *UserService) UpdateRole(ctx context.Context, actorID, id, role string) (*domain.User, error) {
	if !domain.KnownRole(role) {
		return nil, domain.ErrInvalidRole
	}
	if actorID != "" && actorID == id {
		return nil, domain.ErrSelfRoleChange
	}

	updated, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Str("role", role).Str("actor_id", actorID).Msg("role updated")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
