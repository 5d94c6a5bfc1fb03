package ports

import (
	"context"

	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
)

// RegisterInput carries the self-registration payload. New accounts always
// start with the "user" role; only the role endpoint promotes.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Age      int
}

// AuthService implements registration, login and the password-reset flow.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns the signed credential and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// ForgotPassword issues a reset challenge and dispatches the
	// notification. Unknown emails ack silently to avoid enumeration.
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword consumes the challenge exactly once and sets the new
	// password. An expired or unknown challenge fails with ErrResetNotFound.
	ResetPassword(ctx context.Context, userID, challenge, newPassword string) error
}
