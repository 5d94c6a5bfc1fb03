package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ValenCardozo/expert-pancake/internal/auth/token"
	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
	"github.com/ValenCardozo/expert-pancake/internal/core/ports"
)

const defaultResetTTL = 15 * time.Minute

// AuthService implements registration, login and password reset.
type AuthService struct {
	repo     ports.UserRepository
	issuer   *token.Issuer
	resets   ports.ResetStore
	mail     ports.MailDispatcher
	resetTTL time.Duration
	log      zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	issuer *token.Issuer,
	resets ports.ResetStore,
	mail ports.MailDispatcher,
	resetTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if resetTTL <= 0 {
		resetTTL = defaultResetTTL
	}
	return &AuthService{
		repo:     repo,
		issuer:   issuer,
		resets:   resets,
		mail:     mail,
		resetTTL: resetTTL,
		log:      log,
	}
}

// Register creates a new account. Self-registered accounts always get the
// "user" role; promotion happens through the role endpoint.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		Age:          input.Age,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login verifies the secret and returns a signed credential plus the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.issuer.Sign(user, time.Now().UTC())
	if err != nil {
		return "", nil, err
	}

	return signed, user, nil
}

// ForgotPassword stores a single-use reset challenge and hands the
// notification to the mail dispatcher. Unknown emails return nil so callers
// cannot probe which addresses exist.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("email", email).Msg("reset requested for unknown email")
			return nil
		}
		return err
	}

	challenge := ports.ResetChallenge{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().UTC().Add(s.resetTTL),
	}
	if err := s.resets.Save(ctx, challenge, s.resetTTL); err != nil {
		return err
	}

	s.mail.Enqueue(ports.ResetNotification{
		Email:  user.Email,
		UserID: user.ID,
		Token:  challenge.Token,
	})

	s.log.Info().Str("user_id", user.ID).Msg("password reset challenge issued")
	return nil
}

// ResetPassword redeems the challenge and replaces the password. The
// challenge is consumed even if the subsequent update fails, so it can never
// be replayed.
func (s *AuthService) ResetPassword(ctx context.Context, userID, challengeToken, newPassword string) error {
	if userID == "" || challengeToken == "" || newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	if _, err := s.resets.Consume(ctx, userID, challengeToken); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("password reset completed")
	return nil
}
