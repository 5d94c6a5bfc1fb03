// Package session owns the client-side session: the single Identity-or-none
// derived from the persisted credential. The Store is the only writer of the
// credential slot and of the active outbound credential; guards and the
// request layer read through it instead of touching ambient globals.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ValenCardozo/expert-pancake/internal/auth/token"
	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
)

// ErrBadIssuedToken is returned when a credential the server just issued
// fails local validation. That is a consistency failure, never a login.
var ErrBadIssuedToken = errors.New("server issued an unusable credential")

// Authenticator is the external login collaborator. It returns the raw
// credential on success; a bad secret surfaces as domain.ErrInvalidCredentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, secret string) (string, error)
}

// Store holds the current session. Invariant: the session is non-empty if
// and only if the last validated credential exists, is well-formed, and is
// unexpired. Storage writes complete before the session becomes observable,
// so a guard reading immediately after a mutation sees consistent state.
type Store struct {
	storage   CredentialStorage
	validator *token.Validator
	auth      Authenticator
	now       func() time.Time
	log       zerolog.Logger

	mu       sync.Mutex
	identity domain.Identity
	active   string
}

func NewStore(storage CredentialStorage, validator *token.Validator, auth Authenticator, log zerolog.Logger) *Store {
	return &Store{
		storage:   storage,
		validator: validator,
		auth:      auth,
		now:       time.Now,
		log:       log,
	}
}

// Restore loads the persisted credential at startup. A valid credential
// populates the session and becomes the active outbound credential; an
// invalid or expired one is cleared from storage and the session stays
// empty. Absence of a credential is not an error.
func (s *Store) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.storage.Read(ctx)
	if err != nil {
		return err
	}
	if raw == "" {
		s.clearLocked(ctx)
		return nil
	}

	identity, err := s.validator.Decode(raw, s.now())
	if err != nil {
		s.log.Debug().Err(err).Msg("stored credential rejected, clearing session")
		if err := s.storage.Clear(ctx); err != nil {
			return err
		}
		s.clearLocked(ctx)
		return nil
	}

	s.identity = identity
	s.active = raw
	return nil
}

// Login delegates to the external authenticator, persists the returned
// credential, then runs the same validation path as Restore. A credential
// that fails validation right after issuance is discarded and surfaced as
// ErrBadIssuedToken.
func (s *Store) Login(ctx context.Context, email, secret string) (domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.auth.Authenticate(ctx, email, secret)
	if err != nil {
		return domain.Identity{}, err
	}

	if err := s.storage.Write(ctx, raw); err != nil {
		return domain.Identity{}, fmt.Errorf("persist credential: %w", err)
	}

	identity, err := s.validator.Decode(raw, s.now())
	if err != nil {
		_ = s.storage.Clear(ctx)
		s.clearLocked(ctx)
		s.log.Warn().Err(err).Msg("freshly issued credential failed validation")
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrBadIssuedToken, err)
	}

	s.identity = identity
	s.active = raw
	s.log.Info().Str("user_id", identity.ID).Str("role", identity.Role).Msg("session established")
	return identity, nil
}

// Logout clears the session, the persisted credential, and the active
// outbound credential. Idempotent: logging out an empty session is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		return err
	}
	s.clearLocked(ctx)
	return nil
}

// Current returns the Identity-or-none. An indeterminate session reads as
// empty, never as authorized.
func (s *Store) Current() domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Credential returns the active outbound credential, or "" when requests
// should go out unauthenticated.
func (s *Store) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Store) clearLocked(context.Context) {
	s.identity = domain.Identity{}
	s.active = ""
}
