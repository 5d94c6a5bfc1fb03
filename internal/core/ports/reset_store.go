package ports

import (
	"context"
	"time"
)

// ResetChallenge is the single-use password-reset record kept in Redis.
type ResetChallenge struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}

// ResetStore persists reset challenges with a TTL. Consume must be
// atomic-enough that a challenge can be redeemed at most once.
type ResetStore interface {
	Save(ctx context.Context, challenge ResetChallenge, ttl time.Duration) error
	// Consume fetches and deletes the challenge for (userID, token).
	// Missing or expired challenges fail with domain.ErrResetNotFound.
	Consume(ctx context.Context, userID, token string) (*ResetChallenge, error)
}

// ResetNotification is what the mail dispatcher delivers after a
// forgot-password request.
type ResetNotification struct {
	Email  string
	UserID string
	Token  string
}

// Mailer sends a reset notification to the recipient.
type Mailer interface {
	SendReset(ctx context.Context, n ResetNotification) error
}

// MailDispatcher decouples request handling from notification delivery.
type MailDispatcher interface {
	Enqueue(n ResetNotification)
}
