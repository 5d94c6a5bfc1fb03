package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ValenCardozo/expert-pancake/internal/core/ports"
)

// LogMailer writes reset notifications to the structured log instead of
// delivering real mail. Used in development and as the default sender until
// an SMTP provider is configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendReset(ctx context.Context, n ports.ResetNotification) error {
	m.log.Info().
		Str("email", n.Email).
		Str("user_id", n.UserID).
		Msg("password reset requested")
	return nil
}
