package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
	"github.com/ValenCardozo/expert-pancake/internal/core/ports"
)

// ResetStore keeps single-use password-reset challenges in Redis.
// Key format: reset:<user_id>:<challenge_token>, value = expiry unix time.
// The TTL makes expiry enforcement free; Consume uses GETDEL so a challenge
// can be redeemed at most once even under concurrent attempts.
type ResetStore struct {
	client *redis.Client
}

func NewResetStore(client *redis.Client) *ResetStore {
	return &ResetStore{client: client}
}

func (s *ResetStore) Save(ctx context.Context, challenge ports.ResetChallenge, ttl time.Duration) error {
	key := s.key(challenge.UserID, challenge.Token)
	value := fmt.Sprintf("%d", challenge.ExpiresAt.Unix())
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("save reset challenge: %w", err)
	}
	return nil
}

func (s *ResetStore) Consume(ctx context.Context, userID, token string) (*ports.ResetChallenge, error) {
	val, err := s.client.GetDel(ctx, s.key(userID, token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrResetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consume reset challenge: %w", err)
	}

	var expUnix int64
	if _, err := fmt.Sscanf(val, "%d", &expUnix); err != nil {
		return nil, fmt.Errorf("decode reset challenge: %w", err)
	}

	return &ports.ResetChallenge{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Unix(expUnix, 0).UTC(),
	}, nil
}

func (s *ResetStore) key(userID, token string) string {
	return fmt.Sprintf("reset:%s:%s", userID, token)
}
