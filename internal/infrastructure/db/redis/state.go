package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultStateTTL = 10 * time.Minute

// StateStore holds one-shot OAuth login state nonces backed by Redis.
// Key format: oauth_state:<nonce>
type StateStore struct {
	client *redis.Client
}

// NewStateStore creates a StateStore wrapping the given Redis client.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Issue generates a random state nonce and stores it with the given TTL.
func (s *StateStore) Issue(ctx context.Context, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultStateTTL
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("state nonce: %w", err)
	}
	state := hex.EncodeToString(buf)

	if err := s.client.Set(ctx, s.key(state), "1", ttl).Err(); err != nil {
		return "", fmt.Errorf("store state: %w", err)
	}
	return state, nil
}

// Consume removes the state and reports whether it existed. A state is valid
// at most once; replays and stale callbacks both come back false.
func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	err := s.client.GetDel(ctx, s.key(state)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume state: %w", err)
	}
	return true, nil
}

func (s *StateStore) key(state string) string {
	return "oauth_state:" + state
}
