package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

const exchangeTTL = 2 * time.Minute

// ExchangeCodeStore holds token pairs issued during an OAuth callback under a
// short-lived one-time code. The browser only ever sees the opaque code; the
// client trades it for the pair server-side, so tokens never appear in a
// redirect URL. Key format: oauth_exchange:<code>
type ExchangeCodeStore struct {
	client *redis.Client
}

// NewExchangeCodeStore creates an ExchangeCodeStore wrapping the given client.
func NewExchangeCodeStore(client *redis.Client) *ExchangeCodeStore {
	return &ExchangeCodeStore{client: client}
}

// Save records the token pair under code, expiring after exchangeTTL.
func (s *ExchangeCodeStore) Save(ctx context.Context, code string, pair *ports.TokenPair) error {
	payload, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("encode token pair: %w", err)
	}
	if err := s.client.Set(ctx, s.key(code), payload, exchangeTTL).Err(); err != nil {
		return fmt.Errorf("store exchange code: %w", err)
	}
	return nil
}

// Take returns the pair stored under code and consumes it atomically (GETDEL),
// so a code can be redeemed at most once. Unknown, expired, and already-used
// codes are indistinguishable: all yield ErrUnauthenticated.
func (s *ExchangeCodeStore) Take(ctx context.Context, code string) (*ports.TokenPair, error) {
	payload, err := s.client.GetDel(ctx, s.key(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("take exchange code: %w", err)
	}

	var pair ports.TokenPair
	if err := json.Unmarshal(payload, &pair); err != nil {
		return nil, fmt.Errorf("decode token pair: %w", err)
	}
	return &pair, nil
}

func (s *ExchangeCodeStore) key(code string) string {
	return "oauth_exchange:" + code
}
