package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

const defaultSessionTTL = time.Hour

// CheckoutStore keeps in-progress checkout sessions in Redis.
// Key format: checkout:<session_id>; the value is the JSON-encoded session.
// Every Save refreshes the TTL, so a session expires only after inactivity.
type CheckoutStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCheckoutStore creates a CheckoutStore wrapping the given Redis client.
func NewCheckoutStore(client *redis.Client, ttl time.Duration) *CheckoutStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &CheckoutStore{client: client, ttl: ttl}
}

func (s *CheckoutStore) Save(ctx context.Context, session *domain.CheckoutSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.client.Set(ctx, s.key(session.ID), payload, s.ttl).Err()
}

func (s *CheckoutStore) Find(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session domain.CheckoutSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *CheckoutStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *CheckoutStore) key(id string) string {
	return "checkout:" + id
}
