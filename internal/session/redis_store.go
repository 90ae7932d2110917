package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client        *redis.Client
	prefix        string
	refreshPrefix string
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:        client,
		prefix:        "session:",
		refreshPrefix: "refresh:",
	}
}

func (r *RedisStore) key(token string) string {
	return r.prefix + token
}

func (r *RedisStore) refreshKey(token string) string {
	return r.refreshPrefix + token
}

func (r *RedisStore) Create(ctx context.Context, s Session) error {
	if s.Token == "" || s.UserID == "" {
		return fmt.Errorf("session: missing token or user_id")
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session: expires_at must be in the future")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	return r.client.Set(ctx, r.key(s.Token), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	val, err := r.client.Get(ctx, r.key(token)).Result()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal: %w", err)
	}

	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.key(token)).Err()
}

func (r *RedisStore) CreateRefresh(ctx context.Context, rt RefreshToken) error {
	if rt.Token == "" || rt.UserID == "" {
		return fmt.Errorf("session: missing refresh token or user_id")
	}

	ttl := time.Until(rt.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session: refresh expires_at must be in the future")
	}

	data, err := json.Marshal(rt)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	return r.client.Set(ctx, r.refreshKey(rt.Token), data, ttl).Err()
}

func (r *RedisStore) GetRefresh(ctx context.Context, token string) (*RefreshToken, error) {
	val, err := r.client.Get(ctx, r.refreshKey(token)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rt RefreshToken
	if err := json.Unmarshal([]byte(val), &rt); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal: %w", err)
	}

	return &rt, nil
}

func (r *RedisStore) DeleteRefresh(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.refreshKey(token)).Err()
}
