package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"ride-compare-service/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisProfileStore keeps the last-known authenticated profile per client
// session as a JSON blob.
type RedisProfileStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisProfileStore(client *redis.Client, ttl time.Duration) *RedisProfileStore {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &RedisProfileStore{Client: client, TTL: ttl}
}

func profileKey(sessionID string) string { return "session:profile:" + sessionID }

func (s *RedisProfileStore) Save(ctx context.Context, sessionID string, p domain.UserProfile) error {
	if s.Client == nil {
		return errors.New("profile store: client is nil")
	}
	if sessionID == "" {
		return errors.New("profile store: session id must be non-empty")
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("save profile: encode: %w", err)
	}

	if err := s.Client.Set(ctx, profileKey(sessionID), raw, s.TTL).Err(); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	return nil
}

func (s *RedisProfileStore) Load(ctx context.Context, sessionID string) (domain.UserProfile, bool, error) {
	if s.Client == nil {
		return domain.UserProfile{}, false, errors.New("profile store: client is nil")
	}

	raw, err := s.Client.Get(ctx, profileKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.UserProfile{}, false, nil
	}
	if err != nil {
		return domain.UserProfile{}, false, fmt.Errorf("load profile: %w", err)
	}

	var p domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.UserProfile{}, false, fmt.Errorf("load profile: decode: %w", err)
	}

	return p, true, nil
}
