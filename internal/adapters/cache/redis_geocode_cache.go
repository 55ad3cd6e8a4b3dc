package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"ride-compare-service/internal/domain"
	"ride-compare-service/internal/ports"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisGeocodeCache caches forward-search results and reverse lookups so
// repeated queries skip the external geocoding API.
//
// Entries expire; geocoding data is stable enough that a day-scale TTL
// keeps results fresh without stampeding the provider.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

func searchKey(query string) string {
	return "geo:search:" + strings.ToLower(strings.Join(strings.Fields(query), " "))
}

func reverseKey(c domain.Coordinate) string {
	// Five decimals is ~1m resolution, plenty for address-level lookups.
	return fmt.Sprintf("geo:rev:%.5f,%.5f", c.Lat, c.Lon)
}

// GetSearch fetches cached candidates for a search query.
func (r *RedisGeocodeCache) GetSearch(ctx context.Context, query string) ([]ports.Place, bool, error) {
	if r.Client == nil {
		return nil, false, errors.New("geocode cache: client is nil")
	}

	raw, err := r.Client.Get(ctx, searchKey(query)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get search cache: %w", err)
	}

	var places []ports.Place
	if err := json.Unmarshal([]byte(raw), &places); err != nil {
		return nil, false, fmt.Errorf("get search cache: decode entry: %w", err)
	}

	return places, true, nil
}

// PutSearch stores candidates for a search query.
func (r *RedisGeocodeCache) PutSearch(ctx context.Context, query string, places []ports.Place) error {
	if r.Client == nil {
		return errors.New("geocode cache: client is nil")
	}

	raw, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("put search cache: encode entry: %w", err)
	}

	if err := r.Client.Set(ctx, searchKey(query), raw, r.TTL).Err(); err != nil {
		return fmt.Errorf("put search cache: %w", err)
	}

	return nil
}

// GetReverse fetches a cached display address for a coordinate.
func (r *RedisGeocodeCache) GetReverse(ctx context.Context, c domain.Coordinate) (string, bool, error) {
	if r.Client == nil {
		return "", false, errors.New("geocode cache: client is nil")
	}

	addr, err := r.Client.Get(ctx, reverseKey(c)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get reverse cache: %w", err)
	}

	return addr, true, nil
}

// PutReverse stores a display address for a coordinate.
func (r *RedisGeocodeCache) PutReverse(ctx context.Context, c domain.Coordinate, address string) error {
	if r.Client == nil {
		return errors.New("geocode cache: client is nil")
	}

	if strings.TrimSpace(address) == "" {
		return errors.New("put reverse cache: empty address")
	}

	if err := r.Client.Set(ctx, reverseKey(c), address, r.TTL).Err(); err != nil {
		return fmt.Errorf("put reverse cache: %w", err)
	}

	return nil
}
