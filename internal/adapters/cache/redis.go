package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seasonal/ladder/internal/domain/tablesort"
)

const defaultTTL = 5 * time.Minute

// Redis implements Standings on a Redis instance, storing each season's
// rows as a JSON blob with a TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOption applies a configuration option to the Redis cache.
type RedisOption func(*Redis)

// WithTTL overrides the expiry applied to cached standings.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, addr, password string, db int, opts ...RedisOption) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	r := &Redis{client: client, ttl: defaultTTL}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

func standingsKey(seasonID string) string {
	return fmt.Sprintf("season:%s:standings", seasonID)
}

// Get returns the cached rows for a season.
func (r *Redis) Get(ctx context.Context, seasonID string) ([]tablesort.PlayerRow, bool, error) {
	data, err := r.client.Get(ctx, standingsKey(seasonID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading standings cache: %w", err)
	}

	var rows []tablesort.PlayerRow
	if err := json.Unmarshal(data, &rows); err != nil {
		// A corrupt entry behaves like a miss; the next Set repairs it.
		return nil, false, nil
	}
	return rows, true, nil
}

// Set stores the rows for a season with the configured TTL.
func (r *Redis) Set(ctx context.Context, seasonID string, rows []tablesort.PlayerRow) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encoding standings: %w", err)
	}
	if err := r.client.Set(ctx, standingsKey(seasonID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("writing standings cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached rows for a season.
func (r *Redis) Invalidate(ctx context.Context, seasonID string) error {
	if err := r.client.Del(ctx, standingsKey(seasonID)).Err(); err != nil {
		return fmt.Errorf("invalidating standings cache: %w", err)
	}
	return nil
}
