package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

const (
	keyPrefix     = "pollbooth:poll:"
	versionSuffix = ":version"
)

// setIfNotOlder writes the view and its version unless the stored version is
// higher. KEYS: view, version. ARGV: payload, version, ttl in milliseconds.
var setIfNotOlder = redis.NewScript(`
local current = redis.call('GET', KEYS[2])
if current and tonumber(current) > tonumber(ARGV[2]) then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// Connect builds a client from either a redis:// URL or a bare host:port and
// pings it.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts := &redis.Options{Addr: redisURL}
	if strings.Contains(redisURL, "://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	return client, nil
}

type pollCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPollCache stores poll views as JSON under a per-poll key with the given
// TTL, next to a version key that fences out stale writes.
func NewPollCache(client *redis.Client, ttl time.Duration) ports.PollCache {
	return &pollCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *pollCache) Get(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	raw, err := c.client.Get(ctx, pollKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached poll: %w", err)
	}

	var poll domain.Poll
	if err := json.Unmarshal(raw, &poll); err != nil {
		return nil, fmt.Errorf("failed to decode cached poll: %w", err)
	}
	return &poll, nil
}

func (c *pollCache) Set(ctx context.Context, poll *domain.Poll) error {
	raw, err := json.Marshal(poll)
	if err != nil {
		return fmt.Errorf("failed to encode poll: %w", err)
	}

	keys := []string{pollKey(poll.ID), versionKey(poll.ID)}
	err = setIfNotOlder.Run(ctx, c.client, keys, raw, poll.Version(), c.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("failed to cache poll: %w", err)
	}
	return nil
}

func (c *pollCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, pollKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached poll: %w", err)
	}
	return nil
}

func pollKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

func versionKey(id uuid.UUID) string {
	return keyPrefix + id.String() + versionSuffix
}
