package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Fixed window: the first hit starts the window; the script returns the hit
// count and the remaining window in milliseconds.
const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`

const keyPrefix = "hrcc:rl:"

// RedisStore shares counters between instances.
type RedisStore struct {
	client *redis.Client
	script *redis.Script
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		script: redis.NewScript(rateLimitScript),
	}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	vals, err := s.script.Run(ctx, s.client, []string{keyPrefix + key}, ttl).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("run rate limit script: %w", err)
	}
	if len(vals) != 2 {
		return nil, fmt.Errorf("unexpected rate limit script reply: %v", vals)
	}
	count, pttl := int(vals[0]), vals[1]
	if pttl < 0 {
		pttl = ttl
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return &Result{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   time.Now().Add(time.Duration(pttl) * time.Millisecond),
	}, nil
}
