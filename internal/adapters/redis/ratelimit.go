package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/newmandigital/catalog/internal/adapters/http/middleware"
)

// Fixed window counter. Returns {count, remaining window in ms}.
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
return {count, ttl}
`)

type RateLimiter struct {
	client *Client
}

func NewRateLimiter(client *Client) middleware.RateLimiter {
	return &RateLimiter{client: client}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	res, err := rateLimitScript.Run(ctx, r.client.rdb, []string{"ratelimit:" + key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return false, 0, err
	}

	count, ttl := res[0], res[1]
	if count <= int64(limit) {
		return true, 0, nil
	}
	if ttl < 0 {
		ttl = window.Milliseconds()
	}
	return false, time.Duration(ttl) * time.Millisecond, nil
}
