package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// resetLimitScript counts the request and starts the window on the first hit
// in a single atomic step. A failure between INCR and EXPIRE could otherwise
// leave a counter with no TTL, throttling the email forever.
var resetLimitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n`)

// ResetLimiter throttles forgot-password requests per email, backed by Redis.
// Key format: reset_rl:<email>
type ResetLimiter struct {
	client redis.Scripter
	limit  int
	window time.Duration
}

// NewResetLimiter allows up to limit requests per email inside window.
func NewResetLimiter(client redis.Scripter, limit int, window time.Duration) *ResetLimiter {
	if limit <= 0 {
		limit = 3
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &ResetLimiter{client: client, limit: limit, window: window}
}

// Allow counts the request and reports whether it is inside the quota. The
// window starts at the first request and expires as a whole.
func (l *ResetLimiter) Allow(ctx context.Context, email string) (bool, error) {
	key := fmt.Sprintf("reset_rl:%s", email)

	n, err := resetLimitScript.Run(ctx, l.client, []string{key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("reset limiter: %w", err)
	}
	return n <= int64(l.limit), nil
}
