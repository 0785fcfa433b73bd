package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const loginLimitKeyPrefix = "login_attempts:"

var loginLimitScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

local windowStart = now - window

redis.call('ZREMRANGEBYSCORE', key, '-inf', windowStart)

local count = redis.call('ZCARD', key)

if count >= limit then
    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    local resetAt = 0
    if #oldest >= 2 then
        resetAt = tonumber(oldest[2]) + window
    else
        resetAt = now + window
    end
    return {0, resetAt}
end

redis.call('ZADD', key, now, now .. '-' .. math.random())
redis.call('EXPIRE', key, window + 10)

return {1, now + window}
`)

// RedisLoginLimiter applies a sliding-window cap on team login attempts per
// client IP, shared across server instances.
type RedisLoginLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLoginLimiter(client *redis.Client, limit int, window time.Duration) *RedisLoginLimiter {
	return &RedisLoginLimiter{client: client, limit: limit, window: window}
}

func (l *RedisLoginLimiter) check(ctx context.Context, ip string) (allowed bool, resetAt int64, err error) {
	now := time.Now().Unix()
	res, err := loginLimitScript.Run(ctx, l.client,
		[]string{loginLimitKeyPrefix + ip},
		now, int64(l.window.Seconds()), l.limit,
	).Int64Slice()
	if err != nil {
		return false, 0, err
	}
	if len(res) != 2 {
		return true, 0, nil
	}
	return res[0] == 1, res[1], nil
}

func (l *RedisLoginLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			ip = forwarded
		}

		allowed, resetAt, err := l.check(r.Context(), ip)
		if err != nil {
			// Redis being down should not lock everyone out of login.
			log.Error().Err(err).Msg("login rate limiter: redis error, allowing request")
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			retryAfter := resetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"error": "Too many login attempts. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
