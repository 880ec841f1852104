package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/libertysafety/liberty-server-go/internal/audit"
	"github.com/libertysafety/liberty-server-go/internal/config"
	apperrors "github.com/libertysafety/liberty-server-go/internal/errors"
	"github.com/libertysafety/liberty-server-go/internal/httputil"
)

const loginLimitKeyPrefix = "loginlimit:"

var loginLimitScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

local windowStart = now - window

redis.call('ZREMRANGEBYSCORE', key, '-inf', windowStart)

local count = redis.call('ZCARD', key)

if count >= limit then
    return 0
end

redis.call('ZADD', key, now, now .. '-' .. math.random())
redis.call('EXPIRE', key, window + 10)

return 1
`)

// LoginRateLimiter throttles credential-guessing by source IP with a
// sliding window kept in redis, so the budget holds across instances.
// Redis trouble fails open; login availability wins over strict limits.
type LoginRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewLoginRateLimiter(client *redis.Client) *LoginRateLimiter {
	return &LoginRateLimiter{
		client: client,
		limit:  config.LoginMaxAttempts,
		window: config.LoginWindow,
	}
}

func (l *LoginRateLimiter) allowed(ctx context.Context, ip string) bool {
	now := time.Now().Unix()
	key := loginLimitKeyPrefix + ip

	result, err := loginLimitScript.Run(ctx, l.client, []string{key}, now, int64(l.window.Seconds()), l.limit).Int64()
	if err != nil {
		log.Warn().Err(err).Str("ip", ip).Msg("login rate limit check failed, allowing request")
		return true
	}

	return result == 1
}

func (l *LoginRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			ip = forwarded
		}

		if !l.allowed(r.Context(), ip) {
			audit.LogFromRequest(r, audit.Event{
				Type: audit.EventRateLimitExceed,
				Details: map[string]interface{}{
					"path": r.URL.Path,
				},
			})
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			httputil.WriteError(w, apperrors.RateLimitExceeded())
			return
		}

		next.ServeHTTP(w, r)
	})
}
