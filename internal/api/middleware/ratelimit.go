package middleware

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gsc-community/events-api/internal/api/handler/v1/response"
)

// tokenBucketScript refills and consumes atomically so concurrent requests
// against the same bucket never double-spend.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill_tokens = tonumber(ARGV[3])
	local interval_ms = tonumber(ARGV[4])
	local ttl_seconds = tonumber(ARGV[5])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 and refill_tokens > 0 then
		local elapsed = math.max(0, now_ms - last_refill)
		local intervals = math.floor(elapsed / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + (intervals * refill_tokens))
			last_refill = last_refill + (intervals * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		local until_next = interval_ms - (now_ms - last_refill)
		if until_next < 0 then until_next = 0 end
		retry_after_ms = until_next
	end

	redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

// RateLimit throttles an action per client IP with a redis token bucket.
// When redis is unavailable (or rdb is nil) the request passes through:
// throttling is best-effort abuse control, not a security boundary.
func RateLimit(rdb *redis.Client, action string, capacity int, refillEvery time.Duration) gin.HandlerFunc {
	if rdb == nil {
		return func(ctx *gin.Context) { ctx.Next() }
	}

	ttl := 10 * refillEvery
	if ttl < time.Minute {
		ttl = time.Minute
	}

	return func(ctx *gin.Context) {
		key := "ratelimit:" + action + ":" + ctx.ClientIP()

		vals, err := tokenBucketScript.Run(ctx.Request.Context(), rdb, []string{key},
			time.Now().UnixMilli(),
			capacity,
			1,
			refillEvery.Milliseconds(),
			int64(ttl/time.Second),
		).Result()
		if err != nil {
			zap.L().Warn(fmt.Sprintf("rate limiter unavailable for %v: %v", key, err))
			ctx.Next()
			return
		}

		arr, ok := vals.([]interface{})
		if !ok || len(arr) != 3 {
			zap.L().Warn(fmt.Sprintf("unexpected rate limiter reply for %v: %#v", key, vals))
			ctx.Next()
			return
		}

		allowed := asInt64(arr[0]) == 1
		remaining := asInt64(arr[1])
		retryMs := asInt64(arr[2])

		ctx.Header("X-RateLimit-Limit", strconv.Itoa(capacity))
		ctx.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if !allowed {
			secs := int(math.Ceil(float64(retryMs) / 1000.0))
			if secs < 1 {
				secs = 1
			}
			ctx.Header("Retry-After", strconv.Itoa(secs))
			response.RenderErr(ctx, response.ErrTooManyRequests(secs))
			return
		}

		ctx.Next()
	}
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
