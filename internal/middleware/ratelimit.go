package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"servicehub/internal/pkg/response"
)

// RateLimit is a fixed-window limiter keyed by user id, or client IP for
// anonymous callers. Reads are not counted. A nil client disables it and
// redis errors let the request through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, keyPrefix string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		clientID := "ip:" + c.ClientIP()
		if uid := UserID(c); uid > 0 {
			clientID = "uid:" + strconv.FormatInt(uid, 10)
		}
		key := keyPrefix + ":" + clientID

		count, ttl, err := fixedWindow(c.Request.Context(), rdb, key, window)
		if err != nil {
			if log != nil {
				log.Warn("rate limiter unavailable", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		if remaining := limit - int(count); remaining > 0 {
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		} else {
			c.Header("X-RateLimit-Remaining", "0")
		}

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			response.Abort(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Try again in "+ttl.String())
			return
		}

		c.Next()
	}
}

// fixedWindow counts a hit on key and returns the running count with the time
// left in the window. Any key found without an expiry gets one, so a failed
// EXPIRE is repaired on the next hit instead of pinning the counter forever.
func fixedWindow(ctx context.Context, rdb redis.Cmdable, key string, window time.Duration) (int64, time.Duration, error) {
	var incr *redis.IntCmd
	var ttlCmd *redis.DurationCmd
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttlCmd = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("count hit: %w", err)
	}

	ttl := ttlCmd.Val()
	if missingExpiry(ttl) {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("set window expiry: %w", err)
		}
		ttl = window
	}
	return incr.Val(), ttl, nil
}

// missingExpiry reports a TTL reply for a key that has no expiry (-1) or is
// already gone (-2).
func missingExpiry(ttl time.Duration) bool {
	return ttl < 0
}
