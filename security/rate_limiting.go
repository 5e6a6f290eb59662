package security

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redis *redis.Client
}

func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{redis: redisClient}
}

// BookingRateLimit caps write operations per identity in a fixed one-minute
// window. Authenticated requests are keyed by user, anonymous ones by IP.
func (r *RateLimiter) BookingRateLimit(maxPerMinute int64) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		identity := e.RealIP()
		if e.Auth != nil {
			identity = fmt.Sprintf("user:%s", e.Auth.Id)
		}

		key := fmt.Sprintf("ratelimit:booking:%s", identity)
		count, err := r.redis.Incr(context.Background(), key).Result()
		if err == nil {
			if count == 1 {
				r.redis.Expire(context.Background(), key, time.Minute)
			}
			if count > maxPerMinute {
				return e.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "Rate limit exceeded. Please try again later.",
				})
			}
		}

		return e.Next()
	}
}

// AntiBotCheck rejects obvious scripted clients before they reach the
// booking workflows.
func (r *RateLimiter) AntiBotCheck() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userAgent := e.Request.Header.Get("User-Agent")
		if r.isSuspiciousUserAgent(userAgent) {
			return e.JSON(http.StatusForbidden, map[string]string{
				"error": "Access denied",
			})
		}

		ip := e.RealIP()
		key := fmt.Sprintf("antibot:%s", ip)

		count, err := r.redis.Incr(context.Background(), key).Result()
		if err == nil {
			if count == 1 {
				r.redis.Expire(context.Background(), key, time.Minute)
			}
			if count > 30 { // Max 30 requests per minute
				return e.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "Too many requests",
				})
			}
		}

		return e.Next()
	}
}

func (r *RateLimiter) isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}
