package serverutils

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware is a fixed-window per-IP limiter backed by redis.
// When redis is unreachable the request passes through; the limiter is a
// safeguard, not a gate the whole service depends on.
func RateLimitMiddleware(rdb *redis.Client, limit int, window time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if rdb == nil {
			return ctx.Next()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", ctx.Path(), ctx.IP())

		count, err := rdb.Incr(ctx.Context(), key).Result()
		if err != nil {
			log.Printf("[WARN] Rate limiter unavailable, allowing request: %v", err)
			return ctx.Next()
		}
		if count == 1 {
			rdb.Expire(ctx.Context(), key, window)
		}

		if count > int64(limit) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		}

		return ctx.Next()
	}
}
