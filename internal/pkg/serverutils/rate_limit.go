package serverutils

import (
	"time"

	"doc-chat-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimitMiddleware caps requests per client IP per minute for the route it
// is attached to. Exceeding the cap surfaces the rate-limited error kind, not
// a generic failure.
func RateLimitMiddleware(maxPerMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        maxPerMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + ":" + c.Path()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return apperror.RateLimited()
		},
	})
}
