package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/memory/v2"
)

// RateLimiter caps OCR requests per client IP. Only POST /ocr is counted.
func RateLimiter(maxRequests int, window time.Duration) fiber.Handler {
	storage := memory.New(memory.Config{
		GCInterval: 10 * time.Minute,
	})

	return limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "ocr:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
		},
		Next: func(c *fiber.Ctx) bool {
			return c.Path() != "/ocr" || c.Method() != fiber.MethodPost
		},
		Storage: storage,
	})
}
