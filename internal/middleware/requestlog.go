package middleware

import (
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/aibraindb/LexiUIServer/internal/config"
	"github.com/aibraindb/LexiUIServer/internal/telemetry"
)

// quietPaths are polled by probes and scrapers and only logged on failure.
var quietPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

func RequestLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		if _, quiet := quietPaths[c.Path()]; quiet && status < 400 {
			return err
		}

		log := telemetry.L().With().Str("req_id", RequestIDFrom(c)).Logger()
		ev := log.Info()
		if status >= 500 {
			ev = log.Error()
		} else if status >= 400 {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Str("ua", c.Get(fiber.HeaderUserAgent)).
			Msg("http_request")
		return err
	}
}

func Recover() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log := telemetry.L().With().Str("req_id", RequestIDFrom(c)).Logger()
				log.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("panic_recovered")
				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
			}
		}()
		return c.Next()
	}
}

// CORS allows every origin when CORS_ORIGINS is "*". Credentials are only
// allowed for an explicit origin list since browsers reject them with a wildcard.
func CORS(cfg *config.Config) fiber.Handler {
	origins := strings.Join(cfg.CORSOrigins, ",")
	wildcard := origins == "" || origins == "*"
	if wildcard {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: !wildcard,
		MaxAge:           86400,
	})
}
