package ocrapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aibraindb/LexiUIServer/internal/config"
	"github.com/aibraindb/LexiUIServer/internal/metrics"
	"github.com/aibraindb/LexiUIServer/internal/middleware"
	"github.com/aibraindb/LexiUIServer/internal/pipeline"
	"github.com/aibraindb/LexiUIServer/internal/telemetry"
)

// NewApp builds the fiber app with the full middleware chain and routes.
// m may be nil.
func NewApp(cfg *config.Config, svc *pipeline.Service, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "LexiUIServer",
		BodyLimit:             cfg.BodyLimit(),
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Recover())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.RequestLog())
	app.Use(m.Middleware())
	if cfg.SecureHeaders {
		app.Use(middleware.SecureHeaders())
	}
	if cfg.RateLimitMax > 0 {
		app.Use(middleware.RateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow))
	}
	app.Use(middleware.UploadLimit(pageField, int64(cfg.MaxUploadBytes())))

	NewHandler(svc).Register(app, m)
	return app
}

// ErrorHandler renders every error as a JSON body. A body rejected by the
// server limit gets the same 413 message as an oversized page part.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if code == fiber.StatusRequestEntityTooLarge {
		message = "file too large"
	}

	if code >= 500 {
		log := telemetry.L().With().Str("req_id", middleware.RequestIDFrom(c)).Logger()
		log.Error().Err(err).Str("path", c.Path()).Msg("server_error")
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}
