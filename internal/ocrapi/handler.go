package ocrapi

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/aibraindb/LexiUIServer/internal/img"
	"github.com/aibraindb/LexiUIServer/internal/metrics"
	"github.com/aibraindb/LexiUIServer/internal/middleware"
	"github.com/aibraindb/LexiUIServer/internal/pipeline"
	"github.com/aibraindb/LexiUIServer/internal/telemetry"
)

const (
	pageField       = "page"
	pageNumberField = "pageNumber"
)

type Handler struct {
	svc *pipeline.Service
}

func NewHandler(svc *pipeline.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the OCR routes. m may be nil, in which case /metrics is not served.
func (h *Handler) Register(app fiber.Router, m *metrics.Metrics) {
	app.Get("/health", h.Health)
	app.Get("/ocr", h.Usage)
	app.Options("/ocr", h.Preflight)
	app.Post("/ocr", h.Recognize)
	if m != nil {
		app.Get("/metrics", m.Handler())
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handler) Usage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true, "msg": "POST an image/png as field 'page'."})
}

// Preflight answers OPTIONS /ocr with 204 and no body. CORS headers, when
// configured, are added by the CORS middleware.
func (h *Handler) Preflight(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) Recognize(c *fiber.Ctx) error {
	log := telemetry.L().With().Str("req_id", middleware.RequestIDFrom(c)).Logger()

	fh, err := c.FormFile(pageField)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "missing file field 'page'",
		})
	}

	f, err := fh.Open()
	if err != nil {
		log.Error().Err(err).Msg("upload_open_fail")
		return internalError(c)
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		log.Error().Err(err).Msg("upload_read_fail")
		return internalError(c)
	}

	page := parsePageNumber(c.FormValue(pageNumberField), log)

	resp, err := h.svc.Process(c.UserContext(), pipeline.UploadedPage{Data: data, Number: page})
	if err != nil {
		ev := log.Error().Err(err).Int("page", page).Int("bytes", len(data))
		if mime, ok := c.Locals(middleware.UploadMIMEKey).(string); ok {
			ev = ev.Str("mime", mime)
		}
		if errors.Is(err, img.ErrDecode) {
			ev.Msg("decode_fail")
		} else {
			ev.Msg("ocr_fail")
		}
		return internalError(c)
	}

	log.Info().
		Int("page", resp.Page).
		Int("width", resp.Width).
		Int("height", resp.Height).
		Int("tokens", len(resp.Tokens)).
		Msg("ocr_done")
	return c.JSON(resp)
}

// parsePageNumber falls back to page 1 for a missing, non-numeric or
// non-positive value.
func parsePageNumber(raw string, log zerolog.Logger) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return pipeline.DefaultPageNumber
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		log.Warn().Str("page_number", raw).Msg("page_number_invalid_default_used")
		return pipeline.DefaultPageNumber
	}
	return n
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
