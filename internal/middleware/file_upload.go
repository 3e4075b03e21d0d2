package middleware

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aibraindb/LexiUIServer/internal/telemetry"
)

const UploadMIMEKey = "uploadMIME"

// UploadLimit rejects a multipart file in field that exceeds maxBytes with 413.
// Requests without the field pass through untouched so the handler can
// report what is missing. The sniffed content type is kept for logging only;
// deciding whether the bytes are an image is left to the decoder.
func UploadLimit(field string, maxBytes int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost || !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
			return c.Next()
		}
		form, err := c.MultipartForm()
		if err != nil {
			return c.Next()
		}
		files := form.File[field]
		if len(files) == 0 {
			return c.Next()
		}

		fh := files[0]
		if fh.Size > maxBytes {
			log := telemetry.L().With().Str("req_id", RequestIDFrom(c)).Logger()
			log.Warn().
				Int64("size", fh.Size).
				Int64("max", maxBytes).
				Msg("upload_too_large")
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"error": "file too large",
			})
		}
		c.Locals(UploadMIMEKey, sniff(fh))
		return c.Next()
	}
}

func sniff(fh *multipart.FileHeader) string {
	f, err := fh.Open()
	if err != nil {
		return ""
	}
	defer f.Close()

	head := make([]byte, 512) // http.DetectContentType reads at most 512 bytes
	n, _ := f.Read(head)
	return http.DetectContentType(head[:n])
}
