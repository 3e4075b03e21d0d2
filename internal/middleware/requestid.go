package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const ReqIDKey = "reqID"

const maxReqIDLen = 128

// RequestID propagates X-Request-ID, minting a UUID when the caller sent none
// or sent something unusable.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(fiber.HeaderXRequestID)
		if !validRequestID(rid) {
			rid = uuid.New().String()
		}
		c.Set(fiber.HeaderXRequestID, rid)
		c.Locals(ReqIDKey, rid)
		return c.Next()
	}
}

// RequestIDFrom returns the id stored by RequestID, or "" outside of it.
func RequestIDFrom(c *fiber.Ctx) string {
	rid, _ := c.Locals(ReqIDKey).(string)
	return rid
}

func validRequestID(s string) bool {
	if s == "" || len(s) > maxReqIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
