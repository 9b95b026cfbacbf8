package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const requestIDKey = "requestid"

func (m *Middleware) RequestIDMiddleware() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	})
}

// RequestID returns the id stamped by RequestIDMiddleware, or "" outside it.
func RequestID(ctx *fiber.Ctx) string {
	if id, ok := ctx.Locals(requestIDKey).(string); ok {
		return id
	}
	return ""
}
