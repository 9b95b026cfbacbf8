package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const corsAllowHeaders = "authorization, x-client-info, apikey, content-type"

func (m *Middleware) CorsMiddleware() fiber.Handler {
	allowOrigins := "*"
	if m != nil && m.Config != nil {
		if v := m.Config.GetString("api.cors.origins"); v != "" {
			allowOrigins = v
		}
	}

	handler := cors.New(cors.Config{
		AllowHeaders:  corsAllowHeaders,
		AllowMethods:  "GET, POST, OPTIONS",
		AllowOrigins:  allowOrigins,
		ExposeHeaders: "Content-Length, Content-Type, X-Request-ID",
	})
	if allowOrigins != "*" {
		return handler
	}

	// cors.New skips requests without an Origin header; a wildcard policy
	// still stamps every response.
	return func(ctx *fiber.Ctx) error {
		ctx.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		ctx.Set(fiber.HeaderAccessControlAllowHeaders, corsAllowHeaders)
		return handler(ctx)
	}
}
