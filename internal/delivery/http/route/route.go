package route

import (
	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/handler"
	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type RouteConfig struct {
	Api          *fiber.App
	Middleware   *middleware.Middleware
	TutorHandler handler.TutorHandler
}

func Setup(c *RouteConfig) {
	c.Api.Use(recover.New())
	c.Api.Use(c.Middleware.RequestIDMiddleware())
	c.Api.Use(c.Middleware.AccessLogMiddleware())
	c.Api.Use(c.Middleware.CorsMiddleware())

	SetupTutorRoute(c.Api, c.TutorHandler, c.Middleware)
}
