package route

import (
	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/handler"
	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupTutorRoute(api *fiber.App, handler handler.TutorHandler, m *middleware.Middleware) {
	api.Get("/health", handler.Health)

	router := api.Group("/ai-tutor")
	{
		router.Post("/", handler.Dispatch)
		router.Get("/sessions/:session_id/interactions", handler.ListInteractions)
	}

	// path used by supabase.functions.invoke("ai-tutor")
	api.Post("/functions/v1/ai-tutor", handler.Dispatch)
}
