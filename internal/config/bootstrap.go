package config

import (
	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/handler"
	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/middleware"
	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/repository"
	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/route"
	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/usecase"
	"github.com/evandrarf/gnrs-ai-tutor/internal/pkg/llm"
	"github.com/evandrarf/gnrs-ai-tutor/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type BootstrapConfig struct {
	Api       *fiber.App
	Config    *viper.Viper
	DB        *gorm.DB // nil disables the interaction log
	LLM       llm.Client
	Log       *logrus.Logger
	Validator *validate.Validator
}

func Bootstrap(config *BootstrapConfig) error {

	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:    config.Log,
		Config: config.Config,
	})

	client := config.LLM
	if client == nil {
		var err error
		client, err = NewLLM(config.Config)
		if err != nil {
			return err
		}
	}

	personaPrompt := ""
	if config.Config != nil {
		personaPrompt = config.Config.GetString("tutor.persona_prompt")
	}

	var interactionRepo repository.TutorInteractionRepository
	if config.DB != nil {
		interactionRepo = repository.NewTutorInteractionRepository(config.DB)
	}

	tutorUsecase := usecase.NewTutorUsecase(usecase.TutorConfig{
		DB:            config.DB,
		LLM:           client,
		PersonaPrompt: personaPrompt,
		Repository:    interactionRepo,
		Log:           config.Log,
	})
	tutorHandler := handler.NewTutorHandler(config.Validator, config.Log, tutorUsecase)

	route.Setup(&route.RouteConfig{
		Api:          config.Api,
		Middleware:   mid,
		TutorHandler: tutorHandler,
	})

	return nil
}
