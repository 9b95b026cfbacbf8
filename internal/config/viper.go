package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

func NewViper() *viper.Viper {
	config := viper.New()

	if os.Getenv("ENV") == "production" {
		config.SetConfigName("config.prod")
	} else {
		config.SetConfigName("config")
	}

	config.SetConfigType("yaml")
	config.AddConfigPath(".")

	setDefaults(config)

	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()
	_ = config.BindEnv("llm.gemini.api_key", "GEMINI_API_KEY")
	_ = config.BindEnv("llm.openai.api_key", "OPENAI_API_KEY")

	if err := config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	return config
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("app.name", "gnrs-ai-tutor")
	config.SetDefault("api.listen", ":8080")
	config.SetDefault("api.prefork", false)
	config.SetDefault("api.cors.origins", "*")
	config.SetDefault("log.level", "info")
	config.SetDefault("log.format", "text")
	config.SetDefault("llm.provider", "gemini")
	config.SetDefault("database.enabled", false)
}
