package config

import (
	"fmt"
	"strings"

	"github.com/evandrarf/gnrs-ai-tutor/internal/pkg/llm"
	"github.com/spf13/viper"
)

// NewLLM builds the generative backend selected by llm.provider. The API key is
// looked up through viper on every call, never cached here.
func NewLLM(config *viper.Viper) (llm.Client, error) {
	provider := strings.ToLower(strings.TrimSpace(config.GetString("llm.provider")))

	switch provider {
	case "", "gemini":
		return llm.NewGeminiClient(
			func() string { return config.GetString("llm.gemini.api_key") },
			config.GetString("llm.gemini.model"),
			config.GetString("llm.gemini.base_url"),
		), nil
	case "openai":
		return llm.NewOpenAIClient(
			func() string { return config.GetString("llm.openai.api_key") },
			config.GetString("llm.openai.model"),
			config.GetString("llm.openai.base_url"),
		), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}
