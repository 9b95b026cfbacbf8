package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	openAIKeyEnv         = "OPENAI_API_KEY"
)

// OpenAIClient talks to any OpenAI-compatible chat-completions endpoint,
// including Gemini's own compatibility layer.
type OpenAIClient struct {
	APIKey     KeyFunc
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

func NewOpenAIClient(apiKey KeyFunc, model string, baseURL string) *OpenAIClient {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}

	return &OpenAIClient{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
	}
}

func (c *OpenAIClient) newClient() (*openai.Client, error) {
	key := strings.TrimSpace(resolveKey(c.APIKey))
	if key == "" {
		return nil, missingKey(openAIKeyEnv)
	}

	config := openai.DefaultConfig(key)
	config.BaseURL = c.BaseURL
	if c.HTTPClient != nil {
		config.HTTPClient = c.HTTPClient
	}
	return openai.NewClientWithConfig(config), nil
}

func (c *OpenAIClient) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	client, err := c.newClient()
	if err != nil {
		return "", err
	}

	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: req.Prompt,
				},
			},
			Temperature: req.Temperature,
			MaxTokens:   int(req.MaxOutputTokens),
		},
	)
	if err != nil {
		return "", openAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// StreamChat returns the chat-completions event stream body unchanged, [DONE]
// terminator included. go-openai decodes chunks, so the request is sent directly.
func (c *OpenAIClient) StreamChat(ctx context.Context, req ChatRequest) (Stream, error) {
	key := strings.TrimSpace(resolveKey(c.APIKey))
	if key == "" {
		return nil, missingKey(openAIKeyEnv)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+key)

	return openEventStream(ctx, c.HTTPClient, "openai", strings.TrimRight(c.BaseURL, "/")+"/chat/completions", header, openai.ChatCompletionRequest{
		Model:    c.Model,
		Messages: messages,
		Stream:   true,
	})
}

func openAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{Provider: "openai", StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{Provider: "openai", StatusCode: reqErr.HTTPStatusCode}
	}

	return fmt.Errorf("openai generate error: %w", err)
}
