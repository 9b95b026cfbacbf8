package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const (
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	geminiAPIVersion     = "v1beta"
	geminiKeyEnv         = "GEMINI_API_KEY"
)

type GeminiClient struct {
	APIKey     KeyFunc
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

func NewGeminiClient(apiKey KeyFunc, model string, baseURL string) *GeminiClient {
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiClient{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
	}
}

func (c *GeminiClient) newClient(ctx context.Context) (*genai.Client, error) {
	key := strings.TrimSpace(resolveKey(c.APIKey))
	if key == "" {
		return nil, missingKey(geminiKeyEnv)
	}

	config := &genai.ClientConfig{
		APIKey:     key,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.HTTPClient,
	}
	if c.BaseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: c.BaseURL}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("gemini client init error: %w", err)
	}
	return client, nil
}

func (c *GeminiClient) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	client, err := c.newClient(ctx)
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(ctx, c.Model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: req.MaxOutputTokens,
	})
	if err != nil {
		return "", geminiError(err)
	}

	return resp.Text(), nil
}

// StreamChat calls streamGenerateContent with alt=sse and returns the response
// body as-is. genai only exposes decoded chunks, so this one call goes over
// plain REST to keep the upstream frames byte for byte.
func (c *GeminiClient) StreamChat(ctx context.Context, req ChatRequest) (Stream, error) {
	key := strings.TrimSpace(resolveKey(c.APIKey))
	if key == "" {
		return nil, missingKey(geminiKeyEnv)
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.Role(role)))
	}

	header := http.Header{}
	header.Set("x-goog-api-key", key)

	return openEventStream(ctx, c.HTTPClient, "gemini", c.streamURL(), header, geminiStreamRequest{Contents: contents})
}

type geminiStreamRequest struct {
	Contents []*genai.Content `json:"contents"`
}

func (c *GeminiClient) streamURL() string {
	base := c.BaseURL
	if base == "" {
		base = DefaultGeminiBaseURL
	}
	model := strings.TrimPrefix(c.Model, "models/")
	return strings.TrimRight(base, "/") + "/" + geminiAPIVersion + "/models/" + model + ":streamGenerateContent?alt=sse"
}

func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{Provider: "gemini", StatusCode: apiErr.Code, Message: apiErr.Message}
	}
	return fmt.Errorf("gemini generate error: %w", err)
}
