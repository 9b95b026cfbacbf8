package llm

import (
	"context"
	"errors"
	"fmt"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var ErrMissingAPIKey = errors.New("api key is not configured")

// KeyFunc returns the backend credential. It is called on every backend
// invocation so a rotated or late-provisioned key is picked up without restart.
type KeyFunc func() string

type Message struct {
	Role    string
	Content string
}

// TextRequest is a single-turn generation: the whole prompt travels as one user turn.
type TextRequest struct {
	Prompt          string
	Temperature     float32
	MaxOutputTokens int32
}

type ChatRequest struct {
	Messages []Message
}

// Stream yields the upstream event-stream body in arrival order, unparsed.
// Next returns io.EOF once the upstream body is exhausted.
type Stream interface {
	Next() ([]byte, error)
	Close() error
}

type Client interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
	StreamChat(ctx context.Context, req ChatRequest) (Stream, error)
}

// UpstreamError is a non-2xx answer from the generative backend.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s API error: %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s API error: %d %s", e.Provider, e.StatusCode, e.Message)
}

func missingKey(env string) error {
	return fmt.Errorf("%s is not configured: %w", env, ErrMissingAPIKey)
}

func resolveKey(fn KeyFunc) string {
	if fn == nil {
		return ""
	}
	return fn()
}
