package config

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evandrarf/gnrs-ai-tutor/internal/pkg/llm"
	"github.com/evandrarf/gnrs-ai-tutor/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type fakeLLM struct {
	text   string
	frames []string
	err    error
}

func (f *fakeLLM) GenerateText(context.Context, llm.TextRequest) (string, error) {
	return f.text, f.err
}

func (f *fakeLLM) StreamChat(context.Context, llm.ChatRequest) (llm.Stream, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &fakeStream{frames: f.frames}, nil
}

type fakeStream struct {
	frames []string
}

func (s *fakeStream) Next() ([]byte, error) {
	if len(s.frames) == 0 {
		return nil, io.EOF
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return []byte(f), nil
}

func (s *fakeStream) Close() error { return nil }

func newTestApp(t *testing.T, client llm.Client) *fiber.App {
	t.Helper()

	v := viper.New()
	log := logrus.New()
	log.SetOutput(io.Discard)

	api := NewAPI(v, log)
	err := Bootstrap(&BootstrapConfig{
		Api:       api,
		Config:    v,
		LLM:       client,
		Log:       log,
		Validator: validate.NewValidator(),
	})
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	return api
}

func post(t *testing.T, app *fiber.App, body string) (*http.Response, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/ai-tutor", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var out map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
	}
	return resp, out
}

func TestCheckAnswerEndToEnd(t *testing.T) {
	app := newTestApp(t, &fakeLLM{text: "Great job, 2+2 is indeed 4."})

	resp, body := post(t, app, `{"action":"check_answer","question":{"question":"2+2?","correctAnswer":"4","userAnswer":" 4 "}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["isCorrect"] != true {
		t.Errorf("expected isCorrect true, got %v", body["isCorrect"])
	}
	if body["feedback"] != "Great job, 2+2 is indeed 4." {
		t.Errorf("unexpected feedback %v", body["feedback"])
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected allow-origin *, got %q", got)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected a request id header")
	}
}

func TestChatWithoutMessages(t *testing.T) {
	app := newTestApp(t, &fakeLLM{})

	resp, body := post(t, app, `{"action":"chat"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if body["error"] != "Messages are required" {
		t.Errorf("unexpected error body %v", body)
	}
}

func TestMissingFieldsAre500(t *testing.T) {
	app := newTestApp(t, &fakeLLM{})

	for _, action := range []string{"analyze_material", "generate_question", "check_answer", "get_summary"} {
		resp, body := post(t, app, `{"action":"`+action+`"}`)
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("%s: expected 500, got %d", action, resp.StatusCode)
		}
		if msg, _ := body["error"].(string); msg == "" {
			t.Errorf("%s: expected error string, got %v", action, body)
		}
	}
}

func TestUnknownAction(t *testing.T) {
	app := newTestApp(t, &fakeLLM{})

	resp, body := post(t, app, `{"action":"unknown_value"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "unknown_value") {
		t.Errorf("error should contain the action, got %v", body)
	}
}

func TestMalformedBody(t *testing.T) {
	app := newTestApp(t, &fakeLLM{})

	resp, body := post(t, app, `{"action":`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if body["error"] != "Invalid request body" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestInvalidMessageRole(t *testing.T) {
	app := newTestApp(t, &fakeLLM{})

	resp, body := post(t, app, `{"action":"chat","messages":[{"role":"system","content":"hi"}]}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "messages[0].role") {
		t.Errorf("expected field error, got %v", body)
	}
}

func TestMissingCredential(t *testing.T) {
	// no LLM injected: the real gemini client is built from an empty config
	app := newTestApp(t, nil)

	resp, body := post(t, app, `{"action":"get_summary","lessonContext":{"topic":"Fractions"}}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "GEMINI_API_KEY") {
		t.Errorf("error should reference the missing key, got %v", body)
	}
}

func TestUpstreamFailure(t *testing.T) {
	app := newTestApp(t, &fakeLLM{err: &llm.UpstreamError{Provider: "gemini", StatusCode: 429}})

	resp, body := post(t, app, `{"action":"generate_question","lessonContext":{"topic":"Fractions"}}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "429") {
		t.Errorf("error should carry the upstream status, got %v", body)
	}
}

func TestGenerateQuestionEmptyFallback(t *testing.T) {
	app := newTestApp(t, &fakeLLM{text: "no structured output"})

	req := httptest.NewRequest(http.MethodPost, "/ai-tutor", strings.NewReader(`{"action":"generate_question","lessonContext":{"topic":"Fractions"}}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if string(raw) != `{"questions":[]}` {
		t.Errorf("expected exactly {\"questions\":[]}, got %s", raw)
	}
}

func TestAnalyzeMaterialParseFallback(t *testing.T) {
	app := newTestApp(t, &fakeLLM{text: "cannot help"})

	resp, body := post(t, app, `{"action":"analyze_material","material":"Ghana became independent in 1957."}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["error"] != "Failed to parse analysis" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestGetSummary(t *testing.T) {
	app := newTestApp(t, &fakeLLM{text: "You did well today."})

	resp, body := post(t, app, `{"action":"get_summary","sessionId":"abc","lessonContext":{"topic":"Fractions","difficulty":"easy","learningStyle":"visual"}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["summary"] != "You did well today." {
		t.Errorf("unexpected body %v", body)
	}
}

func TestChatStreamsUpstreamFrames(t *testing.T) {
	frames := []string{
		"data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"Hel\"}]}}]}\r\n\r\n",
		"data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"lo\"}]}}]}\r\n\r\n",
	}
	app := newTestApp(t, &fakeLLM{frames: frames})

	req := httptest.NewRequest(http.MethodPost, "/ai-tutor", strings.NewReader(`{"action":"chat","messages":[{"role":"user","content":"hi"}]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("expected text/event-stream, got %q", ct)
	}
	if string(raw) != frames[0]+frames[1] {
		t.Errorf("frames must be forwarded unchanged, got %q", raw)
	}
}

func TestSupabaseFunctionPath(t *testing.T) {
	app := newTestApp(t, &fakeLLM{text: "ok"})

	req := httptest.NewRequest(http.MethodPost, "/functions/v1/ai-tutor", strings.NewReader(`{"action":"check_answer","question":{"question":"q","correctAnswer":"a","userAnswer":"b"}}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestCorsPreflight(t *testing.T) {
	app := newTestApp(t, &fakeLLM{})

	req := httptest.NewRequest(http.MethodOptions, "/ai-tutor", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "authorization, content-type")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected allow-origin *, got %q", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Headers"); !strings.Contains(got, "x-client-info") || !strings.Contains(got, "apikey") {
		t.Errorf("unexpected allow-headers %q", got)
	}
}

func TestInteractionsDisabled(t *testing.T) {
	app := newTestApp(t, &fakeLLM{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ai-tutor/sessions/abc/interactions", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(raw) != `{"interactions":[]}` {
		t.Errorf("unexpected response %d %s", resp.StatusCode, raw)
	}
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t, &fakeLLM{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(raw), `"error"`) {
		t.Errorf("expected error body, got %s", raw)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, &fakeLLM{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestCorsHeaderWithoutOrigin(t *testing.T) {
	app := newTestApp(t, &fakeLLM{})

	req := httptest.NewRequest(http.MethodPost, "/ai-tutor", strings.NewReader(`{"action":"chat"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected allow-origin * without an Origin header, got %q", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Headers"); got != "authorization, x-client-info, apikey, content-type" {
		t.Errorf("unexpected allow-headers %q", got)
	}
}

func TestCorsHeaderOnStream(t *testing.T) {
	app := newTestApp(t, &fakeLLM{frames: []string{"data: {}\n\n"}})

	req := httptest.NewRequest(http.MethodPost, "/ai-tutor", strings.NewReader(`{"action":"chat","messages":[{"role":"user","content":"hi"}]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected allow-origin * on the event stream, got %q", got)
	}
}
