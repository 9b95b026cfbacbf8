package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

const (
	streamReadSize  = 32 * 1024
	errorBodyLimit  = 64 * 1024
	eventStreamType = "text/event-stream"
)

// openEventStream posts payload and hands back the response body untouched.
// A non-2xx status is turned into an UpstreamError before any byte is read
// from the body, so the caller can still answer with a plain JSON error.
func openEventStream(ctx context.Context, client *http.Client, provider, url string, header http.Header, payload any) (Stream, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s stream encode error: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s stream request error: %w", provider, err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", eventStreamType)

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s stream request error: %w", provider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &UpstreamError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Message:    gjson.GetBytes(raw, "error.message").String(),
		}
	}

	return &rawStream{provider: provider, body: resp.Body, buf: make([]byte, streamReadSize)}, nil
}

// rawStream yields the upstream body exactly as it arrives off the wire.
type rawStream struct {
	provider string
	body     io.ReadCloser
	buf      []byte
	err      error
}

func (s *rawStream) Next() ([]byte, error) {
	for s.err == nil {
		n, err := s.body.Read(s.buf)
		if err != nil {
			s.err = err
		}
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, s.buf[:n])
			return chunk, nil
		}
	}

	if errors.Is(s.err, io.EOF) {
		return nil, io.EOF
	}
	return nil, fmt.Errorf("%s stream read error: %w", s.provider, s.err)
}

func (s *rawStream) Close() error {
	if s.err == nil {
		s.err = io.EOF
	}
	return s.body.Close()
}
