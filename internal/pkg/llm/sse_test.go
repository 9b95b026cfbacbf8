package llm

import (
	"errors"
	"io"
	"testing"
)

type bodyRead struct {
	data string
	err  error
}

type scriptedBody struct {
	reads  []bodyRead
	closed bool
}

func (b *scriptedBody) Read(p []byte) (int, error) {
	if len(b.reads) == 0 {
		return 0, io.EOF
	}
	r := b.reads[0]
	b.reads = b.reads[1:]
	return copy(p, r.data), r.err
}

func (b *scriptedBody) Close() error {
	b.closed = true
	return nil
}

func TestRawStreamKeepsDataReadWithError(t *testing.T) {
	reset := errors.New("connection reset")
	body := &scriptedBody{reads: []bodyRead{
		{"data: a\n\n", nil},
		{"data: b\n\n", reset},
	}}
	s := &rawStream{provider: "gemini", body: body, buf: make([]byte, 64)}

	for _, want := range []string{"data: a\n\n", "data: b\n\n"} {
		chunk, err := s.Next()
		if err != nil || string(chunk) != want {
			t.Fatalf("Next() = %q, %v; want %q", chunk, err, want)
		}
	}

	if _, err := s.Next(); !errors.Is(err, reset) {
		t.Fatalf("expected read error after the data, got %v", err)
	}

	if err := s.Close(); err != nil || !body.closed {
		t.Errorf("Close should close the body, got %v", err)
	}
}

func TestRawStreamEOF(t *testing.T) {
	body := &scriptedBody{reads: []bodyRead{{"data: [DONE]\n\n", io.EOF}}}
	s := &rawStream{provider: "openai", body: body, buf: make([]byte, 64)}

	if chunk, err := s.Next(); err != nil || string(chunk) != "data: [DONE]\n\n" {
		t.Fatalf("Next() = %q, %v", chunk, err)
	}
	if _, err := s.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}
