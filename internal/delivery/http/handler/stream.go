package handler

import (
	"bufio"
	"errors"
	"io"

	"github.com/evandrarf/gnrs-ai-tutor/internal/pkg/llm"
)

// pipeStream forwards frames one at a time and flushes after each, so nothing
// beyond the current frame is held in memory. A failed write means the client
// went away; the caller then cancels the upstream request.
func pipeStream(w *bufio.Writer, s llm.Stream) error {
	for {
		frame, err := s.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := w.Write(frame); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
}
