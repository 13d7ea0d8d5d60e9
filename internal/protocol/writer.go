package protocol

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"gpu-runtime/internal/services"
)

// Writer serializes responses and events one per line, flushing each.
type Writer struct {
	mu  sync.Mutex
	out *bufio.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: bufio.NewWriter(w)}
}

// Emit writes an event line.
func (w *Writer) Emit(event string, payload any) error {
	line, err := encodeLine(Event{Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event, err)
	}
	return w.writeLine(line)
}

// WriteResponse writes a response line. A result that cannot be encoded is
// replaced by an error response for the same id.
func (w *Writer) WriteResponse(resp Response) error {
	line, err := encodeLine(resp)
	if err != nil {
		line, err = encodeLine(Response{ID: resp.ID, Error: &ErrorBody{Message: fmt.Sprintf("encode response: %v", err)}})
		if err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
	}
	return w.writeLine(line)
}

func (w *Writer) writeLine(line []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.out.Write(line); err != nil {
		return services.Mark(services.ErrOutput, fmt.Errorf("write output: %w", err))
	}
	if err := w.out.Flush(); err != nil {
		return services.Mark(services.ErrOutput, fmt.Errorf("flush output: %w", err))
	}
	return nil
}

// encodeLine renders v as compact JSON with a trailing newline. HTML
// characters are left unescaped so paths and commands read as written.
func encodeLine(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
