package protocol

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"gpu-runtime/internal/logging"
	"gpu-runtime/internal/services"
)

// Handler services one method. Events emitted through call precede the
// response built from the returned value or error.
type Handler func(ctx context.Context, call *Call) (any, error)

// Call is the per-request view handed to a Handler.
type Call struct {
	ID     uint64
	Method string
	Params json.RawMessage

	events *Writer
}

// Emit writes an event line ahead of the response.
func (c *Call) Emit(event string, payload any) error {
	return c.events.Emit(event, payload)
}

// Dispatcher routes request lines to registered handlers.
type Dispatcher struct {
	handlers map[string]Handler
	out      *Writer
	logger   *slog.Logger
}

// NewDispatcher writes responses and events to out.
func NewDispatcher(out io.Writer, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]Handler),
		out:      NewWriter(out),
		logger:   logging.NewComponentLogger(logger, "protocol"),
	}
}

// Register binds method to h, replacing any earlier handler.
func (d *Dispatcher) Register(method string, h Handler) {
	d.handlers[method] = h
}

// Methods lists registered method names in sorted order.
func (d *Dispatcher) Methods() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Serve handles lines from in until end of input, which returns nil. A read
// or write failure on the streams, or cancellation of ctx, ends the loop with
// an error.
func (d *Dispatcher) Serve(ctx context.Context, in io.Reader) error {
	reader := bufio.NewReader(in)
	d.logger.Debug("serving requests", logging.Any("methods", d.Methods()))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, readErr := reader.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			if err := d.handleLine(ctx, line); err != nil {
				return err
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("read request: %w", readErr)
		}
	}
}

func (d *Dispatcher) handleLine(ctx context.Context, line []byte) error {
	req, err := DecodeRequest(line)
	if err != nil {
		logging.WarnWithContext(d.logger, "request decode failed", "request_invalid",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "send one JSON object with id and method per line"),
			logging.String(logging.FieldImpact, "request answered with an error"),
		)
		return d.out.WriteResponse(Response{ID: 0, Error: &ErrorBody{Message: "invalid request: " + err.Error()}})
	}

	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithMethod(ctx, req.Method)
	logger := logging.WithContext(ctx, d.logger)
	started := time.Now()
	logger.Debug("request received", logging.Uint64("id", req.ID))

	result, err := d.dispatch(ctx, req)
	if err != nil {
		// Stream failures are fatal; there is nowhere left to report them.
		if errors.Is(err, services.ErrOutput) {
			return err
		}
		logger.Warn("request failed",
			logging.Uint64("id", req.ID),
			logging.String(logging.FieldEventType, services.Category(err)),
			logging.Duration("elapsed", time.Since(started)),
			logging.Error(err),
		)
		return d.out.WriteResponse(Response{ID: req.ID, Error: &ErrorBody{Message: err.Error()}})
	}

	logger.Info("request completed",
		logging.Uint64("id", req.ID),
		logging.String(logging.FieldEventType, "request_completed"),
		logging.Duration("elapsed", time.Since(started)),
	)
	return d.out.WriteResponse(Response{ID: req.ID, Result: result})
}

func (d *Dispatcher) dispatch(ctx context.Context, req Request) (any, error) {
	handler, ok := d.handlers[req.Method]
	if !ok {
		return nil, services.Mark(services.ErrInvalidRequest, fmt.Errorf("unknown method: %s", req.Method))
	}
	return handler(ctx, &Call{ID: req.ID, Method: req.Method, Params: req.Params, events: d.out})
}
