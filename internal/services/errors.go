package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool   = errors.New("external tool error")
	ErrValidation     = errors.New("validation error")
	ErrConfiguration  = errors.New("configuration error")
	ErrNotFound       = errors.New("not found")
	ErrSubtitleParse  = errors.New("subtitle parse error")
	ErrOutput         = errors.New("output stream error")
	ErrTransient      = errors.New("transient failure")
	ErrInvalidRequest = errors.New("invalid request")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Mark tags err with marker so errors.Is matches it, while Error() keeps the
// original text. Responses sent to callers carry the unmodified message.
func Mark(marker, err error) error {
	if err == nil {
		return nil
	}
	if marker == nil || errors.Is(err, marker) {
		return err
	}
	return &markedError{marker: marker, err: err}
}

type markedError struct {
	marker error
	err    error
}

func (e *markedError) Error() string { return e.err.Error() }

func (e *markedError) Unwrap() []error { return []error{e.err, e.marker} }

// Category maps an error to the event_type used when logging a failed request.
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrOutput):
		return "output_failed"
	case errors.Is(err, ErrInvalidRequest):
		return "request_invalid"
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound):
		return "validation_failed"
	case errors.Is(err, ErrConfiguration):
		return "configuration_failed"
	case errors.Is(err, ErrExternalTool):
		return "external_tool_failed"
	case errors.Is(err, ErrSubtitleParse):
		return "subtitle_parse_failed"
	case errors.Is(err, ErrTransient):
		return "transient_failure"
	default:
		return "request_failed"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
