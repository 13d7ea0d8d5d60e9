package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Request is one decoded input line.
type Request struct {
	ID     uint64
	Method string
	// Params holds the raw params value; absent or null params become {}.
	Params json.RawMessage
}

var (
	errMissingID     = errors.New("missing field `id`")
	errMissingMethod = errors.New("missing field `method`")
)

var emptyParams = json.RawMessage(`{}`)

// DecodeRequest parses one line into a Request. Field names match exactly;
// "ID" or "Method" do not stand in for "id" and "method".
func DecodeRequest(line []byte) (Request, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		return Request{}, err
	}

	var req Request
	rawID, ok := present(fields, "id")
	if !ok {
		return Request{}, errMissingID
	}
	if err := json.Unmarshal(rawID, &req.ID); err != nil {
		return Request{}, fmt.Errorf("field `id`: %w", err)
	}
	rawMethod, ok := present(fields, "method")
	if !ok {
		return Request{}, errMissingMethod
	}
	if err := json.Unmarshal(rawMethod, &req.Method); err != nil {
		return Request{}, fmt.Errorf("field `method`: %w", err)
	}

	req.Params = emptyParams
	if raw, ok := present(fields, "params"); ok {
		req.Params = raw
	}
	return req, nil
}

// present returns the value stored under key unless it is absent or null.
func present(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := fields[key]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return nil, false
	}
	return raw, true
}

// Response answers one request. Exactly one of Result and Error is set.
type Response struct {
	ID     uint64     `json:"id"`
	Result any        `json:"result,omitempty"`
	Error  *ErrorBody `json:"error,omitempty"`
}

// ErrorBody carries a failure description.
type ErrorBody struct {
	Message string `json:"message"`
}

// Event is an out-of-band progress line written before a response.
type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}
