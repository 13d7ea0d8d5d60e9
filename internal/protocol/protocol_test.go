package protocol_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gpu-runtime/internal/logging"
	"gpu-runtime/internal/protocol"
	"gpu-runtime/internal/services"
)

func newTestDispatcher(out *bytes.Buffer) *protocol.Dispatcher {
	d := protocol.NewDispatcher(out, logging.NewNop())
	d.Register("echo", func(_ context.Context, call *protocol.Call) (any, error) {
		var params map[string]any
		if err := json.Unmarshal(call.Params, &params); err != nil {
			return nil, err
		}
		return params, nil
	})
	d.Register("progress", func(_ context.Context, call *protocol.Call) (any, error) {
		if err := call.Emit("log", "step one"); err != nil {
			return nil, err
		}
		if err := call.Emit("log", "step <two> & done"); err != nil {
			return nil, err
		}
		return map[string]int{"jobs": 1}, nil
	})
	d.Register("fail", func(context.Context, *protocol.Call) (any, error) {
		return nil, errors.New("input_path is required")
	})
	return d
}

func serve(t *testing.T, input string) []string {
	t.Helper()
	var out bytes.Buffer
	if err := newTestDispatcher(&out).Serve(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	text := strings.TrimSuffix(out.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestServeRoutesRequests(t *testing.T) {
	lines := serve(t, `{"id":7,"method":"echo","params":{"a":1}}`+"\n"+`{"id":8,"method":"echo"}`+"\n"+`{"id":9,"method":"echo","params":null}`)
	want := []string{
		`{"id":7,"result":{"a":1}}`,
		`{"id":8,"result":{}}`,
		`{"id":9,"result":{}}`,
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected output\nwant: %q\ngot:  %q", want, lines)
	}
}

func TestServeEmitsEventsBeforeResponse(t *testing.T) {
	lines := serve(t, `{"id":1,"method":"progress","params":{}}`+"\n")
	want := []string{
		`{"event":"log","payload":"step one"}`,
		`{"event":"log","payload":"step <two> & done"}`,
		`{"id":1,"result":{"jobs":1}}`,
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected output\nwant: %q\ngot:  %q", want, lines)
	}
}

func TestServeReportsErrorsInBand(t *testing.T) {
	input := strings.Join([]string{
		"",
		"   ",
		"not json",
		`{"method":"echo"}`,
		`{"id":2}`,
		`{"id":-1,"method":"echo"}`,
		`{"id":3,"method":"teleport"}`,
		`{"id":4,"method":"fail"}`,
		"\r",
		`{"id":5,"method":"echo","params":{}}` + "\r",
	}, "\n")
	lines := serve(t, input)
	if len(lines) != 7 {
		t.Fatalf("expected 7 responses, got %d: %q", len(lines), lines)
	}

	type response struct {
		ID     uint64          `json:"id"`
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	var decoded []response
	for _, line := range lines {
		var r response
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		decoded = append(decoded, r)
	}
	for i := 0; i < 4; i++ {
		if decoded[i].ID != 0 || decoded[i].Error == nil || !strings.HasPrefix(decoded[i].Error.Message, "invalid request: ") {
			t.Fatalf("line %d: expected decode error, got %s", i, lines[i])
		}
	}
	if decoded[4].ID != 3 || decoded[4].Error == nil || decoded[4].Error.Message != "unknown method: teleport" {
		t.Fatalf("unexpected unknown-method response %s", lines[4])
	}
	if decoded[5].ID != 4 || decoded[5].Error == nil || decoded[5].Error.Message != "input_path is required" {
		t.Fatalf("unexpected handler error response %s", lines[5])
	}
	if decoded[6].ID != 5 || decoded[6].Error != nil || string(decoded[6].Result) != "{}" {
		t.Fatalf("unexpected final response %s", lines[6])
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestServeFailsOnWriteError(t *testing.T) {
	d := protocol.NewDispatcher(failingWriter{}, logging.NewNop())
	d.Register("progress", func(_ context.Context, call *protocol.Call) (any, error) {
		if err := call.Emit("log", "x"); err != nil {
			return nil, err
		}
		t.Fatal("handler continued after emit failure")
		return nil, nil
	})

	err := d.Serve(context.Background(), strings.NewReader(`{"id":1,"method":"progress"}`+"\n"+`{"id":2,"method":"progress"}`+"\n"))
	if !errors.Is(err, services.ErrOutput) {
		t.Fatalf("expected output error, got %v", err)
	}
}

type failingReader struct{ data *strings.Reader }

func (r failingReader) Read(p []byte) (int, error) {
	if r.data.Len() > 0 {
		return r.data.Read(p)
	}
	return 0, errors.New("stdin closed unexpectedly")
}

func TestServeFailsOnReadError(t *testing.T) {
	var out bytes.Buffer
	in := failingReader{data: strings.NewReader(`{"id":1,"method":"echo"}` + "\n")}
	err := newTestDispatcher(&out).Serve(context.Background(), in)
	if err == nil || !strings.Contains(err.Error(), "stdin closed unexpectedly") {
		t.Fatalf("expected read error, got %v", err)
	}
	if out.String() != `{"id":1,"result":{}}`+"\n" {
		t.Fatalf("request before the failure not answered: %q", out.String())
	}
}

func TestServeStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := newTestDispatcher(&out).Serve(ctx, strings.NewReader(`{"id":1,"method":"echo"}`+"\n"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestMethodsSorted(t *testing.T) {
	d := newTestDispatcher(&bytes.Buffer{})
	if got := strings.Join(d.Methods(), ","); got != "echo,fail,progress" {
		t.Fatalf("unexpected methods %q", got)
	}
}

func TestDecodeRequestDefaultsParams(t *testing.T) {
	req, err := protocol.DecodeRequest([]byte(`{"id":42,"method":"ping"}`))
	if err != nil {
		t.Fatalf("DecodeRequest: %v", err)
	}
	if req.ID != 42 || req.Method != "ping" || string(req.Params) != "{}" {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestDecodeRequestMatchesFieldNamesExactly(t *testing.T) {
	for _, line := range []string{
		`{"ID":1,"method":"ping"}`,
		`{"id":1,"METHOD":"ping"}`,
		`{"id":null,"method":"ping"}`,
	} {
		if _, err := protocol.DecodeRequest([]byte(line)); err == nil {
			t.Fatalf("expected %s to be rejected", line)
		}
	}

	req, err := protocol.DecodeRequest([]byte(`{"id":7,"method":"echo","Params":{"a":1},"extra":true}`))
	if err != nil {
		t.Fatalf("DecodeRequest: %v", err)
	}
	if string(req.Params) != "{}" {
		t.Fatalf("mis-cased params must be ignored, got %s", req.Params)
	}
}
