package testsupport

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrEmitFailed is returned by EventRecorder once its failure budget is spent.
var ErrEmitFailed = errors.New("emit failed")

// RecordedEvent is one captured event line.
type RecordedEvent struct {
	Event   string
	Payload any
}

// EventRecorder captures emitted events in memory. When FailAfter is positive,
// the call that would record event number FailAfter+1 fails instead.
type EventRecorder struct {
	FailAfter int

	mu     sync.Mutex
	events []RecordedEvent
}

// Emit records the event or fails once the budget is exhausted.
func (r *EventRecorder) Emit(event string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailAfter > 0 && len(r.events) >= r.FailAfter {
		return ErrEmitFailed
	}
	r.events = append(r.events, RecordedEvent{Event: event, Payload: payload})
	return nil
}

// Events returns a copy of the recorded events.
func (r *EventRecorder) Events() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedEvent(nil), r.events...)
}

// Messages returns the payloads of every event as strings.
func (r *EventRecorder) Messages() []string {
	events := r.Events()
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, fmt.Sprint(ev.Payload))
	}
	return out
}

// Joined returns all messages separated by newlines, convenient for Contains checks.
func (r *EventRecorder) Joined() string {
	return strings.Join(r.Messages(), "\n")
}
