package realtime

import (
	"sync"

	"github.com/consultavoz/backend/internal/model/event"
)

// EventLog is the append-ordered record of every channel event in a session.
// Appends happen from the inbound pump and from Send; the mutex keeps the
// append order identical to delivery order on a multi-threaded runtime.
type EventLog struct {
	mu        sync.Mutex
	events    []event.Envelope
	observers []func(event.Envelope)
}

// NewEventLog creates an empty log.
func NewEventLog() *EventLog { return &EventLog{} }

// Observe registers a callback invoked synchronously after every append, in
// append order. Register observers before the session starts; callbacks run
// outside the log's lock so they may send further events.
func (l *EventLog) Observe(fn func(event.Envelope)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, fn)
}

// Append records one event and notifies observers.
func (l *EventLog) Append(env event.Envelope) {
	l.mu.Lock()
	l.events = append(l.events, env)
	observers := l.observers
	l.mu.Unlock()

	for _, fn := range observers {
		fn(env)
	}
}

// Snapshot returns the events most recent first, for display.
func (l *EventLog) Snapshot() []event.Envelope {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]event.Envelope, len(l.events))
	for i, env := range l.events {
		out[len(l.events)-1-i] = env
	}
	return out
}

// Len reports the number of recorded events.
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// Reset drops all recorded events. Observers stay registered; a new session
// reuses the same log.
func (l *EventLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
}
