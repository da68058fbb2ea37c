package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/consultavoz/backend/internal/model/event"
)

// State is the lifecycle of one realtime session.
type State int

const (
	StateIdle State = iota
	StateNegotiating
	StateActive
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateNegotiating:
		return "negotiating"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrSessionInProgress rejects Start while a session is negotiating
	// or active.
	ErrSessionInProgress = errors.New("session already in progress")
	// ErrChannelNotOpen rejects Send while the channel is not open.
	ErrChannelNotOpen = errors.New("event channel is not open")
)

// Manager owns the lifecycle of one realtime session: credential fetch,
// channel establishment, the inbound pump and teardown. All UI components
// observe its state read-only.
type Manager struct {
	creds     CredentialSource
	transport Transport
	log       *EventLog

	mu      sync.Mutex
	state   State
	channel Channel
	done    chan struct{}

	// sendMu orders concurrent Sends so transmit order matches log order.
	sendMu sync.Mutex
}

// NewManager wires a manager to its credential source, transport and log.
func NewManager(creds CredentialSource, transport Transport, eventLog *EventLog) *Manager {
	return &Manager{
		creds:     creds,
		transport: transport,
		log:       eventLog,
	}
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Log exposes the session event log.
func (m *Manager) Log() *EventLog { return m.log }

// Done returns a channel closed when the current session ends. Without a
// session in progress it is already closed.
func (m *Manager) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return m.done
}

// Start establishes a session: credential, transport dial, then Active once
// the channel is open. Any failure reverts to the pre-start state with no
// partial state retained. A Stop racing the dial wins: the late channel is
// discarded.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.state == StateNegotiating || m.state == StateActive {
		m.mu.Unlock()
		return ErrSessionInProgress
	}
	prev := m.state
	m.state = StateNegotiating
	m.done = make(chan struct{})
	done := m.done
	m.mu.Unlock()

	secret, err := m.creds(ctx)
	if err != nil {
		m.abortStart(prev, done)
		return fmt.Errorf("fetch credential: %w", err)
	}

	ch, err := m.transport.Dial(ctx, secret)
	if err != nil {
		m.abortStart(prev, done)
		return fmt.Errorf("establish channel: %w", err)
	}

	m.mu.Lock()
	if m.state != StateNegotiating {
		// Stopped while dialing; the late channel is discarded.
		m.mu.Unlock()
		ch.Close()
		return nil
	}
	m.channel = ch
	m.state = StateActive
	m.mu.Unlock()

	m.log.Reset()
	go m.pump(ch, done)
	return nil
}

func (m *Manager) abortStart(prev State, done chan struct{}) {
	m.mu.Lock()
	if m.state == StateNegotiating {
		m.state = prev
	}
	if m.done == done {
		m.done = nil
	}
	m.mu.Unlock()
	close(done)
}

// pump appends every inbound message to the log in arrival order. A message
// that fails to decode is dropped; the session continues. Channel
// termination closes the session.
func (m *Manager) pump(ch Channel, done chan struct{}) {
	for data := range ch.Receive() {
		env, err := event.Parse(data)
		if err != nil {
			log.Printf("[realtime] dropping malformed inbound event: %v", err)
			continue
		}
		m.log.Append(env)
	}

	m.mu.Lock()
	if m.channel == ch {
		m.state = StateClosed
		m.channel = nil
		m.done = nil
		m.mu.Unlock()
		ch.Close()
		close(done)
		return
	}
	m.mu.Unlock()
}

// Stop closes the channel and the underlying connection and transitions to
// Closed. Stopping an already-closed session is a no-op.
func (m *Manager) Stop() {
	m.mu.Lock()
	if m.state != StateActive && m.state != StateNegotiating {
		m.mu.Unlock()
		return
	}
	ch := m.channel
	done := m.done
	m.state = StateClosed
	m.channel = nil
	m.done = nil
	m.mu.Unlock()

	if ch != nil {
		ch.Close()
	}
	if done != nil {
		close(done)
	}
}

// Send transmits one client event, assigning an event_id when missing, and
// records it in the log. Sending while the channel is not open is rejected,
// not queued.
func (m *Manager) Send(ev event.Client) error {
	m.sendMu.Lock()
	defer m.sendMu.Unlock()

	m.mu.Lock()
	ch := m.channel
	active := m.state == StateActive
	m.mu.Unlock()
	if !active || ch == nil {
		return ErrChannelNotOpen
	}

	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode client event: %w", err)
	}
	if err := ch.Send(data); err != nil {
		return fmt.Errorf("send client event: %w", err)
	}

	m.log.Append(event.Envelope{
		Type:     ev.Type,
		EventID:  ev.EventID,
		Raw:      data,
		Outbound: true,
		At:       time.Now().UTC(),
	})
	return nil
}
