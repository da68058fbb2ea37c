package consult

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/consultavoz/backend/internal/model/event"
)

const closingInstruction = "La consulta médica ha finalizado."

const (
	farewellDelay = 500 * time.Millisecond
	stopDelay     = time.Second
)

// Phase tracks the scripted wind-down after a completed consultation.
type Phase int

const (
	PhaseWatching Phase = iota
	PhaseCompleting
	PhaseFarewelling
	PhaseStopping
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseWatching:
		return "watching"
	case PhaseCompleting:
		return "completing"
	case PhaseFarewelling:
		return "farewelling"
	case PhaseStopping:
		return "stopping"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Session is what the watcher drives on the realtime manager.
type Session interface {
	Send(event.Client) error
	Stop()
}

// Watcher inspects the session event log for the consultation tool call and
// runs the scripted wind-down: publish the summary, send a closing turn,
// then stop the session. Both of its checks fire at most once per session.
type Watcher struct {
	session   Session
	onSummary func(Summary)

	// after schedules a delayed task; replaced in tests so time advances
	// deterministically. Scheduled tasks are not cancellable.
	after func(time.Duration, func())

	mu         sync.Mutex
	configured bool
	phase      Phase
}

// NewWatcher builds a watcher publishing summaries through onSummary, which
// may be nil.
func NewWatcher(session Session, onSummary func(Summary)) *Watcher {
	return &Watcher{
		session:   session,
		onSummary: onSummary,
		after: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
}

// HandleEvent is registered as an event-log observer; it runs on every
// append.
func (w *Watcher) HandleEvent(env event.Envelope) {
	if env.Outbound {
		return
	}
	switch env.Type {
	case event.TypeSessionCreated:
		w.configureOnce()
	case event.TypeResponseDone:
		w.checkCompletion(env)
	}
}

// configureOnce registers the consultation tool on the first session.created
// of a session.
func (w *Watcher) configureOnce() {
	w.mu.Lock()
	if w.configured {
		w.mu.Unlock()
		return
	}
	w.configured = true
	w.mu.Unlock()

	if err := w.session.Send(event.NewSessionUpdate(ConsultationTool())); err != nil {
		log.Printf("[consult] tool registration failed: %v", err)
	}
}

func (w *Watcher) checkCompletion(env event.Envelope) {
	output, err := env.ResponseOutput()
	if err != nil {
		log.Printf("[consult] ignoring undecodable response.done: %v", err)
		return
	}

	for _, item := range output {
		if item.Type != "function_call" || item.Name != ToolName {
			continue
		}

		var summary Summary
		if err := json.Unmarshal([]byte(item.Arguments), &summary); err != nil {
			log.Printf("[consult] ignoring malformed tool arguments: %v", err)
			continue
		}

		w.mu.Lock()
		if w.phase != PhaseWatching {
			w.mu.Unlock()
			return
		}
		w.phase = PhaseCompleting
		w.mu.Unlock()

		if w.onSummary != nil {
			w.onSummary(summary)
		}
		w.after(farewellDelay, w.farewell)
		return
	}
}

func (w *Watcher) farewell() {
	w.mu.Lock()
	w.phase = PhaseFarewelling
	w.mu.Unlock()

	if err := w.session.Send(event.NewResponseCreate(closingInstruction)); err != nil {
		log.Printf("[consult] closing turn failed: %v", err)
	}

	w.after(stopDelay, func() {
		w.mu.Lock()
		w.phase = PhaseStopping
		w.mu.Unlock()

		// A harmless no-op if the user already stopped the session.
		w.session.Stop()

		w.mu.Lock()
		w.phase = PhaseDone
		w.mu.Unlock()
	})
}

// Phase reports the current wind-down phase.
func (w *Watcher) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Reset re-arms both checks for the next session.
func (w *Watcher) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.configured = false
	w.phase = PhaseWatching
}
