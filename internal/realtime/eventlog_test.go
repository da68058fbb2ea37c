package realtime

import (
	"testing"

	"github.com/consultavoz/backend/internal/model/event"
)

func TestSnapshotMostRecentFirst(t *testing.T) {
	l := NewEventLog()
	l.Append(event.Envelope{Type: "a", EventID: "1"})
	l.Append(event.Envelope{Type: "b", EventID: "2"})
	l.Append(event.Envelope{Type: "c", EventID: "3"})

	snap := l.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	if snap[0].EventID != "3" || snap[2].EventID != "1" {
		t.Fatalf("unexpected order: %+v", snap)
	}
}

func TestObserversSeeAppendOrder(t *testing.T) {
	l := NewEventLog()
	var seen []string
	l.Observe(func(env event.Envelope) { seen = append(seen, env.EventID) })

	l.Append(event.Envelope{EventID: "1"})
	l.Append(event.Envelope{EventID: "2"})

	if len(seen) != 2 || seen[0] != "1" || seen[1] != "2" {
		t.Fatalf("unexpected notification order: %v", seen)
	}
}

func TestResetKeepsObservers(t *testing.T) {
	l := NewEventLog()
	count := 0
	l.Observe(func(event.Envelope) { count++ })

	l.Append(event.Envelope{EventID: "1"})
	l.Reset()
	if l.Len() != 0 {
		t.Fatalf("expected empty log, got %d", l.Len())
	}

	l.Append(event.Envelope{EventID: "2"})
	if count != 2 {
		t.Fatalf("observer should survive reset, got %d notifications", count)
	}
}
