package scene

import (
	"fmt"

	"github.com/vovakirdan/unbolt/internal/puzzle"
)

// TraceKind classifies a recorded scene event.
type TraceKind string

const (
	TraceSelect  TraceKind = "select"
	TraceSwap    TraceKind = "swap"
	TraceLock    TraceKind = "lock"
	TracePivot   TraceKind = "pivot"
	TraceFall    TraceKind = "fall"
	TraceDestroy TraceKind = "destroy"
	TraceWin     TraceKind = "win"
)

// TraceEvent is one entry of the scene's event log.
type TraceEvent struct {
	Tick    uint64
	Kind    TraceKind
	Subject string // Fastener or detail name
	Target  string // Swap target, pivot fastener or move count
}

func (e TraceEvent) String() string {
	if e.Target == "" {
		return fmt.Sprintf("[%d] %s %s", e.Tick, e.Kind, e.Subject)
	}
	return fmt.Sprintf("[%d] %s %s -> %s", e.Tick, e.Kind, e.Subject, e.Target)
}

// Trace returns the events recorded so far, oldest first.
func (s *Scene) Trace() []TraceEvent {
	out := make([]TraceEvent, len(s.trace))
	copy(out, s.trace)
	return out
}

func (s *Scene) record(kind TraceKind, subject, target string) {
	s.trace = append(s.trace, TraceEvent{
		Tick:    s.world.Ticks(),
		Kind:    kind,
		Subject: subject,
		Target:  target,
	})
}

func (s *Scene) recordDecision(d puzzle.Decision) {
	var kind TraceKind
	switch d.Kind {
	case puzzle.DecisionLock:
		kind = TraceLock
	case puzzle.DecisionPivot:
		kind = TracePivot
	case puzzle.DecisionFall:
		kind = TraceFall
	case puzzle.DecisionDestroy:
		kind = TraceDestroy
	default:
		return
	}

	target := ""
	if d.Target != nil {
		target = d.Target.Name()
	}
	s.record(kind, d.Detail.Name(), target)
}
