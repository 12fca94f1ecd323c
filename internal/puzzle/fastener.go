// Package puzzle implements the bolt-and-slot attachment logic: fasteners
// that toggle between slot and bolt, the coordinator that turns clicks into
// bolt moves, and the per-detail state machine that locks, pivots or drops
// a detail as its bolts change.
package puzzle

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/unbolt/internal/core"
	"github.com/vovakirdan/unbolt/internal/event"
	"github.com/vovakirdan/unbolt/internal/physics"
)

// ErrMissingDependency marks a body, collider or coordinator that a
// component needs but was not given. Such failures are logged and the
// operation becomes a no-op.
var ErrMissingDependency = errors.New("missing dependency")

// Display is what a fastener shows.
type Display int

const (
	DisplaySlot Display = iota
	DisplayBolt
)

func (d Display) String() string {
	if d == DisplayBolt {
		return "bolt"
	}
	return "slot"
}

func displayFor(filled bool) Display {
	if filled {
		return DisplayBolt
	}
	return DisplaySlot
}

// Activator receives fastener activations (clicks).
type Activator interface {
	OnActivated(f *Fastener)
}

// FastenerConfig describes a fastener at scene load.
type FastenerConfig struct {
	Name        string
	Filled      bool
	Body        physics.Body
	Coordinator Activator
	Notify      NotifyMode
	Logger      *log.Logger
}

// Fastener is a slot that may hold a bolt.
type Fastener struct {
	name        string
	filled      bool
	display     Display
	body        physics.Body
	coordinator Activator
	notify      NotifyMode
	changed     *event.Topic[*Fastener]
	logger      *log.Logger
}

// NewFastener creates a fastener in its designer-assigned state.
func NewFastener(cfg FastenerConfig) *Fastener {
	f := &Fastener{
		name:        cfg.Name,
		filled:      cfg.Filled,
		body:        cfg.Body,
		coordinator: cfg.Coordinator,
		notify:      cfg.Notify,
		changed:     event.NewTopic[*Fastener]("fastener-changed"),
		logger:      loggerOrDiscard(cfg.Logger),
	}
	f.updateDisplay()
	return f
}

func (f *Fastener) Name() string       { return f.name }
func (f *Fastener) IsBolt() bool       { return f.filled }
func (f *Fastener) Display() Display   { return f.display }
func (f *Fastener) Body() physics.Body { return f.body }

// Changed is the topic raised when the fastener's state changes.
func (f *Fastener) Changed() *event.Topic[*Fastener] {
	return f.changed
}

// Bind injects the coordinator that receives activations.
func (f *Fastener) Bind(a Activator) {
	f.coordinator = a
}

// SetFilled sets the fastener's state and refreshes its display. With
// NotifyOnUnfill only a call with filled=false raises Changed.
func (f *Fastener) SetFilled(filled bool) {
	f.filled = filled
	f.updateDisplay()

	if !filled || f.notify == NotifyAlways {
		f.changed.Publish(f)
	}
}

// Activate forwards a click on this fastener to the coordinator.
func (f *Fastener) Activate() {
	f.logger.Debug("fastener clicked", "fastener", f.name)
	if f.coordinator == nil {
		f.logger.Error("activation dropped",
			"err", fmt.Errorf("%w: fastener %s has no coordinator", ErrMissingDependency, f.name))
		return
	}
	f.coordinator.OnActivated(f)
}

// Position returns the world position of the fastener's body.
func (f *Fastener) Position() (core.Vec2, bool) {
	if f.body == nil {
		return core.Vec2{}, false
	}
	return f.body.Position(), true
}

// Bounds returns the world AABB of the fastener's collider.
func (f *Fastener) Bounds() (core.AABB, bool) {
	if f.body == nil {
		return core.AABB{}, false
	}
	c := f.body.Collider()
	if c == nil {
		return core.AABB{}, false
	}
	return c.WorldAABB(), true
}

func (f *Fastener) updateDisplay() {
	f.display = displayFor(f.filled)
}

func (f *Fastener) String() string {
	return fmt.Sprintf("%s(%s)", f.name, f.display)
}

func loggerOrDiscard(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.New(io.Discard)
}
