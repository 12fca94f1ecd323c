package puzzle

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/unbolt/internal/event"
)

// SelectionState is the coordinator's state.
type SelectionState int

const (
	Idle         SelectionState = iota // Nothing selected
	BoltSelected                       // A bolt waits for a target slot
)

func (s SelectionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case BoltSelected:
		return "bolt-selected"
	default:
		return "unknown"
	}
}

// Swap describes a bolt moved from one fastener to another.
type Swap struct {
	From *Fastener // Former bolt, now a slot
	To   *Fastener // Former slot, now a bolt
}

// Coordinator turns fastener activations into bolt moves. It tracks at
// most one selected bolt.
type Coordinator struct {
	selected *Fastener
	details  []*Detail
	swaps    int
	won      bool

	selections *event.Topic[*Fastener]
	swapped    *event.Topic[Swap]
	wins       *event.Topic[int]

	logger *log.Logger
}

// NewCoordinator creates an idle coordinator.
func NewCoordinator(logger *log.Logger) *Coordinator {
	return &Coordinator{
		selections: event.NewTopic[*Fastener]("bolt-selected"),
		swapped:    event.NewTopic[Swap]("bolt-swapped"),
		wins:       event.NewTopic[int]("won"),
		logger:     loggerOrDiscard(logger),
	}
}

// Register adds a detail to the win check. Order is preserved.
func (c *Coordinator) Register(d *Detail) {
	if d == nil {
		return
	}
	c.details = append(c.details, d)
}

// Details returns the registered details in registration order.
func (c *Coordinator) Details() []*Detail {
	return c.details
}

// Selected returns the selected bolt, or nil.
func (c *Coordinator) Selected() *Fastener {
	return c.selected
}

// State returns Idle or BoltSelected.
func (c *Coordinator) State() SelectionState {
	if c.selected == nil {
		return Idle
	}
	return BoltSelected
}

// Swaps returns the number of bolt moves performed.
func (c *Coordinator) Swaps() int {
	return c.swaps
}

// Won reports whether a win has been detected.
func (c *Coordinator) Won() bool {
	return c.won
}

// Selections is raised when a bolt becomes selected.
func (c *Coordinator) Selections() *event.Topic[*Fastener] { return c.selections }

// Swapped is raised after both halves of a move have been applied.
func (c *Coordinator) Swapped() *event.Topic[Swap] { return c.swapped }

// Wins is raised once, with the move count, when the board is cleared.
func (c *Coordinator) Wins() *event.Topic[int] { return c.wins }

// OnActivated handles a click on f.
func (c *Coordinator) OnActivated(f *Fastener) {
	if f == nil {
		c.logger.Warn("activation without fastener ignored")
		return
	}
	c.logger.Debug("fastener activated", "fastener", f.name, "state", c.State())

	if c.selected != nil {
		if !f.IsBolt() {
			bolt := c.selected
			c.logger.Debug("swapping bolt and slot", "bolt", bolt.name, "slot", f.name)
			c.swap(bolt, f)
			c.selected = nil
			// Win check runs after the selection is cleared so hooks see Idle.
			c.CheckWin()
		} else {
			c.logger.Debug("clicked another bolt, deselecting", "bolt", c.selected.name)
			c.selected = nil
		}
		return
	}

	if f.IsBolt() {
		c.logger.Debug("bolt selected", "bolt", f.name)
		c.selected = f
		c.selections.Publish(f)
		return
	}

	c.logger.Debug("clicked an empty slot, no action", "slot", f.name)
}

// swap moves the bolt. The two SetFilled calls stay separate: details
// observing the first call see the bolt gone before the slot is filled.
func (c *Coordinator) swap(bolt, slot *Fastener) {
	bolt.SetFilled(false)
	slot.SetFilled(true)
	c.swaps++
	c.swapped.Publish(Swap{From: bolt, To: slot})
}

// CheckWin reports whether no registered detail holds a bolt among its
// own fasteners. The first positive check raises Wins.
func (c *Coordinator) CheckWin() bool {
	for _, d := range c.details {
		if d.FilledCount() > 0 {
			return false
		}
	}
	if !c.won {
		c.won = true
		c.logger.Info("all details released", "moves", c.swaps)
		c.wins.Publish(c.swaps)
	}
	return true
}

// Reset clears the selection.
func (c *Coordinator) Reset() {
	c.selected = nil
}
