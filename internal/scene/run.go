package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/unbolt/internal/physics"
)

// ErrInvalidMove is returned for a move that does not take a bolt out of
// Bolt and put it into the empty Slot.
var ErrInvalidMove = errors.New("invalid move")

// Move takes the bolt out of Bolt and puts it into Slot.
type Move struct {
	Bolt string
	Slot string
}

func (m Move) String() string {
	return m.Bolt + ">" + m.Slot
}

// ParseMoves parses "a>b,c>d". Whitespace around names is ignored and
// empty entries are skipped.
func ParseMoves(s string) ([]Move, error) {
	var moves []Move
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bolt, slot, ok := strings.Cut(part, ">")
		bolt, slot = strings.TrimSpace(bolt), strings.TrimSpace(slot)
		if !ok || bolt == "" || slot == "" {
			return nil, fmt.Errorf("invalid move %q, expected bolt>slot", part)
		}
		moves = append(moves, Move{Bolt: bolt, Slot: slot})
	}
	return moves, nil
}

// FormatMoves is the inverse of ParseMoves.
func FormatMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, ",")
}

// DetailState is a snapshot of one detail.
type DetailState struct {
	Name      string
	Mode      physics.BodyType
	Filled    int
	Total     int
	Joint     string // Fastener the detail hangs on, if any
	Fallen    bool
	Destroyed bool
	Y         float64
	Angle     float64 // Radians turned while pivoting
}

// Result summarizes a run.
type Result struct {
	LevelID   string
	Policy    string
	Moves     []Move
	Won       bool
	Swaps     int
	Ticks     uint64
	Destroyed int
	Details   []DetailState
}

// Apply performs one move (bolt click, slot click) and lets the world
// settle for the configured number of ticks. A move that does not move a
// bolt leaves the coordinator idle and returns ErrInvalidMove.
func (s *Scene) Apply(m Move) error {
	before := s.coord.Swaps()
	if err := s.Click(m.Bolt); err != nil {
		s.coord.Reset()
		return err
	}
	if err := s.Click(m.Slot); err != nil {
		s.coord.Reset()
		return err
	}
	if s.coord.Swaps() == before {
		s.coord.Reset()
		return fmt.Errorf("%w %s", ErrInvalidMove, m)
	}
	s.Settle(s.runtime.SettleTicks)
	return nil
}

// Run applies moves in order and returns the outcome. It stops at the
// first move naming an unknown fastener or not moving a bolt.
func (s *Scene) Run(moves []Move) (Result, error) {
	for i, m := range moves {
		if err := s.Apply(m); err != nil {
			return s.Result(moves[:i]), fmt.Errorf("move %d (%s): %w", i+1, m, err)
		}
	}
	return s.Result(moves), nil
}

// Result snapshots the scene.
func (s *Scene) Result(moves []Move) Result {
	r := Result{
		LevelID: s.level.ID,
		Policy:  s.policy.String(),
		Moves:   moves,
		Won:     s.coord.Won(),
		Swaps:   s.coord.Swaps(),
		Ticks:   s.world.Ticks(),
	}
	for _, d := range s.details {
		st := DetailState{
			Name:      d.Name(),
			Mode:      d.Mode(),
			Filled:    d.FilledCount(),
			Total:     len(d.Fasteners()),
			Fallen:    d.Fallen(),
			Destroyed: d.Destroyed(),
		}
		if t := d.JointTarget(); t != nil {
			st.Joint = t.Name()
		}
		if b := d.Body(); b != nil {
			st.Y = b.Position().Y
		}
		if rb, ok := d.Body().(*physics.RigidBody); ok {
			st.Angle = rb.Angle()
		}
		if st.Destroyed {
			r.Destroyed++
		}
		r.Details = append(r.Details, st)
	}
	return r
}
