package physics

import "github.com/vovakirdan/unbolt/internal/core"

// Settings holds world-wide simulation parameters.
type Settings struct {
	Gravity      float64 // Downward acceleration in units/s^2
	MaxFallSpeed float64 // Terminal velocity in units/s
}

// DefaultSettings returns sensible defaults for a 1 unit = 1 pixel world.
func DefaultSettings() Settings {
	return Settings{
		Gravity:      980,
		MaxFallSpeed: 2000,
	}
}

// World is a fixed-step headless simulation. It is not safe for concurrent
// use; a scene owns exactly one world.
type World struct {
	settings Settings
	bodies   []*RigidBody
	ticks    uint64
}

// NewWorld creates an empty world.
func NewWorld(s Settings) *World {
	return &World{settings: s}
}

// Settings returns the world's simulation parameters.
func (w *World) Settings() Settings {
	return w.settings
}

// NewBody adds a body of the given size centred on pos. A zero size
// creates a body without a collider.
func (w *World) NewBody(name string, pos, size core.Vec2, typ BodyType) *RigidBody {
	b := &RigidBody{
		world: w,
		name:  name,
		pos:   pos,
		size:  size,
		typ:   typ,
		awake: true,
	}
	w.bodies = append(w.bodies, b)
	return b
}

// Body finds a live body by name.
func (w *World) Body(name string) (*RigidBody, bool) {
	for _, b := range w.bodies {
		if b.name == name && !b.destroyed {
			return b, true
		}
	}
	return nil, false
}

// Ticks returns the number of steps simulated so far.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// Step advances the simulation by dt seconds.
//
// Dynamic bodies held by an enabled joint keep their position and only
// integrate their spin. Free dynamic bodies fall under gravity. Static
// and sleeping bodies do not move.
func (w *World) Step(dt float64) {
	w.ticks++
	for _, b := range w.bodies {
		if b.destroyed || !b.awake || b.typ != Dynamic {
			continue
		}

		b.angle += b.angVel * dt

		if b.pinned() {
			b.vel = core.Vec2{}
			continue
		}

		b.vel.Y = core.ClampF(b.vel.Y-w.settings.Gravity*dt, -w.settings.MaxFallSpeed, w.settings.MaxFallSpeed)
		b.pos = b.pos.Add(b.vel.Scale(dt))
	}
}

func (w *World) remove(target *RigidBody) {
	for _, b := range w.bodies {
		if b.joint != nil && b.joint.connected == Body(target) {
			b.joint.connected = nil
			b.joint.enabled = false
		}
	}
}
