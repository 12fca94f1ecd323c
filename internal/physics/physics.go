// Package physics defines the rigid-body collaborator the puzzle logic talks
// to, plus a small deterministic headless world that implements it.
package physics

import "github.com/vovakirdan/unbolt/internal/core"

// BodyType selects how the world simulates a body.
type BodyType int

const (
	Static  BodyType = iota // Never moves
	Dynamic                 // Affected by gravity unless pinned by a joint
)

// String returns a human-readable name for the body type.
func (t BodyType) String() string {
	switch t {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// Body is a rigid body as seen by puzzle logic.
type Body interface {
	Name() string
	Position() core.Vec2
	SetPosition(p core.Vec2)
	Type() BodyType
	SetType(t BodyType)
	AngularVelocity() float64
	SetAngularVelocity(w float64)
	Awake() bool
	WakeUp()

	// WheelJoint returns the joint already attached to this body, or nil.
	WheelJoint() WheelJoint
	// AddWheelJoint creates a disabled joint on this body.
	AddWheelJoint() WheelJoint

	// Collider returns the body's collider, or nil if it has none.
	Collider() Collider

	// Destroy removes the body from its world. Idempotent.
	Destroy()
	Destroyed() bool
}

// Collider exposes a world-space bounding box for overlap tests.
type Collider interface {
	WorldAABB() core.AABB
}

// WheelJoint pins a body to a connected body. Anchor is in the owning
// body's local frame; ConnectedAnchor is in the connected body's frame.
type WheelJoint interface {
	Enabled() bool
	SetEnabled(enabled bool)
	ConnectedBody() Body
	SetConnectedBody(b Body)
	Anchor() core.Vec2
	SetAnchor(a core.Vec2)
	ConnectedAnchor() core.Vec2
	SetConnectedAnchor(a core.Vec2)
	// Resets counts enabled off->on transitions; the world re-solves the
	// joint on each.
	Resets() int
}
