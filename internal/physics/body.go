package physics

import "github.com/vovakirdan/unbolt/internal/core"

// RigidBody is the World's Body implementation.
type RigidBody struct {
	world *World
	name  string

	pos    core.Vec2
	vel    core.Vec2
	size   core.Vec2
	angle  float64
	angVel float64

	typ       BodyType
	awake     bool
	destroyed bool

	joint *Joint
}

var _ Body = (*RigidBody)(nil)

func (b *RigidBody) Name() string            { return b.name }
func (b *RigidBody) Position() core.Vec2     { return b.pos }
func (b *RigidBody) SetPosition(p core.Vec2) { b.pos = p }
func (b *RigidBody) Velocity() core.Vec2     { return b.vel }
func (b *RigidBody) Angle() float64          { return b.angle }
func (b *RigidBody) Type() BodyType          { return b.typ }
func (b *RigidBody) Awake() bool             { return b.awake }
func (b *RigidBody) Destroyed() bool         { return b.destroyed }

// SetType switches between static and dynamic simulation. Becoming static
// zeroes linear velocity.
func (b *RigidBody) SetType(t BodyType) {
	b.typ = t
	if t == Static {
		b.vel = core.Vec2{}
	}
}

func (b *RigidBody) AngularVelocity() float64 { return b.angVel }

func (b *RigidBody) SetAngularVelocity(w float64) {
	b.angVel = w
}

// WakeUp resumes simulation of a sleeping body.
func (b *RigidBody) WakeUp() {
	b.awake = true
}

// Sleep stops simulating the body until WakeUp.
func (b *RigidBody) Sleep() {
	b.awake = false
}

func (b *RigidBody) WheelJoint() WheelJoint {
	if b.joint == nil {
		return nil
	}
	return b.joint
}

func (b *RigidBody) AddWheelJoint() WheelJoint {
	b.joint = &Joint{owner: b}
	return b.joint
}

// Collider returns nil for bodies created without a size.
func (b *RigidBody) Collider() Collider {
	if b.size.IsZero() {
		return nil
	}
	return bodyCollider{b}
}

func (b *RigidBody) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	if b.joint != nil {
		b.joint.enabled = false
		b.joint.connected = nil
	}
	b.world.remove(b)
}

func (b *RigidBody) pinned() bool {
	return b.joint != nil && b.joint.enabled && b.joint.connected != nil
}

type bodyCollider struct {
	b *RigidBody
}

func (c bodyCollider) WorldAABB() core.AABB {
	return core.CenteredAABB(c.b.pos, c.b.size)
}

// Joint is the World's WheelJoint implementation.
type Joint struct {
	owner           *RigidBody
	enabled         bool
	connected       Body
	anchor          core.Vec2
	connectedAnchor core.Vec2
	resets          int
}

var _ WheelJoint = (*Joint)(nil)

func (j *Joint) Enabled() bool { return j.enabled }

func (j *Joint) SetEnabled(enabled bool) {
	if enabled && !j.enabled {
		j.resets++
	}
	j.enabled = enabled
}

func (j *Joint) ConnectedBody() Body            { return j.connected }
func (j *Joint) SetConnectedBody(b Body)        { j.connected = b }
func (j *Joint) Anchor() core.Vec2              { return j.anchor }
func (j *Joint) SetAnchor(a core.Vec2)          { j.anchor = a }
func (j *Joint) ConnectedAnchor() core.Vec2     { return j.connectedAnchor }
func (j *Joint) SetConnectedAnchor(a core.Vec2) { j.connectedAnchor = a }
func (j *Joint) Resets() int                    { return j.resets }
