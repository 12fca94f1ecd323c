package physics

import (
	"testing"

	"github.com/vovakirdan/unbolt/internal/core"
)

func TestStaticBodyDoesNotMove(t *testing.T) {
	w := NewWorld(DefaultSettings())
	b := w.NewBody("plank", core.V(0, 0), core.V(10, 2), Static)

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
	}

	if b.Position() != core.V(0, 0) {
		t.Errorf("static body moved to %v", b.Position())
	}
	if w.Ticks() != 60 {
		t.Errorf("Ticks() = %d, expected 60", w.Ticks())
	}
}

func TestDynamicBodyFalls(t *testing.T) {
	w := NewWorld(Settings{Gravity: 10, MaxFallSpeed: 1000})
	b := w.NewBody("plank", core.V(0, 0), core.V(10, 2), Dynamic)

	w.Step(1)
	if b.Position().Y != -10 {
		t.Errorf("after one step Y = %g, expected -10", b.Position().Y)
	}
	w.Step(1)
	if b.Position().Y != -30 {
		t.Errorf("after two steps Y = %g, expected -30", b.Position().Y)
	}
}

func TestFallSpeedIsCapped(t *testing.T) {
	w := NewWorld(Settings{Gravity: 100, MaxFallSpeed: 50})
	b := w.NewBody("plank", core.V(0, 0), core.V(1, 1), Dynamic)

	w.Step(1)
	if b.Velocity().Y != -50 {
		t.Errorf("velocity = %g, expected -50", b.Velocity().Y)
	}
}

func TestPinnedBodyHoldsPositionAndSpins(t *testing.T) {
	w := NewWorld(DefaultSettings())
	bolt := w.NewBody("bolt", core.V(5, 0), core.V(1, 1), Static)
	plank := w.NewBody("plank", core.V(0, 0), core.V(10, 2), Dynamic)
	plank.SetAngularVelocity(1)

	j := plank.AddWheelJoint()
	j.SetConnectedBody(bolt)
	j.SetEnabled(true)

	w.Step(0.5)

	if plank.Position() != core.V(0, 0) {
		t.Errorf("pinned body moved to %v", plank.Position())
	}
	if plank.Angle() != 0.5 {
		t.Errorf("Angle() = %g, expected 0.5", plank.Angle())
	}
}

func TestSleepingBodyDoesNotMove(t *testing.T) {
	w := NewWorld(DefaultSettings())
	b := w.NewBody("plank", core.V(0, 0), core.V(1, 1), Dynamic)
	b.Sleep()

	w.Step(1)
	if b.Position() != core.V(0, 0) {
		t.Errorf("sleeping body moved to %v", b.Position())
	}

	b.WakeUp()
	w.Step(1)
	if b.Position().Y >= 0 {
		t.Errorf("woken body did not fall, Y = %g", b.Position().Y)
	}
}

func TestColliderAABB(t *testing.T) {
	w := NewWorld(DefaultSettings())
	b := w.NewBody("plank", core.V(10, 10), core.V(4, 2), Static)

	box := b.Collider().WorldAABB()
	if box.Min != core.V(8, 9) || box.Max != core.V(12, 11) {
		t.Errorf("WorldAABB() = %v..%v", box.Min, box.Max)
	}

	ghost := w.NewBody("ghost", core.V(0, 0), core.Vec2{}, Static)
	if ghost.Collider() != nil {
		t.Error("zero-size body should have no collider")
	}
}

func TestJointResetsCountOffOnTransitions(t *testing.T) {
	w := NewWorld(DefaultSettings())
	b := w.NewBody("plank", core.V(0, 0), core.V(1, 1), Dynamic)
	j := b.AddWheelJoint()

	j.SetEnabled(true)
	j.SetEnabled(true)
	j.SetEnabled(false)
	j.SetEnabled(true)

	if j.Resets() != 2 {
		t.Errorf("Resets() = %d, expected 2", j.Resets())
	}
	if b.WheelJoint() != j {
		t.Error("WheelJoint() should return the added joint")
	}
}

func TestDestroyReleasesJoints(t *testing.T) {
	w := NewWorld(DefaultSettings())
	bolt := w.NewBody("bolt", core.V(0, 0), core.V(1, 1), Static)
	plank := w.NewBody("plank", core.V(0, 0), core.V(10, 2), Dynamic)

	j := plank.AddWheelJoint()
	j.SetConnectedBody(bolt)
	j.SetEnabled(true)

	bolt.Destroy()
	bolt.Destroy()

	if j.Enabled() || j.ConnectedBody() != nil {
		t.Error("joint to destroyed body should be released")
	}
	if _, ok := w.Body("bolt"); ok {
		t.Error("destroyed body should not be found")
	}
}
