package puzzle

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/unbolt/internal/core"
	"github.com/vovakirdan/unbolt/internal/event"
	"github.com/vovakirdan/unbolt/internal/physics"
)

// DefaultDestroyBelowY is the world height under which a detail removes
// itself.
const DefaultDestroyBelowY = -1000.0

// DecisionKind is the outcome of a detail evaluation.
type DecisionKind int

const (
	DecisionLock    DecisionKind = iota // Static, no joint
	DecisionPivot                       // Dynamic, hanging on one bolt
	DecisionFall                        // Dynamic, no joint
	DecisionDestroy                     // Removed from the world
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionLock:
		return "lock"
	case DecisionPivot:
		return "pivot"
	case DecisionFall:
		return "fall"
	case DecisionDestroy:
		return "destroy"
	default:
		return "unknown"
	}
}

// Decision is published whenever a detail changes its attachment.
type Decision struct {
	Detail *Detail
	Kind   DecisionKind
	Target *Fastener // Joint target for DecisionPivot
}

// DetailConfig describes a detail at scene load.
type DetailConfig struct {
	Name          string
	Body          physics.Body
	Fasteners     []*Fastener
	Policy        Policy
	DestroyBelowY float64
	Logger        *log.Logger
}

// Detail is a rigid body held in place by bolts in its fasteners.
type Detail struct {
	name      string
	body      physics.Body
	fasteners []*Fastener
	refs      map[*Fastener]struct{}

	policy        Policy
	destroyBelowY float64

	joint       physics.WheelJoint
	jointTarget *Fastener
	fallen      bool
	destroyed   bool

	subs      event.Group
	decisions *event.Topic[Decision]
	logger    *log.Logger
}

// NewDetail creates a detail, subscribes it to every referenced fastener
// and makes its body static.
func NewDetail(cfg DetailConfig) *Detail {
	d := &Detail{
		name:          cfg.Name,
		body:          cfg.Body,
		refs:          make(map[*Fastener]struct{}, len(cfg.Fasteners)),
		policy:        cfg.Policy,
		destroyBelowY: cfg.DestroyBelowY,
		decisions:     event.NewTopic[Decision]("detail-decision"),
		logger:        loggerOrDiscard(cfg.Logger).With("detail", cfg.Name),
	}

	for _, f := range cfg.Fasteners {
		if f == nil {
			continue
		}
		if _, dup := d.refs[f]; dup {
			continue
		}
		d.refs[f] = struct{}{}
		d.fasteners = append(d.fasteners, f)
		d.subs.Add(f.Changed().Subscribe(d.OnFastenerChanged))
	}

	d.SetStatic()
	return d
}

func (d *Detail) Name() string              { return d.name }
func (d *Detail) Body() physics.Body        { return d.body }
func (d *Detail) Policy() Policy            { return d.policy }
func (d *Detail) Fallen() bool              { return d.fallen }
func (d *Detail) Destroyed() bool           { return d.destroyed }
func (d *Detail) JointTarget() *Fastener    { return d.jointTarget }
func (d *Detail) Joint() physics.WheelJoint { return d.joint }

// Fasteners returns the referenced fasteners in configured order.
func (d *Detail) Fasteners() []*Fastener {
	return d.fasteners
}

// Decisions is raised after each lock, pivot, fall or destroy.
func (d *Detail) Decisions() *event.Topic[Decision] {
	return d.decisions
}

// Mode returns the body type, or Static for a detail without a body.
func (d *Detail) Mode() physics.BodyType {
	if d.body == nil {
		return physics.Static
	}
	return d.body.Type()
}

// References reports whether f is one of this detail's fasteners.
func (d *Detail) References(f *Fastener) bool {
	_, ok := d.refs[f]
	return ok
}

// FilledCount returns how many referenced fasteners hold a bolt.
func (d *Detail) FilledCount() int {
	n := 0
	for _, f := range d.fasteners {
		if f.IsBolt() {
			n++
		}
	}
	return n
}

func (d *Detail) filled() []*Fastener {
	var result []*Fastener
	for _, f := range d.fasteners {
		if f.IsBolt() {
			result = append(result, f)
		}
	}
	return result
}

// OnFastenerChanged re-evaluates the detail after f changed.
func (d *Detail) OnFastenerChanged(f *Fastener) {
	if d.destroyed || (d.policy.Latch && d.fallen) {
		return
	}
	if f == nil || !d.References(f) {
		d.logger.Debug("ignoring foreign fastener", "fastener", fastenerName(f))
		return
	}

	if d.belowThreshold() {
		d.logger.Debug("below destroy threshold", "y", d.body.Position().Y)
		d.Destroy()
		return
	}

	if d.policy.SkipUntouchedBolt && f.IsBolt() && !d.touchingAny() {
		d.logger.Debug("bolt is not touching the detail yet", "fastener", f.name)
		return
	}

	filled := d.filled()
	total := len(d.fasteners)
	touching := d.Touching()

	d.logger.Debug("evaluating",
		"total", total,
		"filled", len(filled),
		"touching", touching,
		"policy", d.policy.String(),
	)

	if d.policy.Fill.locks(len(filled), total) && touching {
		d.SetStatic()
		d.decisions.Publish(Decision{Detail: d, Kind: DecisionLock})
	} else if d.policy.Fill.pivots(len(filled), total) && touching {
		d.SetDynamic()
		d.AttachJoint(filled[0])
		if d.joint != nil {
			// Toggle to make the world re-solve the joint.
			d.joint.SetEnabled(false)
			d.joint.SetEnabled(true)
		}
		d.decisions.Publish(Decision{Detail: d, Kind: DecisionPivot, Target: filled[0]})
	}

	// Evaluated unconditionally, so it may undo the decision above.
	if !touching {
		d.SetDynamic()
		d.DetachJoint()
		if d.policy.Latch {
			d.fallen = true
		}
		d.decisions.Publish(Decision{Detail: d, Kind: DecisionFall})
	}
}

// CheckBounds destroys the detail once its body has dropped below the
// destroy threshold. It returns true if the detail was destroyed.
func (d *Detail) CheckBounds() bool {
	if d.destroyed || !d.belowThreshold() {
		return false
	}
	d.Destroy()
	return true
}

func (d *Detail) belowThreshold() bool {
	return d.body != nil && d.body.Position().Y < d.destroyBelowY
}

// Touching evaluates the policy's touch predicate.
func (d *Detail) Touching() bool {
	if d.policy.Touch == TouchAll {
		return d.touchingAll()
	}
	return d.touchingAny()
}

func (d *Detail) bounds() (core.AABB, bool) {
	if d.body == nil || d.body.Collider() == nil {
		d.logger.Error("touch test skipped",
			"err", fmt.Errorf("%w: detail %s has no collider", ErrMissingDependency, d.name))
		return core.AABB{}, false
	}
	return d.body.Collider().WorldAABB(), true
}

func (d *Detail) touchingAny() bool {
	own, ok := d.bounds()
	if !ok {
		return false
	}
	for _, f := range d.fasteners {
		if !f.IsBolt() {
			continue
		}
		if box, ok := f.Bounds(); ok && own.Intersects(box) {
			return true
		}
	}
	return false
}

// touchingAll is false when no fastener holds a bolt.
func (d *Detail) touchingAll() bool {
	own, ok := d.bounds()
	if !ok {
		return false
	}
	found := false
	for _, f := range d.fasteners {
		if !f.IsBolt() {
			continue
		}
		box, ok := f.Bounds()
		if !ok || !own.Intersects(box) {
			return false
		}
		found = true
	}
	return found
}

// SetStatic freezes the body and releases any joint.
func (d *Detail) SetStatic() {
	if d.body == nil {
		return
	}
	d.body.SetType(physics.Static)
	d.body.SetAngularVelocity(0)
	d.DetachJoint()
}

// SetDynamic hands the body to the simulation.
func (d *Detail) SetDynamic() {
	if d.body == nil {
		return
	}
	d.body.SetAngularVelocity(d.policy.PivotSpin)
	d.body.SetType(physics.Dynamic)
}

// AttachJoint pins the detail to f's body at f's current position.
// An existing joint is disabled and reused.
func (d *Detail) AttachJoint(f *Fastener) {
	if d.body == nil || f == nil {
		d.logger.Error("attach joint",
			"err", fmt.Errorf("%w: detail body or fastener", ErrMissingDependency))
		return
	}
	target := f.Body()
	if target == nil {
		d.logger.Error("attach joint",
			"err", fmt.Errorf("%w: fastener %s has no rigid body", ErrMissingDependency, f.name))
		return
	}

	if d.joint != nil {
		d.joint.SetEnabled(false)
	} else {
		d.joint = d.body.WheelJoint()
		if d.joint == nil {
			d.joint = d.body.AddWheelJoint()
		}
	}

	anchor := target.Position().Sub(d.body.Position())

	d.joint.SetConnectedBody(target)
	d.joint.SetAnchor(anchor)
	d.joint.SetConnectedAnchor(core.Vec2{})
	d.joint.SetEnabled(true)
	d.jointTarget = f

	d.logger.Debug("attaching joint", "fastener", f.name, "anchor", anchor)

	d.body.WakeUp()
	target.WakeUp()
}

// DetachJoint disables the joint and clears its connection. The joint
// itself is kept for reuse.
func (d *Detail) DetachJoint() {
	if d.joint == nil {
		return
	}
	d.joint.SetEnabled(false)
	d.joint.SetConnectedBody(nil)
	d.jointTarget = nil
}

// Destroy unsubscribes the detail and removes its body. Idempotent.
func (d *Detail) Destroy() {
	if d.destroyed {
		return
	}
	d.destroyed = true
	d.subs.Close()
	d.DetachJoint()
	if d.body != nil {
		d.body.Destroy()
	}
	d.logger.Info("detail destroyed")
	d.decisions.Publish(Decision{Detail: d, Kind: DecisionDestroy})
}

// Close releases the detail's subscriptions without destroying it.
func (d *Detail) Close() {
	d.subs.Close()
}

func fastenerName(f *Fastener) string {
	if f == nil {
		return "<nil>"
	}
	return f.name
}
