package levels

import (
	"github.com/vovakirdan/unbolt/internal/puzzle"
)

// IsZero reports whether the level leaves the policy untouched.
func (p YAMLPolicy) IsZero() bool {
	return p.Preset == "" && p.Touch == "" && p.Fill == "" &&
		p.Latch == nil && p.Skip == nil && p.Spin == nil
}

// Label names the policy for listings: "default" when the level sets
// nothing, the preset name when only a preset is set, "custom" otherwise.
func (p YAMLPolicy) Label() string {
	switch {
	case p.IsZero():
		return "default"
	case p == YAMLPolicy{Preset: p.Preset}:
		return p.Preset
	default:
		return "custom"
	}
}

// Apply layers the level's overrides on top of base. A preset replaces
// base entirely; individual fields are then applied on top.
func (p YAMLPolicy) Apply(base puzzle.Policy) (puzzle.Policy, error) {
	policy := base

	if p.Preset != "" {
		preset, err := puzzle.PresetPolicy(puzzle.Preset(p.Preset))
		if err != nil {
			return base, err
		}
		policy = preset
	}
	if p.Touch != "" {
		touch, err := puzzle.ParseTouchMode(p.Touch)
		if err != nil {
			return base, err
		}
		policy.Touch = touch
	}
	if p.Fill != "" {
		fill, err := puzzle.ParseFillMode(p.Fill)
		if err != nil {
			return base, err
		}
		policy.Fill = fill
	}
	if p.Latch != nil {
		policy.Latch = *p.Latch
	}
	if p.Skip != nil {
		policy.SkipUntouchedBolt = *p.Skip
	}
	if p.Spin != nil {
		policy.PivotSpin = *p.Spin
	}
	return policy, nil
}
