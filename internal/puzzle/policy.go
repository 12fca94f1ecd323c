package puzzle

import (
	"fmt"
	"sort"
	"strings"
)

// TouchMode selects how bolt contact with a detail is judged.
type TouchMode int

const (
	TouchAny TouchMode = iota // At least one filled fastener overlaps the detail
	TouchAll                  // Every filled fastener overlaps the detail
)

func (m TouchMode) String() string {
	switch m {
	case TouchAny:
		return "any"
	case TouchAll:
		return "all"
	default:
		return "unknown"
	}
}

// ParseTouchMode parses "any" or "all".
func ParseTouchMode(s string) (TouchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "any":
		return TouchAny, nil
	case "all":
		return TouchAll, nil
	default:
		return TouchAny, fmt.Errorf("puzzle: unknown touch mode %q", s)
	}
}

// FillMode selects the bolt counts that lock or pivot a detail.
type FillMode int

const (
	// FillAll locks when every fastener holds a bolt and pivots on any
	// smaller non-zero count.
	FillAll FillMode = iota
	// FillTwo locks on two or more bolts and pivots on exactly one.
	FillTwo
)

func (m FillMode) String() string {
	switch m {
	case FillAll:
		return "all"
	case FillTwo:
		return "two"
	default:
		return "unknown"
	}
}

// ParseFillMode parses "all" or "two".
func ParseFillMode(s string) (FillMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "total":
		return FillAll, nil
	case "two", "2":
		return FillTwo, nil
	default:
		return FillAll, fmt.Errorf("puzzle: unknown fill mode %q", s)
	}
}

// locks reports whether filled of total bolts fully fasten a detail.
func (m FillMode) locks(filled, total int) bool {
	switch m {
	case FillTwo:
		return filled >= 2
	default:
		return total > 0 && filled == total
	}
}

// pivots reports whether filled bolts leave a detail hanging on one joint.
func (m FillMode) pivots(filled, total int) bool {
	switch m {
	case FillTwo:
		return filled == 1
	default:
		return filled > 0
	}
}

// NotifyMode selects when a fastener announces a state change.
type NotifyMode int

const (
	NotifyOnUnfill NotifyMode = iota // Only SetFilled(false) notifies
	NotifyAlways                     // Every SetFilled call notifies
)

func (m NotifyMode) String() string {
	switch m {
	case NotifyOnUnfill:
		return "unfill"
	case NotifyAlways:
		return "always"
	default:
		return "unknown"
	}
}

// ParseNotifyMode parses "unfill" or "always".
func ParseNotifyMode(s string) (NotifyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unfill", "":
		return NotifyOnUnfill, nil
	case "always":
		return NotifyAlways, nil
	default:
		return NotifyOnUnfill, fmt.Errorf("puzzle: unknown notify mode %q", s)
	}
}

// Policy configures how a Detail reacts to fastener changes.
type Policy struct {
	Touch TouchMode
	Fill  FillMode

	// Latch makes a fall terminal: once fallen, the detail ignores all
	// further fastener changes.
	Latch bool

	// SkipUntouchedBolt aborts evaluation when the changed fastener is a
	// bolt and no bolt touches the detail yet.
	SkipUntouchedBolt bool

	// PivotSpin is the angular velocity given to a detail when it turns
	// dynamic.
	PivotSpin float64
}

func (p Policy) String() string {
	return fmt.Sprintf("touch=%s fill=%s latch=%t skip=%t spin=%g",
		p.Touch, p.Fill, p.Latch, p.SkipUntouchedBolt, p.PivotSpin)
}

// Preset names a known policy combination.
type Preset string

const (
	PresetFirst  Preset = "first"
	PresetSecond Preset = "second"
	PresetLatest Preset = "latest"
)

// DefaultPreset is used when no policy is configured.
const DefaultPreset = PresetSecond

var presets = map[Preset]Policy{
	PresetFirst: {
		Touch: TouchAny,
		Fill:  FillAll,
	},
	PresetSecond: {
		Touch:             TouchAny,
		Fill:              FillTwo,
		SkipUntouchedBolt: true,
		PivotSpin:         1,
	},
	PresetLatest: {
		Touch:             TouchAll,
		Fill:              FillTwo,
		Latch:             true,
		SkipUntouchedBolt: true,
		PivotSpin:         1,
	},
}

// PresetPolicy returns the policy for a preset name.
func PresetPolicy(p Preset) (Policy, error) {
	policy, ok := presets[Preset(strings.ToLower(string(p)))]
	if !ok {
		return Policy{}, fmt.Errorf("puzzle: unknown policy preset %q (known: %s)",
			p, strings.Join(PresetNames(), ", "))
	}
	return policy, nil
}

// DefaultPolicy returns the DefaultPreset policy.
func DefaultPolicy() Policy {
	return presets[DefaultPreset]
}

// PresetNames returns all preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for p := range presets {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}
