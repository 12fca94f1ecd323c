// Package levels provides puzzle level definitions and loading.
package levels

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/unbolt/internal/core"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Policy    YAMLPolicy        `yaml:"policy,omitempty"`
	Fasteners []YAMLFastener    `yaml:"fasteners"`
	Details   []YAMLDetail      `yaml:"details"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLPolicy overrides the configured attachment policy for a level.
// Empty fields keep the configured value.
type YAMLPolicy struct {
	Preset string   `yaml:"preset,omitempty"`
	Touch  string   `yaml:"touch,omitempty"` // "any" or "all"
	Fill   string   `yaml:"fill,omitempty"`  // "all" or "two"
	Latch  *bool    `yaml:"latch,omitempty"`
	Skip   *bool    `yaml:"skip_untouched_bolt,omitempty"`
	Spin   *float64 `yaml:"pivot_spin,omitempty"`
}

// YAMLFastener is a slot or bolt on the board.
type YAMLFastener struct {
	Name   string   `yaml:"name"`
	X      float64  `yaml:"x"`
	Y      float64  `yaml:"y"`
	Size   *float64 `yaml:"size,omitempty"` // Square collider; default 10
	Filled bool     `yaml:"filled"`
}

// YAMLDetail is a plank held by fasteners.
type YAMLDetail struct {
	Name      string   `yaml:"name"`
	X         float64  `yaml:"x"`
	Y         float64  `yaml:"y"`
	W         float64  `yaml:"w"`
	H         float64  `yaml:"h"`
	Fasteners []string `yaml:"fasteners"`
}

// DefaultFastenerSize is the collider edge used when a fastener omits size.
const DefaultFastenerSize = 10.0

// Fastener is a parsed fastener definition.
type Fastener struct {
	Name   string
	Pos    core.Vec2
	Size   core.Vec2
	Filled bool
}

// Detail is a parsed detail definition.
type Detail struct {
	Name      string
	Pos       core.Vec2
	Size      core.Vec2
	Fasteners []string
}

// Level represents a parsed level ready for use.
type Level struct {
	ID        string
	Name      string
	Policy    YAMLPolicy
	Fasteners []Fastener
	Details   []Detail
	Metadata  map[string]string
	FilePath  string
}

// Validation errors.
var (
	ErrNoID             = errors.New("level has no id")
	ErrNoDetails        = errors.New("level has no details")
	ErrDuplicateName    = errors.New("duplicate name")
	ErrUnknownReference = errors.New("unknown fastener reference")
	ErrBadSize          = errors.New("non-positive size")
)

// ParseYAML parses and validates a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Policy:   yl.Policy,
		Metadata: yl.Metadata,
	}
	if level.Name == "" {
		level.Name = level.ID
	}

	for _, f := range yl.Fasteners {
		size := DefaultFastenerSize
		if f.Size != nil {
			size = *f.Size
		}
		level.Fasteners = append(level.Fasteners, Fastener{
			Name:   f.Name,
			Pos:    core.V(f.X, f.Y),
			Size:   core.V(size, size),
			Filled: f.Filled,
		})
	}

	for _, d := range yl.Details {
		level.Details = append(level.Details, Detail{
			Name:      d.Name,
			Pos:       core.V(d.X, d.Y),
			Size:      core.V(d.W, d.H),
			Fasteners: d.Fasteners,
		})
	}

	if err := level.Validate(); err != nil {
		return Level{}, err
	}
	return level, nil
}

// Validate checks names, sizes and fastener references.
func (l *Level) Validate() error {
	if l.ID == "" {
		return ErrNoID
	}
	if len(l.Details) == 0 {
		return fmt.Errorf("level %s: %w", l.ID, ErrNoDetails)
	}

	names := make(map[string]bool)
	for _, f := range l.Fasteners {
		if f.Name == "" || names[f.Name] {
			return fmt.Errorf("level %s: fastener %q: %w", l.ID, f.Name, ErrDuplicateName)
		}
		if f.Size.X <= 0 || f.Size.Y <= 0 {
			return fmt.Errorf("level %s: fastener %q: %w", l.ID, f.Name, ErrBadSize)
		}
		names[f.Name] = true
	}

	seen := make(map[string]bool)
	for _, d := range l.Details {
		if d.Name == "" || seen[d.Name] || names[d.Name] {
			return fmt.Errorf("level %s: detail %q: %w", l.ID, d.Name, ErrDuplicateName)
		}
		if d.Size.X <= 0 || d.Size.Y <= 0 {
			return fmt.Errorf("level %s: detail %q: %w", l.ID, d.Name, ErrBadSize)
		}
		seen[d.Name] = true
		for _, ref := range d.Fasteners {
			if !names[ref] {
				return fmt.Errorf("level %s: detail %q references %q: %w", l.ID, d.Name, ref, ErrUnknownReference)
			}
		}
	}
	return nil
}

// Bolts returns how many fasteners start filled.
func (l *Level) Bolts() int {
	n := 0
	for _, f := range l.Fasteners {
		if f.Filled {
			n++
		}
	}
	return n
}

// Clone returns a deep copy, so callers may edit the result freely.
func (l Level) Clone() Level {
	c := l
	c.Policy = l.Policy.clone()
	c.Fasteners = slices.Clone(l.Fasteners)
	c.Details = make([]Detail, len(l.Details))
	for i, d := range l.Details {
		d.Fasteners = slices.Clone(d.Fasteners)
		c.Details[i] = d
	}
	c.Metadata = maps.Clone(l.Metadata)
	return c
}

func (p YAMLPolicy) clone() YAMLPolicy {
	if p.Latch != nil {
		v := *p.Latch
		p.Latch = &v
	}
	if p.Skip != nil {
		v := *p.Skip
		p.Skip = &v
	}
	if p.Spin != nil {
		v := *p.Spin
		p.Spin = &v
	}
	return p
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
