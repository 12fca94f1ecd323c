// Package config provides YAML-based engine configuration loading and
// policy preset handling for the puzzle engine.
package config

import (
	"github.com/vovakirdan/unbolt/internal/core"
	"github.com/vovakirdan/unbolt/internal/levels"
	"github.com/vovakirdan/unbolt/internal/physics"
	"github.com/vovakirdan/unbolt/internal/puzzle"
)

// Config contains all engine configuration.
type Config struct {
	Runtime RuntimeConfig `yaml:"runtime"`
	Physics PhysicsConfig `yaml:"physics"`
	Puzzle  PuzzleConfig  `yaml:"puzzle"`
	Levels  LevelsConfig  `yaml:"levels"`
}

// RuntimeConfig defines simulation timing.
type RuntimeConfig struct {
	TickRate    int `yaml:"tick_rate"    env:"UNBOLT_TICK_RATE"`
	SettleTicks int `yaml:"settle_ticks" env:"UNBOLT_SETTLE_TICKS"` // Ticks simulated after each move
}

// PhysicsConfig defines world parameters.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"        env:"UNBOLT_GRAVITY"`
	MaxFallSpeed float64 `yaml:"max_fall_speed" env:"UNBOLT_MAX_FALL_SPEED"`
}

// PuzzleConfig defines attachment behavior.
type PuzzleConfig struct {
	Policy        levels.YAMLPolicy `yaml:"policy"`
	Notify        string            `yaml:"notify"          env:"UNBOLT_NOTIFY"`          // "unfill" or "always"
	DestroyBelowY float64           `yaml:"destroy_below_y" env:"UNBOLT_DESTROY_BELOW_Y"` // Details below this Y self-destruct
}

// LevelsConfig points at user level files.
type LevelsConfig struct {
	Dir string `yaml:"dir" env:"UNBOLT_LEVELS_DIR"`
}

// DefaultConfig returns the hardcoded configuration.
func DefaultConfig() Config {
	rt := core.DefaultConfig()
	ph := physics.DefaultSettings()
	return Config{
		Runtime: RuntimeConfig{
			TickRate:    rt.TickRate,
			SettleTicks: rt.SettleTicks,
		},
		Physics: PhysicsConfig{
			Gravity:      ph.Gravity,
			MaxFallSpeed: ph.MaxFallSpeed,
		},
		Puzzle: PuzzleConfig{
			Policy:        levels.YAMLPolicy{Preset: string(puzzle.DefaultPreset)},
			Notify:        puzzle.NotifyOnUnfill.String(),
			DestroyBelowY: puzzle.DefaultDestroyBelowY,
		},
	}
}

// RuntimeSettings converts to the core runtime config.
func (c Config) RuntimeSettings() core.RuntimeConfig {
	return core.RuntimeConfig{
		TickRate:    c.Runtime.TickRate,
		SettleTicks: c.Runtime.SettleTicks,
	}
}

// PhysicsSettings converts to world settings.
func (c Config) PhysicsSettings() physics.Settings {
	return physics.Settings{
		Gravity:      c.Physics.Gravity,
		MaxFallSpeed: c.Physics.MaxFallSpeed,
	}
}

// Policy resolves the configured attachment policy.
func (c Config) Policy() (puzzle.Policy, error) {
	return c.Puzzle.Policy.Apply(puzzle.DefaultPolicy())
}

// NotifyMode resolves the configured notification mode.
func (c Config) NotifyMode() (puzzle.NotifyMode, error) {
	return puzzle.ParseNotifyMode(c.Puzzle.Notify)
}
