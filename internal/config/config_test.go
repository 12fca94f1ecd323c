package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/unbolt/internal/puzzle"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded defaults = %+v, hardcoded = %+v", cfg, DefaultConfig())
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}

	policy, err := cfg.Policy()
	if err != nil {
		t.Fatalf("Policy() failed: %v", err)
	}
	if policy != puzzle.DefaultPolicy() {
		t.Errorf("Policy() = %s, expected default", policy)
	}

	mode, err := cfg.NotifyMode()
	if err != nil || mode != puzzle.NotifyOnUnfill {
		t.Errorf("NotifyMode() = %v, %v", mode, err)
	}

	if cfg.PhysicsSettings().Gravity != 980 {
		t.Errorf("Gravity = %g", cfg.PhysicsSettings().Gravity)
	}
	if cfg.RuntimeSettings().TickRate != 60 {
		t.Errorf("TickRate = %d", cfg.RuntimeSettings().TickRate)
	}
}

func TestLoadCustomPathLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `
physics:
  gravity: 100
puzzle:
  policy:
    touch: all
  notify: always
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Physics.Gravity != 100 {
		t.Errorf("Gravity = %g, expected 100", cfg.Physics.Gravity)
	}
	if cfg.Physics.MaxFallSpeed != DefaultConfig().Physics.MaxFallSpeed {
		t.Errorf("MaxFallSpeed = %g, expected default", cfg.Physics.MaxFallSpeed)
	}

	policy, err := cfg.Policy()
	if err != nil {
		t.Fatalf("Policy() failed: %v", err)
	}
	if policy.Touch != puzzle.TouchAll || policy.Fill != puzzle.FillTwo {
		t.Errorf("Policy() = %s, expected preset second with touch=all", policy)
	}

	mode, _ := cfg.NotifyMode()
	if mode != puzzle.NotifyAlways {
		t.Errorf("NotifyMode() = %v, expected always", mode)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("malformed custom config should fail")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Puzzle.Policy.Touch = "all"

	if err := ApplyPreset(&cfg, ""); err != nil {
		t.Fatalf("ApplyPreset(\"\") failed: %v", err)
	}
	if cfg.Puzzle.Policy.Touch != "all" {
		t.Error("empty preset should leave config unchanged")
	}

	if err := ApplyPreset(&cfg, "first"); err != nil {
		t.Fatalf("ApplyPreset(first) failed: %v", err)
	}
	policy, _ := cfg.Policy()
	first, _ := puzzle.PresetPolicy(puzzle.PresetFirst)
	if policy != first {
		t.Errorf("Policy() = %s, expected %s", policy, first)
	}

	if err := ApplyPreset(&cfg, "nightly"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tick rate", func(c *Config) { c.Runtime.TickRate = 0 }},
		{"negative settle", func(c *Config) { c.Runtime.SettleTicks = -1 }},
		{"zero fall speed", func(c *Config) { c.Physics.MaxFallSpeed = 0 }},
		{"bad fill", func(c *Config) { c.Puzzle.Policy.Fill = "most" }},
		{"bad notify", func(c *Config) { c.Puzzle.Notify = "sometimes" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("runtime:\n  settle_ticks: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("UNBOLT_SETTLE_TICKS", "5")
	t.Setenv("UNBOLT_NOTIFY", "always")
	t.Setenv("UNBOLT_LEVELS_DIR", "/tmp/levels")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Runtime.SettleTicks != 5 {
		t.Errorf("SettleTicks = %d, expected env value 5", cfg.Runtime.SettleTicks)
	}
	if cfg.Puzzle.Notify != "always" {
		t.Errorf("Notify = %q, expected always", cfg.Puzzle.Notify)
	}
	if cfg.Levels.Dir != "/tmp/levels" {
		t.Errorf("Levels.Dir = %q", cfg.Levels.Dir)
	}
	if cfg.Runtime.TickRate != DefaultConfig().Runtime.TickRate {
		t.Errorf("TickRate = %d, unset env should keep file value", cfg.Runtime.TickRate)
	}
}

func TestLoadEnvInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("UNBOLT_TICK_RATE", "fast")
	if _, err := Load(path); err == nil {
		t.Error("non-numeric UNBOLT_TICK_RATE should fail")
	}
}
