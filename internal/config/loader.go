package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/unbolt/internal/levels"
	"github.com/vovakirdan/unbolt/internal/puzzle"
)

//go:embed defaults/unbolt.yaml
var defaultYAML []byte

const fileName = "unbolt.yaml"

// Load loads engine configuration.
// Search order: customPath -> ~/.unbolt/configs/unbolt.yaml -> ./configs/unbolt.yaml -> embedded default.
// Files are layered over the hardcoded defaults, so they may set only
// the fields they care about. UNBOLT_* environment variables override
// whatever file was used.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if c, ok := tryFile(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryFile(filepath.Join("configs", fileName)); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func tryFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".unbolt", "configs", filename)
}

// ApplyPreset replaces the configured policy with a named preset.
// An empty preset leaves the config unchanged.
func ApplyPreset(cfg *Config, preset string) error {
	if preset == "" {
		return nil
	}
	if _, err := puzzle.PresetPolicy(puzzle.Preset(preset)); err != nil {
		return err
	}
	cfg.Puzzle.Policy = levels.YAMLPolicy{Preset: preset}
	return nil
}

// Validate checks values that would make the simulation meaningless.
func (c Config) Validate() error {
	if c.Runtime.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.Runtime.TickRate)
	}
	if c.Runtime.SettleTicks < 0 {
		return fmt.Errorf("config: settle_ticks must not be negative, got %d", c.Runtime.SettleTicks)
	}
	if c.Physics.MaxFallSpeed <= 0 {
		return fmt.Errorf("config: max_fall_speed must be positive, got %g", c.Physics.MaxFallSpeed)
	}
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.NotifyMode(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
