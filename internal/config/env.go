package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv overrides target fields from their UNBOLT_* environment
// variables. Unset variables leave fields untouched.
func ParseEnv(target *Config) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
