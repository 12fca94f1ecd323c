package core

// RuntimeConfig contains configuration passed to a scene at initialization.
type RuntimeConfig struct {
	TickRate    int // Simulation ticks per second (default 60)
	SettleTicks int // Ticks simulated after each move so bodies can fall
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate:    60,
		SettleTicks: 120,
	}
}

// Dt returns the fixed timestep in seconds.
func (c RuntimeConfig) Dt() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}
