package core

// RuntimeConfig contains settings shared by the loop and the presentation layer.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 60)
	Seed     uint32 // Environment seed, 0 means pick one at session start
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// SeedFrom folds an arbitrary integer into the 32-bit seed range.
func SeedFrom(v int64) uint32 {
	return uint32(v) ^ uint32(v>>32) //nolint:gosec // truncation is the point
}
