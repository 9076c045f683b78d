package sim

import "github.com/vovakirdan/wildgrove/internal/core"

// Params holds every tuning constant of the simulation. Speeds and durations
// are expressed per tick at the fixed tick rate.
type Params struct {
	// Avatars
	PlayerSpeed  float64
	PlayerRadius float64
	PlayerMaxHP  int
	GaitStep     float64
	RemoteOffset core.Vec2 // initial remote avatar placement relative to the sanctuary center

	// Melee
	AttackCooldown  int
	AttackRange     float64
	AttackHalfAngle float64
	DamageLow       int
	DamageHigh      int
	Knockback       float64
	XPPerKill       int
	XPToNext        int

	// Hostiles
	HostileSpeed  float64
	FleeSpeed     float64
	HostileRadius float64
	HostileMaxHP  int
	AggroRange    float64
	BiteRange     float64
	BiteDamage    int
	BiteCooldown  int
	BiteAnim      int

	// Spawning
	InitialHostiles  int
	MinHostiles      int
	SpawnBatch       int
	SpawnMinDistance float64
	SpawnRetries     int
	ScorePerKill     int

	// Environment
	HealChance      float64
	TreeTrunkFactor float64
	CameraLerp      float64
}

// DefaultParams returns the standard tuning for 60 ticks per second.
func DefaultParams() Params {
	return Params{
		PlayerSpeed:  4.0,
		PlayerRadius: 20,
		PlayerMaxHP:  100,
		GaitStep:     0.2,
		RemoteOffset: core.V(60, 0),

		AttackCooldown:  25,
		AttackRange:     145,
		AttackHalfAngle: 1.3,
		DamageLow:       12,
		DamageHigh:      60,
		Knockback:       30,
		XPPerKill:       10,
		XPToNext:        50,

		HostileSpeed:  2.2,
		FleeSpeed:     1.2,
		HostileRadius: 18,
		HostileMaxHP:  60,
		AggroRange:    750,
		BiteRange:     40,
		BiteDamage:    8,
		BiteCooldown:  60,
		BiteAnim:      15,

		InitialHostiles:  12,
		MinHostiles:      8,
		SpawnBatch:       5,
		SpawnMinDistance: 600,
		SpawnRetries:     100,
		ScorePerKill:     10,

		HealChance:      0.05,
		TreeTrunkFactor: 0.5,
		CameraLerp:      0.1,
	}
}
