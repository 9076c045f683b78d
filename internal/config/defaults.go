package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/sim"
	"github.com/vovakirdan/wildgrove/internal/worldgen"
)

//go:embed defaults/wildgrove.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration. It matches the embedded
// defaults/wildgrove.yaml.
func Default() Config {
	return Config{
		World: WorldConfig{
			Width:           4000,
			Height:          4000,
			Obstacles:       220,
			SanctuaryRadius: 300,
			ObstacleMargin:  50,
			TreeRatio:       0.65,
			TreeRadius:      RadiusRange{Min: 30, Max: 55},
			RockRadius:      RadiusRange{Min: 20, Max: 40},
			TreeTrunkFactor: 0.5,
		},
		Stream: StreamConfig{
			Zones:      64,
			Radius:     60,
			Amplitude:  300,
			Waves:      2,
			HealChance: 0.05,
		},
		Player: PlayerConfig{
			Speed:    4.0,
			Radius:   20,
			MaxHP:    100,
			GaitStep: 0.2,
		},
		Combat: CombatConfig{
			Cooldown:   25,
			Range:      145,
			HalfAngle:  1.3,
			DamageLow:  12,
			DamageHigh: 60,
			Knockback:  30,
			XPPerKill:  10,
			XPToNext:   50,
		},
		Hostiles: HostileConfig{
			Speed:        2.2,
			FleeSpeed:    1.2,
			Radius:       18,
			MaxHP:        60,
			AggroRange:   750,
			BiteRange:    40,
			BiteDamage:   8,
			BiteCooldown: 60,
			BiteAnim:     15,
		},
		Spawn: SpawnConfig{
			Initial:      12,
			Min:          8,
			Batch:        5,
			MinDistance:  600,
			Retries:      100,
			ScorePerKill: 10,
		},
		Camera: CameraConfig{Lerp: 0.1},
		Network: NetworkConfig{
			RelayURL:     "ws://localhost:8080",
			RelayAddr:    ":8080",
			SSHAddr:      ":23234",
			Codec:        "msgpack",
			QueueSize:    256,
			SeedWait:     3 * time.Second,
			LobbyTimeout: 2 * time.Minute,
		},
		Loop: LoopConfig{TickRate: 60},
	}
}

// GenParams converts the config into environment generation parameters.
func (c Config) GenParams() worldgen.Params {
	return worldgen.Params{
		WorldW:          c.World.Width,
		WorldH:          c.World.Height,
		Obstacles:       c.World.Obstacles,
		SanctuaryRadius: c.World.SanctuaryRadius,
		ObstacleMargin:  c.World.ObstacleMargin,
		TreeRatio:       c.World.TreeRatio,
		TreeRadiusMin:   c.World.TreeRadius.Min,
		TreeRadiusMax:   c.World.TreeRadius.Max,
		RockRadiusMin:   c.World.RockRadius.Min,
		RockRadiusMax:   c.World.RockRadius.Max,
		StreamZones:     c.Stream.Zones,
		StreamRadius:    c.Stream.Radius,
		StreamAmplitude: c.Stream.Amplitude,
		StreamWaves:     c.Stream.Waves,
	}
}

// SimParams converts the config into simulation tuning.
func (c Config) SimParams() sim.Params {
	return sim.Params{
		PlayerSpeed:  c.Player.Speed,
		PlayerRadius: c.Player.Radius,
		PlayerMaxHP:  c.Player.MaxHP,
		GaitStep:     c.Player.GaitStep,
		RemoteOffset: core.V(3*c.Player.Radius, 0),

		AttackCooldown:  c.Combat.Cooldown,
		AttackRange:     c.Combat.Range,
		AttackHalfAngle: c.Combat.HalfAngle,
		DamageLow:       c.Combat.DamageLow,
		DamageHigh:      c.Combat.DamageHigh,
		Knockback:       c.Combat.Knockback,
		XPPerKill:       c.Combat.XPPerKill,
		XPToNext:        c.Combat.XPToNext,

		HostileSpeed:  c.Hostiles.Speed,
		FleeSpeed:     c.Hostiles.FleeSpeed,
		HostileRadius: c.Hostiles.Radius,
		HostileMaxHP:  c.Hostiles.MaxHP,
		AggroRange:    c.Hostiles.AggroRange,
		BiteRange:     c.Hostiles.BiteRange,
		BiteDamage:    c.Hostiles.BiteDamage,
		BiteCooldown:  c.Hostiles.BiteCooldown,
		BiteAnim:      c.Hostiles.BiteAnim,

		InitialHostiles:  c.Spawn.Initial,
		MinHostiles:      c.Spawn.Min,
		SpawnBatch:       c.Spawn.Batch,
		SpawnMinDistance: c.Spawn.MinDistance,
		SpawnRetries:     c.Spawn.Retries,
		ScorePerKill:     c.Spawn.ScorePerKill,

		HealChance:      c.Stream.HealChance,
		TreeTrunkFactor: c.World.TreeTrunkFactor,
		CameraLerp:      c.Camera.Lerp,
	}
}
