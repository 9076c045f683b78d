// Package config provides YAML-based configuration loading and difficulty
// presets for wildgrove.
package config

import (
	"fmt"
	"time"
)

// Config contains every tunable of a session.
type Config struct {
	World    WorldConfig   `yaml:"world"`
	Stream   StreamConfig  `yaml:"stream"`
	Player   PlayerConfig  `yaml:"player"`
	Combat   CombatConfig  `yaml:"combat"`
	Hostiles HostileConfig `yaml:"hostiles"`
	Spawn    SpawnConfig   `yaml:"spawn"`
	Camera   CameraConfig  `yaml:"camera"`
	Network  NetworkConfig `yaml:"network"`
	Loop     LoopConfig    `yaml:"loop"`
}

// RadiusRange is an inclusive min/max radius.
type RadiusRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// WorldConfig defines the map and obstacle layout.
type WorldConfig struct {
	Width           float64     `yaml:"width"`
	Height          float64     `yaml:"height"`
	Obstacles       int         `yaml:"obstacles"`
	SanctuaryRadius float64     `yaml:"sanctuary_radius"`
	ObstacleMargin  float64     `yaml:"obstacle_margin"`
	TreeRatio       float64     `yaml:"tree_ratio"`
	TreeRadius      RadiusRange `yaml:"tree_radius"`
	RockRadius      RadiusRange `yaml:"rock_radius"`
	TreeTrunkFactor float64     `yaml:"tree_trunk_factor"`
}

// StreamConfig defines the healing stream.
type StreamConfig struct {
	Zones      int     `yaml:"zones"`
	Radius     float64 `yaml:"radius"`
	Amplitude  float64 `yaml:"amplitude"`
	Waves      float64 `yaml:"waves"`
	HealChance float64 `yaml:"heal_chance"`
}

// PlayerConfig defines avatar movement and health.
type PlayerConfig struct {
	Speed    float64 `yaml:"speed"`
	Radius   float64 `yaml:"radius"`
	MaxHP    int     `yaml:"max_hp"`
	GaitStep float64 `yaml:"gait_step"`
}

// CombatConfig defines melee and leveling.
type CombatConfig struct {
	Cooldown   int     `yaml:"cooldown"`
	Range      float64 `yaml:"range"`
	HalfAngle  float64 `yaml:"half_angle"`
	DamageLow  int     `yaml:"damage_low"`
	DamageHigh int     `yaml:"damage_high"`
	Knockback  float64 `yaml:"knockback"`
	XPPerKill  int     `yaml:"xp_per_kill"`
	XPToNext   int     `yaml:"xp_to_next"`
}

// HostileConfig defines hostile behavior.
type HostileConfig struct {
	Speed        float64 `yaml:"speed"`
	FleeSpeed    float64 `yaml:"flee_speed"`
	Radius       float64 `yaml:"radius"`
	MaxHP        int     `yaml:"max_hp"`
	AggroRange   float64 `yaml:"aggro_range"`
	BiteRange    float64 `yaml:"bite_range"`
	BiteDamage   int     `yaml:"bite_damage"`
	BiteCooldown int     `yaml:"bite_cooldown"`
	BiteAnim     int     `yaml:"bite_anim"`
}

// SpawnConfig defines the hostile population policy.
type SpawnConfig struct {
	Initial      int     `yaml:"initial"`
	Min          int     `yaml:"min"`
	Batch        int     `yaml:"batch"`
	MinDistance  float64 `yaml:"min_distance"`
	Retries      int     `yaml:"retries"`
	ScorePerKill int     `yaml:"score_per_kill"`
}

// CameraConfig defines camera smoothing.
type CameraConfig struct {
	Lerp float64 `yaml:"lerp"`
}

// NetworkConfig defines co-op transport settings.
type NetworkConfig struct {
	RelayURL     string        `yaml:"relay_url"`
	RelayAddr    string        `yaml:"relay_addr"`
	SSHAddr      string        `yaml:"ssh_addr"`
	Codec        string        `yaml:"codec"`
	QueueSize    int           `yaml:"queue_size"`
	SeedWait     time.Duration `yaml:"seed_wait"`
	LobbyTimeout time.Duration `yaml:"lobby_timeout"`
}

// LoopConfig defines the simulation rate.
type LoopConfig struct {
	TickRate int `yaml:"tick_rate"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// Validate reports the first setting that would break the simulation.
func (c Config) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("config: world size must be positive, got %gx%g", c.World.Width, c.World.Height)
	case c.World.Obstacles < 0:
		return fmt.Errorf("config: world.obstacles must not be negative")
	case c.World.TreeRadius.Min <= 0 || c.World.TreeRadius.Max < c.World.TreeRadius.Min:
		return fmt.Errorf("config: invalid world.tree_radius %+v", c.World.TreeRadius)
	case c.World.RockRadius.Min <= 0 || c.World.RockRadius.Max < c.World.RockRadius.Min:
		return fmt.Errorf("config: invalid world.rock_radius %+v", c.World.RockRadius)
	case c.Player.Speed <= c.Hostiles.Speed:
		return fmt.Errorf("config: hostiles.speed %g must be below player.speed %g", c.Hostiles.Speed, c.Player.Speed)
	case c.Player.MaxHP <= 0 || c.Hostiles.MaxHP <= 0:
		return fmt.Errorf("config: max_hp must be positive")
	case c.Player.Radius <= 0 || c.Hostiles.Radius <= 0 || c.Stream.Radius <= 0:
		return fmt.Errorf("config: radii must be positive")
	case c.Combat.Cooldown < 0 || c.Hostiles.BiteCooldown < 0:
		return fmt.Errorf("config: cooldowns must not be negative")
	case c.Combat.XPToNext <= 0:
		return fmt.Errorf("config: combat.xp_to_next must be positive")
	case c.Stream.HealChance < 0 || c.Stream.HealChance > 1:
		return fmt.Errorf("config: stream.heal_chance %g outside [0, 1]", c.Stream.HealChance)
	case c.Camera.Lerp <= 0 || c.Camera.Lerp > 1:
		return fmt.Errorf("config: camera.lerp %g outside (0, 1]", c.Camera.Lerp)
	case c.Loop.TickRate < 1:
		return fmt.Errorf("config: loop.tick_rate must be at least 1")
	}
	return nil
}
