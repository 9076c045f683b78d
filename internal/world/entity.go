// Package world holds the entity and world-state model shared by the
// generator, the simulation and the sync layer.
package world

import (
	"github.com/vovakirdan/wildgrove/internal/core"
)

// Kind tags what an Entity represents.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindRemoteAvatar
	KindHostile
	KindTree
	KindRock
	KindStream
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindRemoteAvatar:
		return "remote"
	case KindHostile:
		return "hostile"
	case KindTree:
		return "tree"
	case KindRock:
		return "rock"
	case KindStream:
		return "stream"
	default:
		return "unknown"
	}
}

// IsAvatar reports whether the kind is player-controlled.
func (k Kind) IsAvatar() bool {
	return k == KindPlayer || k == KindRemoteAvatar
}

// IsObstacle reports whether the kind blocks movement.
func (k Kind) IsObstacle() bool {
	return k == KindTree || k == KindRock
}

// MaxLevel is the level cap for avatars.
const MaxLevel = 2

// Progress is the leveling state carried by avatar entities only.
type Progress struct {
	Level    int
	XP       int
	XPToNext int
}

// AddXP awards experience and levels up once XPToNext is reached.
// Nothing is awarded at MaxLevel.
func (p *Progress) AddXP(n int) (leveled bool) {
	if p.Level >= MaxLevel {
		return false
	}
	p.XP += n
	for p.Level < MaxLevel && p.XP >= p.XPToNext {
		p.XP -= p.XPToNext
		p.Level++
		leveled = true
	}
	if p.Level >= MaxLevel {
		p.XP = 0
	}
	return leveled
}

// Entity is the single record type for every simulated object.
type Entity struct {
	ID     string
	Kind   Kind
	Pos    core.Vec2
	Vel    core.Vec2 // not integrated; kept for interpolation
	Facing float64
	Radius float64

	HP    int
	MaxHP int

	Attacking      bool
	AttackCooldown int    // ticks remaining
	AttackAnim     int    // ticks remaining of the hostile bite animation
	Swings         uint32 // attacks started so far; wraps

	GaitPhase float64
	Color     core.Color

	Progress *Progress // nil unless Kind.IsAvatar()
}

// Alive reports whether the entity still has health.
func (e *Entity) Alive() bool {
	return e.HP > 0
}

// Level returns the avatar level, or 1 for entities without progress.
func (e *Entity) Level() int {
	if e.Progress == nil {
		return 1
	}
	return e.Progress.Level
}

// Damage subtracts n health and clamps to [0, MaxHP].
// It reports whether this call took the entity from alive to dead.
func (e *Entity) Damage(n int) (killed bool) {
	wasAlive := e.HP > 0
	e.HP = core.Clamp(e.HP-n, 0, e.MaxHP)
	return wasAlive && e.HP <= 0
}

// Heal adds n health up to MaxHP.
func (e *Entity) Heal(n int) {
	e.HP = core.Clamp(e.HP+n, 0, e.MaxHP)
}

// Clone returns a deep copy of the entity.
func (e Entity) Clone() Entity {
	if e.Progress != nil {
		p := *e.Progress
		e.Progress = &p
	}
	return e
}

// RemoteAvatarID is the remote avatar's id until the other peer reports its own.
const RemoteAvatarID = "remote"

// NewAvatar creates a level-1 avatar entity.
func NewAvatar(id string, kind Kind, pos core.Vec2, radius float64, hp, xpToNext int) Entity {
	color := core.ColorYellow
	if kind == KindRemoteAvatar {
		color = core.ColorCyan
	}
	return Entity{
		ID:       id,
		Kind:     kind,
		Pos:      pos,
		Radius:   radius,
		HP:       hp,
		MaxHP:    hp,
		Color:    color,
		Progress: &Progress{Level: 1, XPToNext: xpToNext},
	}
}

// NewHostile creates a full-health hostile entity.
func NewHostile(id string, pos core.Vec2, radius float64, hp int) Entity {
	return Entity{
		ID:     id,
		Kind:   KindHostile,
		Pos:    pos,
		Radius: radius,
		HP:     hp,
		MaxHP:  hp,
		Color:  core.ColorRed,
	}
}
