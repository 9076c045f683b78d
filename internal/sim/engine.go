// Package sim advances a world.World by discrete ticks: movement, melee,
// hostile AI, respawning, healing, bounds, collisions and camera.
package sim

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/world"
	"github.com/vovakirdan/wildgrove/internal/worldgen"
)

// Bite is damage a hostile dealt to an avatar this simulation does not own.
// The host ships these to the peer, which applies them to its own player.
type Bite struct {
	TargetID string `json:"targetId" msgpack:"targetId"`
	Damage   int    `json:"damage" msgpack:"damage"`
}

// Engine runs the per-tick update. It is not safe for concurrent use.
type Engine struct {
	p      Params
	rng    *rand.Rand
	logger *log.Logger

	nextHostile int
	bites       []Bite
}

// NewEngine creates an engine. The random source only drives host-local
// decisions (spawn positions, healing) and need not match across peers.
func NewEngine(seed uint32, p Params, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		p:      p,
		rng:    rand.New(rand.NewSource(int64(seed))), //nolint:gosec // gameplay randomness
		logger: logger,
	}
}

// Params returns the engine's tuning.
func (e *Engine) Params() Params {
	return e.p
}

// NewWorld creates the world for a session: environment from seed, player
// at the sanctuary center and, in co-op, the remote avatar next to it.
func NewWorld(seed uint32, gp worldgen.Params, p Params, playerID string, coop bool) *world.World {
	bounds := core.NewBounds(gp.WorldW, gp.WorldH)
	center := bounds.Center()

	w := &world.World{
		Bounds:          bounds,
		Seed:            seed,
		Env:             worldgen.Generate(seed, gp).All(),
		Sanctuary:       center,
		SanctuaryRadius: gp.SanctuaryRadius,
		Player:          world.NewAvatar(playerID, world.KindPlayer, center, p.PlayerRadius, p.PlayerMaxHP, p.XPToNext),
		Camera:          center,
	}
	if coop {
		remote := world.NewAvatar(world.RemoteAvatarID, world.KindRemoteAvatar,
			bounds.Clamp(center.Add(p.RemoteOffset)), p.PlayerRadius, p.PlayerMaxHP, p.XPToNext)
		w.RemoteAvatar = &remote
	}
	return w
}

// Populate spawns the opening hostiles. Only the authority calls it.
func (e *Engine) Populate(w *world.World) {
	e.spawn(w, e.p.InitialHostiles)
}

// Tick advances w by exactly one step. A finished world is left untouched.
func (e *Engine) Tick(w *world.World, in core.InputFrame, authority bool) {
	if w.GameOver || w.Player.HP <= 0 {
		w.GameOver = true
		return
	}
	w.Tick++

	e.move(w, &w.Player, in)
	cooldown(&w.Player)
	if in.Attack && w.Player.AttackCooldown == 0 {
		w.Player.Attacking = true
		w.Player.AttackCooldown = e.p.AttackCooldown
		w.Player.Swings++
		e.ResolveMelee(w, &w.Player)
	}
	if authority {
		e.updateHostiles(w)
		e.reap(w)
	}
	e.recover(w)
	e.clampAll(w)
	e.collide(w)
	w.Camera = w.Camera.Lerp(w.Player.Pos, e.p.CameraLerp)

	w.GameOver = w.Player.HP <= 0
}

// TakeBites returns bites recorded since the last call and clears them.
func (e *Engine) TakeBites() []Bite {
	if len(e.bites) == 0 {
		return nil
	}
	out := e.bites
	e.bites = nil
	return out
}

// cooldown decrements the attack cooldown and ends the swing at zero.
func cooldown(a *world.Entity) {
	if a.AttackCooldown > 0 {
		a.AttackCooldown--
	}
	if a.AttackCooldown == 0 {
		a.Attacking = false
	}
}
