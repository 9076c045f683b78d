package sim

import (
	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/world"
)

// move integrates one tick of input into the avatar.
func (e *Engine) move(w *world.World, a *world.Entity, in core.InputFrame) {
	mv := in.Move()
	moving := !mv.IsZero()

	var dir core.Vec2
	if moving {
		dir = mv.Normalize()
		a.Pos = w.Bounds.Clamp(a.Pos.Add(dir.Scale(e.p.PlayerSpeed)))
		a.GaitPhase += e.p.GaitStep
	} else {
		a.GaitPhase = 0
	}

	switch {
	case in.Joystick && moving:
		a.Facing = dir.Angle()
	case in.HasAim:
		a.Facing = core.NormalizeAngle(in.AimAngle)
	case moving:
		a.Facing = dir.Angle()
	}
}

// clampAll keeps every locally simulated entity inside the world. The
// remote avatar's position is only ever what its owner reported.
func (e *Engine) clampAll(w *world.World) {
	w.Player.Pos = w.Bounds.Clamp(w.Player.Pos)
	for i := range w.Hostiles {
		w.Hostiles[i].Pos = w.Bounds.Clamp(w.Hostiles[i].Pos)
	}
}

// collide pushes the player and hostiles out of rocks and tree trunks by
// the penetration depth.
func (e *Engine) collide(w *world.World) {
	e.pushOut(w, &w.Player)
	for i := range w.Hostiles {
		e.pushOut(w, &w.Hostiles[i])
	}
}

func (e *Engine) pushOut(w *world.World, d *world.Entity) {
	for i := range w.Env {
		o := &w.Env[i]
		if !o.Kind.IsObstacle() {
			continue
		}
		r := o.Radius
		if o.Kind == world.KindTree {
			r *= e.p.TreeTrunkFactor
		}
		minDist := d.Radius + r
		delta := d.Pos.Sub(o.Pos)
		dist := delta.Len()
		if dist >= minDist {
			continue
		}
		dir := delta.Normalize()
		if dir.IsZero() {
			dir = core.V(1, 0)
		}
		d.Pos = w.Bounds.Clamp(d.Pos.Add(dir.Scale(minDist - dist)))
	}
}

// recover heals the player by one point with HealChance while standing in
// the stream.
func (e *Engine) recover(w *world.World) {
	p := &w.Player
	if p.HP <= 0 || p.HP >= p.MaxHP {
		return
	}
	for i := range w.Env {
		z := &w.Env[i]
		if z.Kind != world.KindStream {
			continue
		}
		if p.Pos.Dist(z.Pos) < z.Radius+p.Radius {
			if e.rng.Float64() < e.p.HealChance {
				p.Heal(1)
			}
			return
		}
	}
}
