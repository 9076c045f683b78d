package sim

import (
	"math"

	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/world"
)

// ResolveMelee applies one swing by attacker to every hostile inside its
// attack cone. Cooldown gating is the caller's job. It returns the number of
// hostiles killed by this swing.
//
// A hostile is hit when its distance is strictly below AttackRange and its
// bearing differs from the attacker's facing by strictly less than
// AttackHalfAngle.
func (e *Engine) ResolveMelee(w *world.World, attacker *world.Entity) int {
	damage := e.p.DamageLow
	if attacker.Level() >= world.MaxLevel {
		damage = e.p.DamageHigh
	}

	kills := 0
	for i := range w.Hostiles {
		h := &w.Hostiles[i]
		if !h.Alive() || !e.InCone(attacker, h.Pos) {
			continue
		}
		push := h.Pos.Sub(attacker.Pos).Normalize()
		h.Pos = w.Bounds.Clamp(h.Pos.Add(push.Scale(e.p.Knockback)))
		if h.Damage(damage) {
			kills++
			if attacker.Progress != nil {
				attacker.Progress.AddXP(e.p.XPPerKill)
			}
		}
	}
	return kills
}

// InCone reports whether target lies inside attacker's melee cone.
func (e *Engine) InCone(attacker *world.Entity, target core.Vec2) bool {
	d := target.Sub(attacker.Pos)
	if d.Len() >= e.p.AttackRange {
		return false
	}
	diff := core.NormalizeAngle(d.Angle() - attacker.Facing)
	return math.Abs(diff) < e.p.AttackHalfAngle
}
