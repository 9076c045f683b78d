package sim

import (
	"math"

	"github.com/vovakirdan/wildgrove/internal/world"
)

// updateHostiles runs one tick of hostile behavior. Authority only.
func (e *Engine) updateHostiles(w *world.World) {
	avatars := w.Avatars()
	for i := range w.Hostiles {
		h := &w.Hostiles[i]
		if !h.Alive() {
			continue
		}
		if h.AttackCooldown > 0 {
			h.AttackCooldown--
		}
		if h.AttackAnim > 0 {
			h.AttackAnim--
			if h.AttackAnim == 0 {
				h.Attacking = false
			}
		}

		if w.InSanctuary(h.Pos) {
			e.flee(w, h)
			continue
		}

		target := nearest(h, avatars)
		if target == nil {
			h.GaitPhase = 0
			continue
		}
		dist := h.Pos.Dist(target.Pos)
		if dist >= e.p.AggroRange {
			h.GaitPhase = 0
			continue
		}

		toward := target.Pos.Sub(h.Pos)
		h.Facing = toward.Angle()
		if contact := h.Radius + target.Radius; dist > contact {
			step := math.Min(e.p.HostileSpeed, dist-contact)
			h.Pos = h.Pos.Add(toward.Normalize().Scale(step))
			h.GaitPhase += e.p.GaitStep
		}

		if h.Pos.Dist(target.Pos) < e.p.BiteRange && h.AttackCooldown == 0 {
			e.bite(w, h, target)
		}
	}
}

// flee moves the hostile radially away from the sanctuary center.
func (e *Engine) flee(w *world.World, h *world.Entity) {
	away := h.Pos.Sub(w.Sanctuary).Normalize()
	if away.IsZero() {
		away.X = 1
	}
	h.Pos = h.Pos.Add(away.Scale(e.p.FleeSpeed))
	h.Facing = away.Angle()
	h.GaitPhase += e.p.GaitStep
}

func (e *Engine) bite(w *world.World, h, target *world.Entity) {
	h.AttackCooldown = e.p.BiteCooldown
	h.AttackAnim = e.p.BiteAnim
	h.Attacking = true

	if target.Kind == world.KindRemoteAvatar {
		// The peer owns its avatar's health; it applies this on receipt.
		e.bites = append(e.bites, Bite{TargetID: target.ID, Damage: e.p.BiteDamage})
		return
	}
	target.Damage(e.p.BiteDamage)
}

// nearest returns the closest living avatar, or nil.
func nearest(h *world.Entity, avatars []*world.Entity) *world.Entity {
	var best *world.Entity
	bestDist := math.Inf(1)
	for _, a := range avatars {
		if !a.Alive() {
			continue
		}
		if d := h.Pos.Dist(a.Pos); d < bestDist {
			best, bestDist = a, d
		}
	}
	return best
}
