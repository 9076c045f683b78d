package netsync

import (
	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/world"
)

// maxReportedHealth caps health values accepted from the other peer.
const maxReportedHealth = 10000

// applyAvatar overwrites the mirror with a received self-report. Values that
// are not finite keep the previous state; everything else is clamped to what
// a local simulation could have produced.
func applyAvatar(mirror *world.Entity, st *AvatarState, bounds core.Bounds) {
	if st.ID != "" {
		mirror.ID = st.ID
	}
	if pos := st.Position.Vec(); pos.IsFinite() {
		mirror.Pos = bounds.Clamp(pos)
	}
	if core.IsFinite(st.Facing) {
		mirror.Facing = core.NormalizeAngle(st.Facing)
	}
	if core.IsFinite(st.GaitPhase) && st.GaitPhase >= 0 {
		mirror.GaitPhase = st.GaitPhase
	} else {
		mirror.GaitPhase = 0
	}
	mirror.Attacking = st.Attacking

	if st.MaxHealth > 0 {
		mirror.MaxHP = core.Clamp(st.MaxHealth, 1, maxReportedHealth)
	}
	mirror.HP = core.Clamp(st.Health, 0, mirror.MaxHP)

	if mirror.Progress == nil {
		mirror.Progress = &world.Progress{}
	}
	mirror.Progress.Level = core.Clamp(st.Level, 1, world.MaxLevel)
}

// hostilesFromSnapshot converts received hostiles into entities, dropping
// any without an id or a finite position.
func hostilesFromSnapshot(in []HostileState, bounds core.Bounds, defaultRadius float64) []world.Entity {
	out := make([]world.Entity, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, hs := range in {
		pos := hs.Position.Vec()
		if hs.ID == "" || seen[hs.ID] || !pos.IsFinite() {
			continue
		}
		seen[hs.ID] = true

		radius := hs.Radius
		if !core.IsFinite(radius) || radius <= 0 {
			radius = defaultRadius
		}
		maxHP := core.Clamp(hs.MaxHealth, 1, maxReportedHealth)
		e := world.NewHostile(hs.ID, bounds.Clamp(pos), radius, maxHP)
		e.HP = core.Clamp(hs.Health, 0, maxHP)
		if core.IsFinite(hs.Facing) {
			e.Facing = core.NormalizeAngle(hs.Facing)
		}
		if core.IsFinite(hs.GaitPhase) && hs.GaitPhase >= 0 {
			e.GaitPhase = hs.GaitPhase
		}
		e.Attacking = hs.Attacking
		e.AttackAnim = max(0, hs.AttackAnim)
		out = append(out, e)
	}
	return out
}
