package world

import (
	"github.com/vovakirdan/wildgrove/internal/core"
)

// World is the complete local simulation state of one session.
// It is owned by a single goroutine; other goroutines only ever see
// copies returned by Snapshot.
type World struct {
	Bounds core.Bounds
	Seed   uint32
	Tick   uint64

	Player       Entity
	RemoteAvatar *Entity // present iff the session has two peers
	Hostiles     []Entity
	Env          []Entity // generated once from Seed, never mutated

	// Sanctuary is the circle around the world center where the player
	// spawns and hostiles cannot linger.
	Sanctuary       core.Vec2
	SanctuaryRadius float64

	Score    int
	GameOver bool
	Camera   core.Vec2
}

// HostileIndex returns the index of the hostile with id, or -1.
func (w *World) HostileIndex(id string) int {
	for i := range w.Hostiles {
		if w.Hostiles[i].ID == id {
			return i
		}
	}
	return -1
}

// ReplaceHostiles swaps the hostile collection wholesale. The input is
// copied so the caller keeps ownership of its slice.
func (w *World) ReplaceHostiles(hs []Entity) {
	out := make([]Entity, len(hs))
	for i := range hs {
		out[i] = hs[i].Clone()
	}
	w.Hostiles = out
}

// InSanctuary reports whether p lies inside the sanctuary circle.
func (w *World) InSanctuary(p core.Vec2) bool {
	return p.Dist(w.Sanctuary) < w.SanctuaryRadius
}

// Avatars returns pointers to the local player and, when present, the remote avatar.
func (w *World) Avatars() []*Entity {
	if w.RemoteAvatar != nil {
		return []*Entity{&w.Player, w.RemoteAvatar}
	}
	return []*Entity{&w.Player}
}

// Snapshot returns a deep copy of the world for presentation.
// The environment slice is shared because it is never mutated after generation.
func (w *World) Snapshot() *World {
	s := *w
	s.Player = w.Player.Clone()
	if w.RemoteAvatar != nil {
		r := w.RemoteAvatar.Clone()
		s.RemoteAvatar = &r
	}
	s.Hostiles = make([]Entity, len(w.Hostiles))
	for i := range w.Hostiles {
		s.Hostiles[i] = w.Hostiles[i].Clone()
	}
	return &s
}
