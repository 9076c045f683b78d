package sim

import (
	"fmt"

	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/world"
)

// reap removes dead hostiles, scores them and tops the population back up.
func (e *Engine) reap(w *world.World) {
	alive := w.Hostiles[:0]
	removed := 0
	for _, h := range w.Hostiles {
		if h.Alive() {
			alive = append(alive, h)
		} else {
			removed++
		}
	}
	w.Hostiles = alive
	w.Score += removed * e.p.ScorePerKill

	if len(w.Hostiles) < e.p.MinHostiles {
		e.spawn(w, e.p.SpawnBatch)
	}
}

// spawn places up to n hostiles outside the sanctuary and away from the
// player. A hostile that finds no spot within SpawnRetries draws is skipped.
func (e *Engine) spawn(w *world.World, n int) {
	for i := 0; i < n; i++ {
		pos, ok := e.spawnPoint(w)
		if !ok {
			e.logger.Debug("hostile spawn skipped", "tick", w.Tick, "retries", e.p.SpawnRetries)
			continue
		}
		e.nextHostile++
		id := fmt.Sprintf("hostile-%d", e.nextHostile)
		w.Hostiles = append(w.Hostiles, world.NewHostile(id, pos, e.p.HostileRadius, e.p.HostileMaxHP))
	}
}

func (e *Engine) spawnPoint(w *world.World) (core.Vec2, bool) {
	b := w.Bounds
	for try := 0; try < e.p.SpawnRetries; try++ {
		pos := core.V(
			b.MinX+e.rng.Float64()*(b.MaxX-b.MinX),
			b.MinY+e.rng.Float64()*(b.MaxY-b.MinY),
		)
		if w.InSanctuary(pos) {
			continue
		}
		if pos.Dist(w.Player.Pos) < e.p.SpawnMinDistance {
			continue
		}
		return pos, true
	}
	return core.Vec2{}, false
}
