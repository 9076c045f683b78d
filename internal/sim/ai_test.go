package sim

import (
	"testing"

	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/world"
)

func TestHostileIdleOutsideAggro(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)
	start := w.Player.Pos.Add(core.V(900, 0))
	w.Hostiles = []world.Entity{world.NewHostile("h", start, p.HostileRadius, p.HostileMaxHP)}

	for i := 0; i < 120; i++ {
		e.Tick(w, core.InputFrame{}, true)
	}

	h := w.Hostiles[0]
	if h.Pos != start {
		t.Errorf("idle hostile moved to %v", h.Pos)
	}
	if h.GaitPhase != 0 || h.Attacking {
		t.Errorf("idle hostile animating: gait=%f attacking=%v", h.GaitPhase, h.Attacking)
	}
	if w.Player.HP != w.Player.MaxHP {
		t.Error("idle hostile damaged the player")
	}
}

func TestHostilePursues(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)
	w.Player.Pos = core.V(1000, 1000)
	start := core.V(1400, 1000)
	w.Hostiles = []world.Entity{world.NewHostile("h", start, p.HostileRadius, p.HostileMaxHP)}

	e.Tick(w, core.InputFrame{}, true)

	h := w.Hostiles[0]
	if !near(h.Pos, start.Sub(core.V(p.HostileSpeed, 0))) {
		t.Errorf("hostile at %v, expected one step toward player", h.Pos)
	}
	if !near(core.FromAngle(h.Facing), core.V(-1, 0)) {
		t.Errorf("hostile facing %f, expected toward player", h.Facing)
	}
	if h.GaitPhase == 0 {
		t.Error("pursuing hostile should advance its gait")
	}
}

func TestHostileFleesSanctuary(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)
	start := w.Sanctuary.Add(core.V(0, 100))
	w.Hostiles = []world.Entity{world.NewHostile("h", start, p.HostileRadius, p.HostileMaxHP)}

	e.Tick(w, core.InputFrame{}, true)

	if !near(w.Hostiles[0].Pos, start.Add(core.V(0, p.FleeSpeed))) {
		t.Errorf("hostile at %v, expected radial flee", w.Hostiles[0].Pos)
	}
	if w.Player.HP != w.Player.MaxHP {
		t.Error("fleeing hostile must not bite")
	}
}

func TestHostileBite(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)
	w.Player.Pos = core.V(1000, 1000)
	w.Hostiles = []world.Entity{world.NewHostile("h", core.V(1030, 1000), p.HostileRadius, p.HostileMaxHP)}

	e.Tick(w, core.InputFrame{}, true)

	h := w.Hostiles[0]
	if w.Player.HP != p.PlayerMaxHP-p.BiteDamage {
		t.Errorf("player HP = %d after bite", w.Player.HP)
	}
	if h.AttackCooldown != p.BiteCooldown || h.AttackAnim != p.BiteAnim || !h.Attacking {
		t.Errorf("bite state: cooldown=%d anim=%d attacking=%v", h.AttackCooldown, h.AttackAnim, h.Attacking)
	}

	for i := 0; i < p.BiteAnim; i++ {
		e.Tick(w, core.InputFrame{}, true)
	}
	if w.Player.HP != p.PlayerMaxHP-p.BiteDamage {
		t.Error("bite repeated during cooldown")
	}
	if w.Hostiles[0].Attacking {
		t.Error("bite animation should have ended")
	}
}

func TestHostileBitesRemoteAsRelay(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)
	w.Player.Pos = core.V(3000, 3000)
	remote := world.NewAvatar("friend", world.KindRemoteAvatar, core.V(1000, 1000), p.PlayerRadius, p.PlayerMaxHP, p.XPToNext)
	w.RemoteAvatar = &remote
	w.Hostiles = []world.Entity{world.NewHostile("h", core.V(1030, 1000), p.HostileRadius, p.HostileMaxHP)}

	e.Tick(w, core.InputFrame{}, true)

	if w.RemoteAvatar.HP != p.PlayerMaxHP {
		t.Error("host must not change the remote avatar's health directly")
	}
	bites := e.TakeBites()
	if len(bites) != 1 || bites[0].TargetID != "friend" || bites[0].Damage != p.BiteDamage {
		t.Fatalf("bites = %+v", bites)
	}
	if e.TakeBites() != nil {
		t.Error("TakeBites must clear the buffer")
	}
}

func TestPeerRunsNoHostileAI(t *testing.T) {
	p := DefaultParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)
	start := w.Player.Pos.Add(core.V(400, 0))
	w.Hostiles = []world.Entity{world.NewHostile("h", start, p.HostileRadius, p.HostileMaxHP)}

	e.Tick(w, core.InputFrame{}, false)

	if len(w.Hostiles) != 1 || w.Hostiles[0].Pos != start {
		t.Error("non-authority tick must leave the hostile mirror alone")
	}
}

func TestReapAndRespawn(t *testing.T) {
	p := testParams()
	p.MinHostiles = 8
	e := NewEngine(7, p, nil)
	w := newTestWorld(p)
	dead := world.NewHostile("hostile-dead", core.V(100, 100), p.HostileRadius, p.HostileMaxHP)
	dead.HP = 0
	w.Hostiles = []world.Entity{dead}

	e.Tick(w, core.InputFrame{}, true)

	if w.Score != p.ScorePerKill {
		t.Errorf("score = %d, expected %d", w.Score, p.ScorePerKill)
	}
	if w.HostileIndex("hostile-dead") != -1 {
		t.Error("dead hostile not removed")
	}
	if len(w.Hostiles) != p.SpawnBatch {
		t.Fatalf("spawned %d, expected %d", len(w.Hostiles), p.SpawnBatch)
	}
	seen := map[string]bool{}
	for _, h := range w.Hostiles {
		if seen[h.ID] {
			t.Errorf("duplicate hostile id %s", h.ID)
		}
		seen[h.ID] = true
		if w.InSanctuary(h.Pos) || h.Pos.Dist(w.Player.Pos) < p.SpawnMinDistance {
			t.Errorf("%s spawned at %v", h.ID, h.Pos)
		}
	}
}

func TestSpawnGivesUpWhenNoRoom(t *testing.T) {
	p := testParams()
	p.SpawnMinDistance = 1e9
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)

	e.spawn(w, 3)
	if len(w.Hostiles) != 0 {
		t.Errorf("spawned %d hostiles with no valid position", len(w.Hostiles))
	}
}
