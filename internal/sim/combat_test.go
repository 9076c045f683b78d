package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/world"
)

func TestInConeBoundaries(t *testing.T) {
	p := testParams()
	p.AttackHalfAngle = math.Pi / 2
	e := NewEngine(1, p, nil)

	attacker := world.NewAvatar("me", world.KindPlayer, core.V(500, 500), 20, 100, 50)
	attacker.Facing = 0

	tests := []struct {
		name   string
		target core.Vec2
		hit    bool
	}{
		{"dead ahead", core.V(600, 500), true},
		{"exactly at range", core.V(500+p.AttackRange, 500), false},
		{"just inside range", core.V(500+p.AttackRange-0.5, 500), true},
		{"exactly on half angle", core.V(500, 600), false},
		{"just inside half angle", core.V(501, 600), true},
		{"behind", core.V(400, 500), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.InCone(&attacker, tc.target); got != tc.hit {
				t.Errorf("InCone(%v) = %v, expected %v", tc.target, got, tc.hit)
			}
		})
	}
}

func TestInConeWrapsAngles(t *testing.T) {
	e := NewEngine(1, testParams(), nil)
	attacker := world.NewAvatar("me", world.KindPlayer, core.V(500, 500), 20, 100, 50)
	attacker.Facing = math.Pi - 0.1

	// Bearing is about -Pi+0.1, only 0.2 rad away once normalized.
	target := core.V(400, 490)
	if !e.InCone(&attacker, target) {
		t.Error("cone test must normalize the angle difference")
	}
}

func TestHitsToKill(t *testing.T) {
	tests := []struct {
		name  string
		level int
		hits  int
	}{
		{"low tier", 1, 5},
		{"high tier", 2, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := testParams()
			e := NewEngine(1, p, nil)
			w := newTestWorld(p)
			w.Player.Facing = 0
			w.Player.Progress.Level = tc.level
			start := w.Player.Pos.Add(core.V(100, 0))
			w.Hostiles = []world.Entity{world.NewHostile("h", start, p.HostileRadius, p.HostileMaxHP)}

			hits := 0
			for w.Hostiles[0].Alive() {
				w.Hostiles[0].Pos = start
				e.ResolveMelee(w, &w.Player)
				hits++
				if hits > 10 {
					t.Fatal("hostile never died")
				}
			}
			if hits != tc.hits {
				t.Errorf("took %d hits, expected %d", hits, tc.hits)
			}
		})
	}
}

func TestMeleeKnockback(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)
	w.Player.Facing = 0
	start := w.Player.Pos.Add(core.V(100, 0))
	w.Hostiles = []world.Entity{world.NewHostile("h", start, p.HostileRadius, p.HostileMaxHP)}

	e.ResolveMelee(w, &w.Player)

	want := start.Add(core.V(p.Knockback, 0))
	if !near(w.Hostiles[0].Pos, want) {
		t.Errorf("hostile at %v, expected %v", w.Hostiles[0].Pos, want)
	}
}

func TestAttackCooldownGating(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)
	w.Player.Facing = 0
	w.Hostiles = []world.Entity{world.NewHostile("h", w.Player.Pos.Add(core.V(60, 0)), p.HostileRadius, 1000)}
	w.Hostiles[0].MaxHP = 1000

	attack := core.InputFrame{Attack: true}
	e.Tick(w, attack, false)
	if !w.Player.Attacking || w.Player.AttackCooldown != p.AttackCooldown {
		t.Fatalf("attack not started: attacking=%v cooldown=%d", w.Player.Attacking, w.Player.AttackCooldown)
	}
	hp := w.Hostiles[0].HP

	e.Tick(w, attack, false)
	if w.Hostiles[0].HP != hp {
		t.Error("attack during cooldown landed")
	}

	for i := 0; i < p.AttackCooldown-2; i++ {
		e.Tick(w, core.InputFrame{}, false)
	}
	if w.Player.AttackCooldown != 1 || !w.Player.Attacking {
		t.Fatalf("cooldown = %d attacking = %v", w.Player.AttackCooldown, w.Player.Attacking)
	}

	// Cooldown reaches zero before the attack check in the same tick.
	e.Tick(w, attack, false)
	if w.Hostiles[0].HP >= hp {
		t.Error("attack on the tick the cooldown expired should land")
	}
}

func TestKillsAwardXPUntilCap(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)
	w.Player.Facing = 0

	for kill := 0; kill < 8; kill++ {
		h := world.NewHostile("h", w.Player.Pos.Add(core.V(50, 0)), p.HostileRadius, p.HostileMaxHP)
		h.HP = 1
		w.Hostiles = []world.Entity{h}
		if got := e.ResolveMelee(w, &w.Player); got != 1 {
			t.Fatalf("kill %d: ResolveMelee returned %d", kill, got)
		}
	}

	if w.Player.Level() != world.MaxLevel {
		t.Errorf("level = %d, expected %d", w.Player.Level(), world.MaxLevel)
	}
	if w.Player.Progress.XP != 0 {
		t.Errorf("XP = %d, expected 0 at cap", w.Player.Progress.XP)
	}
}

func TestDeadHostilesAreNotHit(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)
	w.Player.Facing = 0
	h := world.NewHostile("h", w.Player.Pos.Add(core.V(50, 0)), p.HostileRadius, p.HostileMaxHP)
	h.HP = 0
	w.Hostiles = []world.Entity{h}

	if got := e.ResolveMelee(w, &w.Player); got != 0 {
		t.Errorf("killed a dead hostile: %d", got)
	}
	if w.Player.Progress.XP != 0 {
		t.Error("XP awarded for a dead hostile")
	}
}
