package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/world"
	"github.com/vovakirdan/wildgrove/internal/worldgen"
)

// testParams disables respawning so tests control the hostile population.
func testParams() Params {
	p := DefaultParams()
	p.MinHostiles = 0
	p.InitialHostiles = 0
	return p
}

func newTestWorld(p Params) *world.World {
	center := core.V(2000, 2000)
	return &world.World{
		Bounds:          core.NewBounds(4000, 4000),
		Sanctuary:       center,
		SanctuaryRadius: 300,
		Player:          world.NewAvatar("me", world.KindPlayer, center, p.PlayerRadius, p.PlayerMaxHP, p.XPToNext),
		Camera:          center,
	}
}

func near(a, b core.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestNewWorld(t *testing.T) {
	gp := worldgen.DefaultParams()
	p := DefaultParams()

	w := NewWorld(42, gp, p, "me", true)
	center := core.V(gp.WorldW/2, gp.WorldH/2)

	if w.Player.Pos != center {
		t.Errorf("player at %v, expected sanctuary center %v", w.Player.Pos, center)
	}
	if w.RemoteAvatar == nil {
		t.Fatal("co-op world needs a remote avatar")
	}
	if w.RemoteAvatar.Pos != center.Add(p.RemoteOffset) {
		t.Errorf("remote at %v", w.RemoteAvatar.Pos)
	}
	if len(w.Env) == 0 {
		t.Error("environment not generated")
	}
	if len(w.Hostiles) != 0 {
		t.Error("hostiles appear only after Populate")
	}

	solo := NewWorld(42, gp, p, "me", false)
	if solo.RemoteAvatar != nil {
		t.Error("solo world must not have a remote avatar")
	}

	e := NewEngine(42, p, nil)
	e.Populate(solo)
	if len(solo.Hostiles) != p.InitialHostiles {
		t.Fatalf("Populate spawned %d, expected %d", len(solo.Hostiles), p.InitialHostiles)
	}
	for _, h := range solo.Hostiles {
		if solo.InSanctuary(h.Pos) {
			t.Errorf("%s spawned inside the sanctuary", h.ID)
		}
		if h.Pos.Dist(solo.Player.Pos) < p.SpawnMinDistance {
			t.Errorf("%s spawned too close to the player", h.ID)
		}
	}
}

func TestMovement(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)

	tests := []struct {
		name       string
		in         core.InputFrame
		wantMove   core.Vec2
		wantFacing float64
	}{
		{"idle", core.InputFrame{}, core.V(0, 0), 0},
		{"right", core.InputFrame{MoveX: 1}, core.V(4, 0), 0},
		{"diagonal normalized", core.InputFrame{MoveX: 1, MoveY: 1}, core.V(4/math.Sqrt2, 4/math.Sqrt2), math.Pi / 4},
		{"aim overrides keyboard facing", core.InputFrame{MoveX: 1, HasAim: true, AimAngle: 2}, core.V(4, 0), 2},
		{"joystick faces movement", core.InputFrame{MoveY: -1, HasAim: true, AimAngle: 2, Joystick: true}, core.V(0, -4), -math.Pi / 2},
		{"aim while idle", core.InputFrame{HasAim: true, AimAngle: -1}, core.V(0, 0), -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(p)
			start := w.Player.Pos
			e.Tick(w, tc.in, true)

			if got := w.Player.Pos.Sub(start); !near(got, tc.wantMove) {
				t.Errorf("moved %v, expected %v", got, tc.wantMove)
			}
			if math.Abs(w.Player.Facing-tc.wantFacing) > 1e-9 {
				t.Errorf("facing %f, expected %f", w.Player.Facing, tc.wantFacing)
			}
		})
	}
}

func TestGaitPhase(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)

	for i := 0; i < 3; i++ {
		e.Tick(w, core.InputFrame{MoveX: 1}, true)
	}
	if math.Abs(w.Player.GaitPhase-3*p.GaitStep) > 1e-9 {
		t.Errorf("gait = %f after three moving ticks", w.Player.GaitPhase)
	}
	e.Tick(w, core.InputFrame{}, true)
	if w.Player.GaitPhase != 0 {
		t.Errorf("gait = %f, expected reset while idle", w.Player.GaitPhase)
	}
}

func TestWorldBoundClamp(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)
	w.Player.Pos = core.V(3999, 1)
	w.Hostiles = []world.Entity{world.NewHostile("h", core.V(-50, 5000), p.HostileRadius, p.HostileMaxHP)}

	for i := 0; i < 5; i++ {
		e.Tick(w, core.InputFrame{MoveX: 1, MoveY: -1}, true)
	}

	if w.Player.Pos != core.V(4000, 0) {
		t.Errorf("player at %v, expected corner (4000, 0)", w.Player.Pos)
	}
	if !w.Bounds.Contains(w.Hostiles[0].Pos) {
		t.Errorf("hostile at %v outside world", w.Hostiles[0].Pos)
	}
}

func TestObstacleCollision(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)

	tests := []struct {
		name     string
		obstacle world.Entity
		expected core.Vec2
	}{
		{"rock full radius", world.Entity{ID: "rock-0", Kind: world.KindRock, Pos: core.V(1000, 1000), Radius: 30}, core.V(1050, 1000)},
		{"tree trunk only", world.Entity{ID: "tree-0", Kind: world.KindTree, Pos: core.V(1000, 1000), Radius: 40}, core.V(1040, 1000)},
		{"stream does not block", world.Entity{ID: "stream-0", Kind: world.KindStream, Pos: core.V(1000, 1000), Radius: 60}, core.V(1010, 1000)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(p)
			w.Env = []world.Entity{tc.obstacle}
			w.Player.Pos = core.V(1010, 1000)
			w.Player.HP = w.Player.MaxHP

			e.Tick(w, core.InputFrame{}, true)
			if !near(w.Player.Pos, tc.expected) {
				t.Errorf("player at %v, expected %v", w.Player.Pos, tc.expected)
			}
		})
	}
}

func TestCameraSmoothing(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)
	w.Camera = w.Player.Pos.Sub(core.V(100, 0))

	e.Tick(w, core.InputFrame{}, true)

	want := w.Player.Pos.Sub(core.V(90, 0))
	if !near(w.Camera, want) {
		t.Errorf("camera at %v, expected %v", w.Camera, want)
	}
}

func TestPassiveRecovery(t *testing.T) {
	p := testParams()
	p.HealChance = 1
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)
	w.Env = []world.Entity{{ID: "stream-0", Kind: world.KindStream, Pos: w.Player.Pos, Radius: 60}}
	w.Player.HP = 50

	e.Tick(w, core.InputFrame{}, true)
	if w.Player.HP != 51 {
		t.Errorf("HP = %d, expected 51 inside stream", w.Player.HP)
	}

	w.Player.HP = w.Player.MaxHP
	e.Tick(w, core.InputFrame{}, true)
	if w.Player.HP != w.Player.MaxHP {
		t.Errorf("HP = %d exceeded max", w.Player.HP)
	}

	w.Env[0].Pos = core.V(0, 0)
	w.Player.HP = 50
	e.Tick(w, core.InputFrame{}, true)
	if w.Player.HP != 50 {
		t.Errorf("HP = %d, expected no healing outside stream", w.Player.HP)
	}
}

func TestGameOverStopsAdvancing(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)
	w.Player.HP = 0

	e.Tick(w, core.InputFrame{MoveX: 1}, true)
	if !w.GameOver {
		t.Fatal("HP 0 must end the game")
	}
	tick, pos := w.Tick, w.Player.Pos

	e.Tick(w, core.InputFrame{MoveX: 1}, true)
	if w.Tick != tick || w.Player.Pos != pos {
		t.Error("finished world advanced")
	}
}

func TestDeadPlayerIsNotTicked(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)
	w.Player.Damage(w.Player.MaxHP)
	pos := w.Player.Pos

	e.Tick(w, core.InputFrame{MoveX: 1, Attack: true}, true)

	if !w.GameOver {
		t.Error("dead player must end the game")
	}
	if w.Player.Pos != pos || w.Player.Attacking || w.Player.Swings != 0 || w.Tick != 0 {
		t.Errorf("dead player advanced: pos=%v attacking=%v swings=%d tick=%d",
			w.Player.Pos, w.Player.Attacking, w.Player.Swings, w.Tick)
	}
}

func TestSwingCounterCountsBackToBackAttacks(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)

	e.Tick(w, core.InputFrame{Attack: true}, true)
	for i := 0; i < p.AttackCooldown-1; i++ {
		e.Tick(w, core.InputFrame{}, true)
	}
	e.Tick(w, core.InputFrame{Attack: true}, true)

	if w.Player.Swings != 2 {
		t.Errorf("swings = %d, expected 2", w.Player.Swings)
	}
	if !w.Player.Attacking {
		t.Error("second swing should be in progress")
	}
}

func TestRemoteAvatarIsNotMovedLocally(t *testing.T) {
	p := testParams()
	e := NewEngine(1, p, nil)
	w := newTestWorld(p)
	w.Env = []world.Entity{{ID: "rock-0", Kind: world.KindRock, Pos: core.V(1000, 1000), Radius: 30}}
	remote := world.NewAvatar("friend", world.KindRemoteAvatar, core.V(1010, 1000), p.PlayerRadius, p.PlayerMaxHP, p.XPToNext)
	w.RemoteAvatar = &remote

	e.Tick(w, core.InputFrame{}, true)

	if w.RemoteAvatar.Pos != core.V(1010, 1000) {
		t.Errorf("remote avatar moved to %v", w.RemoteAvatar.Pos)
	}
}
