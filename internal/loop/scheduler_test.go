package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/netsync"
	"github.com/vovakirdan/wildgrove/internal/sim"
	"github.com/vovakirdan/wildgrove/internal/world"
	"github.com/vovakirdan/wildgrove/internal/worldgen"
)

// countdown dies after a fixed number of ticks.
type countdown struct {
	ticks, dieAt int
}

func (c *countdown) Tick(core.InputFrame) { c.ticks++ }
func (c *countdown) Done() bool           { return c.ticks >= c.dieAt }
func (c *countdown) Snapshot() *world.World {
	return &world.World{Tick: uint64(c.ticks), GameOver: c.Done()}
}

func TestStepStopsAtTerminal(t *testing.T) {
	fake := &countdown{dieAt: 3}
	var renders []*world.World
	s := New(fake, nil, func(w *world.World) { renders = append(renders, w) }, 60)

	results := []bool{s.Step(), s.Step(), s.Step(), s.Step(), s.Step()}
	expected := []bool{true, true, false, false, false}
	for i := range expected {
		if results[i] != expected[i] {
			t.Errorf("Step() #%d = %v, expected %v", i+1, results[i], expected[i])
		}
	}

	if fake.ticks != 3 {
		t.Errorf("simulation ticked %d times, expected 3", fake.ticks)
	}
	if len(renders) != 3 {
		t.Fatalf("rendered %d times, expected 3", len(renders))
	}
	if !renders[2].GameOver {
		t.Error("last render must show the terminal state")
	}
	if !s.Finished() {
		t.Error("scheduler should be finished")
	}
}

func TestStepOnDeadWorldRendersOnce(t *testing.T) {
	p := sim.DefaultParams()
	session := netsync.NewSession(netsync.Options{
		Role:      netsync.RoleSolo,
		Seed:      42,
		PlayerID:  "me",
		GenParams: worldgen.DefaultParams(),
		SimParams: p,
	})
	session.World().Player.HP = 0

	renders := 0
	var last *world.World
	s := New(session, nil, func(w *world.World) { renders++; last = w }, 60)

	if s.Step() {
		t.Error("Step() on a dead player should report terminal")
	}
	if s.Step() {
		t.Error("Step() after terminal should keep returning false")
	}
	if renders != 1 {
		t.Errorf("rendered %d times, expected exactly 1", renders)
	}
	if !last.GameOver {
		t.Error("final render should show game over")
	}
	if session.World().Tick != 0 {
		t.Errorf("world advanced to tick %d, a dead player is never stepped", session.World().Tick)
	}
}

func TestRunEndsWithSimulation(t *testing.T) {
	fake := &countdown{dieAt: 5}
	renders := 0
	s := New(fake, nil, func(*world.World) { renders++ }, 1000)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if fake.ticks != 5 || renders != 5 {
		t.Errorf("ticks = %d renders = %d, expected 5 and 5", fake.ticks, renders)
	}
}

func TestRunHonorsContext(t *testing.T) {
	fake := &countdown{dieAt: 1 << 30}
	s := New(fake, nil, nil, 1000)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := s.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() error = %v, expected deadline exceeded", err)
	}
}

func TestInterval(t *testing.T) {
	if got := New(&countdown{}, nil, nil, 0).Interval(); got != time.Second/DefaultTickRate {
		t.Errorf("Interval() = %v with default rate", got)
	}
	if got := New(&countdown{}, nil, nil, 20).Interval(); got != 50*time.Millisecond {
		t.Errorf("Interval() = %v, expected 50ms", got)
	}
}
