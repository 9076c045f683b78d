// Package loop drives a simulation at a fixed tick rate, rendering once
// after every tick.
package loop

import (
	"context"
	"time"

	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/world"
)

// Simulation is what the scheduler advances. netsync.Session implements it.
type Simulation interface {
	Tick(in core.InputFrame)
	Done() bool
	Snapshot() *world.World
}

// InputFunc samples the input for the next tick.
type InputFunc func() core.InputFrame

// RenderFunc receives a read-only copy of the world after each tick.
type RenderFunc func(w *world.World)

// DefaultTickRate is the simulation rate in ticks per second.
const DefaultTickRate = 60

// Scheduler runs one tick followed by one render per step.
type Scheduler struct {
	sim      Simulation
	input    InputFunc
	render   RenderFunc
	rate     int
	finished bool
}

// New creates a scheduler. A tickRate below 1 selects DefaultTickRate.
func New(sim Simulation, input InputFunc, render RenderFunc, tickRate int) *Scheduler {
	if tickRate < 1 {
		tickRate = DefaultTickRate
	}
	if input == nil {
		input = func() core.InputFrame { return core.InputFrame{} }
	}
	if render == nil {
		render = func(*world.World) {}
	}
	return &Scheduler{sim: sim, input: input, render: render, rate: tickRate}
}

// Interval returns the wall-clock time between ticks.
func (s *Scheduler) Interval() time.Duration {
	return time.Second / time.Duration(s.rate)
}

// Finished reports whether the final render has been emitted.
func (s *Scheduler) Finished() bool {
	return s.finished
}

// Step advances one tick and renders. It returns false once the simulation
// is terminal; the render of the terminal state happens exactly once and
// later calls do nothing.
func (s *Scheduler) Step() bool {
	if s.finished {
		return false
	}
	if !s.sim.Done() {
		s.sim.Tick(s.input())
	}
	s.render(s.sim.Snapshot())
	if s.sim.Done() {
		s.finished = true
		return false
	}
	return true
}

// Run steps at the fixed rate until the simulation ends or ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !s.Step() {
				return nil
			}
		}
	}
}
