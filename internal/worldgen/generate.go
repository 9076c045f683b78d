// Package worldgen derives the static environment of a session from a seed.
// Only the seed ever crosses the network; both peers call Generate with it
// and obtain identical layouts.
package worldgen

import (
	"fmt"
	"math"

	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/world"
)

// Params controls environment generation.
type Params struct {
	WorldW, WorldH float64

	Obstacles       int     // obstacle draws; the placed count is at most this
	SanctuaryRadius float64 // clearing around the world center
	ObstacleMargin  float64 // extra clearance beyond the sanctuary
	TreeRatio       float64 // threshold draws below this become trees

	TreeRadiusMin, TreeRadiusMax float64
	RockRadiusMin, RockRadiusMax float64

	StreamZones     int
	StreamRadius    float64
	StreamAmplitude float64
	StreamWaves     float64 // full sine periods across the map
}

// DefaultParams returns the standard generation parameters.
func DefaultParams() Params {
	return Params{
		WorldW:          4000,
		WorldH:          4000,
		Obstacles:       220,
		SanctuaryRadius: 300,
		ObstacleMargin:  50,
		TreeRatio:       0.65,
		TreeRadiusMin:   30,
		TreeRadiusMax:   55,
		RockRadiusMin:   20,
		RockRadiusMax:   40,
		StreamZones:     64,
		StreamRadius:    60,
		StreamAmplitude: 300,
		StreamWaves:     2,
	}
}

// Environment is the generated static layout.
type Environment struct {
	Seed      uint32
	Obstacles []world.Entity // trees and rocks in draw order
	Stream    []world.Entity // healing zones from left to right
}

// All returns obstacles followed by stream zones in one new slice.
func (e Environment) All() []world.Entity {
	out := make([]world.Entity, 0, len(e.Obstacles)+len(e.Stream))
	out = append(out, e.Obstacles...)
	return append(out, e.Stream...)
}

// Generate builds the environment for seed. It is pure: equal seeds and
// params give equal results.
//
// Per obstacle the generator draws x, y, rotation, radius and kind threshold,
// in that order, whether or not the obstacle is kept. Obstacles too close to
// the sanctuary are dropped, not relocated.
func Generate(seed uint32, p Params) Environment {
	rng := NewLCG(seed)
	center := core.V(p.WorldW/2, p.WorldH/2)
	clearance := p.SanctuaryRadius + p.ObstacleMargin

	env := Environment{Seed: seed}
	for i := 0; i < p.Obstacles; i++ {
		x := rng.Float() * p.WorldW
		y := rng.Float() * p.WorldH
		rot := rng.Float() * 2 * math.Pi
		size := rng.Float()
		threshold := rng.Float()

		pos := core.V(x, y)
		if pos.Dist(center) < clearance {
			continue
		}

		e := world.Entity{
			Pos:    pos,
			Facing: core.NormalizeAngle(rot),
		}
		if threshold < p.TreeRatio {
			e.ID = fmt.Sprintf("tree-%d", i)
			e.Kind = world.KindTree
			e.Radius = p.TreeRadiusMin + size*(p.TreeRadiusMax-p.TreeRadiusMin)
			e.Color = core.ColorGreen
		} else {
			e.ID = fmt.Sprintf("rock-%d", i)
			e.Kind = world.KindRock
			e.Radius = p.RockRadiusMin + size*(p.RockRadiusMax-p.RockRadiusMin)
			e.Color = core.ColorGray
		}
		env.Obstacles = append(env.Obstacles, e)
	}

	env.Stream = layStream(rng, p)
	return env
}

// layStream places overlapping zones along y = mid + offset + A*sin(phase + kx).
func layStream(rng *LCG, p Params) []world.Entity {
	phase := rng.Float() * 2 * math.Pi
	offset := (rng.Float() - 0.5) * p.WorldH / 2

	if p.StreamZones <= 0 {
		return nil
	}

	zones := make([]world.Entity, 0, p.StreamZones)
	step := 0.0
	if p.StreamZones > 1 {
		step = p.WorldW / float64(p.StreamZones-1)
	}
	bounds := core.NewBounds(p.WorldW, p.WorldH)
	k := 2 * math.Pi * p.StreamWaves / p.WorldW

	for i := 0; i < p.StreamZones; i++ {
		x := float64(i) * step
		y := p.WorldH/2 + offset + p.StreamAmplitude*math.Sin(phase+k*x)
		zones = append(zones, world.Entity{
			ID:     fmt.Sprintf("stream-%d", i),
			Kind:   world.KindStream,
			Pos:    bounds.Clamp(core.V(x, y)),
			Radius: p.StreamRadius,
			Color:  core.ColorBlue,
		})
	}
	return zones
}

// Summary counts the entities in an environment.
type Summary struct {
	Seed    uint32
	Trees   int
	Rocks   int
	Stream  int
	Skipped int
}

// Summarize reports how many of each kind the environment contains.
// Skipped is the number of obstacle draws dropped near the sanctuary.
func Summarize(env Environment, p Params) Summary {
	s := Summary{Seed: env.Seed, Stream: len(env.Stream)}
	for _, e := range env.Obstacles {
		switch e.Kind {
		case world.KindTree:
			s.Trees++
		case world.KindRock:
			s.Rocks++
		}
	}
	s.Skipped = p.Obstacles - len(env.Obstacles)
	return s
}
