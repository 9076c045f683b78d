package core

import (
	"math"
	"testing"
)

func TestVecNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Vec2
		expected Vec2
	}{
		{"zero stays zero", V(0, 0), V(0, 0)},
		{"unit x", V(5, 0), V(1, 0)},
		{"unit y", V(0, -3), V(0, -1)},
		{"diagonal", V(3, 4), V(0.6, 0.8)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if math.Abs(got.X-tc.expected.X) > 1e-9 || math.Abs(got.Y-tc.expected.Y) > 1e-9 {
				t.Errorf("Normalize(%v) = %v, expected %v", tc.in, got, tc.expected)
			}
		})
	}
}

func TestVecArithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(4, 6)

	if got := a.Add(b); got != V(5, 8) {
		t.Errorf("Add() = %v, expected (5, 8)", got)
	}
	if got := b.Sub(a); got != V(3, 4) {
		t.Errorf("Sub() = %v, expected (3, 4)", got)
	}
	if got := a.Scale(3); got != V(3, 6) {
		t.Errorf("Scale() = %v, expected (3, 6)", got)
	}
	if got := a.Dist(b); got != 5 {
		t.Errorf("Dist() = %v, expected 5", got)
	}
	if got := V(0, 0).Lerp(V(10, -10), 0.1); got != V(1, -1) {
		t.Errorf("Lerp() = %v, expected (1, -1)", got)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi}, // -Pi is excluded from the range
		{3 * math.Pi / 2, -math.Pi / 2},
		{2 * math.Pi, 0},
		{-math.Pi / 2, -math.Pi / 2},
		{5 * math.Pi / 2, math.Pi / 2},
		{math.NaN(), 0},
	}

	for _, tc := range tests {
		got := NormalizeAngle(tc.in)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("NormalizeAngle(%f) = %f, expected %f", tc.in, got, tc.expected)
		}
		if got <= -math.Pi || got > math.Pi {
			t.Errorf("NormalizeAngle(%f) = %f is outside (-Pi, Pi]", tc.in, got)
		}
	}
}

func TestBoundsClamp(t *testing.T) {
	b := NewBounds(100, 50)

	tests := []struct {
		name     string
		in       Vec2
		expected Vec2
	}{
		{"inside", V(10, 10), V(10, 10)},
		{"left", V(-5, 10), V(0, 10)},
		{"bottom right", V(150, 70), V(100, 50)},
		{"on edge", V(100, 0), V(100, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := b.Clamp(tc.in)
			if got != tc.expected {
				t.Errorf("Clamp(%v) = %v, expected %v", tc.in, got, tc.expected)
			}
			if !b.Contains(got) {
				t.Errorf("clamped point %v not contained", got)
			}
		})
	}

	if c := b.Center(); c != V(50, 25) {
		t.Errorf("Center() = %v, expected (50, 25)", c)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
