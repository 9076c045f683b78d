package core

import "math"

// InputFrame is the input state for the local player during one simulation tick.
// The input layer fills it; the simulation consumes it exactly once.
type InputFrame struct {
	// MoveX and MoveY form the movement vector, each in [-1, 1].
	// A zero vector means "not moving".
	MoveX, MoveY float64

	// AimAngle is the pointer aim direction in radians, valid when HasAim is set.
	AimAngle float64
	HasAim   bool

	// Joystick marks movement coming from a virtual joystick; facing then
	// follows the movement direction instead of the aim.
	Joystick bool

	// Attack is edge-triggered: set only on the tick the attack was pressed.
	Attack bool
}

// Move returns the raw movement vector with each axis clamped to [-1, 1].
// NaN axes read as zero.
func (f InputFrame) Move() Vec2 {
	return Vec2{X: clampAxis(f.MoveX), Y: clampAxis(f.MoveY)}
}

// IsMoving reports whether the frame carries a non-zero movement vector.
func (f InputFrame) IsMoving() bool {
	return !f.Move().IsZero()
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	*f = InputFrame{}
}

func clampAxis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return ClampF(v, -1, 1)
}
