package worldgen

// LCG is a 32-bit linear congruential generator. Both peers must draw from
// it in exactly the same order, so it carries no hidden state besides the
// current value.
type LCG struct {
	state uint32
}

// NewLCG seeds a generator.
func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Next advances the generator and returns the new state.
func (r *LCG) Next() uint32 {
	r.state = r.state*1664525 + 1013904223
	return r.state
}

// Float returns the next value in [0, 1).
func (r *LCG) Float() float64 {
	return float64(r.Next()) / (1 << 32)
}

// Range returns the next value in [lo, hi).
func (r *LCG) Range(lo, hi float64) float64 {
	return lo + r.Float()*(hi-lo)
}
