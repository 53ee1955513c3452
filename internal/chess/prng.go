package chess

// DefaultSeed seeds every deterministic table in the engine.
const DefaultSeed uint64 = 1234

// PRNG is a xorshift64* generator. Same seed, same sequence.
type PRNG struct {
	state uint64
}

// NewPRNG creates a generator. A zero seed is replaced with DefaultSeed.
func NewPRNG(seed uint64) *PRNG {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &PRNG{state: seed}
}

// Next returns the next 64-bit value.
func (r *PRNG) Next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 2685821657736338717
}

// Sparse returns a value with roughly an eighth of its bits set.
func (r *PRNG) Sparse() uint64 {
	return r.Next() & r.Next() & r.Next()
}
