package symtab

// RNG is the random-number generator capability the NUMERIC builtins
// (RANDOMIZE, RND) drive. Seeding from the same value must reproduce the
// same sequence across runs and platforms, which rules out math/rand:
// its output stream is not part of its API contract and has changed
// across Go releases. A small fixed xorshift64* generator gives a
// documented, stable sequence instead.
type RNG interface {
	// Seed re-seeds the generator. A zero seed is remapped to a fixed
	// non-zero constant, since xorshift64* cannot recover from an
	// all-zero state.
	Seed(seed int64)
	// Next advances the generator and returns a value in [0, 1).
	Next() float64
	// Last returns the most recently produced value without advancing
	// (RND#(0)), or 0 before the first Next call.
	Last() float64
}

type rngState struct {
	state uint64
	last  float64
}

func newRNGState() *rngState {
	r := &rngState{}
	r.Seed(1)
	return r
}

func (r *rngState) Seed(seed int64) {
	if seed == 0 {
		r.state = 0x9E3779B97F4A7C15
		return
	}
	r.state = uint64(seed)
}

func (r *rngState) Next() float64 {
	x := r.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.state = x
	product := x * 0x2545F4914F6CDD1D
	// Top 53 bits give a value uniformly distributed in [0, 1) when
	// divided by 2^53, matching float64's mantissa precision.
	r.last = float64(product>>11) / float64(uint64(1)<<53)
	return r.last
}

func (r *rngState) Last() float64 { return r.last }
