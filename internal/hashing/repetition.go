package hashing

import "github.com/lgbarn/chess-engine-go/internal/chess"

// DefaultRepetitionBits sizes the repetition table at 2^23 counters.
const DefaultRepetitionBits = 23

// RepetitionTable counts how often each position hash occurs on the current
// line. It is direct-mapped without verification, so two positions sharing
// the low bits of their hash share a counter and may over-count.
type RepetitionTable struct {
	counts []uint8
	mask   chess.HashCode
}

// NewRepetitionTable creates a table of 2^bits counters.
func NewRepetitionTable(bits uint) *RepetitionTable {
	if bits == 0 || bits > 30 {
		bits = DefaultRepetitionBits
	}
	size := 1 << bits
	return &RepetitionTable{
		counts: make([]uint8, size),
		mask:   chess.HashCode(size - 1),
	}
}

// Increment records one more occurrence of h.
func (t *RepetitionTable) Increment(h chess.HashCode) {
	t.counts[h&t.mask]++
}

// Decrement removes one occurrence of h.
func (t *RepetitionTable) Decrement(h chess.HashCode) {
	t.counts[h&t.mask]--
}

// Count returns how often h has been recorded.
func (t *RepetitionTable) Count(h chess.HashCode) int {
	return int(t.counts[h&t.mask])
}

// Reset clears all counters.
func (t *RepetitionTable) Reset() {
	clear(t.counts)
}

// Clone returns an independent copy.
func (t *RepetitionTable) Clone() *RepetitionTable {
	c := &RepetitionTable{counts: make([]uint8, len(t.counts)), mask: t.mask}
	copy(c.counts, t.counts)
	return c
}
