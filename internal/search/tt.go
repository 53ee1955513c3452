package search

import (
	"math/bits"
	"unsafe"

	"github.com/lgbarn/chess-engine-go/internal/chess"
)

// Bound tells how a stored score relates to the true value.
type Bound uint8

const (
	BoundNone Bound = iota // empty slot
	Exact
	Lower // score is a lower bound (fail high)
	Upper // score is an upper bound (fail low)
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "exact"
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	}
	return "none"
}

// Entry is one transposition table slot.
type Entry struct {
	Hash  chess.HashCode
	Move  chess.Move
	Score int32
	Depth int16
	Bound Bound
}

// Table is a direct-mapped transposition table indexed by the low bits of
// the position hash.
type Table struct {
	entries []Entry
	mask    uint64
	used    int
}

// NewTable allocates a table of size entries, rounded down to a power of
// two.
func NewTable(size int) *Table {
	n := 1
	for n*2 <= size {
		n *= 2
	}
	return &Table{entries: make([]Entry, n), mask: uint64(n - 1)}
}

// EntriesForMB returns the largest power-of-two entry count that fits in
// mb megabytes, or 0 when not even one entry fits.
func EntriesForMB(mb int) int {
	n := mb << 20 / int(unsafe.Sizeof(Entry{}))
	if n <= 0 {
		return 0
	}
	return 1 << (bits.Len(uint(n)) - 1)
}

// Size returns the number of slots.
func (t *Table) Size() int { return len(t.entries) }

// Probe returns the entry stored for h, if any.
func (t *Table) Probe(h chess.HashCode) (Entry, bool) {
	e := t.entries[uint64(h)&t.mask]
	if e.Bound == BoundNone || e.Hash != h {
		return Entry{}, false
	}
	return e, true
}

// Store writes e into its slot unless that would lose better information.
// A slot is taken when empty, when e searched deeper, or when e is exact
// and the occupant is not; an exact entry is never replaced by a
// non-exact one of equal or lesser depth. It reports whether e was stored.
func (t *Table) Store(e Entry) bool {
	slot := &t.entries[uint64(e.Hash)&t.mask]
	old := *slot

	replace := old.Bound == BoundNone ||
		e.Depth > old.Depth ||
		(e.Bound == Exact && old.Bound != Exact) ||
		(e.Hash == old.Hash && e.Depth == old.Depth && (e.Bound == Exact || old.Bound != Exact))
	if !replace {
		return false
	}
	if old.Bound == BoundNone {
		t.used++
	}
	*slot = e
	return true
}

// Clear empties the table.
func (t *Table) Clear() {
	clear(t.entries)
	t.used = 0
}

// Hashfull returns the occupied share of the table in permille.
func (t *Table) Hashfull() int {
	return t.used * 1000 / len(t.entries)
}
