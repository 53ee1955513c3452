package hashing

import "github.com/lgbarn/chess-engine-go/internal/chess"

// DuplicateDetector tracks seen position hashes so batch jobs skip
// positions they have already analysed.
type DuplicateDetector struct {
	seen           map[chess.HashCode]struct{}
	maxCapacity    int
	duplicateCount int
}

// NewDuplicateDetector creates a detector. maxCapacity of 0 means unlimited.
func NewDuplicateDetector(maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		seen:        make(map[chess.HashCode]struct{}),
		maxCapacity: maxCapacity,
	}
}

// CheckAndAdd reports whether h was seen before and records it otherwise.
// Once the detector is full new hashes are no longer recorded.
func (d *DuplicateDetector) CheckAndAdd(h chess.HashCode) bool {
	if _, ok := d.seen[h]; ok {
		d.duplicateCount++
		return true
	}
	if !d.IsFull() {
		d.seen[h] = struct{}{}
	}
	return false
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of distinct hashes recorded.
func (d *DuplicateDetector) UniqueCount() int {
	return len(d.seen)
}

// IsFull returns true if the detector has reached its capacity limit.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && len(d.seen) >= d.maxCapacity
}

// Reset clears the detector.
func (d *DuplicateDetector) Reset() {
	d.seen = make(map[chess.HashCode]struct{})
	d.duplicateCount = 0
}
