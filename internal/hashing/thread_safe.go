package hashing

import (
	"sync"

	"github.com/lgbarn/chess-engine-go/internal/chess"
)

// ThreadSafeDuplicateDetector is a DuplicateDetector shared by the workers
// of a batch analysis.
type ThreadSafeDuplicateDetector struct {
	mu sync.RWMutex
	d  *DuplicateDetector
}

// NewThreadSafeDuplicateDetector creates a shared detector. maxCapacity of
// 0 means unlimited.
func NewThreadSafeDuplicateDetector(maxCapacity int) *ThreadSafeDuplicateDetector {
	return &ThreadSafeDuplicateDetector{d: NewDuplicateDetector(maxCapacity)}
}

// CheckAndAdd reports whether h was seen before and records it otherwise,
// as one step.
func (t *ThreadSafeDuplicateDetector) CheckAndAdd(h chess.HashCode) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.d.CheckAndAdd(h)
}

// DuplicateCount returns the number of repeats seen so far.
func (t *ThreadSafeDuplicateDetector) DuplicateCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.d.DuplicateCount()
}

// UniqueCount returns the number of distinct positions recorded.
func (t *ThreadSafeDuplicateDetector) UniqueCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.d.UniqueCount()
}

// IsFull reports whether new positions are no longer recorded.
func (t *ThreadSafeDuplicateDetector) IsFull() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.d.IsFull()
}

// Reset forgets every recorded position.
func (t *ThreadSafeDuplicateDetector) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.d.Reset()
}
