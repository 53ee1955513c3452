package config

import (
	"runtime"

	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// BenchConfig holds settings for batch analysis of FEN files.
type BenchConfig struct {
	// Workers is the number of positions analysed in parallel
	Workers int

	// BufferSize is the job queue capacity
	BufferSize int

	// Depth is the search depth per position
	Depth int

	// SkipDuplicates analyses each distinct position once
	SkipDuplicates bool

	// MaxPositions bounds the duplicate detector (0 = unlimited)
	MaxPositions int
}

// NewBenchConfig creates a BenchConfig with default values.
func NewBenchConfig() *BenchConfig {
	return &BenchConfig{
		Workers:        runtime.NumCPU(),
		BufferSize:     64,
		Depth:          5,
		SkipDuplicates: true,
	}
}

// Validate checks the bench settings.
func (c *BenchConfig) Validate() error {
	if c.Workers < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "workers %d", c.Workers)
	}
	if c.Depth < 1 || c.Depth > MaxSearchDepth {
		return errors.Wrapf(errors.ErrInvalidConfig, "bench depth %d not in 1..%d", c.Depth, MaxSearchDepth)
	}
	if c.MaxPositions < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "max positions %d", c.MaxPositions)
	}
	return nil
}
