package config

import (
	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// MaxSearchDepth bounds every depth limit the engine accepts.
const MaxSearchDepth = 64

// SearchConfig holds the search parameters.
type SearchConfig struct {
	// DefaultDepth is used when a search request names no limit
	DefaultDepth int

	// HashEntries is the transposition table size; must be a power of two
	HashEntries int

	// AspirationWindow is the half-width in centipawns of the first window
	AspirationWindow int

	// AspirationWiden is the half-width of the single re-search window
	AspirationWiden int

	// NullMove enables null-move pruning
	NullMove bool

	// NullMoveReduction is the depth reduction R of the null-move search
	NullMoveReduction int

	// LateMoveReduction enables reduced searches of late quiet moves
	LateMoveReduction bool

	// LMRMinDepth is the remaining depth from which reductions apply
	LMRMinDepth int

	// LMRMinMoves is the number of moves searched at full depth first
	LMRMinMoves int

	// Futility enables futility pruning at frontier nodes
	Futility bool

	// FutilityMargin is the per-ply margin in centipawns
	FutilityMargin int

	// PreserveHistory keeps the repetition history of the game across
	// searches; when false it is reset at the start of every search
	PreserveHistory bool
}

// NewSearchConfig creates a SearchConfig with default values.
func NewSearchConfig() *SearchConfig {
	return &SearchConfig{
		DefaultDepth:      6,
		HashEntries:       1 << 20,
		AspirationWindow:  50,
		AspirationWiden:   200,
		NullMove:          true,
		NullMoveReduction: 3,
		LateMoveReduction: true,
		LMRMinDepth:       3,
		LMRMinMoves:       3,
		Futility:          true,
		FutilityMargin:    200,
		PreserveHistory:   true,
	}
}

// Validate checks the search parameters.
func (c *SearchConfig) Validate() error {
	switch {
	case c.DefaultDepth < 1 || c.DefaultDepth > MaxSearchDepth:
		return errors.Wrapf(errors.ErrInvalidConfig, "default depth %d not in 1..%d", c.DefaultDepth, MaxSearchDepth)
	case c.HashEntries <= 0 || c.HashEntries&(c.HashEntries-1) != 0:
		return errors.Wrapf(errors.ErrInvalidConfig, "hash entries %d is not a power of two", c.HashEntries)
	case c.AspirationWindow <= 0:
		return errors.Wrapf(errors.ErrInvalidConfig, "aspiration window %d", c.AspirationWindow)
	case c.AspirationWiden < c.AspirationWindow:
		return errors.Wrapf(errors.ErrInvalidConfig, "aspiration widening %d narrower than window %d",
			c.AspirationWiden, c.AspirationWindow)
	case c.NullMoveReduction < 1:
		return errors.Wrapf(errors.ErrInvalidConfig, "null move reduction %d", c.NullMoveReduction)
	case c.LMRMinDepth < 2:
		return errors.Wrapf(errors.ErrInvalidConfig, "LMR minimum depth %d", c.LMRMinDepth)
	case c.LMRMinMoves < 1:
		return errors.Wrapf(errors.ErrInvalidConfig, "LMR minimum moves %d", c.LMRMinMoves)
	case c.FutilityMargin < 0:
		return errors.Wrapf(errors.ErrInvalidConfig, "futility margin %d", c.FutilityMargin)
	}
	return nil
}
