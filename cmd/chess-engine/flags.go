// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"time"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/search"
)

var (
	// Modes
	fenFlag   = flag.String("fen", "", "Search this position once and print the best move")
	perftFlag = flag.Int("perft", 0, "Count leaf nodes to depth N from -fen (or the start position)")
	benchFile = flag.String("bench", "", "Analyse every FEN in this file (one per line) in parallel")

	// Search limits
	depth    = flag.Int("depth", 0, "Search depth (0 = default)")
	moveTime = flag.Duration("movetime", 0, "Time per search, e.g. 500ms")
	hashMB   = flag.Int("hash", 0, "Transposition table size in MB (0 = default)")

	// Search features
	noNull      = flag.Bool("nonull", false, "Disable null-move pruning")
	noLMR       = flag.Bool("nolmr", false, "Disable late move reductions")
	noFutility  = flag.Bool("nofutility", false, "Disable futility pruning")
	freshSearch = flag.Bool("fresh", false, "Ignore game history for repetition draws")

	// Bench options
	workers  = flag.Int("workers", 0, "Bench worker count (0 = number of CPUs)")
	keepDups = flag.Bool("keepdups", false, "Analyse repeated bench positions again")

	// Logging
	logFile   = flag.String("l", "", "Write log messages to this file")
	verbosity = flag.Int("v", 1, "Log verbosity (0 = quiet, 2 = per iteration)")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags configures cfg from the command line.
func applyFlags(cfg *config.Config) {
	applySearchFlags(cfg)
	applyBenchFlags(cfg)
	cfg.Verbosity = *verbosity
}

// applySearchFlags configures search limits and features.
func applySearchFlags(cfg *config.Config) {
	if *depth > 0 {
		cfg.Search.DefaultDepth = *depth
	}
	if *hashMB > 0 {
		cfg.Search.HashEntries = search.EntriesForMB(*hashMB)
	}
	cfg.Search.NullMove = !*noNull
	cfg.Search.LateMoveReduction = !*noLMR
	cfg.Search.Futility = !*noFutility
	cfg.Search.PreserveHistory = !*freshSearch
}

// applyBenchFlags configures the batch analysis.
func applyBenchFlags(cfg *config.Config) {
	if *workers > 0 {
		cfg.Bench.Workers = *workers
	}
	if *depth > 0 {
		cfg.Bench.Depth = *depth
	}
	cfg.Bench.SkipDuplicates = !*keepDups
}

// searchLimits returns the limits of a one-shot search.
func searchLimits() search.Limits {
	return search.Limits{
		Depth:    *depth,
		MoveTime: max(*moveTime, time.Duration(0)),
	}
}
