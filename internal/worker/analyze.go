package worker

import (
	"context"
	"time"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/hashing"
	"github.com/lgbarn/chess-engine-go/internal/search"
)

// Analyzer searches positions for a Pool. Every concurrent search borrows
// its own engine, so transposition tables are never shared.
type Analyzer struct {
	ctx     context.Context
	cfg     *config.Config
	limits  search.Limits
	engines chan *search.Engine
	dups    *hashing.ThreadSafeDuplicateDetector
}

// NewAnalyzer creates an analyzer with one engine per bench worker.
func NewAnalyzer(ctx context.Context, cfg *config.Config) *Analyzer {
	workers := max(cfg.Bench.Workers, 1)
	a := &Analyzer{
		ctx:     ctx,
		cfg:     cfg,
		limits:  search.Limits{Depth: cfg.Bench.Depth},
		engines: make(chan *search.Engine, workers),
	}
	for i := 0; i < workers; i++ {
		a.engines <- search.NewEngine(cfg)
	}
	if cfg.Bench.SkipDuplicates {
		a.dups = hashing.NewThreadSafeDuplicateDetector(cfg.Bench.MaxPositions)
	}
	return a
}

// Duplicates returns how many positions were skipped as repeats.
func (a *Analyzer) Duplicates() int {
	if a.dups == nil {
		return 0
	}
	return a.dups.DuplicateCount()
}

// Process analyses one work item. It satisfies ProcessFunc.
func (a *Analyzer) Process(item WorkItem) ProcessResult {
	res := ProcessResult{FEN: item.FEN, Index: item.Index}

	pos, err := engine.NewPositionFromFEN(item.FEN)
	if err != nil {
		res.Error = err
		return res
	}
	if a.dups != nil && a.dups.CheckAndAdd(pos.Hash()) {
		res.Skipped = true
		return res
	}

	e := <-a.engines
	defer func() { a.engines <- e }()

	start := time.Now()
	r := e.Search(a.ctx, pos, a.limits)
	res.Move = r.Move
	res.Score = r.Score
	res.Depth = r.Depth
	res.Nodes = r.Nodes
	res.Elapsed = time.Since(start)
	return res
}

// Summary totals a bench run.
type Summary struct {
	Positions int
	Skipped   int
	Failed    int
	Nodes     uint64
	Elapsed   time.Duration
	Cancelled bool            // positions were left unanalysed
	Results   []ProcessResult // ordered by Index
}

// NPS returns the overall nodes per second.
func (s Summary) NPS() uint64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return uint64(float64(s.Nodes) / s.Elapsed.Seconds())
}

// Run analyses fens on a pool sized from cfg.Bench and returns the results
// in input order.
func Run(ctx context.Context, cfg *config.Config, fens []string) Summary {
	start := time.Now()
	analyzer := NewAnalyzer(ctx, cfg)
	pool := NewPool(analyzer.Process,
		WithWorkers(cfg.Bench.Workers),
		WithBufferSize(cfg.Bench.BufferSize),
	)
	pool.Start(ctx)

	go func() {
		for i, fen := range fens {
			if ctx.Err() != nil {
				pool.Stop()
				break
			}
			pool.Submit(WorkItem{FEN: fen, Index: i})
		}
		pool.Close()
	}()

	sum := Summary{Results: make([]ProcessResult, len(fens))}
	for res := range pool.Results() {
		sum.Results[res.Index] = res
		switch {
		case res.Error != nil:
			sum.Failed++
			cfg.Logf(1, "bench: position %d: %v\n", res.Index+1, res.Error)
		case res.Skipped:
			sum.Skipped++
		default:
			sum.Positions++
			sum.Nodes += res.Nodes
			cfg.Logf(2, "bench: position %d: %s %s depth %d nodes %d\n", res.Index+1,
				res.Move.UCI(), search.FormatScore(res.Score), res.Depth, res.Nodes)
		}
	}
	sum.Elapsed = time.Since(start)
	sum.Cancelled = pool.IsStopped() || ctx.Err() != nil
	cfg.Logf(1, "bench: %d workers processed %d of %d positions\n", pool.NumWorkers(), pool.Processed(), len(fens))
	return sum
}
