// Package search implements iterative-deepening alpha-beta search and the
// static evaluation it relies on.
package search

import (
	"context"
	"time"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/engine"
)

// Limits bounds one search. Zero fields are unlimited; with no limit at
// all the configured default depth applies unless Infinite is set.
type Limits struct {
	Depth    int
	MoveTime time.Duration
	Nodes    uint64
	Infinite bool
}

// Info reports a completed iteration.
type Info struct {
	Depth    int
	Score    int
	Nodes    uint64
	Elapsed  time.Duration
	Hashfull int
	PV       []chess.Move
}

// NPS returns nodes per second.
func (i Info) NPS() uint64 {
	if i.Elapsed <= 0 {
		return 0
	}
	return uint64(float64(i.Nodes) / i.Elapsed.Seconds())
}

// InfoFunc receives progress after every completed iteration.
type InfoFunc func(Info)

// Result is the outcome of a search. Move is chess.NullMove only when the
// root has no legal move; Score then tells mate from stalemate.
type Result struct {
	Move    chess.Move
	Score   int
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
	PV      []chess.Move
}

// Evaluation returns the result in presentation form.
func (r Result) Evaluation() *Evaluation {
	return NewEvaluation(r.Score, r.Depth, r.Move)
}

// abortCheckInterval is how many nodes pass between deadline checks.
const abortCheckInterval = 1024

// Engine searches positions. The transposition table and killer moves
// persist between searches until NewGame. An Engine is not safe for
// concurrent use.
type Engine struct {
	cfg     *config.Config
	tt      *Table
	killers Killers
	info    InfoFunc

	// per search
	pos       *engine.Position
	ctx       context.Context
	start     time.Time
	deadline  time.Time
	nodeLimit uint64
	nodes     uint64
	canAbort  bool
	aborted   bool
	rootBest  chess.Move
}

// NewEngine creates an engine with a transposition table sized by
// cfg.Search.HashEntries.
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		cfg: cfg,
		tt:  NewTable(cfg.Search.HashEntries),
	}
}

// SetInfoFunc installs the progress callback; nil disables it.
func (e *Engine) SetInfoFunc(f InfoFunc) {
	e.info = f
}

// NewGame forgets everything learned in previous searches.
func (e *Engine) NewGame() {
	e.tt.Clear()
	e.killers.Clear()
}

// ResizeTable replaces the transposition table with an empty one of the
// given size.
func (e *Engine) ResizeTable(entries int) {
	e.tt = NewTable(entries)
}

// TableSize returns the number of transposition table slots.
func (e *Engine) TableSize() int {
	return e.tt.Size()
}

// Hashfull returns the transposition table occupancy in permille.
func (e *Engine) Hashfull() int {
	return e.tt.Hashfull()
}

// Evaluate returns the static evaluation of pos.
func (e *Engine) Evaluate(pos *engine.Position) int {
	return Evaluate(pos)
}

// Search runs iterative deepening on pos until a limit is hit or ctx is
// done. pos is mutated during the search and restored before returning.
// The first iteration always completes, so a legal root yields a move.
func (e *Engine) Search(ctx context.Context, pos *engine.Position, limits Limits) Result {
	e.pos = pos
	e.ctx = ctx
	e.start = time.Now()
	e.deadline = time.Time{}
	if limits.MoveTime > 0 {
		e.deadline = e.start.Add(limits.MoveTime)
	}
	e.nodeLimit = limits.Nodes
	e.nodes = 0
	e.aborted = false
	e.canAbort = false
	e.killers.Clear()
	defer func() { e.pos, e.ctx = nil, nil }()

	if !e.cfg.Search.PreserveHistory {
		pos.ResetRepetitions()
	}

	maxDepth := limits.Depth
	if maxDepth <= 0 {
		maxDepth = config.MaxSearchDepth
		if limits.MoveTime == 0 && limits.Nodes == 0 && !limits.Infinite {
			maxDepth = e.cfg.Search.DefaultDepth
		}
	}
	maxDepth = min(maxDepth, config.MaxSearchDepth)

	if !pos.HasLegalMoves() {
		score := DrawScore
		if pos.IsInCheck() {
			score = MatedIn(0)
		}
		return Result{Score: score, Elapsed: time.Since(e.start)}
	}

	var result Result
	prev := 0
	for depth := 1; depth <= maxDepth; depth++ {
		score := e.searchRoot(depth, prev)
		if e.aborted {
			e.cfg.Logf(2, "search: depth %d aborted after %d nodes\n", depth, e.nodes)
			break
		}
		prev = score
		result = Result{
			Move:    e.rootBest,
			Score:   score,
			Depth:   depth,
			Nodes:   e.nodes,
			Elapsed: time.Since(e.start),
			PV:      e.principalVariation(depth),
		}
		e.cfg.Logf(2, "search: depth %d score %s nodes %d\n", depth, FormatScore(score), e.nodes)
		if e.info != nil {
			e.info(Info{
				Depth:    depth,
				Score:    score,
				Nodes:    e.nodes,
				Elapsed:  result.Elapsed,
				Hashfull: e.tt.Hashfull(),
				PV:       result.PV,
			})
		}

		e.canAbort = true
		if IsMateScore(score) && MateScore-chess.Abs(score) <= depth {
			break
		}
		if e.limitReached() {
			break
		}
	}
	result.Nodes = e.nodes
	result.Elapsed = time.Since(e.start)
	e.cfg.Logf(1, "search: %s %s depth %d nodes %d in %v\n",
		result.Move.UCI(), FormatScore(result.Score), result.Depth, result.Nodes, result.Elapsed)
	return result
}

// searchRoot searches one depth, first inside an aspiration window around
// the previous score, then once in a wider window, then unbounded.
func (e *Engine) searchRoot(depth, prev int) int {
	if depth > 1 {
		for _, w := range []int{e.cfg.Search.AspirationWindow, e.cfg.Search.AspirationWiden} {
			alpha, beta := max(prev-w, -Infinity), min(prev+w, Infinity)
			score := e.negamax(depth, 0, alpha, beta, false)
			if e.aborted || (score > alpha && score < beta) {
				return score
			}
			e.cfg.Logf(2, "search: depth %d score %d outside [%d, %d]\n", depth, score, alpha, beta)
		}
	}
	return e.negamax(depth, 0, -Infinity, Infinity, false)
}

// limitReached reports whether the search must stop now.
func (e *Engine) limitReached() bool {
	if e.nodeLimit > 0 && e.nodes >= e.nodeLimit {
		return true
	}
	if !e.deadline.IsZero() && !time.Now().Before(e.deadline) {
		return true
	}
	return e.ctx.Err() != nil
}

// checkAbort marks the search aborted once a limit is hit. Only iterations
// after the first can be aborted.
func (e *Engine) checkAbort() bool {
	if e.aborted {
		return true
	}
	if !e.canAbort {
		return false
	}
	if e.nodeLimit > 0 && e.nodes >= e.nodeLimit {
		e.aborted = true
	} else if e.nodes%abortCheckInterval == 0 {
		e.aborted = e.limitReached()
	}
	return e.aborted
}
