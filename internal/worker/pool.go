// Package worker analyses batches of positions in parallel.
package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lgbarn/chess-engine-go/internal/chess"
)

// WorkItem is one position to analyse.
type WorkItem struct {
	FEN   string
	Index int // position in the input, for ordering results
}

// ProcessResult is the outcome of analysing one position.
type ProcessResult struct {
	FEN     string
	Index   int
	Move    chess.Move
	Score   int
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
	Skipped bool // duplicate of an earlier position
	Error   error
}

// ProcessFunc analyses one item. It is called from several goroutines at
// once.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool runs a fixed number of workers over a queue of positions. Results
// arrive in completion order, not submission order.
type Pool struct {
	workers   int
	queueSize int
	queue     chan WorkItem
	results   chan ProcessResult
	process   ProcessFunc
	wg        sync.WaitGroup
	stopped   atomic.Bool
	processed atomic.Int64
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines. Values below one are
// ignored.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.workers = n
		}
	}
}

// WithBufferSize sets the capacity of the queue and result channels.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.queueSize = size
		}
	}
}

// NewPool creates a pool with one worker and a queue of ten unless options
// say otherwise.
func NewPool(process ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		workers:   1,
		queueSize: 10,
		process:   process,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.queue = make(chan WorkItem, p.queueSize)
	p.results = make(chan ProcessResult, p.queueSize)
	return p
}

// Start launches the workers. Once ctx is done, or Stop is called, queued
// items are drained without being analysed.
func (p *Pool) Start(ctx context.Context) {
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.work(ctx)
	}
}

func (p *Pool) work(ctx context.Context) {
	defer p.wg.Done()
	for item := range p.queue {
		if p.stopped.Load() || ctx.Err() != nil {
			continue
		}
		res := p.process(item)
		p.processed.Add(1)
		p.results <- res
	}
}

// Submit queues an item, blocking while the queue is full.
func (p *Pool) Submit(item WorkItem) {
	p.queue <- item
}

// Stop makes workers skip everything still queued.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether Stop was called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close ends the queue, waits for the workers and then closes Results.
// Results must be drained concurrently or Close can block.
func (p *Pool) Close() {
	close(p.queue)
	p.wg.Wait()
	close(p.results)
}

// Results delivers one result per analysed item.
func (p *Pool) Results() <-chan ProcessResult {
	return p.results
}

// NumWorkers returns the number of workers.
func (p *Pool) NumWorkers() int {
	return p.workers
}

// Processed returns how many items have been analysed so far.
func (p *Pool) Processed() int {
	return int(p.processed.Load())
}
