// Package protocol implements the UCI-style line protocol spoken on stdin
// and stdout.
package protocol

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/errors"
	"github.com/lgbarn/chess-engine-go/internal/search"
)

const (
	EngineName   = "chess-engine-go"
	EngineAuthor = "lgbarn"

	defaultHashMB = 24
	maxHashMB     = 4096
)

// Handler holds the protocol session: the current position and the engine.
// Commands are executed one at a time; only "go" runs in the background.
type Handler struct {
	cfg    *config.Config
	engine *search.Engine
	pos    *engine.Position

	mu  sync.Mutex // guards out
	out io.Writer

	source string
	line   int

	cancel   context.CancelFunc
	done     chan struct{}
	infinite bool
}

// NewHandler creates a session at the starting position writing to
// cfg.OutputFile.
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{
		cfg:    cfg,
		engine: search.NewEngine(cfg),
		pos:    engine.NewPosition(),
		out:    cfg.OutputFile,
		source: "stdin",
	}
}

// Position returns the current position.
func (h *Handler) Position() *engine.Position {
	return h.pos
}

// Run reads commands from r until "quit", end of input, or ctx is done.
// Command errors are reported as info strings and do not end the session.
func (h *Handler) Run(ctx context.Context, r io.Reader) error {
	defer h.stopSearch()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		quit, err := h.Execute(ctx, scanner.Text())
		if err != nil {
			h.printf("info string error: %v\n", err)
			h.cfg.Logf(1, "protocol: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	if h.infinite {
		h.stopSearch()
	}
	h.waitSearch()
	return scanner.Err()
}

// Execute runs one command line. It reports whether the session should end.
func (h *Handler) Execute(ctx context.Context, line string) (bool, error) {
	h.line++
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	h.cfg.Logf(2, "protocol: < %s\n", line)

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "uci":
		h.printf("id name %s\nid author %s\n", EngineName, EngineAuthor)
		h.printf("option name Hash type spin default %d min 1 max %d\n", defaultHashMB, maxHashMB)
		h.printf("uciok\n")
	case "isready":
		h.printf("readyok\n")
	case "ucinewgame":
		h.stopSearch()
		h.engine.NewGame()
		h.pos = engine.NewPosition()
	case "setoption":
		return false, h.setOption(args)
	case "position":
		h.stopSearch()
		return false, h.position(args)
	case "go":
		limits, err := h.parseGo(args)
		if err != nil {
			return false, err
		}
		h.startSearch(ctx, limits)
	case "stop":
		h.stopSearch()
	case "d":
		h.printf("%s\n", h.pos)
	case "eval":
		score := h.engine.Evaluate(h.pos)
		h.printf("info string eval %s (cp %d)\n", search.FormatScore(score), score)
	case "perft":
		return false, h.perft(args)
	case "quit":
		h.stopSearch()
		return true, nil
	default:
		h.printf("info string unknown command: %s\n", cmd)
		return false, errors.Wrap(errors.ErrUnknownCommand, cmd)
	}
	return false, nil
}

// printf writes to the output under the session lock, since the search
// goroutine reports concurrently.
func (h *Handler) printf(format string, args ...interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintf(h.out, format, args...)
}

// parseError describes a malformed argument of the current line.
func (h *Handler) parseError(column int, expected, got string) error {
	return &errors.ParseError{
		Err:      errors.ErrParseFailure,
		File:     h.source,
		Line:     h.line,
		Column:   column,
		Expected: expected,
		Got:      got,
	}
}
