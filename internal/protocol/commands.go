package protocol

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/errors"
	"github.com/lgbarn/chess-engine-go/internal/search"
)

// defaultMovesToGo spreads the remaining clock time when the GUI does not
// say how many moves are left.
const defaultMovesToGo = 30

// position handles "position startpos|fen <fen> [moves ...]". The current
// position is replaced only when the whole command is valid.
func (h *Handler) position(args []string) error {
	if len(args) == 0 {
		return h.parseError(1, "startpos or fen", "end of line")
	}

	var fen string
	rest := args[1:]
	switch args[0] {
	case "startpos":
		fen = engine.InitialFEN
	case "fen":
		i := 0
		for i < len(rest) && rest[i] != "moves" {
			i++
		}
		fen = strings.Join(rest[:i], " ")
		rest = rest[i:]
	default:
		return h.parseError(2, "startpos or fen", args[0])
	}

	var moves []string
	if len(rest) > 0 {
		if rest[0] != "moves" {
			return h.parseError(len(args)-len(rest)+2, "moves", rest[0])
		}
		moves = rest[1:]
	}

	p, err := engine.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	if err := p.PlayMoves(moves); err != nil {
		return err
	}
	h.pos = p
	return nil
}

// parseGo reads the limits of a "go" command. Clock based limits are
// turned into a fixed move time.
func (h *Handler) parseGo(args []string) (search.Limits, error) {
	var limits search.Limits
	var clock, inc [chess.NumColours]time.Duration
	movesToGo := defaultMovesToGo

	for i := 0; i < len(args); i++ {
		key := args[i]
		if key == "infinite" {
			limits.Infinite = true
			continue
		}
		if i+1 >= len(args) {
			return limits, h.parseError(i+3, "value for "+key, "end of line")
		}
		n, err := strconv.ParseInt(args[i+1], 10, 64)
		if err != nil || n < 0 {
			return limits, h.parseError(i+3, "non-negative integer", args[i+1])
		}
		i++

		ms := time.Duration(n) * time.Millisecond
		switch key {
		case "depth":
			limits.Depth = int(n)
		case "movetime":
			limits.MoveTime = ms
		case "nodes":
			limits.Nodes = uint64(n)
		case "wtime":
			clock[chess.White] = ms
		case "btime":
			clock[chess.Black] = ms
		case "winc":
			inc[chess.White] = ms
		case "binc":
			inc[chess.Black] = ms
		case "movestogo":
			movesToGo = max(int(n), 1)
		default:
			return limits, h.parseError(i+1, "go parameter", key)
		}
	}

	us := h.pos.SideToMove()
	if limits.MoveTime == 0 && clock[us] > 0 {
		budget := clock[us]/time.Duration(movesToGo) + inc[us]/2
		limits.MoveTime = min(budget, clock[us]*9/10)
	}
	return limits, nil
}

// startSearch runs a search on a copy of the current position and prints
// progress and the best move when it ends. An infinite search holds its
// best move until stopped.
func (h *Handler) startSearch(ctx context.Context, limits search.Limits) {
	h.stopSearch()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	h.cancel, h.done = cancel, done
	h.infinite = limits.Infinite

	pos := h.pos.Clone()
	h.engine.SetInfoFunc(func(info search.Info) {
		h.printf("%s\n", FormatInfo(info))
	})

	go func() {
		defer close(done)
		result := h.engine.Search(ctx, pos, limits)
		if limits.Infinite {
			<-ctx.Done()
		}
		if len(result.PV) > 1 {
			h.printf("bestmove %s ponder %s\n", result.Move.UCI(), result.PV[1].UCI())
			return
		}
		h.printf("bestmove %s\n", result.Move.UCI())
	}()
}

// stopSearch cancels a running search and waits for its bestmove.
func (h *Handler) stopSearch() {
	if h.cancel != nil {
		h.cancel()
	}
	h.waitSearch()
}

// waitSearch waits for a running search to finish on its own.
func (h *Handler) waitSearch() {
	if h.done != nil {
		<-h.done
	}
	if h.cancel != nil {
		h.cancel()
	}
	h.cancel, h.done = nil, nil
	h.infinite = false
}

// FormatInfo renders a progress report as an info line.
func FormatInfo(info search.Info) string {
	var sb strings.Builder
	sb.WriteString("info depth ")
	sb.WriteString(strconv.Itoa(info.Depth))
	sb.WriteString(" score ")
	sb.WriteString(search.UCIScore(info.Score))
	sb.WriteString(" nodes ")
	sb.WriteString(strconv.FormatUint(info.Nodes, 10))
	sb.WriteString(" nps ")
	sb.WriteString(strconv.FormatUint(info.NPS(), 10))
	sb.WriteString(" hashfull ")
	sb.WriteString(strconv.Itoa(info.Hashfull))
	sb.WriteString(" time ")
	sb.WriteString(strconv.FormatInt(info.Elapsed.Milliseconds(), 10))
	if len(info.PV) > 0 {
		sb.WriteString(" pv ")
		sb.WriteString(engine.FormatUCI(info.PV))
	}
	return sb.String()
}

// setOption handles "setoption name <id> value <x>".
func (h *Handler) setOption(args []string) error {
	if len(args) < 4 || args[0] != "name" || args[2] != "value" {
		return h.parseError(2, "name <id> value <x>", strings.Join(args, " "))
	}
	switch strings.ToLower(args[1]) {
	case "hash":
		mb, err := strconv.Atoi(args[3])
		if err != nil || mb < 1 || mb > maxHashMB {
			return h.parseError(5, "hash size in MB", args[3])
		}
		h.stopSearch()
		h.engine.ResizeTable(search.EntriesForMB(mb))
		h.cfg.Logf(1, "protocol: hash table resized to %d entries\n", h.engine.TableSize())
		return nil
	}
	return errors.Wrapf(errors.ErrUnknownCommand, "option %s", args[1])
}

// perft handles "perft <depth>", printing the count below each root move.
func (h *Handler) perft(args []string) error {
	if len(args) != 1 {
		return h.parseError(2, "depth", strings.Join(args, " "))
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 {
		return h.parseError(2, "positive depth", args[0])
	}

	start := time.Now()
	var total uint64
	for _, entry := range h.pos.Divide(depth) {
		h.printf("%s: %d\n", entry.Move.UCI(), entry.Nodes)
		total += entry.Nodes
	}
	h.printf("\nNodes searched: %d\n", total)
	h.cfg.Logf(1, "perft %d: %d nodes in %v\n", depth, total, time.Since(start))
	return nil
}
