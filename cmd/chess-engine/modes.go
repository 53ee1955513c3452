package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/protocol"
	"github.com/lgbarn/chess-engine-go/internal/search"
	"github.com/lgbarn/chess-engine-go/internal/worker"
)

// runSearch searches fen once, printing an info line per iteration and
// the best move.
func runSearch(ctx context.Context, cfg *config.Config, fen string, limits search.Limits) error {
	pos, err := engine.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}

	e := search.NewEngine(cfg)
	e.SetInfoFunc(func(info search.Info) {
		fmt.Fprintln(cfg.OutputFile, protocol.FormatInfo(info))
	})
	result := e.Search(ctx, pos, limits)

	fmt.Fprintf(cfg.OutputFile, "bestmove %s\n", result.Move.UCI())
	if len(result.PV) > 0 {
		fmt.Fprintf(cfg.OutputFile, "line %s\n", engine.FormatLine(pos, result.PV))
	}
	fmt.Fprintf(cfg.OutputFile, "score %s\n", search.FormatEvaluation(result.Evaluation()))
	return nil
}

// runPerft prints the per-move leaf counts of fen at depth.
func runPerft(cfg *config.Config, fen string, depth int) error {
	if fen == "" {
		fen = engine.InitialFEN
	}
	pos, err := engine.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}

	start := time.Now()
	var total uint64
	for _, entry := range pos.Divide(depth) {
		fmt.Fprintf(cfg.OutputFile, "%s: %d\n", entry.Move.UCI(), entry.Nodes)
		total += entry.Nodes
	}
	elapsed := time.Since(start)
	fmt.Fprintf(cfg.OutputFile, "\nNodes searched: %d\n", total)
	cfg.Logf(1, "perft %d: %d nodes in %v\n", depth, total, elapsed)
	return nil
}

// runBench analyses every position in path and prints one line per
// position followed by totals.
func runBench(ctx context.Context, cfg *config.Config, path string) error {
	fens, err := readFENFile(path)
	if err != nil {
		return err
	}

	sum := worker.Run(ctx, cfg, fens)
	for _, res := range sum.Results {
		switch {
		case res.Error != nil:
			fmt.Fprintf(cfg.OutputFile, "%d\terror\t%v\n", res.Index+1, res.Error)
		case res.Skipped:
			fmt.Fprintf(cfg.OutputFile, "%d\tduplicate\n", res.Index+1)
		case res.FEN != "":
			fmt.Fprintf(cfg.OutputFile, "%d\t%s\t%s\tdepth %d\tnodes %d\t%v\n", res.Index+1,
				res.Move.UCI(), search.FormatScore(res.Score), res.Depth, res.Nodes,
				res.Elapsed.Round(time.Millisecond))
		}
	}
	fmt.Fprintf(cfg.OutputFile, "positions %d  duplicates %d  errors %d  nodes %d  nps %d  time %v\n",
		sum.Positions, sum.Skipped, sum.Failed, sum.Nodes, sum.NPS(), sum.Elapsed.Round(time.Millisecond))
	if sum.Cancelled {
		fmt.Fprintln(cfg.OutputFile, "bench interrupted")
	}
	return nil
}

// readFENFile reads one FEN per line, skipping blank lines and lines
// starting with '#'. EPD operations after the fourth field are dropped and
// missing clocks default to "0 1".
func readFENFile(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var fens []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fens = append(fens, normalizeFEN(line))
	}
	return fens, scanner.Err()
}

// normalizeFEN turns an EPD record or a four-field FEN into a full FEN.
func normalizeFEN(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return line
	}
	if len(fields) >= 6 && isNumber(fields[4]) && isNumber(fields[5]) {
		return strings.Join(fields[:6], " ")
	}
	return strings.Join(fields[:4], " ") + " 0 1"
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
