// chess-engine is a bitboard chess engine speaking the UCI protocol on
// stdin and stdout. It can also search or perft a single position and
// benchmark a file of positions.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/protocol"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-engine-go version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	setupLogFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches to the mode selected on the command line.
func run(ctx context.Context, cfg *config.Config, stdin io.Reader) error {
	switch {
	case *benchFile != "":
		return runBench(ctx, cfg, *benchFile)
	case *perftFlag > 0:
		return runPerft(cfg, *fenFlag, *perftFlag)
	case *fenFlag != "":
		return runSearch(ctx, cfg, *fenFlag, searchLimits())
	default:
		return protocol.NewHandler(cfg).Run(ctx, stdin)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.SetLog(file)
}

func usage() {
	fmt.Fprintf(os.Stderr, `chess-engine-go %s

Usage: chess-engine [options]

Without a mode flag the engine reads UCI commands from stdin.

Options:
`, programVersion)
	flag.PrintDefaults()
}
