// chess-server serves engine analysis over HTTP and websockets.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/search"
	"github.com/lgbarn/chess-engine-go/internal/server"
)

const DefaultPort = 8080

var (
	port        = flag.Uint("port", DefaultPort, "Port to listen on")
	hashMB      = flag.Int("hash", 16, "Transposition table size in MB per search")
	depth       = flag.Int("depth", 0, "Depth used when a request gives none (0 = default)")
	maxDepth    = flag.Int("maxdepth", 0, "Deepest search a client may request (0 = default)")
	maxMoveTime = flag.Duration("maxmovetime", 0, "Longest search a client may request (0 = default)")
	logFile     = flag.String("l", "", "Write the access log to this file (default: stderr)")
	verbosity   = flag.Int("v", 1, "Log verbosity")
)

func main() {
	flag.Parse()
	if *port == 0 || *port > 65535 {
		fmt.Fprintln(os.Stderr, "Invalid port number")
		os.Exit(1)
	}

	cfg, err := buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = server.NewApplication(cfg).ListenAndServe(ctx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildConfig turns the flags into a validated configuration.
func buildConfig() (*config.Config, error) {
	b := config.NewConfigBuilder().
		WithAddr(fmt.Sprintf(":%d", *port)).
		WithHashEntries(search.EntriesForMB(*hashMB)).
		WithVerbosity(*verbosity)
	if *depth > 0 {
		b = b.WithDepth(*depth)
	}

	cfg := b.Build()
	if *maxDepth > 0 || *maxMoveTime > 0 {
		d, t := cfg.Server.MaxDepth, cfg.Server.MaxMoveTime
		if *maxDepth > 0 {
			d = *maxDepth
		}
		if *maxMoveTime > 0 {
			t = *maxMoveTime
		}
		cfg.Server.MaxDepth, cfg.Server.MaxMoveTime = d, max(t, time.Millisecond)
	}

	if *logFile != "" {
		file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			return nil, err
		}
		cfg.SetLog(file)
	}
	return cfg, cfg.Validate()
}
