package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithDepth sets the default search depth.
func (b *ConfigBuilder) WithDepth(depth int) *ConfigBuilder {
	b.cfg.Search.DefaultDepth = depth
	return b
}

// WithHashEntries sets the transposition table size.
func (b *ConfigBuilder) WithHashEntries(n int) *ConfigBuilder {
	b.cfg.Search.HashEntries = n
	return b
}

// WithAspiration sets the first and the widened aspiration half-widths.
func (b *ConfigBuilder) WithAspiration(window, widen int) *ConfigBuilder {
	b.cfg.Search.AspirationWindow = window
	b.cfg.Search.AspirationWiden = widen
	return b
}

// WithNullMove enables null-move pruning with reduction r.
func (b *ConfigBuilder) WithNullMove(enabled bool, r int) *ConfigBuilder {
	b.cfg.Search.NullMove = enabled
	b.cfg.Search.NullMoveReduction = r
	return b
}

// WithLateMoveReduction enables late move reductions.
func (b *ConfigBuilder) WithLateMoveReduction(enabled bool) *ConfigBuilder {
	b.cfg.Search.LateMoveReduction = enabled
	return b
}

// WithFutility enables futility pruning with the given per-ply margin.
func (b *ConfigBuilder) WithFutility(enabled bool, margin int) *ConfigBuilder {
	b.cfg.Search.Futility = enabled
	b.cfg.Search.FutilityMargin = margin
	return b
}

// WithPreserveHistory controls whether repetition history survives
// between searches.
func (b *ConfigBuilder) WithPreserveHistory(keep bool) *ConfigBuilder {
	b.cfg.Search.PreserveHistory = keep
	return b
}

// WithAddr sets the server listen address.
func (b *ConfigBuilder) WithAddr(addr string) *ConfigBuilder {
	b.cfg.Server.Addr = addr
	return b
}

// WithServerLimits caps client requested depth and time.
func (b *ConfigBuilder) WithServerLimits(depth int, moveTime time.Duration) *ConfigBuilder {
	b.cfg.Server.MaxDepth = depth
	b.cfg.Server.MaxMoveTime = moveTime
	return b
}

// WithWorkers sets the number of bench workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Bench.Workers = n
	return b
}

// WithBenchDepth sets the per-position bench depth.
func (b *ConfigBuilder) WithBenchDepth(depth int) *ConfigBuilder {
	b.cfg.Bench.Depth = depth
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.SetOutput(w)
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.SetLog(w)
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
