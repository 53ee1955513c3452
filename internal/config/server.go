package config

import (
	"time"

	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// ServerConfig holds settings for the analysis server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string

	// MaxDepth caps the depth a client may request
	MaxDepth int

	// MaxMoveTime caps the time a client may request per search
	MaxMoveTime time.Duration

	// ReadTimeout and WriteTimeout bound plain HTTP requests
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:         ":8080",
		MaxDepth:     12,
		MaxMoveTime:  30 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
}

// Validate checks the server settings.
func (c *ServerConfig) Validate() error {
	if c.Addr == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "empty listen address")
	}
	if c.MaxDepth < 1 || c.MaxDepth > MaxSearchDepth {
		return errors.Wrapf(errors.ErrInvalidConfig, "server max depth %d not in 1..%d", c.MaxDepth, MaxSearchDepth)
	}
	if c.MaxMoveTime <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "server max move time %v", c.MaxMoveTime)
	}
	return nil
}
