package engine

import (
	depthv1 "github.com/muhammadchandra19/market-depth/internal/domain/depth/v1"
)

// Options represents configuration options for the Engine.
type Options struct {
	// Levels is the number of depth slots per side in published snapshots.
	Levels int
	// Symbol is the instrument stream this engine serves.
	Symbol string
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		Levels: depthv1.DefaultLevels,
	}
}
