package engine

import "time"

// Options represents configuration options for the Engine.
type Options struct {
	// Workers is the number of pipeline goroutines. Events are routed by
	// product so one product is never processed concurrently.
	Workers int
	// QueueDepth is the per-worker buffer of pending events.
	QueueDepth int

	CleanupInterval  time.Duration
	CleanupRetention time.Duration
	CleanupBatchSize int
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		Workers:          8,
		QueueDepth:       64,
		CleanupInterval:  time.Hour,
		CleanupRetention: 30 * 24 * time.Hour,
		CleanupBatchSize: 100,
	}
}
