package demoserver

import "time"

type Config struct {
	// Port is the TCP port the standalone demo server listens on.
	Port int

	// SlowDelay is how long /slow waits before answering when no
	// ?delay= override is given.
	SlowDelay time.Duration
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Port:      9999,
		SlowDelay: 2 * time.Second,
	}
}
