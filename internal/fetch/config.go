package fetch

import "github.com/raysh454/toru/internal/webclient"

type Config struct {
	// Client selects and tunes the transport backend used for each call.
	Client webclient.Config

	// MaxConcurrency caps the number of in-flight requests in FetchAll.
	MaxConcurrency int
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Client:         webclient.DefaultConfig(),
		MaxConcurrency: 4,
	}
}
