package webclient

import "time"

const (
	BackendNetHTTP  = "nethttp"
	BackendChromedp = "chromedp"
)

// Config selects and tunes a transport backend. Zero values fall back
// to the defaults below, so an empty Config is usable.
type Config struct {
	// Backend is the registered backend name. Empty means nethttp.
	Backend string

	// Timeout bounds a whole nethttp request, including reading the
	// body. Zero means the 30s default.
	Timeout time.Duration

	// IdleAfter is how long the chromedp backend waits with no network
	// activity before considering a page settled.
	IdleAfter time.Duration

	// Headful shows the browser window when the chromedp backend runs.
	Headful bool
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend:   BackendNetHTTP,
		Timeout:   30 * time.Second,
		IdleAfter: 2 * time.Second,
	}
}
