package fetch

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/raysh454/toru/internal/logging"
	"github.com/raysh454/toru/internal/webclient"
)

// Module: fetch
// GETs pages and returns their bodies as text.
type Fetcher struct {
	cfg    Config
	logger logging.Logger
}

// New creates a new Fetcher. The web client itself is not built here:
// every call constructs its own from the backend registry and closes it
// before returning, so no connection state is shared between calls.
func New(cfg Config, logger logging.Logger) (*Fetcher, error) {
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = DefaultConfig().MaxConcurrency
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Fetcher{
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Fetch issues a single GET to url and returns the response body as a
// string. A status code of 400 or above yields an *HTTPStatusError; any
// failure before a status code is obtained yields a *TransportError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	wc, err := webclient.New(f.cfg.Client, f.logger)
	if err != nil {
		return "", fmt.Errorf("construct webclient: %w", err)
	}
	defer wc.Close()

	logger := f.logger.With(logging.Field{Key: "fetch_id", Value: uuid.NewString()})
	logger.Debug("fetching url", logging.Field{Key: "url", Value: url})

	resp, err := wc.Get(ctx, url)
	if err != nil {
		logger.Warn("fetch failed",
			logging.Field{Key: "url", Value: url},
			logging.Field{Key: "error", Value: err.Error()})
		return "", &TransportError{URL: url, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		logger.Warn("fetch returned error status",
			logging.Field{Key: "url", Value: url},
			logging.Field{Key: "status", Value: resp.StatusCode})
		return "", &HTTPStatusError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}

	logger.Debug("fetched url",
		logging.Field{Key: "url", Value: url},
		logging.Field{Key: "bytes", Value: len(resp.Body)})
	return string(resp.Body), nil
}

// Result is the outcome of one URL in a FetchAll batch.
type Result struct {
	URL  string
	Body string
	Err  error
}

// FetchAll fetches all given URLs concurrently, at most MaxConcurrency
// at a time. Results line up with the input slice; a failed URL carries
// its error in Result.Err and never aborts the batch.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))

	var wg sync.WaitGroup
	sem := make(chan struct{}, f.cfg.MaxConcurrency)

	for i, url := range urls {
		if ctx.Err() != nil {
			for j := i; j < len(urls); j++ {
				results[j] = Result{URL: urls[j], Err: &TransportError{URL: urls[j], Err: ctx.Err()}}
			}
			break
		}

		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			body, err := f.Fetch(ctx, url)
			if err != nil {
				f.logger.Error("error while fetching page",
					logging.Field{Key: "url", Value: url},
					logging.Field{Key: "error", Value: err})
			}
			results[i] = Result{URL: url, Body: body, Err: err}
		}(i, url)
	}

	wg.Wait()
	return results
}
