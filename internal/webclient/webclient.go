package webclient

import (
	"context"
)

// WebClient is the transport abstraction behind the fetcher. Backends
// are registered by name and constructed through New.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	// Get is a convenience method for simple GET requests
	Get(ctx context.Context, url string) (*Response, error)

	Close() error
}
