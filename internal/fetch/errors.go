package fetch

import "fmt"

// HTTPStatusError reports that the remote server answered with a
// non-success status code. The body is never returned alongside it.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, e.Status)
}

// TransportError reports that the request could not complete at the
// network level: DNS failure, refused connection, timeout or a canceled
// context. It wraps the underlying transport error.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
