package demoserver

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/raysh454/toru/internal/logging"
)

// DemoServer is a small local site for exercising the fetcher without
// touching the network. Tests mount Router() on an httptest server; the
// standalone binary serves it on a real port.
type DemoServer struct {
	cfg    Config
	logger logging.Logger
}

// NewDemoServer creates a new demo server instance.
func NewDemoServer(cfg Config, logger logging.Logger) *DemoServer {
	if cfg.SlowDelay <= 0 {
		cfg.SlowDelay = DefaultConfig().SlowDelay
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &DemoServer{cfg: cfg, logger: logger}
}

// Router builds the chi router with all demo routes. Unregistered paths
// fall through to chi's 404 handler.
func (s *DemoServer) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.handleIndex)
	r.Get("/test", s.handleTest)
	r.Get("/status/{code}", s.handleStatus)
	r.Get("/slow", s.handleSlow)

	return r
}

// Start starts the demo server on the configured port.
func (s *DemoServer) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("demo server starting",
		logging.Field{Key: "addr", Value: "http://localhost" + addr})
	return http.ListenAndServe(addr, s.Router())
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>toru demo server</title></head>
<body>
<h1>toru demo server</h1>
<ul>
<li><a href="/test">/test</a> - returns "Mock response data"</li>
<li><a href="/status/404">/status/{code}</a> - responds with the given status code</li>
<li><a href="/slow">/slow</a> - responds after a delay (override with ?delay=500ms)</li>
</ul>
</body>
</html>
`

func (s *DemoServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *DemoServer) handleTest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Mock response data"))
}

func (s *DemoServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil || code < 100 || code > 599 {
		http.Error(w, "invalid status code", http.StatusBadRequest)
		return
	}
	w.WriteHeader(code)
	fmt.Fprintf(w, "%d %s\n", code, http.StatusText(code))
}

func (s *DemoServer) handleSlow(w http.ResponseWriter, r *http.Request) {
	delay := s.cfg.SlowDelay
	if raw := r.URL.Query().Get("delay"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			http.Error(w, "invalid delay", http.StatusBadRequest)
			return
		}
		delay = d
	}

	select {
	case <-time.After(delay):
	case <-r.Context().Done():
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "slept %s", delay)
}
