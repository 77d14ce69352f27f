package webclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/raysh454/toru/internal/logging"
)

// ChromedpClient fetches pages through a headless browser so that
// script-rendered content ends up in the body. GET only.
type ChromedpClient struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	idleAfter   time.Duration
	logger      logging.Logger
}

// NewChromedpClient constructs the chromedp backend. The browser process
// itself is launched lazily on the first Do.
func NewChromedpClient(cfg Config, logger logging.Logger) (*ChromedpClient, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	idleAfter := cfg.IdleAfter
	if idleAfter <= 0 {
		idleAfter = 2 * time.Second
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if cfg.Headful {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	componentLogger := logger.With(logging.Field{Key: "backend", Value: BackendChromedp})
	componentLogger.Debug("created chromedp webclient",
		logging.Field{Key: "idle_after", Value: idleAfter.String()})

	return &ChromedpClient{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		idleAfter:   idleAfter,
		logger:      componentLogger,
	}, nil
}

// waitNetworkIdle closes the returned channel once no network activity
// has been observed on the target for idleAfter. The timer is armed
// immediately so pages that trigger no subresource requests still settle.
func waitNetworkIdle(ctx context.Context, idleAfter time.Duration) <-chan struct{} {
	idleCh := make(chan struct{})

	var (
		mu     sync.Mutex
		active int
		timer  *time.Timer
		once   sync.Once
	)

	arm := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(idleAfter, func() {
			mu.Lock()
			idle := active == 0
			mu.Unlock()
			if idle {
				once.Do(func() { close(idleCh) })
			}
		})
	}
	arm()

	chromedp.ListenTarget(ctx, func(ev any) {
		switch ev.(type) {
		case *network.EventRequestWillBeSent:
			mu.Lock()
			active++
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
		case *network.EventLoadingFinished, *network.EventLoadingFailed:
			mu.Lock()
			if active > 0 {
				active--
			}
			idle := active == 0
			mu.Unlock()
			if idle {
				arm()
			}
		}
	})

	return idleCh
}

// documentStatus collects the status code and headers of the main
// document response from the tab's network events.
type documentStatus struct {
	mu      sync.Mutex
	seen    bool
	code    int
	headers http.Header
}

func (ds *documentStatus) record(ev any) {
	e, ok := ev.(*network.EventResponseReceived)
	if !ok || e.Type != network.ResourceTypeDocument {
		return
	}
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.seen = true
	ds.code = int(e.Response.Status)
	ds.headers = http.Header{}
	for k, v := range e.Response.Headers {
		if s, ok := v.(string); ok {
			ds.headers.Set(k, s)
		}
	}
}

// result errors when no document response was ever observed, so a
// navigation that produced nothing cannot pass as a 200.
func (ds *documentStatus) result() (int, http.Header, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if !ds.seen {
		return 0, nil, fmt.Errorf("no document response received")
	}
	return ds.code, ds.headers, nil
}

// Do navigates a fresh browser tab to the request URL, waits for the
// network to go idle and returns the rendered document.
func (cdc *ChromedpClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if method := strings.ToUpper(req.Method); method != "" && method != http.MethodGet {
		return nil, fmt.Errorf("method %s not supported by chromedp backend", method)
	}

	cdc.logger.Debug("rendering page", logging.Field{Key: "url", Value: req.URL})

	tabCtx, cancel := chromedp.NewContext(cdc.allocCtx)
	defer cancel()

	// Propagate caller cancellation into the tab.
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-tabCtx.Done():
		}
	}()

	ds := &documentStatus{}
	chromedp.ListenTarget(tabCtx, ds.record)

	idleCh := waitNetworkIdle(tabCtx, cdc.idleAfter)

	if err := chromedp.Run(tabCtx, network.Enable(), chromedp.Navigate(req.URL)); err != nil {
		return nil, fmt.Errorf("navigate %s: %w", req.URL, err)
	}

	select {
	case <-idleCh:
	case <-tabCtx.Done():
		return nil, fmt.Errorf("waiting for network idle: %w", tabCtx.Err())
	}

	var html string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &html)); err != nil {
		return nil, fmt.Errorf("capture html: %w", err)
	}

	statusCode, headers, err := ds.result()
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.URL, err)
	}

	return &Response{
		Request:    req,
		Headers:    headers,
		Body:       []byte(html),
		StatusCode: statusCode,
		FetchedAt:  time.Now(),
	}, nil
}

// Get is a convenience method for simple GET requests
func (cdc *ChromedpClient) Get(ctx context.Context, url string) (*Response, error) {
	return cdc.Do(ctx, &Request{Method: http.MethodGet, URL: url})
}

func (cdc *ChromedpClient) Close() error {
	cdc.logger.Debug("closing chromedp webclient")
	cdc.allocCancel()
	return nil
}
