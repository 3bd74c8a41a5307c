// Package rod implements listicle.Fetcher with a headless Chrome browser,
// for ranking pages that render their product list client-side.
package rod

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fwojciec/listicle"
	listiclehttp "github.com/fwojciec/listicle/http"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds navigation plus load of a single page.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements listicle.Fetcher at compile time.
var _ listicle.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation. It sends
// the same User-Agent and Accept-Language as the HTTP fetcher and fails on a
// non-2xx main document, so both fetchers honour one contract.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	cfg     config
	closed  atomic.Bool
}

// Option configures a Fetcher.
type Option func(*config)

type config struct {
	timeout        time.Duration
	maxPages       int64
	userAgent      string
	acceptLanguage string
}

// WithFetchTimeout sets the per-page timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithRecycleAfter sets how many pages the browser renders before it is
// replaced with a fresh process.
func WithRecycleAfter(n int64) Option {
	return func(c *config) {
		c.maxPages = n
	}
}

// WithUserAgent overrides the browser User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.userAgent = ua
	}
}

// WithAcceptLanguage overrides the Accept-Language header.
func WithAcceptLanguage(lang string) Option {
	return func(c *config) {
		c.acceptLanguage = lang
	}
}

// NewFetcher launches a headless Chrome browser. Close must be called when
// the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	cfg := config{
		timeout:        DefaultFetchTimeout,
		maxPages:       DefaultMaxPages,
		userAgent:      listiclehttp.DefaultUserAgent,
		acceptLanguage: listiclehttp.DefaultAcceptLanguage,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	manager, err := NewBrowserManager(WithMaxPages(cfg.maxPages))
	if err != nil {
		return nil, listicle.WrapError(listicle.EFETCH, err, "starting browser")
	}

	return &Fetcher{manager: manager, cfg: cfg}, nil
}

// Fetch navigates to the URL and returns the HTML after the load event.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", listicle.Errorf(listicle.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", listicle.WrapError(listicle.EFETCH, err, "fetching %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, f.cfg.timeout)
	defer cancel()

	html, err := f.render(ctx, url)
	switch {
	case err == nil:
		return html, nil
	case listicle.ErrorCode(err) == listicle.EFETCH:
		return "", err
	case errors.Is(err, context.DeadlineExceeded):
		return "", listicle.WrapError(listicle.EFETCH, err, "fetching %s: timed out", url)
	}
	return "", listicle.WrapError(listicle.EFETCH, err, "fetching %s", url)
}

func (f *Fetcher) render(ctx context.Context, url string) (string, error) {
	browser, release, err := f.manager.Acquire()
	if err != nil {
		return "", err
	}
	defer release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      f.cfg.userAgent,
		AcceptLanguage: f.cfg.acceptLanguage,
	}); err != nil {
		return "", err
	}

	// Status of the main document after redirects.
	status := 0
	waitResponse := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument || e.FrameID != page.FrameID {
			return false
		}
		status = e.Response.Status
		return true
	})

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	waitResponse()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", listicle.Errorf(listicle.EFETCH, "HTTP %d for %s", status, url)
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	return page.HTML()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
