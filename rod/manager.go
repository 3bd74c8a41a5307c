package rod

import (
	"sync"

	"github.com/fwojciec/listicle"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages a browser renders before it is
// replaced.
const DefaultMaxPages = 50

// session is one launched Chrome process.
type session struct {
	browser  *rod.Browser
	pid      int
	shutdown func() error

	rendered int64
	active   int
	retired  bool
	done     bool
}

func (s *session) stop() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.shutdown()
}

// BrowserManager owns the Chrome process behind a Fetcher and swaps it for a
// fresh one after a fixed number of pages, keeping memory flat over long
// batch runs.
//
// A retired browser stays alive until the last page still rendering on it is
// released, so concurrent fetches are never cut off by a swap.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  *session
	draining []*session
	maxPages int64
	closed   bool

	launch func() (*session, error)
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the number of pages before the browser is replaced.
// Values below 1 keep the default.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		if n > 0 {
			bm.maxPages = n
		}
	}
}

// NewBrowserManager launches a headless Chrome browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
		launch:   launchSession,
	}
	for _, opt := range opts {
		opt(bm)
	}

	s, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.current = s

	return bm, nil
}

// Acquire reserves the current browser for rendering one page. The returned
// release func must be called once the page is closed.
func (bm *BrowserManager) Acquire() (*rod.Browser, func(), error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, nil, listicle.Errorf(listicle.EINVALID, "browser is closed")
	}
	if bm.current.rendered >= bm.maxPages {
		bm.rotate()
	}

	s := bm.current
	s.rendered++
	s.active++

	var once sync.Once
	release := func() {
		once.Do(func() { bm.release(s) })
	}
	return s.browser, release, nil
}

// rotate replaces the current browser. When the launch fails the old browser
// keeps serving. Must be called with mu held.
func (bm *BrowserManager) rotate() {
	next, err := bm.launch()
	if err != nil {
		return
	}

	old := bm.current
	bm.current = next
	if old.active == 0 {
		_ = old.stop()
		return
	}
	old.retired = true
	bm.draining = append(bm.draining, old)
}

func (bm *BrowserManager) release(s *session) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	s.active--
	if !s.retired || s.active > 0 {
		return
	}
	_ = s.stop()
	for i, d := range bm.draining {
		if d == s {
			bm.draining = append(bm.draining[:i], bm.draining[i+1:]...)
			break
		}
	}
}

// Close shuts down every browser, including retired ones still draining.
// Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true

	err := bm.current.stop()
	for _, s := range bm.draining {
		_ = s.stop()
	}
	bm.draining = nil
	return err
}

// LauncherPID returns the process ID of the current browser launcher, or 0
// once closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.closed {
		return 0
	}
	return bm.current.pid
}

// launchSession starts Chrome with background throttling disabled, so pages
// in concurrent tabs finish loading at full speed.
func launchSession() (*session, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, listicle.WrapError(listicle.EINTERNAL, err, "launching browser")
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, listicle.WrapError(listicle.EINTERNAL, err, "connecting to browser")
	}

	return &session{
		browser: browser,
		pid:     l.PID(),
		shutdown: func() error {
			err := browser.Close()
			l.Kill()
			return err
		},
	}, nil
}
