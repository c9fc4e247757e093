package rod

import (
	"log/slog"
	"sync"

	"github.com/fwojciec/pagesense"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the number of previews served by one browser
// process before it is replaced.
const DefaultRecycleAfter = 75

// BrowserManager owns the headless browser behind a Fetcher. Chrome's
// resident memory only grows while it serves pages, so the process is
// replaced after a fixed number of pages.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int64
	active   int64
	closed   bool

	recycleAfter int64
	bin          string
	logger       *slog.Logger
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithRecycleAfter sets how many pages a browser serves before it is
// replaced. Values below 1 disable recycling.
func WithRecycleAfter(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.recycleAfter = n
	}
}

// WithLogger sets the logger used for launch and recycle events.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(bm *BrowserManager) {
		bm.logger = logger
	}
}

// WithBrowserBin runs the browser binary at path instead of the one rod
// finds or downloads.
func WithBrowserBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// NewBrowserManager launches a headless browser. Returns EUNAVAILABLE if no
// browser can be started. Close must be called when the manager is no
// longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		recycleAfter: DefaultRecycleAfter,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(bm)
	}

	if err := bm.launch(); err != nil {
		return nil, err
	}
	bm.logger.Info("browser started", "pid", bm.launcher.PID(), "recycle_after", bm.recycleAfter)
	return bm, nil
}

// Acquire returns the browser to open the next page in, replacing it first
// if it has served its quota and no page is still open in it. Every
// successful Acquire must be paired with a Release. Returns EINVALID after
// Close.
func (bm *BrowserManager) Acquire() (*rod.Browser, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, pagesense.Errorf(pagesense.EINVALID, "browser manager is closed")
	}
	if bm.recycleAfter > 0 && bm.pages >= bm.recycleAfter && bm.active == 0 {
		bm.recycle()
	}
	bm.active++
	return bm.browser, nil
}

// Release marks a page acquired with Acquire as finished and counts it
// toward the recycle threshold.
func (bm *BrowserManager) Release() {
	bm.mu.Lock()
	bm.active--
	bm.pages++
	bm.mu.Unlock()
}

// Pages returns the number of pages served by the current browser.
func (bm *BrowserManager) Pages() int64 {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.pages
}

// LauncherPID returns the process ID of the current browser launcher, or 0
// once closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// Close shuts the browser down. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	return bm.shutdown(bm.browser, bm.launcher)
}

// launch starts a browser and installs it as current. Must be called with
// mu held or before the manager is shared.
func (bm *BrowserManager) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)
	if bm.bin != "" {
		l = l.Bin(bm.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return pagesense.Errorf(pagesense.EUNAVAILABLE, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return pagesense.Errorf(pagesense.EUNAVAILABLE, "connecting to browser: %v", err)
	}

	bm.browser = browser
	bm.launcher = l
	return nil
}

// recycle swaps in a fresh browser. The old one keeps serving if the
// replacement cannot be launched. Must be called with mu held.
func (bm *BrowserManager) recycle() {
	oldBrowser, oldLauncher, served := bm.browser, bm.launcher, bm.pages

	if err := bm.launch(); err != nil {
		bm.logger.Warn("browser recycle failed", "pages", served, "err", err)
		return
	}

	if err := bm.shutdown(oldBrowser, oldLauncher); err != nil {
		bm.logger.Warn("closing recycled browser", "err", err)
	}
	bm.pages = 0
	bm.logger.Info("browser recycled", "pages", served, "pid", bm.launcher.PID())
}

func (bm *BrowserManager) shutdown(browser *rod.Browser, l *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if l != nil {
		l.Kill()
	}
	if browser == bm.browser {
		bm.browser = nil
		bm.launcher = nil
	}
	return err
}
