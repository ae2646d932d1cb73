package rod

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
)

// DefaultRecycleAfter is the number of rendered pages after which a crawl
// restarts the browser.
const DefaultRecycleAfter = 75

// launchFlags keep background tabs rendering at full speed during a crawl.
var launchFlags = []flags.Flag{
	"disable-background-timer-throttling",
	"disable-backgrounding-occluded-windows",
	"disable-renderer-backgrounding",
	"disable-dev-shm-usage",
	"disable-hang-monitor",
}

// renderBudget counts rendered pages against the recycle threshold. A
// non-positive limit never runs out.
type renderBudget struct {
	limit int64
	used  atomic.Int64
}

func (b *renderBudget) spend() { b.used.Add(1) }

func (b *renderBudget) exhausted() bool {
	return b.limit > 0 && b.used.Load() >= b.limit
}

func (b *renderBudget) reset() { b.used.Store(0) }

// BrowserManager owns the headless browser behind a Fetcher. Chrome's
// memory keeps growing over a long crawl, so the browser is replaced once
// its render budget is spent.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	budget   renderBudget
	recycles atomic.Int64
	logger   *slog.Logger
	mu       sync.Mutex
	closed   atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the render budget of one browser. Zero or less keeps
// the first browser for the life of the manager.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.budget.limit = n
	}
}

// WithManagerLogger logs browser restarts.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(bm *BrowserManager) {
		bm.logger = logger
	}
}

// NewBrowserManager launches a headless Chrome. Close must be called when
// the manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{logger: slog.Default()}
	bm.budget.limit = DefaultRecycleAfter
	for _, opt := range opts {
		opt(bm)
	}

	browser, lnchr, err := launch()
	if err != nil {
		return nil, err
	}
	bm.browser, bm.launcher = browser, lnchr
	return bm, nil
}

// Browser returns the browser to render the next page with, restarting it
// first when the budget is spent. Call PageRendered after each page.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.budget.exhausted() {
		bm.recycle()
	}
	return bm.browser
}

// PageRendered charges one page to the current browser.
func (bm *BrowserManager) PageRendered() {
	bm.budget.spend()
}

// Recycles returns how many times the browser has been restarted.
func (bm *BrowserManager) Recycles() int64 {
	return bm.recycles.Load()
}

// Close releases browser resources. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of the current browser launcher.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// recycle swaps in a fresh browser. When the launch fails the old browser
// stays and gets a new budget, so a crawl keeps going.
// Must be called with mu held.
func (bm *BrowserManager) recycle() {
	rendered := bm.budget.used.Load()
	bm.budget.reset()

	browser, lnchr, err := launch()
	if err != nil {
		bm.logger.Warn("browser restart failed, keeping current browser", "rendered", rendered, "err", err)
		return
	}

	_ = bm.browser.Close()
	bm.launcher.Kill()
	bm.browser, bm.launcher = browser, lnchr
	n := bm.recycles.Add(1)
	bm.logger.Debug("browser restarted", "rendered", rendered, "recycles", n)
}

func launch() (*rod.Browser, *launcher.Launcher, error) {
	lnchr := launcher.New().Leakless(true).Headless(true)
	for _, flag := range launchFlags {
		lnchr = lnchr.Set(flag)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, lnchr, nil
}
