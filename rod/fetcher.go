// Package rod implements readweb.Fetcher with a headless Chrome browser, for
// pages that render their content with JavaScript.
package rod

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fwojciec/readweb"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 10 * time.Second

// expandShadowRoots copies the markup of every open shadow root into a
// light-DOM child of its host so that it survives HTML serialization.
const expandShadowRoots = `() => {
	const expand = (root) => {
		for (const el of root.querySelectorAll('*')) {
			if (!el.shadowRoot) continue;
			expand(el.shadowRoot);
			const copy = document.createElement('div');
			copy.setAttribute('data-shadow-root', '');
			copy.innerHTML = el.shadowRoot.innerHTML;
			el.appendChild(copy);
		}
	};
	expand(document);
}`

// Ensure Fetcher implements readweb.Fetcher at compile time.
var _ readweb.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	fetchTimeout time.Duration
	managerOpts  []ManagerOption
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds the time spent loading and rendering one page.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithRecycleAfter restarts the browser after n rendered pages. Zero or
// less never restarts it. Defaults to DefaultRecycleAfter.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, WithMaxPages(n))
	}
}

// WithLogger logs browser restarts.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, WithManagerLogger(logger))
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{fetchTimeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(f.managerOpts...)
	if err != nil {
		return nil, readweb.Errorf(readweb.EUNAVAILABLE, "browser unavailable: %v", err)
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML, including the
// content of open shadow roots.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", readweb.Errorf(readweb.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	html, err := f.render(ctx, url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("render %s: %w", url, ctxErr)
		}
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	f.manager.PageRendered()
	return html, nil
}

func (f *Fetcher) render(ctx context.Context, url string) (string, error) {
	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if _, err := page.Eval(expandShadowRoots); err != nil {
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

// Recycles returns how many times the browser has been restarted.
func (f *Fetcher) Recycles() int64 {
	return f.manager.Recycles()
}
