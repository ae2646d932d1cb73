package readweb

import "context"

// Fetcher downloads a page's markup for extraction. Plain HTTP serves
// server-rendered sites; a browser is needed when content is rendered by
// JavaScript.
type Fetcher interface {
	// Fetch returns the page markup decoded as UTF-8. A missing page is
	// ENOTFOUND.
	Fetch(ctx context.Context, url string) (html string, err error)

	Close() error
}

// Page is one crawled page as written to the output directory.
type Page struct {
	URL    string
	Title  string
	Method ExtractionMethod

	// PresetID names the stored preset that extracted the page, if any.
	PresetID string

	// Content is markdown.
	Content string
}

// FetchProgress is reported once per crawled page. Error is set when the
// page was skipped; otherwise Method tells how it was extracted.
type FetchProgress struct {
	URL       string
	Completed int
	Total     int
	Method    ExtractionMethod
	Error     error
}

// FetchProgressFunc receives crawl progress.
type FetchProgressFunc func(FetchProgress)

// PageStore collects the pages of one crawl. Nothing is visible until
// Commit, which replaces the previous crawl of the same site; Abort drops
// the pages saved so far.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}

// URLFrontier queues the URLs a crawl still has to extract, first in first
// out, yielding each page once.
type URLFrontier interface {
	// Push queues url unless the page was queued before. Fragments and
	// trailing slashes do not make a new page.
	Push(url string) bool

	// Pop returns the next URL, or false when the queue is empty.
	Pop() (string, bool)

	Len() int

	// Seen reports whether the page was ever queued.
	Seen(url string) bool
}

// DomainLimiter spaces out requests to each host.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
