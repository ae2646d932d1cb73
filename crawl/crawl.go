// Package crawl extracts readable content from web pages and whole sites.
// It coordinates sitemap discovery, fetching, preset-based extraction with
// fallbacks, and storage of the resulting markdown pages.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/readweb"
	"github.com/fwojciec/readweb/goquery"
	"golang.org/x/sync/errgroup"
)

// Crawl limits.
const (
	// DefaultConcurrency is the number of pages fetched in parallel.
	DefaultConcurrency = 10

	// DefaultMaxPages bounds link walking when a site has no sitemap.
	DefaultMaxPages = 1000

	// frontierExpectedURLs sizes the Bloom filter used for deduplication.
	frontierExpectedURLs = 10000

	// frontierFalsePositiveRate is the acceptable false positive rate for
	// deduplication.
	frontierFalsePositiveRate = 0.01
)

// Crawler extracts every page of a site and saves it to a PageStore.
type Crawler struct {
	Sitemaps  readweb.SitemapService
	Fetcher   readweb.Fetcher
	Extractor readweb.ContentExtractor

	// Optional collaborators.
	TokenCounter readweb.TokenCounter
	RateLimiter  readweb.DomainLimiter
	Filter       *readweb.URLFilter
	Logger       *slog.Logger

	Concurrency int
	MaxPages    int
	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl.
type Result struct {
	Saved   int
	Failed  int
	Bytes   int
	Tokens  int
	Methods map[readweb.ExtractionMethod]int
}

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	position   int
	url        string
	html       string
	extraction *readweb.Extraction
	err        error
}

// Crawl discovers the pages under sourceURL, extracts them and saves them
// to store. URLs come from the site's sitemaps; a site without sitemaps is
// walked by following links within the source path. The store is committed
// when the crawl completes and aborted when it fails or is canceled.
// The progress callback, if non-nil, is called once per page.
func (c *Crawler) Crawl(ctx context.Context, sourceURL string, store readweb.PageStore, progress readweb.FetchProgressFunc) (_ *Result, err error) {
	defer func() {
		if err != nil {
			if abortErr := store.Abort(); abortErr != nil {
				c.logger().Warn("abort page store", "err", abortErr)
			}
		}
	}()

	if u, perr := url.Parse(sourceURL); perr != nil || u.Host == "" {
		return nil, readweb.Errorf(readweb.EINVALID, "invalid source URL: %s", sourceURL)
	}

	urls, err := c.Sitemaps.DiscoverURLs(ctx, sourceURL, c.Filter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	var results []pageResult
	if len(urls) == 0 {
		c.logger().Info("no sitemap urls, following links", "url", sourceURL)
		results, err = c.walk(ctx, sourceURL, frontier, progress)
	} else {
		for _, u := range urls {
			frontier.Push(u)
		}
		results, err = c.fetchAll(ctx, drain(frontier), progress)
	}
	if err != nil {
		return nil, err
	}

	result, err := c.save(ctx, results, store)
	if err != nil {
		return nil, err
	}
	if err := store.Commit(); err != nil {
		return nil, fmt.Errorf("commit pages: %w", err)
	}
	return result, nil
}

// fetchAll processes urls concurrently and returns results in url order.
func (c *Crawler) fetchAll(ctx context.Context, urls []string, progress readweb.FetchProgressFunc) ([]pageResult, error) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan pageResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				resultCh <- c.process(gctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, len(urls))
	var completed atomic.Int64
	for r := range resultCh {
		results[r.position] = r
		report(progress, r, int(completed.Add(1)), len(urls))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// walk processes pages breadth-first from sourceURL, following same-site
// links under the source path, until the frontier is empty or MaxPages
// pages were processed.
func (c *Crawler) walk(ctx context.Context, sourceURL string, frontier *Frontier, progress readweb.FetchProgressFunc) ([]pageResult, error) {
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	frontier.Push(sourceURL)

	var results []pageResult
	for len(results) < maxPages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		u, ok := frontier.Pop()
		if !ok {
			break
		}

		r := c.process(ctx, len(results), u)
		results = append(results, r)

		if r.html != "" {
			links, err := goquery.ExtractLinks(r.html, u, sourceURL)
			if err != nil {
				c.logger().Debug("extract links", "url", u, "err", err)
			}
			for _, link := range links {
				if c.Filter.Match(link) {
					frontier.Push(link)
				}
			}
		}

		report(progress, r, len(results), len(results)+frontier.Len())
	}
	return results, nil
}

// process fetches and extracts a single URL.
func (c *Crawler) process(ctx context.Context, position int, pageURL string) pageResult {
	r := pageResult{position: position, url: pageURL}

	if c.RateLimiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			r.err = readweb.Errorf(readweb.EINVALID, "invalid URL: %s", pageURL)
			return r
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			r.err = err
			return r
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, pageURL, c.Fetcher.Fetch, delays, c.Logger)
	if err != nil {
		r.err = err
		return r
	}
	r.html = html

	r.extraction, r.err = c.Extractor.ExtractHTML(ctx, pageURL, html)
	return r
}

// save writes successful results to the store in discovery order.
func (c *Crawler) save(ctx context.Context, results []pageResult, store readweb.PageStore) (*Result, error) {
	result := &Result{Methods: make(map[readweb.ExtractionMethod]int)}
	for _, r := range results {
		if r.err != nil {
			c.logger().Debug("page failed", "url", r.url, "err", r.err)
			result.Failed++
			continue
		}
		if r.extraction.Markdown == "" {
			c.logger().Debug("page has no content", "url", r.url)
			result.Failed++
			continue
		}

		page := r.extraction.Page()
		page.URL = r.url
		if err := store.Save(ctx, page); err != nil {
			return nil, fmt.Errorf("save %s: %w", r.url, err)
		}

		result.Saved++
		result.Bytes += len(page.Content)
		result.Methods[page.Method]++
		if c.TokenCounter != nil {
			if tokens, err := c.TokenCounter.CountTokens(ctx, page.Content); err == nil {
				result.Tokens += tokens
			}
		}
	}
	return result, nil
}

func report(progress readweb.FetchProgressFunc, r pageResult, completed, total int) {
	if progress == nil {
		return
	}
	p := readweb.FetchProgress{
		URL:       r.url,
		Completed: completed,
		Total:     total,
		Error:     r.err,
	}
	if r.extraction != nil {
		p.Method = r.extraction.Method
	}
	progress(p)
}

func drain(f *Frontier) []string {
	urls := make([]string, 0, f.Len())
	for {
		u, ok := f.Pop()
		if !ok {
			return urls
		}
		urls = append(urls, u)
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
