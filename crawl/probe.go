package crawl

import (
	"context"

	"github.com/fwojciec/readweb"
)

// ProbeFetcher decides whether a site needs a browser to render its pages.
// It fetches sourceURL with both fetchers and picks the browser only when
// it yields substantially more content than plain HTTP.
//
//   - HTTP fetch fails: browser
//   - browser fetch fails: HTTP
//   - otherwise: browser if ContentDiffers, else HTTP
//
// A nil browser always yields the HTTP fetcher.
func ProbeFetcher(ctx context.Context, sourceURL string, httpFetcher, browserFetcher readweb.Fetcher, extractor readweb.Extractor) readweb.Fetcher {
	if browserFetcher == nil {
		return httpFetcher
	}

	httpHTML, err := httpFetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return browserFetcher
	}

	browserHTML, err := browserFetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return httpFetcher
	}

	if ContentDiffers(httpHTML, browserHTML, sourceURL, extractor) {
		return browserFetcher
	}
	return httpFetcher
}
