package mock

import (
	"context"

	"github.com/fwojciec/readweb"
)

var (
	_ readweb.Fetcher        = (*Fetcher)(nil)
	_ readweb.SitemapService = (*SitemapService)(nil)
	_ readweb.PageStore      = (*PageStore)(nil)
)

// Fetcher is a mock implementation of readweb.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// SitemapService is a mock implementation of readweb.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *readweb.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *readweb.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

// PageStore is a mock implementation of readweb.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *readweb.Page) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *readweb.Page) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}
