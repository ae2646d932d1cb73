package readweb

import (
	"context"
	"regexp"
	"slices"
)

// SitemapService lists the pages a crawl should extract. The crawler
// prefers it over following links because a sitemap names every page,
// including those no navigation reaches.
type SitemapService interface {
	// DiscoverURLs returns the page URLs under baseURL's path, read from
	// the sitemaps that robots.txt declares or from /sitemap.xml. Indexes
	// are followed. URLs disallowed by robots.txt or rejected by filter
	// are left out; a nil filter keeps everything.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter narrows a crawl to the pages worth extracting. The same
// filter applies to sitemap URLs and to links found while walking.
type URLFilter struct {
	// Include keeps only URLs matching at least one pattern, when set.
	Include []*regexp.Regexp

	// Exclude drops URLs matching any pattern. It wins over Include.
	Exclude []*regexp.Regexp
}

// NewURLFilter compiles include and exclude patterns. It returns nil when
// both lists are empty and EINVALID when a pattern does not compile.
func NewURLFilter(include, exclude []string) (*URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	f := &URLFilter{}
	var err error
	if f.Include, err = compilePatterns(include); err != nil {
		return nil, err
	}
	if f.Exclude, err = compilePatterns(exclude); err != nil {
		return nil, err
	}
	return f, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid filter pattern %q: %v", p, err)
		}
		res = append(res, re)
	}
	return res, nil
}

// Match reports whether the crawl should extract url. A nil filter
// matches everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	matches := func(re *regexp.Regexp) bool { return re.MatchString(url) }
	if len(f.Include) > 0 && !slices.ContainsFunc(f.Include, matches) {
		return false
	}
	return !slices.ContainsFunc(f.Exclude, matches)
}
