package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/readweb"
	"github.com/temoto/robotstxt"
)

// DefaultRobotsAgent is the agent name checked against robots.txt rules.
const DefaultRobotsAgent = "readweb"

// Ensure SitemapService implements readweb.SitemapService.
var _ readweb.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from a site's sitemaps. Sitemaps are
// located through robots.txt, falling back to /sitemap.xml, and URLs the
// robots rules disallow are dropped.
type SitemapService struct {
	client *http.Client
	agent  string
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithRobotsAgent sets the agent name matched against robots.txt groups.
func WithRobotsAgent(agent string) SitemapOption {
	return func(s *SitemapService) {
		s.agent = agent
	}
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client, opts ...SitemapOption) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	s := &SitemapService{client: client, agent: DefaultRobotsAgent}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiscoverURLs finds all URLs from a site's sitemap.
// Returns an empty slice (not nil) if no sitemaps are found.
//
// When baseURL has a non-root path (e.g., https://example.com/docs/),
// only URLs with paths starting with that prefix are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *readweb.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, readweb.Errorf(readweb.EINVALID, "invalid base URL %q", baseURL)
	}

	pathPrefix := base.Path
	if pathPrefix == "/" {
		pathPrefix = ""
	}

	root := &url.URL{Scheme: base.Scheme, Host: base.Host}
	robots := s.fetchRobots(ctx, root)

	sitemapURLs, err := s.findSitemapURLs(ctx, root, robots)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)

	for _, sitemapURL := range sitemapURLs {
		found, err := s.processSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if seenURLs[u] {
				continue
			}
			seenURLs[u] = true
			if pathPrefix != "" && !matchesPathPrefix(u, pathPrefix) {
				continue
			}
			if !s.allowed(robots, u) || !filter.Match(u) {
				continue
			}
			urls = append(urls, u)
		}
	}

	return urls, nil
}

// matchesPathPrefix checks if a URL's path starts with the given prefix,
// respecting path boundaries: /docs matches /docs/ and /docs/intro but not
// /documentation.
func matchesPathPrefix(rawURL, prefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(parsed.Path, prefix) || parsed.Path+"/" == prefix
}

// fetchRobots returns the parsed robots.txt, or nil when it is unavailable.
func (s *SitemapService) fetchRobots(ctx context.Context, root *url.URL) *robotstxt.RobotsData {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return nil
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	robots, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil
	}
	return robots
}

// allowed reports whether robots.txt permits the agent to read rawURL.
func (s *SitemapService) allowed(robots *robotstxt.RobotsData, rawURL string) bool {
	if robots == nil {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return robots.TestAgent(path, s.agent)
}

// findSitemapURLs returns the sitemaps robots.txt declares, or /sitemap.xml
// when it declares none and the file exists.
func (s *SitemapService) findSitemapURLs(ctx context.Context, root *url.URL, robots *robotstxt.RobotsData) ([]string, error) {
	if robots != nil && len(robots.Sitemaps) > 0 {
		return robots.Sitemaps, nil
	}

	sitemapURL := root.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	exists, err := s.urlExists(ctx, sitemapURL.String())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{sitemapURL.String()}, nil
	}
	return nil, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, readweb.Errorf(readweb.EINVALID, "empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, loc := range locs(root, "sitemap") {
			found, err := s.processSitemap(ctx, loc, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, found...)
		}
		return urls, nil
	}

	return locs(root, "url"), nil
}

// locs returns the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// fetchURL fetches a URL and returns the response body.
func (s *SitemapService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if err := checkStatus(resp, targetURL); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp.Body, nil
}

// urlExists checks if a URL returns 200 OK.
func (s *SitemapService) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
