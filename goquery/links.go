package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/readweb"
)

// ExtractLinks returns the links of a page in document order, resolved
// against pageURL, deduplicated and with fragments stripped. Only links on
// the host of scopeURL and under its path are kept, so crawling a docs
// section stays inside that section.
func ExtractLinks(html string, pageURL string, scopeURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, readweb.Errorf(readweb.EINVALID, "invalid page URL: %v", err)
	}
	scope, err := url.Parse(scopeURL)
	if err != nil {
		return nil, readweb.Errorf(readweb.EINVALID, "invalid scope URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, readweb.Errorf(readweb.EINVALID, "failed to parse HTML: %v", err)
	}

	basePath := scope.Path
	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == nil || !strings.EqualFold(resolved.Host, scope.Host) {
			return
		}
		if basePath != "" && !strings.HasPrefix(resolved.Path, basePath) {
			return
		}

		s := resolved.String()
		if seen[s] {
			return
		}
		seen[s] = true
		links = append(links, s)
	})

	return links, nil
}

// resolveURL resolves href against base with the fragment stripped.
// Returns nil if href cannot be parsed or points back at base itself.
func resolveURL(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(href)
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if resolved.String() == baseNoFragment.String() {
		return nil
	}
	return resolved
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
