// Package fs provides file-based storage for crawled pages and fixtures.
package fs

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/readweb"
)

// URLToPath converts a page URL to a relative markdown file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", readweb.Errorf(readweb.EINVALID, "invalid URL %q", rawURL)
	}

	p := strings.TrimPrefix(u.Path, "/")
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", readweb.Errorf(readweb.EINVALID, "path traversal in URL %q", rawURL)
		}
	}

	switch {
	case p == "":
		return "index.md", nil
	case strings.HasSuffix(p, "/"):
		return p + "index.md", nil
	default:
		return p + ".md", nil
	}
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// FixtureName derives a flat fixture file name from a URL's host and path.
// Example: https://docs.example.com/guide/intro → docs.example.com_guide_intro.json
func FixtureName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", readweb.Errorf(readweb.EINVALID, "invalid URL %q", rawURL)
	}

	name := strings.ToLower(u.Host)
	if p := strings.Trim(u.Path, "/"); p != "" {
		name += "_" + p
	}
	name = unsafeNameChars.ReplaceAllString(strings.ReplaceAll(name, "/", "_"), "-")
	name = strings.ReplaceAll(name, "..", "-")
	return name + ".json", nil
}
