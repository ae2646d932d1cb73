//go:build integration

package http_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/readweb"
	rwhttp "github.com/fwojciec/readweb/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_Integration_CrawlScope(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc := rwhttp.NewSitemapService(nil)

	all, err := svc.DiscoverURLs(ctx, "https://htmx.org", nil)
	require.NoError(t, err)
	require.NotEmpty(t, all, "htmx.org declares a sitemap in robots.txt")

	// The filter a `crawl --include /docs/ --exclude /attributes/` run builds.
	filter, err := readweb.NewURLFilter([]string{`/docs/`}, []string{`/attributes/`})
	require.NoError(t, err)

	docs, err := svc.DiscoverURLs(ctx, "https://htmx.org", filter)
	require.NoError(t, err)
	require.NotEmpty(t, docs)

	assert.Less(t, len(docs), len(all))
	for _, u := range docs {
		assert.Contains(t, u, "/docs/")
		assert.False(t, strings.Contains(u, "/attributes/"), u)
	}
	t.Logf("%d of %d sitemap URLs in scope", len(docs), len(all))
}
