// Package bloom provides probabilistic URL deduplication for crawls.
package bloom

import (
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers URLs it has seen. URLs differing only by fragment or a
// trailing slash count as the same page. It is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL.
func (f *Filter) Add(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(Key(url))
}

// Test returns true if the URL might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(Key(url))
}

// TestAndAdd records a URL and reports whether it was already present.
func (f *Filter) TestAndAdd(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(Key(url))
}

// EstimatedCount returns the approximate number of URLs in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}

// Key returns the form of a URL used for deduplication.
func Key(url string) string {
	if i := strings.IndexByte(url, '#'); i != -1 {
		url = url[:i]
	}
	if len(url) > 1 && strings.HasSuffix(url, "/") && strings.Count(url, "/") > 3 {
		url = strings.TrimSuffix(url, "/")
	}
	return url
}
