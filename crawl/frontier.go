package crawl

import (
	"sync"

	"github.com/fwojciec/readweb"
	"github.com/fwojciec/readweb/bloom"
)

var _ readweb.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO of URLs with Bloom filter deduplication.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []string
}

// NewFrontier creates a Frontier sized for n expected URLs with the given
// false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{seen: bloom.NewFilter(n, fpRate)}
}

// Push queues a URL unless an equivalent URL was queued before.
// The queued form has its fragment stripped.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.TestAndAdd(url) {
		return false
	}
	f.queue = append(f.queue, stripFragment(url))
	return true
}

// Pop returns the oldest queued URL.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of queued URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if an equivalent URL has been queued.
func (f *Frontier) Seen(url string) bool {
	return f.seen.Test(url)
}

func stripFragment(url string) string {
	for i := 0; i < len(url); i++ {
		if url[i] == '#' {
			return url[:i]
		}
	}
	return url
}
