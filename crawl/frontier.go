package crawl

import (
	"context"
	"sync"

	"github.com/seoaudit/pipeline/models"
)

// entry is one item waiting to be fetched.
type entry struct {
	url   models.Url
	depth int
}

// Frontier is the bounded, deduplicated FIFO queue described in spec §4.7.
// The teacher has no standalone abstraction for this — services/crawler.go
// inlines a mutex-guarded map plus a slice directly inside the colly
// callback. This factors that exact idiom (thread-safe map dedupe guarded
// by sync.Mutex) out into a reusable type so crawl/pool.go can drain it
// from N workers.
type Frontier struct {
	mu       sync.Mutex
	queue    []entry
	seen     map[string]bool
	maxPages int
	enqueued int
	dedupe   Dedupe
}

// Dedupe is an optional shared seen-set backing a Frontier, so several
// crawl processes against the same run can dedupe against one set
// instead of each process's private map. RedisDedupe is the only
// implementation.
type Dedupe interface {
	MarkIfNew(ctx context.Context, key string) (bool, error)
}

// NewFrontier builds an empty frontier bounded to maxPages total enqueues
// (0 means unbounded), deduped against an in-process map.
func NewFrontier(maxPages int) *Frontier {
	return &Frontier{
		seen:     make(map[string]bool),
		maxPages: maxPages,
	}
}

// NewFrontierWithDedupe builds a frontier that also checks dedupe for any
// URL its in-process map hasn't recorded, letting multiple crawl worker
// processes share one dedupe set for the same run.
func NewFrontierWithDedupe(maxPages int, dedupe Dedupe) *Frontier {
	f := NewFrontier(maxPages)
	f.dedupe = dedupe
	return f
}

// Push adds u at depth if it hasn't been seen before and the frontier has
// not hit its page budget. Returns true if the url was newly enqueued.
func (f *Frontier) Push(u models.Url, depth int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := u.String()
	if f.seen[key] {
		return false
	}
	if f.dedupe != nil {
		isNew, err := f.dedupe.MarkIfNew(context.Background(), key)
		if err != nil || !isNew {
			return false
		}
	}
	if f.maxPages > 0 && f.enqueued >= f.maxPages {
		return false
	}
	f.seen[key] = true
	f.enqueued++
	f.queue = append(f.queue, entry{url: u, depth: depth})
	return true
}

// Pop removes and returns the next entry in FIFO order. ok is false when
// the frontier is empty.
func (f *Frontier) Pop() (u models.Url, depth int, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return models.Url{}, 0, false
	}
	next := f.queue[0]
	f.queue = f.queue[1:]
	return next.url, next.depth, true
}

// Len reports how many entries are currently queued (not yet popped).
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen reports how many distinct URLs this frontier has recorded, whether
// pushed or marked via Visited, matching the teacher's "TotalURLs" counter.
func (f *Frontier) Seen() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}

// Visited marks a key without enqueueing it, used when a URL is
// discovered but deliberately skipped (robots disallow, extension
// blocklist) so it is never reconsidered.
func (f *Frontier) Visited(u models.Url) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen[u.String()] = true
}
