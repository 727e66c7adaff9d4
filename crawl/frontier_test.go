package crawl

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seoaudit/pipeline/models"
)

// fakeDedupe is an in-process stand-in for crawl.RedisDedupe, so the
// frontier's dedupe-delegation path is testable without a live Redis.
type fakeDedupe struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newFakeDedupe() *fakeDedupe {
	return &fakeDedupe{seen: make(map[string]bool)}
}

func (d *fakeDedupe) MarkIfNew(ctx context.Context, key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

func mustParseURL(t *testing.T, raw string) models.Url {
	t.Helper()
	u, err := models.ParseURL(raw)
	require.NoError(t, err)
	return u
}

func TestFrontier_PushDedupesInProcess(t *testing.T) {
	f := NewFrontier(0)
	u := mustParseURL(t, "https://example.com/")

	assert.True(t, f.Push(u, 0))
	assert.False(t, f.Push(u, 0), "second push of the same url should be rejected")
	assert.Equal(t, 1, f.Len())
	assert.Equal(t, 1, f.Seen())
}

func TestFrontier_PushRespectsMaxPages(t *testing.T) {
	f := NewFrontier(1)

	assert.True(t, f.Push(mustParseURL(t, "https://example.com/a"), 0))
	assert.False(t, f.Push(mustParseURL(t, "https://example.com/b"), 0), "budget of 1 should reject the second distinct url")
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_PopFIFOOrder(t *testing.T) {
	f := NewFrontier(0)
	first := mustParseURL(t, "https://example.com/1")
	second := mustParseURL(t, "https://example.com/2")
	f.Push(first, 0)
	f.Push(second, 1)

	gotURL, gotDepth, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, first.String(), gotURL.String())
	assert.Equal(t, 0, gotDepth)

	gotURL, gotDepth, ok = f.Pop()
	require.True(t, ok)
	assert.Equal(t, second.String(), gotURL.String())
	assert.Equal(t, 1, gotDepth)

	_, _, ok = f.Pop()
	assert.False(t, ok, "popping an empty frontier should report ok=false")
}

func TestFrontier_Visited(t *testing.T) {
	f := NewFrontier(0)
	u := mustParseURL(t, "https://example.com/skip")

	f.Visited(u)

	assert.False(t, f.Push(u, 0), "a url marked Visited must never be enqueued")
	assert.Equal(t, 0, f.Len())
	assert.Equal(t, 1, f.Seen())
}

func TestFrontier_WithDedupeDelegatesSeenCheck(t *testing.T) {
	dedupe := newFakeDedupe()
	f := NewFrontierWithDedupe(0, dedupe)
	u := mustParseURL(t, "https://example.com/shared")

	assert.True(t, f.Push(u, 0))
	assert.False(t, f.Push(u, 0), "dedupe-backed frontier should still reject a repeat push")

	// A second frontier sharing the same Dedupe instance sees the key as
	// already marked, modeling two crawl processes against one run.
	other := NewFrontierWithDedupe(0, dedupe)
	assert.False(t, other.Push(u, 0), "a second frontier sharing the dedupe set must not re-enqueue")
}
