package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSBlobSink_PutGetRoundTrip(t *testing.T) {
	sink, err := NewFSBlobSink(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := "tenants/t1/sites/s1/reports/r1/summary.md"
	require.NoError(t, sink.Put(ctx, key, []byte("# hello"), "text/markdown", nil))

	body, err := sink.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "# hello", string(body))
}

func TestFSBlobSink_GetMissingKeyErrors(t *testing.T) {
	sink, err := NewFSBlobSink(t.TempDir())
	require.NoError(t, err)

	_, err = sink.Get(context.Background(), "does/not/exist.md")
	assert.Error(t, err)
}

func TestFSBlobSink_ListFiltersByPrefix(t *testing.T) {
	sink, err := NewFSBlobSink(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, sink.Put(ctx, "tenants/t1/sites/s1/reports/r1/a.md", []byte("a"), "text/markdown", nil))
	require.NoError(t, sink.Put(ctx, "tenants/t1/sites/s1/reports/r1/b.md", []byte("b"), "text/markdown", nil))
	require.NoError(t, sink.Put(ctx, "tenants/t1/sites/s2/reports/r2/c.md", []byte("c"), "text/markdown", nil))

	keys, err := sink.List(ctx, "tenants/t1/sites/s1/")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, "tenants/t1/sites/s1/reports/r1/a.md")
	assert.Contains(t, keys, "tenants/t1/sites/s1/reports/r1/b.md")
}

func TestFSBlobSink_PresignedGetRequiresExistingKey(t *testing.T) {
	sink, err := NewFSBlobSink(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = sink.PresignedGet(ctx, "missing.md", 0)
	assert.Error(t, err)

	require.NoError(t, sink.Put(ctx, "present.md", []byte("x"), "text/plain", nil))
	url, err := sink.PresignedGet(ctx, "present.md", 0)
	require.NoError(t, err)
	assert.Contains(t, url, "file://")
}
