package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seoaudit/pipeline/models"
)

func TestMemoryRepository_FindOrCreateSiteIsIdempotent(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first, err := repo.FindOrCreateSite(ctx, "tenant-a", "example.com")
	require.NoError(t, err)

	second, err := repo.FindOrCreateSite(ctx, "tenant-a", "example.com")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestMemoryRepository_FindOrCreateSiteScopedByTenant(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	a, err := repo.FindOrCreateSite(ctx, "tenant-a", "example.com")
	require.NoError(t, err)
	b, err := repo.FindOrCreateSite(ctx, "tenant-b", "example.com")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID, "the same domain under different tenants must be distinct sites")
}

func TestMemoryRepository_GetLatestCompletedAuditSkipsNonCompleted(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	site, err := repo.FindOrCreateSite(ctx, "tenant-a", "example.com")
	require.NoError(t, err)

	older := AuditRun{ID: "run-1", SiteID: site.ID, Status: models.RunStatusCompleted, CompletedAt: time.Now().Add(-time.Hour)}
	newerFailed := AuditRun{ID: "run-2", SiteID: site.ID, Status: models.RunStatusFailed, CompletedAt: time.Now()}
	require.NoError(t, repo.WriteAuditRun(ctx, older, nil, nil))
	require.NoError(t, repo.WriteAuditRun(ctx, newerFailed, nil, nil))

	latest, ok, err := repo.GetLatestCompletedAudit(ctx, site.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "run-1", latest.ID, "the most recent completed run should win even if a later run failed")
}

func TestMemoryRepository_GetLatestCompletedAuditNoneExists(t *testing.T) {
	repo := NewMemoryRepository()
	_, ok, err := repo.GetLatestCompletedAudit(context.Background(), "no-such-site")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRepository_WriteAuditRunMergesIssuesPreservingFirstSeen(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	site, err := repo.FindOrCreateSite(ctx, "tenant-a", "example.com")
	require.NoError(t, err)

	firstSeen := time.Now().Add(-24 * time.Hour)
	issueV1 := models.SeoIssue{ID: site.ID + ":1", SiteID: site.ID, CheckID: 1, Title: "missing title", FirstSeenAt: firstSeen, LastSeenAt: firstSeen}
	require.NoError(t, repo.WriteAuditRun(ctx, AuditRun{ID: "run-1", SiteID: site.ID}, nil, []models.SeoIssue{issueV1}))

	lastSeen := time.Now()
	issueV2 := models.SeoIssue{ID: site.ID + ":1", SiteID: site.ID, CheckID: 1, Title: "missing title", FirstSeenAt: lastSeen, LastSeenAt: lastSeen}
	require.NoError(t, repo.WriteAuditRun(ctx, AuditRun{ID: "run-2", SiteID: site.ID}, nil, []models.SeoIssue{issueV2}))

	assert.Equal(t, firstSeen, repo.issues[site.ID][0].FirstSeenAt, "re-seeing the same issue must keep its original FirstSeenAt")
	assert.Equal(t, lastSeen, repo.issues[site.ID][0].LastSeenAt, "LastSeenAt should advance to the newer write")
}
