package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seoaudit/pipeline/models"
	"github.com/seoaudit/pipeline/store"
)

func newPersistResult(runID string) Result {
	started := time.Now().Add(-time.Minute)
	return Result{
		RunID:       runID,
		StartedAt:   started,
		CompletedAt: started.Add(time.Minute),
		Crawl: models.CrawlArtifact{
			Pages: []models.PageRecord{{URL: "https://example.com/"}, {URL: "https://example.com/about"}},
		},
		Audit: models.AuditOutput{
			OverallScore:     82,
			TotalChecksRun:   100,
			FailedCheckCount: 1,
			Results: []models.CheckResult{
				{CheckID: 12, Name: "meta-title-missing", Category: models.CategoryOnPage, Severity: "critical", Passed: false, AffectedURLs: []string{"https://example.com/about"}},
			},
		},
		Reports: map[string]string{
			"executive-summary": "# Executive Summary\n",
			"technical":         "# Technical\n",
		},
	}
}

func TestPersist_WritesReportsAndRun(t *testing.T) {
	repo := store.NewMemoryRepository()
	blobs, err := store.NewFSBlobSink(t.TempDir())
	require.NoError(t, err)

	result := newPersistResult("run-1")
	run, err := Persist(context.Background(), repo, blobs, "tenant-a", "https://example.com", result)
	require.NoError(t, err)

	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.Equal(t, 82, run.Score)
	assert.Equal(t, 2, run.PagesCrawled)
	assert.Equal(t, 100, run.ChecksRun)
	assert.Equal(t, 1, run.IssuesCount)
	assert.NotEmpty(t, run.Grade)

	site, err := repo.FindOrCreateSite(context.Background(), "tenant-a", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, run.SiteID, site.ID)

	for name := range result.Reports {
		key := store.ReportKey("tenant-a", site.ID, "run-1", name+".md")
		body, err := blobs.Get(context.Background(), key)
		require.NoError(t, err, "report %s should have been uploaded", name)
		assert.True(t, strings.HasPrefix(string(body), "#"))
	}

	latest, ok, err := repo.GetLatestCompletedAudit(context.Background(), site.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "run-1", latest.ID)
}

func TestPersist_DegradedWhenStageSkipped(t *testing.T) {
	repo := store.NewMemoryRepository()
	blobs, err := store.NewFSBlobSink(t.TempDir())
	require.NoError(t, err)

	result := newPersistResult("run-2")
	result.TemplatesSkipped = true

	run, err := Persist(context.Background(), repo, blobs, "tenant-a", "https://example.com", result)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusDegraded, run.Status)
}

func TestPersist_ReusesExistingSite(t *testing.T) {
	repo := store.NewMemoryRepository()
	blobs, err := store.NewFSBlobSink(t.TempDir())
	require.NoError(t, err)

	first, err := Persist(context.Background(), repo, blobs, "tenant-a", "https://example.com", newPersistResult("run-3"))
	require.NoError(t, err)

	second, err := Persist(context.Background(), repo, blobs, "tenant-a", "https://example.com", newPersistResult("run-4"))
	require.NoError(t, err)

	assert.Equal(t, first.SiteID, second.SiteID)
}
