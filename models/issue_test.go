package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seoaudit/pipeline/models"
)

func TestIssuesFromResults_SkipsPassedChecks(t *testing.T) {
	seenAt := time.Now()
	results := []models.CheckResult{
		{CheckID: 1, Passed: true},
		{CheckID: 2, Passed: false, Name: "missing canonical", Category: models.CategoryOnPage, Severity: models.SeverityHigh, AffectedURLs: []string{"https://example.com/a"}, AffectedCount: 1},
	}

	issues := models.IssuesFromResults("site-1", "run-1", results, seenAt)

	require.Len(t, issues, 1)
	assert.Equal(t, "site-1:2", issues[0].ID)
	assert.Equal(t, "site-1", issues[0].SiteID)
	assert.Equal(t, "run-1", issues[0].RunID)
	assert.Equal(t, 2, issues[0].CheckID)
	assert.Equal(t, "missing canonical", issues[0].Title)
	assert.Equal(t, seenAt, issues[0].FirstSeenAt)
	assert.Equal(t, seenAt, issues[0].LastSeenAt)
}

func TestIssuesFromResults_IDIsDeterministicPerSiteAndCheck(t *testing.T) {
	seenAt := time.Now()
	results := []models.CheckResult{{CheckID: 7, Passed: false}}

	first := models.IssuesFromResults("site-a", "run-1", results, seenAt)
	second := models.IssuesFromResults("site-a", "run-2", results, seenAt)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID, "the same site+check must dedupe to the same issue id across runs")
}

func TestIssuesFromResults_EmptyWhenAllPassed(t *testing.T) {
	results := []models.CheckResult{{CheckID: 1, Passed: true}, {CheckID: 2, Passed: true}}
	issues := models.IssuesFromResults("site-1", "run-1", results, time.Now())
	assert.Empty(t, issues)
}
