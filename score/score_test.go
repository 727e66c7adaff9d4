package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seoaudit/pipeline/models"
)

func TestOverall_AllPassedScoresPerfect(t *testing.T) {
	results := []models.CheckResult{
		{Severity: models.SeverityCritical, Passed: true},
		{Severity: models.SeverityHigh, Passed: true},
	}
	assert.Equal(t, 100, Overall(results))
}

func TestOverall_EmptyResultsScoresZero(t *testing.T) {
	assert.Equal(t, 0, Overall(nil))
}

func TestOverall_WeighsBySeverityAndCapsAffectedCount(t *testing.T) {
	results := []models.CheckResult{
		{Severity: models.SeverityCritical, Passed: false, AffectedCount: 25}, // capped to 10 -> 100 penalty
	}
	assert.Equal(t, 0, Overall(results), "penalty should floor at 0, never go negative")

	results = []models.CheckResult{
		{Severity: models.SeverityLow, Passed: false, AffectedCount: 3}, // weight 1 * 3 = 3
	}
	assert.Equal(t, 97, Overall(results))
}

func TestOverall_UnknownSeverityDefaultsToWeightOne(t *testing.T) {
	results := []models.CheckResult{
		{Severity: models.Severity("unknown"), Passed: false, AffectedCount: 4},
	}
	assert.Equal(t, 96, Overall(results))
}

func TestByCategory_ComputesPassPercentageAndCriticalCount(t *testing.T) {
	results := []models.CheckResult{
		{Category: models.CategoryOnPage, Passed: true},
		{Category: models.CategoryOnPage, Passed: false, Severity: models.SeverityCritical},
		{Category: models.CategoryOnPage, Passed: false, Severity: models.SeverityLow},
	}

	summaries := ByCategory(results)
	assert.Equal(t, len(models.AllCategories), len(summaries))

	var onPage models.CategorySummary
	for _, s := range summaries {
		if s.Category == models.CategoryOnPage {
			onPage = s
		}
	}
	assert.Equal(t, 1, onPage.ChecksPassed)
	assert.Equal(t, 2, onPage.ChecksFailed)
	assert.Equal(t, 1, onPage.CriticalIssues)
	assert.Equal(t, 33, onPage.Score) // 1/3 * 100, integer division
}

func TestByCategory_EmptyCategoryHasZeroScore(t *testing.T) {
	summaries := ByCategory(nil)
	for _, s := range summaries {
		assert.Equal(t, 0, s.Score)
		assert.Equal(t, 0, s.ChecksPassed)
		assert.Equal(t, 0, s.ChecksFailed)
	}
}

func TestSummarize_AggregatesOverallAndFailedCount(t *testing.T) {
	results := []models.CheckResult{
		{Category: models.CategoryContent, Severity: models.SeverityMedium, Passed: false, AffectedCount: 1},
		{Category: models.CategoryContent, Passed: true},
	}

	out := Summarize("run-1", results)

	assert.Equal(t, "run-1", out.RunID)
	assert.Equal(t, 2, out.TotalChecksRun)
	assert.Equal(t, 1, out.FailedCheckCount)
	assert.Equal(t, Overall(results), out.OverallScore)
	assert.Len(t, out.CategoryScores, len(models.AllCategories))
}
