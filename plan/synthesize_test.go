package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seoaudit/pipeline/models"
	"github.com/seoaudit/pipeline/providers"
)

func TestSynthesize_DefaultsDurationWhenNonPositive(t *testing.T) {
	p := Synthesize("run-1", nil, nil, 0)
	assert.Equal(t, defaultDurationWeeks, p.DurationWeeks)
}

func TestSynthesize_ClassifiesQuickWinsVsTechnical(t *testing.T) {
	results := []models.CheckResult{
		{Name: "Missing Meta Description", Passed: false, Severity: models.SeverityHigh, CheckID: 1},
		{Name: "Slow Server Response Time", Passed: false, Severity: models.SeverityCritical, CheckID: 2},
		{Name: "Passed Check", Passed: true},
	}

	p := Synthesize("run-1", results, nil, 12)

	var quickWin, technical bool
	for _, item := range p.Items {
		if item.Phase == models.PhaseQuickWins && item.CheckID == 1 {
			quickWin = true
		}
		if item.Phase == models.PhaseTechnical && item.CheckID == 2 {
			technical = true
		}
	}
	assert.True(t, quickWin, "a 'missing meta description' failure should classify as a quick win")
	assert.True(t, technical, "a non-quick-fix failure should classify as technical")
}

func TestSynthesize_CapsQuickWinsAndTechnicalAtFive(t *testing.T) {
	var results []models.CheckResult
	for i := 0; i < 8; i++ {
		results = append(results, models.CheckResult{Name: "Missing Alt Text", Passed: false, Severity: models.SeverityMedium, CheckID: i})
		results = append(results, models.CheckResult{Name: "Slow Server Response Time", Passed: false, Severity: models.SeverityCritical, CheckID: 100 + i})
	}

	p := Synthesize("run-1", results, nil, 12)

	count, techCount := 0, 0
	for _, item := range p.Items {
		if item.Phase == models.PhaseQuickWins {
			count++
		}
		if item.Phase == models.PhaseTechnical {
			techCount++
		}
	}
	assert.Equal(t, 5, count)
	assert.Equal(t, 5, techCount)
}

func TestSynthesize_BuildsContentCalendarFromKeywords(t *testing.T) {
	keywords := []providers.KeywordMetrics{
		{Keyword: "seo audit tool", SearchVolume: 500},
		{Keyword: "technical seo checklist", SearchVolume: 300},
	}

	p := Synthesize("run-1", nil, keywords, 12)

	require.Len(t, p.ContentCalendar, 2)
	assert.Contains(t, p.ContentCalendar[0].Title, "seo audit tool")
}

func TestSynthesize_LimitsContentCalendarToTenEntries(t *testing.T) {
	var keywords []providers.KeywordMetrics
	for i := 0; i < 15; i++ {
		keywords = append(keywords, providers.KeywordMetrics{Keyword: "kw", SearchVolume: 10})
	}

	p := Synthesize("run-1", nil, keywords, 12)

	assert.Len(t, p.ContentCalendar, 10)
}
