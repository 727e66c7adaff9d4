// Package plan synthesizes a three-phase remediation plan and content
// calendar from audit results (C14), grounded on
// original_source/backend/app/agents/workflows/plan_workflow.py's
// generate_action_plan_node/generate_content_calendar_node.
package plan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seoaudit/pipeline/models"
	"github.com/seoaudit/pipeline/providers"
)

const defaultDurationWeeks = 12

// quickFixKeywords mirrors report_generator.py's _get_quick_wins keyword
// list: failed checks whose name contains one of these read as cheap to
// fix regardless of how many pages they affect.
var quickFixKeywords = []string{
	"missing", "empty", "duplicate", "too short", "too long",
	"alt text", "meta description", "title tag", "canonical",
}

// Synthesize builds a Plan from a run's failed checks and (optionally) a
// set of keyword research results for the content phase. durationWeeks
// falls back to 12 (the Python original's default) when <= 0.
func Synthesize(runID string, results []models.CheckResult, keywords []providers.KeywordMetrics, durationWeeks int) models.Plan {
	if durationWeeks <= 0 {
		durationWeeks = defaultDurationWeeks
	}

	quickWins, technical := classifyIssues(results)

	var items []models.PlanItem
	for _, r := range quickWins {
		items = append(items, models.PlanItem{
			Phase: models.PhaseQuickWins, WeekStart: 1, WeekEnd: 2,
			Title: r.Name, Description: r.Message, Severity: r.Severity,
			AffectedURLs: r.AffectedURLs, CheckID: r.CheckID,
			EstimatedImpact: impactFor(r.Severity),
		})
		if len(items) >= 5 {
			break
		}
	}

	techCount := 0
	for _, r := range technical {
		if techCount >= 5 {
			break
		}
		items = append(items, models.PlanItem{
			Phase: models.PhaseTechnical, WeekStart: 2, WeekEnd: 4,
			Title: r.Name, Description: r.Message, Severity: r.Severity,
			AffectedURLs: r.AffectedURLs, CheckID: r.CheckID,
			EstimatedImpact: impactFor(r.Severity),
		})
		techCount++
	}

	weeksForContent := durationWeeks - 4
	if weeksForContent < 4 {
		weeksForContent = 4
	}
	contentPerTwoWeeks := len(keywords) / (weeksForContent / 2)
	if contentPerTwoWeeks < 1 {
		contentPerTwoWeeks = 1
	}

	currentWeek := 4
	var calendar []models.ContentCalendarEntry
	for i, kw := range keywords {
		if i >= 10 {
			break
		}
		weekEnd := currentWeek + 2
		if weekEnd > durationWeeks {
			weekEnd = durationWeeks
		}
		items = append(items, models.PlanItem{
			Phase: models.PhaseContent, WeekStart: currentWeek, WeekEnd: weekEnd,
			Title:       fmt.Sprintf("Create content targeting %q", kw.Keyword),
			Description: fmt.Sprintf("Target keyword with search volume %d", kw.SearchVolume),
			Severity:    models.SeverityMedium,
		})
		calendar = append(calendar, models.ContentCalendarEntry{
			Week:        currentWeek,
			Title:       fmt.Sprintf("Article: %s", kw.Keyword),
			Description: fmt.Sprintf("Target keywords: %s", kw.Keyword),
		})

		if (i+1)%contentPerTwoWeeks == 0 {
			currentWeek += 2
			if currentWeek > durationWeeks-2 {
				currentWeek = durationWeeks - 2
			}
		}
	}

	return models.Plan{
		RunID:           runID,
		DurationWeeks:   durationWeeks,
		Items:           items,
		ContentCalendar: calendar,
	}
}

// classifyIssues splits failed checks into Quick Wins (cheap fixes
// regardless of severity, per _get_quick_wins) and Technical Optimization
// (everything else, ordered worst-severity-first).
func classifyIssues(results []models.CheckResult) (quickWins, technical []models.CheckResult) {
	severityOrder := map[models.Severity]int{
		models.SeverityCritical: 0, models.SeverityHigh: 1,
		models.SeverityMedium: 2, models.SeverityLow: 3,
	}

	var failed []models.CheckResult
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}

	for _, r := range failed {
		if isQuickFix(r) {
			quickWins = append(quickWins, r)
		} else {
			technical = append(technical, r)
		}
	}

	sortBySeverityThenCount(quickWins, severityOrder)
	sortBySeverityThenCount(technical, severityOrder)
	return quickWins, technical
}

func isQuickFix(r models.CheckResult) bool {
	name := strings.ToLower(r.Name)
	for _, kw := range quickFixKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

func sortBySeverityThenCount(results []models.CheckResult, order map[models.Severity]int) {
	sort.SliceStable(results, func(i, j int) bool {
		oi, oj := order[results[i].Severity], order[results[j].Severity]
		if oi != oj {
			return oi < oj
		}
		return results[i].AffectedCount > results[j].AffectedCount
	})
}

func impactFor(sev models.Severity) string {
	switch sev {
	case models.SeverityCritical, models.SeverityHigh:
		return "high"
	case models.SeverityMedium:
		return "medium"
	default:
		return "low"
	}
}
