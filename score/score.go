// Package score implements C13: turning the 100 raw check results into an
// overall 0-100 score and a per-category rollup, grounded on
// original_source/backend/app/services/audit_engine.py's
// calculate_score/get_summary.
package score

import "github.com/seoaudit/pipeline/models"

var severityWeight = map[models.Severity]int{
	models.SeverityCritical: 10,
	models.SeverityHigh:     5,
	models.SeverityMedium:   2,
	models.SeverityLow:      1,
}

// Overall computes the 0-100 score from a full set of check results:
// penalty = Σ weight[severity] × min(affected_count, 10) for every failed
// check, score = max(0, 100 - penalty). Matches calculate_score exactly,
// including its min(affected_count,10) cap so one badly-affected check
// can't single-handedly zero out the score.
func Overall(results []models.CheckResult) int {
	if len(results) == 0 {
		return 0
	}
	penalty := 0
	for _, r := range results {
		if r.Passed {
			continue
		}
		weight, ok := severityWeight[r.Severity]
		if !ok {
			weight = 1
		}
		affected := r.AffectedCount
		if affected > 10 {
			affected = 10
		}
		penalty += weight * affected
	}
	score := 100 - penalty
	if score < 0 {
		score = 0
	}
	return score
}

// ByCategory rolls results up into one CategorySummary per category in
// models.AllCategories order. Per-category score is the plain
// passed/total percentage, grounded on report_generator.py's
// _calculate_category_scores — deliberately NOT the penalty-weighted
// formula Overall uses, since the Python original scores categories and
// the overall result differently on purpose (the category view is meant
// to read as "how many boxes did you check", the overall score as "how
// bad are your worst problems").
func ByCategory(results []models.CheckResult) []models.CategorySummary {
	byCat := map[models.Category][]models.CheckResult{}
	for _, r := range results {
		byCat[r.Category] = append(byCat[r.Category], r)
	}

	summaries := make([]models.CategorySummary, 0, len(models.AllCategories))
	for _, cat := range models.AllCategories {
		rs := byCat[cat]
		summary := models.CategorySummary{Category: cat}
		for _, r := range rs {
			if r.Passed {
				summary.ChecksPassed++
			} else {
				summary.ChecksFailed++
				if r.Severity == models.SeverityCritical {
					summary.CriticalIssues++
				}
			}
		}
		if total := summary.ChecksPassed + summary.ChecksFailed; total > 0 {
			summary.Score = summary.ChecksPassed * 100 / total
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// Summarize builds the full AuditOutput from a run's check results.
func Summarize(runID string, results []models.CheckResult) models.AuditOutput {
	failed := 0
	for _, r := range results {
		if !r.Passed {
			failed++
		}
	}
	return models.AuditOutput{
		RunID:            runID,
		OverallScore:     Overall(results),
		CategoryScores:   ByCategory(results),
		Results:          results,
		TotalChecksRun:   len(results),
		FailedCheckCount: failed,
	}
}
