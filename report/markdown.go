package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seoaudit/pipeline/models"
)

// ExecutiveSummary renders the stakeholder-facing document: score, grade,
// severity breakdown, category scores, top issues, traffic estimate.
// Grounded on report_generator.py's generate_executive_summary /
// markdown_generator.py's string-building style (the teacher's own
// markdown code is all plain strings.Builder work too, so this follows
// that idiom rather than introducing a templating engine).
func ExecutiveSummary(siteURL string, audit models.AuditOutput) string {
	var b strings.Builder
	grade := Grade(audit.OverallScore)

	fmt.Fprintf(&b, "# SEO Audit Executive Summary\n\n")
	fmt.Fprintf(&b, "**Site:** %s  \n", siteURL)
	fmt.Fprintf(&b, "**Overall Score:** %d/100 (Grade: %s)\n\n", audit.OverallScore, grade)
	b.WriteString("---\n\n## Category Scores\n\n")
	b.WriteString("| Category | Score | Passed | Failed | Critical |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, c := range audit.CategoryScores {
		fmt.Fprintf(&b, "| %s | %d | %d | %d | %d |\n", c.Category, c.Score, c.ChecksPassed, c.ChecksFailed, c.CriticalIssues)
	}

	sevCounts := countBySeverity(audit.Results)
	b.WriteString("\n## Issues by Severity\n\n")
	for _, sev := range []models.Severity{models.SeverityCritical, models.SeverityHigh, models.SeverityMedium, models.SeverityLow} {
		fmt.Fprintf(&b, "- %s: %d\n", severityEmoji(sev)+" "+string(sev), sevCounts[sev])
	}

	impact := EstimateTrafficImpact(audit.OverallScore, audit.Results)
	b.WriteString("\n## Estimated Impact of Fixes\n\n")
	fmt.Fprintf(&b, "Fixing the issues above could raise the score to roughly **%d/100**, ", impact.PotentialScore)
	fmt.Fprintf(&b, "a potential traffic increase of up to **%s** (%s confidence).\n\n", impact.PotentialTrafficIncrease, impact.Confidence)

	top := topIssues(audit.Results, 5)
	if len(top) > 0 {
		b.WriteString("## Top Issues\n\n")
		for _, r := range top {
			fmt.Fprintf(&b, "- %s **%s** — %s (%d page(s) affected)\n", severityEmoji(r.Severity), r.Name, r.Message, r.AffectedCount)
		}
	}

	return b.String()
}

// TechnicalAudit renders the developer-facing document: every one of the
// 100 checks, grouped by category, with affected URLs.
func TechnicalAudit(siteURL string, audit models.AuditOutput, pagesCrawled int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Technical SEO Audit\n\n")
	fmt.Fprintf(&b, "**Site:** %s  \n", siteURL)
	fmt.Fprintf(&b, "**Pages Crawled:** %d  \n", pagesCrawled)
	fmt.Fprintf(&b, "**Score:** %d/100 (Grade: %s)  \n", audit.OverallScore, Grade(audit.OverallScore))
	fmt.Fprintf(&b, "**Checks:** %d run, %d failed\n\n---\n\n", audit.TotalChecksRun, audit.FailedCheckCount)

	byCategory := map[models.Category][]models.CheckResult{}
	for _, r := range audit.Results {
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}

	for _, cat := range models.AllCategories {
		results := byCategory[cat]
		if len(results) == 0 {
			continue
		}
		sort.Slice(results, func(i, j int) bool { return results[i].CheckID < results[j].CheckID })
		fmt.Fprintf(&b, "## %s\n\n", categoryTitle(cat))
		for _, r := range results {
			status := "✅ Pass"
			if !r.Passed {
				status = "❌ Fail"
			}
			fmt.Fprintf(&b, "### %d. %s — %s\n\n", r.CheckID, r.Name, status)
			if r.Message != "" {
				fmt.Fprintf(&b, "%s\n\n", r.Message)
			}
			if len(r.AffectedURLs) > 0 {
				b.WriteString("Affected pages:\n\n")
				for _, u := range r.AffectedURLs {
					fmt.Fprintf(&b, "- %s\n", u)
				}
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// ActionPlan renders the implementation-facing document: prioritized
// issues, phased tasks, and the content calendar.
func ActionPlan(siteURL string, audit models.AuditOutput, plan models.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# SEO Action Plan\n\n")
	fmt.Fprintf(&b, "**Site:** %s  \n", siteURL)
	fmt.Fprintf(&b, "**Duration:** %d weeks\n\n---\n\n", plan.DurationWeeks)

	byPhase := map[models.PlanPhase][]models.PlanItem{}
	for _, item := range plan.Items {
		byPhase[item.Phase] = append(byPhase[item.Phase], item)
	}

	phaseOrder := []struct {
		phase models.PlanPhase
		title string
	}{
		{models.PhaseQuickWins, "Phase 1: Quick Wins (Weeks 1-2)"},
		{models.PhaseTechnical, "Phase 2: Technical Optimization (Weeks 2-4)"},
		{models.PhaseContent, fmt.Sprintf("Phase 3: Content Strategy (Weeks 4-%d)", plan.DurationWeeks)},
	}
	for _, p := range phaseOrder {
		items := byPhase[p.phase]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", p.title)
		for i, item := range items {
			fmt.Fprintf(&b, "%d. **%s** (%s impact) — %s\n", i+1, item.Title, item.EstimatedImpact, item.Description)
		}
		b.WriteString("\n")
	}

	if len(plan.ContentCalendar) > 0 {
		b.WriteString("## Content Calendar\n\n")
		b.WriteString("| Week | Title | Notes |\n|---|---|---|\n")
		for _, e := range plan.ContentCalendar {
			fmt.Fprintf(&b, "| %d | %s | %s |\n", e.Week, e.Title, e.Description)
		}
	}

	return b.String()
}

// ContentBrief renders a single content brief document for keyword, the
// nth brief generated in this run.
func ContentBrief(keyword string, briefNumber int, targetWordCount int, relatedTerms []string, outline []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Content Brief #%d: %s\n\n", briefNumber, keyword)
	fmt.Fprintf(&b, "**Target Word Count:** %d\n\n", targetWordCount)
	if len(relatedTerms) > 0 {
		fmt.Fprintf(&b, "**Related Terms:** %s\n\n", strings.Join(relatedTerms, ", "))
	}
	if len(outline) > 0 {
		b.WriteString("## Suggested Outline\n\n")
		for _, h := range outline {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}
	return b.String()
}

// ContentBriefWithSnapshot is ContentBrief plus a markdown rendering of
// the page's current content, when one was crawled for this keyword's
// target URL (see ContentSnapshot).
func ContentBriefWithSnapshot(keyword string, briefNumber int, targetWordCount int, relatedTerms []string, outline []string, currentPageHTML string) string {
	brief := ContentBrief(keyword, briefNumber, targetWordCount, relatedTerms, outline)
	if currentPageHTML == "" {
		return brief
	}
	snapshot, err := ContentSnapshot(currentPageHTML)
	if err != nil || snapshot == "" {
		return brief
	}
	return brief + "\n## Current Page Content\n\n" + snapshot + "\n"
}

func countBySeverity(results []models.CheckResult) map[models.Severity]int {
	counts := map[models.Severity]int{}
	for _, r := range results {
		if !r.Passed {
			counts[r.Severity]++
		}
	}
	return counts
}

func topIssues(results []models.CheckResult, n int) []models.CheckResult {
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
	sort.SliceStable(failed, func(i, j int) bool {
		oi, oj := severityOrder[failed[i].Severity], severityOrder[failed[j].Severity]
		if oi != oj {
			return oi < oj
		}
		return failed[i].AffectedCount > failed[j].AffectedCount
	})
	if len(failed) > n {
		failed = failed[:n]
	}
	return failed
}

func severityEmoji(sev models.Severity) string {
	switch sev {
	case models.SeverityCritical:
		return "🔴"
	case models.SeverityHigh:
		return "🟠"
	case models.SeverityMedium:
		return "🟡"
	case models.SeverityLow:
		return "🟢"
	default:
		return "⚪"
	}
}

func categoryTitle(cat models.Category) string {
	words := strings.Split(string(cat), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
