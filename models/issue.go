package models

import (
	"strconv"
	"time"
)

// SeoIssue is one deduplicated, persistable issue derived from a failed
// CheckResult, grounded on pipeline_tasks.py's _convert_audit_results_to_issues
// and spec §6's `write_issues(issues)` repository call. Deduplication key
// is (SiteID, CheckID): the same failing check across repeated audits of
// the same site updates one issue row rather than growing the table
// unbounded.
type SeoIssue struct {
	ID           string    `json:"id" bson:"_id"`
	SiteID       string    `json:"site_id" bson:"site_id"`
	RunID        string    `json:"run_id" bson:"run_id"`
	CheckID      int       `json:"check_id" bson:"check_id"`
	Category     Category  `json:"category" bson:"category"`
	Severity     Severity  `json:"severity" bson:"severity"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description" bson:"description"`
	AffectedURLs []string  `json:"affected_urls" bson:"affected_urls"`
	AffectedCount int      `json:"affected_count" bson:"affected_count"`
	FirstSeenAt  time.Time `json:"first_seen_at" bson:"first_seen_at"`
	LastSeenAt   time.Time `json:"last_seen_at" bson:"last_seen_at"`
}

// IssuesFromResults converts a run's failed checks into the deduplicated
// issue shape write_issues persists, one issue per failing check id.
func IssuesFromResults(siteID, runID string, results []CheckResult, seenAt time.Time) []SeoIssue {
	var issues []SeoIssue
	for _, r := range results {
		if r.Passed {
			continue
		}
		issues = append(issues, SeoIssue{
			ID:            siteID + ":" + strconv.Itoa(r.CheckID),
			SiteID:        siteID,
			RunID:         runID,
			CheckID:       r.CheckID,
			Category:      r.Category,
			Severity:      r.Severity,
			Title:         r.Name,
			Description:   r.Message,
			AffectedURLs:  r.AffectedURLs,
			AffectedCount: r.AffectedCount,
			FirstSeenAt:   seenAt,
			LastSeenAt:    seenAt,
		})
	}
	return issues
}
