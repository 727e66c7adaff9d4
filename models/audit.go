package models

// Severity is one of the four fixed severities the scorer weighs.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Category groups checks into the ten fixed SEO categories, named and
// ordered exactly as audit_engine.py's CATEGORIES/_run_*_checks methods
// do (spec §4.12).
type Category string

const (
	CategoryCrawlability    Category = "crawlability"
	CategoryOnPage          Category = "onpage"
	CategoryPerformance     Category = "performance"
	CategoryURLStructure    Category = "url_structure"
	CategoryInternalLinking Category = "internal_linking"
	CategoryContent         Category = "content"
	CategoryStructuredData  Category = "structured_data"
	CategorySecurity        Category = "security"
	CategoryMobile          Category = "mobile"
	CategoryServer          Category = "server"
)

// AllCategories lists the ten categories in catalogue order.
var AllCategories = []Category{
	CategoryCrawlability, CategoryOnPage, CategoryPerformance, CategoryURLStructure,
	CategoryInternalLinking, CategoryContent, CategoryStructuredData, CategorySecurity,
	CategoryMobile, CategoryServer,
}

// CheckResult is one check's verdict across the whole crawled site,
// grounded on audit_engine.py's AuditCheckResult dataclass: each check
// runs once per audit and reports how many (and which) pages it flagged,
// not a verdict per page.
type CheckResult struct {
	CheckID       int                    `json:"check_id" bson:"check_id"`
	Name          string                 `json:"name" bson:"name"`
	Category      Category               `json:"category" bson:"category"`
	Severity      Severity               `json:"severity" bson:"severity"`
	Passed        bool                   `json:"passed" bson:"passed"`
	AffectedCount int                    `json:"affected_count" bson:"affected_count"`
	AffectedURLs  []string               `json:"affected_urls,omitempty" bson:"affected_urls,omitempty"`
	Message       string                 `json:"message,omitempty" bson:"message,omitempty"`
	Details       map[string]interface{} `json:"details,omitempty" bson:"details,omitempty"`
	// PanicRecovered is set when the check's own logic panicked; the
	// runtime records this as a RuleError rather than letting it abort
	// the other 99 checks (spec §4.11 edge case).
	PanicRecovered bool `json:"panic_recovered,omitempty" bson:"panic_recovered,omitempty"`
}

// CategorySummary is the per-category rollup used in reports.
type CategorySummary struct {
	Category       Category `json:"category" bson:"category"`
	Score          int      `json:"score" bson:"score"`
	ChecksPassed   int      `json:"checks_passed" bson:"checks_passed"`
	ChecksFailed   int      `json:"checks_failed" bson:"checks_failed"`
	CriticalIssues int      `json:"critical_issues" bson:"critical_issues"`
}

// AuditOutput is the full result of running all checks across a crawl
// (spec §4.13), grounded on audit_engine.py's run_all_checks/get_summary.
type AuditOutput struct {
	RunID            string            `json:"run_id" bson:"run_id"`
	OverallScore     int               `json:"overall_score" bson:"overall_score"`
	CategoryScores   []CategorySummary `json:"category_scores" bson:"category_scores"`
	Results          []CheckResult     `json:"results" bson:"results"`
	TotalChecksRun   int               `json:"total_checks_run" bson:"total_checks_run"`
	FailedCheckCount int               `json:"failed_check_count" bson:"failed_check_count"`
}
