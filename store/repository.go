// Package store models the pipeline's two persistence boundaries (C10,
// spec §6/§4.16 step 1): a typed Repository for the multi-tenant
// relational data the orchestrator reads/writes around a run, and a
// BlobSink for the rendered report/raw-HTML objects it uploads. Both are
// interfaces the core depends on, never defines concretely in its
// business logic — mongo.go, postgres.go, memory.go, and fsblob.go are
// swappable adapters behind them.
package store

import (
	"context"
	"time"

	"github.com/seoaudit/pipeline/models"
)

// Site is the persisted tenant/site pair a run is scoped to, grounded on
// pipeline_tasks.py's _get_or_create_site (Tenant/Site ORM models
// generalized to the single flat record the Repository contract needs).
type Site struct {
	ID            string    `json:"id" bson:"_id"`
	TenantID      string    `json:"tenant_id" bson:"tenant_id"`
	Domain        string    `json:"domain" bson:"domain"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// AuditRun is the persisted header row for one completed pipeline run,
// grounded on spec §6's write_audit_run and pipeline_tasks.py's result
// dict (report_id/status/score/pages_crawled/duration).
type AuditRun struct {
	ID           string        `json:"id" bson:"_id"`
	SiteID       string        `json:"site_id" bson:"site_id"`
	Status       models.RunStatus `json:"status" bson:"status"`
	Score        int           `json:"score" bson:"score"`
	Grade        string        `json:"grade" bson:"grade"`
	PagesCrawled int           `json:"pages_crawled" bson:"pages_crawled"`
	ChecksRun    int           `json:"checks_run" bson:"checks_run"`
	IssuesCount  int           `json:"issues_count" bson:"issues_count"`
	Warnings     []string      `json:"warnings,omitempty" bson:"warnings,omitempty"`
	Error        string        `json:"error,omitempty" bson:"error,omitempty"`
	StartedAt    time.Time     `json:"started_at" bson:"started_at"`
	CompletedAt  time.Time     `json:"completed_at" bson:"completed_at"`
}

// Repository is the persistence layer the pipeline core consumes but
// never defines concretely (spec §6: "the persistence layer the core
// consumes, not defines"). write_audit_run/write_checks/write_issues
// commit atomically within one transaction per spec §4.16 step 10 and
// §5's "report upload precedes repository commit" ordering guarantee.
type Repository interface {
	// FindOrCreateSite resolves the (tenantID, domain) site a crawl
	// belongs to, creating it if it does not exist yet, matching
	// pipeline_tasks.py's _get_or_create_site.
	FindOrCreateSite(ctx context.Context, tenantID, domain string) (Site, error)

	// WriteAuditRun persists run, the results checks ran produced, and
	// the deduplicated issues derived from them, atomically. Implementers
	// MUST treat this as a single transaction: either all three commit,
	// or none do.
	WriteAuditRun(ctx context.Context, run AuditRun, checks []models.CheckResult, issues []models.SeoIssue) error

	// GetLatestCompletedAudit returns the most recent AuditRun for site
	// with Status == RunStatusCompleted, or ok=false if none exists.
	GetLatestCompletedAudit(ctx context.Context, siteID string) (run AuditRun, ok bool, err error)
}

// BlobSink is the keyed blob storage adapter (C10), matching spec §4.10's
// required operation set exactly: put/get/list/presigned_get. Path
// conventions are implementation-defined but MUST partition by tenant
// and site per spec §6's storage layout
// (tenants/{tenant}/sites/{site}/reports/{report_id}/...).
type BlobSink interface {
	Put(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
	PresignedGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ReportKey builds the object key for one rendered report document under
// a run, matching spec §6's tenants/{tenant}/sites/{site}/reports/{report_id}/
// layout.
func ReportKey(tenantID, siteID, runID, filename string) string {
	return "tenants/" + tenantID + "/sites/" + siteID + "/reports/" + runID + "/" + filename
}

// CrawlPageKey builds the object key for one raw-HTML snapshot, matching
// spec §6's …/crawls/{crawl_id}/pages/{url_hash_12}.html layout.
func CrawlPageKey(tenantID, siteID, crawlID, urlHash12 string) string {
	return "tenants/" + tenantID + "/sites/" + siteID + "/crawls/" + crawlID + "/pages/" + urlHash12 + ".html"
}
