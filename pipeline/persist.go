package pipeline

import (
	"context"
	"fmt"

	"github.com/seoaudit/pipeline/models"
	"github.com/seoaudit/pipeline/report"
	"github.com/seoaudit/pipeline/store"
)

// Persist uploads result's rendered reports to blobs and writes its run
// header, checks, and issues to repo, in that order — spec §5's "report
// upload precedes repository commit" ordering guarantee, so a crashed
// upload never leaves a committed run pointing at missing objects. This
// is the one place both the CLI (cmd/seoaudit) and the HTTP dispatcher
// (handlers.Dispatcher) write a finished run, so the two surfaces can't
// drift on what "done" means.
func Persist(ctx context.Context, repo store.Repository, blobs store.BlobSink, tenantID, seedURL string, result Result) (store.AuditRun, error) {
	site, err := repo.FindOrCreateSite(ctx, tenantID, seedURL)
	if err != nil {
		return store.AuditRun{}, fmt.Errorf("pipeline: resolve site: %w", err)
	}

	for name, body := range result.Reports {
		key := store.ReportKey(tenantID, site.ID, result.RunID, name+".md")
		if err := blobs.Put(ctx, key, []byte(body), "text/markdown", nil); err != nil {
			return store.AuditRun{}, fmt.Errorf("pipeline: upload report %s: %w", name, err)
		}
	}

	status := models.RunStatusCompleted
	if result.TemplatesSkipped || result.KeywordsSkipped {
		status = models.RunStatusDegraded
	}

	run := store.AuditRun{
		ID:           result.RunID,
		SiteID:       site.ID,
		Status:       status,
		Score:        result.Audit.OverallScore,
		Grade:        report.Grade(result.Audit.OverallScore),
		PagesCrawled: len(result.Crawl.Pages),
		ChecksRun:    result.Audit.TotalChecksRun,
		IssuesCount:  result.Audit.FailedCheckCount,
		StartedAt:    result.StartedAt,
		CompletedAt:  result.CompletedAt,
	}
	issues := models.IssuesFromResults(site.ID, result.RunID, result.Audit.Results, result.CompletedAt)
	if err := repo.WriteAuditRun(ctx, run, result.Audit.Results, issues); err != nil {
		return store.AuditRun{}, fmt.Errorf("pipeline: commit audit run: %w", err)
	}

	return run, nil
}
