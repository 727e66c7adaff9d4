package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/seoaudit/pipeline/models"
)

// MemoryRepository is an in-process Repository backed by maps under a
// single mutex, used by the single-run CLI path and by tests in place of
// a real database — grounded on the teacher's in-memory job map fallback
// in services/database.go (LoadActiveJobsFromMongoDB's in-memory
// counterpart) generalized from jobs to sites/runs/issues.
type MemoryRepository struct {
	mu     sync.Mutex
	sites  map[string]Site          // id -> site
	byKey  map[string]string        // tenantID+"/"+domain -> site id
	runs   map[string][]AuditRun    // site id -> runs, oldest first
	checks map[string][]models.CheckResult
	issues map[string][]models.SeoIssue
}

// NewMemoryRepository builds an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sites:  make(map[string]Site),
		byKey:  make(map[string]string),
		runs:   make(map[string][]AuditRun),
		checks: make(map[string][]models.CheckResult),
		issues: make(map[string][]models.SeoIssue),
	}
}

func (r *MemoryRepository) FindOrCreateSite(ctx context.Context, tenantID, domain string) (Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := tenantID + "/" + domain
	if id, ok := r.byKey[key]; ok {
		return r.sites[id], nil
	}

	site := Site{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		Domain:   domain,
	}
	r.sites[site.ID] = site
	r.byKey[key] = site.ID
	return site, nil
}

func (r *MemoryRepository) WriteAuditRun(ctx context.Context, run AuditRun, checks []models.CheckResult, issues []models.SeoIssue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs[run.SiteID] = append(r.runs[run.SiteID], run)
	r.checks[run.ID] = checks

	existing := r.issues[run.SiteID]
	byID := make(map[string]int, len(existing))
	for i, issue := range existing {
		byID[issue.ID] = i
	}
	for _, issue := range issues {
		if i, ok := byID[issue.ID]; ok {
			issue.FirstSeenAt = existing[i].FirstSeenAt
			existing[i] = issue
			continue
		}
		byID[issue.ID] = len(existing)
		existing = append(existing, issue)
	}
	r.issues[run.SiteID] = existing

	return nil
}

func (r *MemoryRepository) GetLatestCompletedAudit(ctx context.Context, siteID string) (AuditRun, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runs := append([]AuditRun(nil), r.runs[siteID]...)
	sort.Slice(runs, func(i, j int) bool { return runs[i].CompletedAt.After(runs[j].CompletedAt) })
	for _, run := range runs {
		if run.Status == models.RunStatusCompleted {
			return run, true, nil
		}
	}
	return AuditRun{}, false, nil
}
