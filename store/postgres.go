package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seoaudit/pipeline/models"
)

// PostgresRepository is a Repository backed by a pgx/v5 pool with
// hand-written SQL. ncecere-raito's internal/store/store.go queries
// through sqlc-generated code; sqlc never became a dependency of this
// module, so queries here are written directly against pgx instead of
// reproducing a generator we don't run. The migration runner (migrate.go)
// still follows ncecere-raito's goose pattern exactly.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository opens a connection pool against dsn. Callers
// should run MigratePostgres(dsn) once at startup before using it.
func NewPostgresRepository(ctx context.Context, dsn string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping postgres: %w", err)
	}
	return &PostgresRepository{pool: pool}, nil
}

func (r *PostgresRepository) Close() {
	r.pool.Close()
}

func (r *PostgresRepository) FindOrCreateSite(ctx context.Context, tenantID, domain string) (Site, error) {
	var site Site
	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, domain, created_at FROM sites WHERE tenant_id = $1 AND domain = $2`,
		tenantID, domain,
	).Scan(&site.ID, &site.TenantID, &site.Domain, &site.CreatedAt)
	if err == nil {
		return site, nil
	}
	if err != pgx.ErrNoRows {
		return Site{}, fmt.Errorf("store: find site %s/%s: %w", tenantID, domain, err)
	}

	site = Site{ID: uuid.NewString(), TenantID: tenantID, Domain: domain, CreatedAt: time.Now()}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO sites (id, tenant_id, domain, created_at) VALUES ($1, $2, $3, $4)`,
		site.ID, site.TenantID, site.Domain, site.CreatedAt,
	)
	if err != nil {
		return Site{}, fmt.Errorf("store: create site %s/%s: %w", tenantID, domain, err)
	}
	return site, nil
}

// WriteAuditRun inserts run, its checks, and its deduplicated issues
// inside one pgx transaction, matching spec §4.16 step 10's atomic
// commit requirement.
func (r *PostgresRepository) WriteAuditRun(ctx context.Context, run AuditRun, checks []models.CheckResult, issues []models.SeoIssue) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	warnings := run.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO audit_runs
			(id, site_id, status, score, grade, pages_crawled, checks_run, issues_count, warnings, error, started_at, completed_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		run.ID, run.SiteID, run.Status, run.Score, run.Grade, run.PagesCrawled, run.ChecksRun,
		run.IssuesCount, warnings, run.Error, run.StartedAt, run.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("store: insert audit run: %w", err)
	}

	for _, c := range checks {
		checkURLs := c.AffectedURLs
		if checkURLs == nil {
			checkURLs = []string{}
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO checks (run_id, check_id, category, severity, passed, name, message, affected_urls, affected_count)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			run.ID, c.CheckID, c.Category, c.Severity, c.Passed, c.Name, c.Message, checkURLs, c.AffectedCount,
		)
		if err != nil {
			return fmt.Errorf("store: insert check %d: %w", c.CheckID, err)
		}
	}

	for _, issue := range issues {
		issueURLs := issue.AffectedURLs
		if issueURLs == nil {
			issueURLs = []string{}
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO issues (id, site_id, run_id, check_id, category, severity, title, description, affected_urls, affected_count, first_seen_at, last_seen_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			 ON CONFLICT (id) DO UPDATE SET
			     run_id = EXCLUDED.run_id,
			     severity = EXCLUDED.severity,
			     title = EXCLUDED.title,
			     description = EXCLUDED.description,
			     affected_urls = EXCLUDED.affected_urls,
			     affected_count = EXCLUDED.affected_count,
			     last_seen_at = EXCLUDED.last_seen_at`,
			issue.ID, issue.SiteID, issue.RunID, issue.CheckID, issue.Category, issue.Severity,
			issue.Title, issue.Description, issueURLs, issue.AffectedCount,
			issue.FirstSeenAt, issue.LastSeenAt,
		)
		if err != nil {
			return fmt.Errorf("store: upsert issue %s: %w", issue.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("store: commit audit run %s: %w", run.ID, err)
	}
	return nil
}

func (r *PostgresRepository) GetLatestCompletedAudit(ctx context.Context, siteID string) (AuditRun, bool, error) {
	var run AuditRun
	err := r.pool.QueryRow(ctx,
		`SELECT id, site_id, status, score, grade, pages_crawled, checks_run, issues_count, warnings, error, started_at, completed_at
		 FROM audit_runs
		 WHERE site_id = $1 AND status = $2
		 ORDER BY completed_at DESC
		 LIMIT 1`,
		siteID, models.RunStatusCompleted,
	).Scan(&run.ID, &run.SiteID, &run.Status, &run.Score, &run.Grade, &run.PagesCrawled, &run.ChecksRun,
		&run.IssuesCount, &run.Warnings, &run.Error, &run.StartedAt, &run.CompletedAt)
	if err == pgx.ErrNoRows {
		return AuditRun{}, false, nil
	}
	if err != nil {
		return AuditRun{}, false, fmt.Errorf("store: latest completed audit for %s: %w", siteID, err)
	}
	return run, true, nil
}
