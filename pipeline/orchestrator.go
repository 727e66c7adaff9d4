// Package pipeline sequences the crawl, audit, template classification,
// keyword research, plan synthesis, and report rendering stages into one
// run (C16), grounded on
// original_source/backend/app/tasks/pipeline_tasks.py's
// run_full_seo_pipeline/_run_full_seo_pipeline step sequence. The Python
// original's steps 1 (tenant/site persistence) and 10's database commit
// are store.Repository's concern, not the orchestrator's; everything
// else below is a direct, renumbered port of that function's step list.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/temoto/robotstxt"

	"github.com/seoaudit/pipeline/audit"
	"github.com/seoaudit/pipeline/crawl"
	"github.com/seoaudit/pipeline/models"
	"github.com/seoaudit/pipeline/plan"
	"github.com/seoaudit/pipeline/providers"
	"github.com/seoaudit/pipeline/render"
	"github.com/seoaudit/pipeline/report"
	"github.com/seoaudit/pipeline/score"
	"github.com/seoaudit/pipeline/utils"
)

// commonAssetPaths are probed against robots.txt for check 2 (a site
// that disallows its own CSS/JS breaks renderability for crawlers that
// respect robots.txt).
var commonAssetPaths = []string{"/style.css", "/styles.css", "/assets/main.js", "/static/app.js", "/css/main.css"}

// Options controls a single pipeline run, generalized from
// _run_full_seo_pipeline's options dict (max_pages, generate_briefs,
// plan_duration_weeks, seed_keywords, do_keyword_research,
// classify_templates, target_country, target_language).
type Options struct {
	Crawl             models.CrawlConfig
	PlanDurationWeeks int
	SeedKeywords      []string
	DoKeywordResearch bool
	ClassifyTemplates bool
	GenerateBriefs    bool
	TargetCountry     string
	TargetLanguage    string

	// Dedupe, if set, backs the crawl frontier's seen-set instead of an
	// in-process map (crawl.RedisDedupe), letting several runs against
	// the same site share a dedupe set across processes. Nil means the
	// frontier dedupes in-process, which is correct for a single run.
	Dedupe crawl.Dedupe
}

// DefaultOptions mirrors the Python original's option defaults
// (max_pages=100, generate_briefs/do_keyword_research/classify_templates
// all true, plan_duration_weeks=12, target_country="ES",
// target_language="es").
func DefaultOptions(seedURL string) Options {
	cfg := models.DefaultCrawlConfig(seedURL)
	cfg.MaxPages = 100
	return Options{
		Crawl:             cfg,
		PlanDurationWeeks: 12,
		DoKeywordResearch: true,
		ClassifyTemplates: true,
		GenerateBriefs:    true,
		TargetCountry:     "ES",
		TargetLanguage:    "es",
	}
}

// Result is everything a completed run produced, enough to persist via a
// store.Repository/store.BlobSink without re-running any stage.
type Result struct {
	RunID            string
	StartedAt        time.Time
	CompletedAt      time.Time
	Crawl            models.CrawlArtifact
	Templates        models.TemplateClassification
	Keywords         []providers.KeywordMetrics
	Audit            models.AuditOutput
	Plan             models.Plan
	Reports          map[string]string // report name -> rendered markdown
	TemplatesSkipped bool
	KeywordsSkipped  bool
}

// Pipeline wires the optional external collaborators (spec's Provider<T>
// pattern) and the renderer a run needs. Every field may be left at its
// zero value / a Disabled* implementation and the run still completes —
// matching _run_full_seo_pipeline's try/except-per-step degradation.
type Pipeline struct {
	Keyword   providers.Keyword
	PageSpeed providers.PageSpeed
	LLM       providers.LLM
	Renderer  render.Renderer
	Publisher crawl.EventPublisher
	Logger    zerolog.Logger
}

// New builds a Pipeline, substituting Disabled* collaborators for any nil
// field so callers only need to supply the providers they actually have.
func New(keyword providers.Keyword, pagespeed providers.PageSpeed, llm providers.LLM, renderer render.Renderer, publisher crawl.EventPublisher, logger zerolog.Logger) *Pipeline {
	if keyword == nil {
		keyword = providers.DisabledKeyword{}
	}
	if pagespeed == nil {
		pagespeed = providers.DisabledPageSpeed{}
	}
	if llm == nil {
		llm = providers.DisabledLLM{}
	}
	return &Pipeline{Keyword: keyword, PageSpeed: pagespeed, LLM: llm, Renderer: renderer, Publisher: publisher, Logger: logger}
}

// Run executes the full pipeline for one site, end to end. A stage that
// fails non-fatally (template classification, keyword research) logs a
// warning and degrades rather than aborting the run (a failed PageSpeed
// lookup is dropped without a log entry),
// mirroring _run_full_seo_pipeline's per-step try/except; only the crawl
// and audit stages are fatal, since everything downstream depends on
// their output.
func (p *Pipeline) Run(ctx context.Context, opts Options) (Result, error) {
	runID := uuid.NewString()
	started := time.Now()
	log := p.Logger.With().Str("run_id", runID).Str("seed_url", opts.Crawl.SeedURL).Logger()
	log.Info().Msg("pipeline: starting run")

	result := Result{RunID: runID, StartedAt: started}

	seedURL, fallback := utils.FindAccessibleURL(opts.Crawl.SeedURL)
	if !fallback.Success {
		log.Warn().Str("seed_url", opts.Crawl.SeedURL).Err(fmt.Errorf("%s", fallback.Error)).Msg("pipeline: seed url accessibility check failed, continuing anyway")
	} else if seedURL != opts.Crawl.SeedURL {
		log.Info().Str("original", opts.Crawl.SeedURL).Str("resolved", seedURL).Msg("pipeline: resolved seed url to an accessible fallback")
		opts.Crawl.SeedURL = seedURL
	}

	seed, err := models.ParseURL(opts.Crawl.SeedURL)
	if err != nil {
		return result, fmt.Errorf("pipeline: parse seed url: %w", err)
	}

	// Step 1/8: robots.txt (C3).
	stepStart := time.Now()
	robotsFetcher := crawl.NewRobotsFetcher(opts.Crawl.RequestTimeout)
	robotsData, robotsPolicy, robotsFound, err := robotsFetcher.Fetch(seed, opts.Crawl.UserAgent)
	if err != nil {
		log.Warn().Err(err).Msg("robots.txt fetch failed, proceeding fail-open")
	}
	blocksCriticalAssets := false
	if robotsFound {
		for _, asset := range commonAssetPaths {
			if !crawl.Allowed(robotsData, opts.Crawl.UserAgent, asset) {
				blocksCriticalAssets = true
				break
			}
		}
	}
	log.Info().Dur("elapsed", time.Since(stepStart)).Bool("found", robotsFound).Msg("step 1/8: robots.txt")

	// Step 2/8: sitemap discovery (C4).
	stepStart = time.Now()
	sitemapLoader := crawl.NewSitemapLoader(opts.Crawl.RequestTimeout)
	sitemapURLs := sitemapLoader.Discover(seed, robotsPolicy.SitemapURLs)
	sitemapFound := len(sitemapURLs) > 0
	sitemapValid := true
	sitemapEntryCount := 0
	for _, sm := range sitemapURLs {
		entries, loadErr := sitemapLoader.Load(sm)
		if loadErr != nil {
			sitemapValid = false
			log.Warn().Err(loadErr).Str("sitemap", sm).Msg("sitemap failed to parse")
			continue
		}
		sitemapEntryCount += len(entries)
	}
	log.Info().Dur("elapsed", time.Since(stepStart)).Int("urls", sitemapEntryCount).Msg("step 2/8: sitemap discovery")

	// Step 3/8: crawl the site (C9).
	stepStart = time.Now()
	pacer := crawl.NewPacer(opts.Crawl.MinDelay, opts.Crawl.MaxDelay, opts.Crawl.BackoffMultiplier)
	if robotsPolicy.CrawlDelay > 0 {
		pacer.SetRobotsCrawlDelay(robotsPolicy.CrawlDelay)
	}
	var frontier *crawl.Frontier
	if opts.Dedupe != nil {
		frontier = crawl.NewFrontierWithDedupe(opts.Crawl.MaxPages, opts.Dedupe)
	} else {
		frontier = crawl.NewFrontier(opts.Crawl.MaxPages)
	}
	fetcher := crawl.NewFetcher(opts.Crawl.RequestTimeout, crawl.NewStaticHeaderProvider(nil), opts.Crawl.AllowedHosts)

	var rd *robotstxt.RobotsData
	if opts.Crawl.RespectRobots && robotsFound {
		rd = robotsData
	}

	pool := crawl.NewPool(opts.Crawl, runID, frontier, pacer, fetcher, p.Renderer, rd, p.Publisher)
	artifact, err := pool.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("step 3/8: crawl failed")
		return result, fmt.Errorf("pipeline: crawl: %w", err)
	}
	result.Crawl = artifact
	log.Info().Dur("elapsed", time.Since(stepStart)).Int("pages", len(artifact.Pages)).Msg("step 3/8: crawl complete")

	// Step 4/8: custom 404 probe (check 96's signal).
	hasCustomErrorPage := p.probeCustomErrorPage(ctx, opts.Crawl, seed)

	// Step 5/8: template classification (optional, non-fatal).
	if opts.ClassifyTemplates && len(artifact.Pages) > 0 {
		stepStart = time.Now()
		classification, err := ClassifyTemplates(ctx, opts.Crawl.SeedURL, artifact.Pages, p.LLM)
		if err != nil {
			log.Warn().Err(err).Msg("step 5/8: template classification failed (non-critical)")
			result.TemplatesSkipped = true
		} else {
			result.Templates = classification
			log.Info().Dur("elapsed", time.Since(stepStart)).Int("templates", len(classification.Templates)).Msg("step 5/8: template classification")
		}
	} else {
		result.TemplatesSkipped = true
		log.Info().Msg("step 5/8: skipped template classification")
	}

	// Step 6/8: keyword research (optional, non-fatal).
	if opts.DoKeywordResearch && len(opts.SeedKeywords) > 0 {
		stepStart = time.Now()
		keywords, err := p.Keyword.Research(ctx, opts.SeedKeywords)
		if err != nil {
			log.Warn().Err(err).Msg("step 6/8: keyword research failed (non-critical)")
			result.KeywordsSkipped = true
		} else {
			result.Keywords = keywords
			log.Info().Dur("elapsed", time.Since(stepStart)).Int("keywords", len(keywords)).Msg("step 6/8: keyword research")
		}
	} else {
		result.KeywordsSkipped = true
		log.Info().Msg("step 6/8: skipped keyword research")
	}

	// Step 7/8: the 100-point audit (C11-C13).
	stepStart = time.Now()
	auditCtx := &audit.Context{
		Pages:                artifact.Pages,
		Edges:                artifact.Edges,
		Robots:               robotsPolicy,
		RobotsFound:          robotsFound,
		Config:               opts.Crawl,
		PageSpeed:            p.pageSpeedReports(ctx, artifact.Pages),
		BlocksCriticalAssets: blocksCriticalAssets,
		SitemapFound:         sitemapFound,
		SitemapValid:         sitemapValid,
		HasCustomErrorPage:   hasCustomErrorPage,
	}
	runtime := audit.NewRuntime()
	checkResults := runtime.Run(auditCtx)
	auditOutput := score.Summarize(runID, checkResults)
	result.Audit = auditOutput
	log.Info().Dur("elapsed", time.Since(stepStart)).Int("score", auditOutput.OverallScore).Int("failed", auditOutput.FailedCheckCount).Msg("step 7/8: audit complete")

	// Step 8/8: plan synthesis + report rendering + (optional) briefs.
	stepStart = time.Now()
	remediationPlan := plan.Synthesize(runID, checkResults, result.Keywords, opts.PlanDurationWeeks)
	result.Plan = remediationPlan

	reports := map[string]string{
		"executive_summary": report.ExecutiveSummary(opts.Crawl.SeedURL, auditOutput),
		"technical_audit":   report.TechnicalAudit(opts.Crawl.SeedURL, auditOutput, len(artifact.Pages)),
		"action_plan":       report.ActionPlan(opts.Crawl.SeedURL, auditOutput, remediationPlan),
	}

	if opts.GenerateBriefs {
		for i, entry := range remediationPlan.ContentCalendar {
			if i >= 5 {
				break
			}
			// Briefs are generated from the keyword calendar, not a
			// specific crawled URL, so there is no page snapshot to
			// attach (ContentBriefWithSnapshot degrades to ContentBrief
			// when given empty HTML).
			brief := report.ContentBriefWithSnapshot(entry.Title, i+1, 1500, nil, defaultContentOutline(), "")
			reports[fmt.Sprintf("content_brief_%d", i+1)] = brief
		}
	}
	result.Reports = reports
	log.Info().Dur("elapsed", time.Since(stepStart)).Int("reports", len(reports)).Msg("step 8/8: plan + reports")

	result.CompletedAt = time.Now()
	log.Info().Dur("total", result.CompletedAt.Sub(started)).Msg("pipeline: run complete")
	return result, nil
}

// pageSpeedReports runs the optional PageSpeed collaborator against every
// crawled page, degrading silently per-URL (a single failed lookup just
// means that URL has no entry in the map; the PageSpeed-backed
// performance checks skip such pages, and report unavailable() only
// when the map is empty).
func (p *Pipeline) pageSpeedReports(ctx context.Context, pages []models.PageRecord) map[string]providers.PageSpeedReport {
	reports := map[string]providers.PageSpeedReport{}
	if _, ok := p.PageSpeed.(providers.DisabledPageSpeed); ok {
		return reports
	}
	for _, page := range pages {
		r, err := p.PageSpeed.Analyze(ctx, page.URL)
		if err != nil {
			continue
		}
		reports[page.URL] = r
	}
	return reports
}

// probeCustomErrorPage fetches a deliberately nonexistent path and reports
// whether the site serves a distinct, content-bearing 404 rather than a
// blank or default server error page, feeding check 96.
func (p *Pipeline) probeCustomErrorPage(ctx context.Context, cfg models.CrawlConfig, seed models.Url) bool {
	fetcher := crawl.NewFetcher(cfg.RequestTimeout, crawl.NewStaticHeaderProvider(nil), cfg.AllowedHosts)
	probeURL := seed.Scheme + "://" + seed.Host + "/seo-audit-404-probe-8f3c21"
	result := fetcher.Fetch(probeURL)
	if result.Err != nil {
		return false
	}
	return result.StatusCode == 404 && len(result.Body) > 512
}

func defaultContentOutline() []string {
	return []string{"Introduction", "Overview", "Key Highlights", "Practical Tips", "Frequently Asked Questions", "Summary & Next Steps"}
}
