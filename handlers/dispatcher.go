package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/seoaudit/pipeline/config"
	"github.com/seoaudit/pipeline/models"
	"github.com/seoaudit/pipeline/pipeline"
	"github.com/seoaudit/pipeline/services"
	"github.com/seoaudit/pipeline/store"
)

// Dispatcher owns the HTTP surface's run registry (config.ActiveRuns) and
// is the one thing in the handlers package that knows how to start a
// pipeline run, adapted from the teacher's ad hoc
// "spawn a goroutine, update config.ActiveJobs" idiom spread across
// server.go into a single reusable type the /runs handlers share.
type Dispatcher struct {
	Pipeline *pipeline.Pipeline
	Repo     store.Repository
	Blobs    store.BlobSink
	TenantID string
	Log      zerolog.Logger
}

func NewDispatcher(p *pipeline.Pipeline, repo store.Repository, blobs store.BlobSink, tenantID string, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{Pipeline: p, Repo: repo, Blobs: blobs, TenantID: tenantID, Log: logger}
}

// StartRun registers a queued Run and launches the pipeline against it in
// the background, returning immediately so POST /runs can answer with a
// run id the caller polls or streams.
func (d *Dispatcher) StartRun(opts pipeline.Options) *models.Run {
	run := d.registerQueuedRun(opts.Crawl)
	go d.execute(run.ID, opts)
	return run
}

// registerQueuedRun creates a Run in RunStatusQueued, adds it to
// config.ActiveRuns, and mirrors it to Mongo if configured. Split out of
// StartRun so the registration bookkeeping is testable without actually
// running a pipeline.
func (d *Dispatcher) registerQueuedRun(cfg models.CrawlConfig) *models.Run {
	now := time.Now()
	run := &models.Run{
		ID:        uuid.NewString(),
		Status:    models.RunStatusQueued,
		Config:    cfg,
		CreatedAt: now,
		UpdatedAt: now,
	}

	config.RunsMutex.Lock()
	config.ActiveRuns[run.ID] = run
	config.RunsMutex.Unlock()

	if config.RunsCollection != nil {
		if err := services.SaveRunToMongoDB(run); err != nil {
			d.Log.Warn().Err(err).Str("run_id", run.ID).Msg("failed to persist queued run")
		}
	}

	return run
}

func (d *Dispatcher) execute(runID string, opts pipeline.Options) {
	log := d.Log.With().Str("run_id", runID).Logger()

	d.updateRun(runID, func(r *models.Run) {
		r.Status = models.RunStatusRunning
		r.Progress = "crawling"
	})
	services.PublishStageEvent(models.StageEvent{Type: "stage_started", RunID: runID, Stage: "crawl", Timestamp: time.Now()})

	result, err := d.Pipeline.Run(context.Background(), opts)
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		d.updateRun(runID, func(r *models.Run) {
			r.Status = models.RunStatusFailed
			r.Error = err.Error()
		})
		services.PublishStageEvent(models.StageEvent{Type: "stage_failed", RunID: runID, Stage: "pipeline", Error: err.Error(), Timestamp: time.Now()})
		return
	}

	auditRun, err := pipeline.Persist(context.Background(), d.Repo, d.Blobs, d.TenantID, opts.Crawl.SeedURL, result)
	if err != nil {
		log.Error().Err(err).Msg("failed to persist completed run")
		d.updateRun(runID, func(r *models.Run) {
			r.Status = models.RunStatusFailed
			r.Error = err.Error()
		})
		services.PublishStageEvent(models.StageEvent{Type: "stage_failed", RunID: runID, Stage: "persist", Error: err.Error(), Timestamp: time.Now()})
		return
	}

	status := models.RunStatusCompleted
	if result.TemplatesSkipped || result.KeywordsSkipped {
		status = models.RunStatusDegraded
	}
	d.updateRun(runID, func(r *models.Run) {
		r.Status = status
		r.Progress = "done"
		r.Score = auditRun.Score
		r.Grade = auditRun.Grade
	})
	services.PublishStageEvent(models.StageEvent{Type: "stage_completed", RunID: runID, Stage: "report", Timestamp: time.Now()})
}

func (d *Dispatcher) updateRun(runID string, mutate func(*models.Run)) {
	config.RunsMutex.Lock()
	run, ok := config.ActiveRuns[runID]
	if ok {
		mutate(run)
		run.UpdatedAt = time.Now()
	}
	config.RunsMutex.Unlock()

	if !ok || config.RunsCollection == nil {
		return
	}
	if err := services.UpdateRunInMongoDB(run); err != nil {
		d.Log.Warn().Err(err).Str("run_id", runID).Msg("failed to persist run update")
	}
}
