package handlers

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seoaudit/pipeline/config"
	"github.com/seoaudit/pipeline/models"
)

func TestDispatcher_UpdateRunMutatesRegisteredRun(t *testing.T) {
	d := &Dispatcher{TenantID: "tenant-a", Log: zerolog.Nop()}

	run := &models.Run{ID: "run-xyz", Status: models.RunStatusQueued}
	config.RunsMutex.Lock()
	config.ActiveRuns[run.ID] = run
	config.RunsMutex.Unlock()
	t.Cleanup(func() {
		config.RunsMutex.Lock()
		delete(config.ActiveRuns, run.ID)
		config.RunsMutex.Unlock()
	})

	d.updateRun(run.ID, func(r *models.Run) {
		r.Status = models.RunStatusRunning
		r.Progress = "crawling"
	})

	config.RunsMutex.RLock()
	got := config.ActiveRuns[run.ID]
	config.RunsMutex.RUnlock()

	require.NotNil(t, got)
	assert.Equal(t, models.RunStatusRunning, got.Status)
	assert.Equal(t, "crawling", got.Progress)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestDispatcher_UpdateRunNoopForUnknownRun(t *testing.T) {
	d := &Dispatcher{TenantID: "tenant-a", Log: zerolog.Nop()}

	// Must not panic when the run id isn't registered (e.g. already
	// evicted, or a stale event arriving after the run finished).
	assert.NotPanics(t, func() {
		d.updateRun("no-such-run", func(r *models.Run) { r.Status = models.RunStatusFailed })
	})
}

func TestDispatcher_StartRunRegistersQueuedRun(t *testing.T) {
	d := &Dispatcher{TenantID: "tenant-a", Log: zerolog.Nop()}

	run := d.registerQueuedRun(models.CrawlConfig{SeedURL: "https://example.com"})
	t.Cleanup(func() {
		config.RunsMutex.Lock()
		delete(config.ActiveRuns, run.ID)
		config.RunsMutex.Unlock()
	})

	assert.Equal(t, models.RunStatusQueued, run.Status)
	assert.Equal(t, "https://example.com", run.Config.SeedURL)
	assert.NotEmpty(t, run.ID)

	config.RunsMutex.RLock()
	_, ok := config.ActiveRuns[run.ID]
	config.RunsMutex.RUnlock()
	assert.True(t, ok)
}
