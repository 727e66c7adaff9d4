package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/seoaudit/pipeline/config"
)

// HandleHealth handles GET /health, adapted from the teacher's
// HandleHealth to report on ActiveRuns/RunsCollection instead of
// ActiveJobs/JobsCollection.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"mongodb":  map[string]interface{}{"status": "disconnected"},
			"rabbitmq": map[string]interface{}{"status": "disconnected"},
		},
	}

	services := health["services"].(map[string]interface{})
	if config.RunsCollection != nil {
		services["mongodb"] = map[string]interface{}{"status": "connected"}
	} else {
		health["status"] = "degraded"
	}
	if config.RabbitChannel != nil && !config.RabbitChannel.IsClosed() {
		services["rabbitmq"] = map[string]interface{}{"status": "connected"}
	}

	config.RunsMutex.RLock()
	activeRuns := len(config.ActiveRuns)
	config.RunsMutex.RUnlock()
	health["active_runs"] = activeRuns

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}
