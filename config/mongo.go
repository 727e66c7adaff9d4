package config

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/seoaudit/pipeline/models"
)

// Global dispatcher state for the HTTP server, adapted from the
// teacher's config/database.go: ActiveRuns replaces ActiveJobs as the
// in-memory registry handlers consult before falling back to Mongo, and
// RunsCollection replaces JobsCollection as the durable run-status log
// the status handler reads from when a run is not in the in-memory map,
// and the list handler reads from directly.
var (
	MongoClient    *mongo.Client
	RunsCollection *mongo.Collection
	ActiveRuns     = make(map[string]*models.Run)
	RunsMutex      sync.RWMutex

	// Upgrader is the shared gorilla/websocket upgrader for the
	// run-events stream. Origin checking is left permissive, matching
	// the teacher's development-mode default.
	Upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
)
