package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seoaudit/pipeline/config"
	"github.com/seoaudit/pipeline/models"
	"github.com/seoaudit/pipeline/pipeline"
	"github.com/seoaudit/pipeline/services"
)

// newRunRequest is the POST /runs body, generalized from the teacher's
// bare seed-URL query param into the pipeline's full option set.
type newRunRequest struct {
	SeedURL           string   `json:"seed_url"`
	MaxPages          int      `json:"max_pages,omitempty"`
	MaxDepth          int      `json:"max_depth,omitempty"`
	RenderJS          string   `json:"render_js,omitempty"`
	DoKeywordResearch *bool    `json:"do_keyword_research,omitempty"`
	SeedKeywords      []string `json:"seed_keywords,omitempty"`
	TargetCountry     string   `json:"target_country,omitempty"`
	TargetLanguage    string   `json:"target_language,omitempty"`
}

// HandleStartRun handles POST /runs, starting a new audit run and
// returning its queued Run record immediately. The teacher had no
// equivalent endpoint — jobs were started from the CLI/worker, not HTTP
// — so this is new, grounded on Dispatcher.StartRun's async pattern.
func HandleStartRun(dispatcher *Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req newRunRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SeedURL == "" {
			http.Error(w, `{"error":"seed_url is required"}`, http.StatusBadRequest)
			return
		}

		opts := pipeline.DefaultOptions(req.SeedURL)
		if req.MaxPages > 0 {
			opts.Crawl.MaxPages = req.MaxPages
		}
		if req.MaxDepth > 0 {
			opts.Crawl.MaxDepth = req.MaxDepth
		}
		if req.RenderJS != "" {
			opts.Crawl.RenderJS = req.RenderJS
		}
		if req.DoKeywordResearch != nil {
			opts.DoKeywordResearch = *req.DoKeywordResearch
		}
		if len(req.SeedKeywords) > 0 {
			opts.SeedKeywords = req.SeedKeywords
		}
		if req.TargetCountry != "" {
			opts.TargetCountry = req.TargetCountry
		}
		if req.TargetLanguage != "" {
			opts.TargetLanguage = req.TargetLanguage
		}

		run := dispatcher.StartRun(opts)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(run)
	}
}

// HandleRunStatus handles GET /runs/{id}, checking the in-memory
// registry before falling back to MongoDB, the same two-tier lookup the
// teacher's HandleJobStatus used for ActiveJobs/JobsCollection.
func HandleRunStatus(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	config.RunsMutex.RLock()
	run, exists := config.ActiveRuns[runID]
	config.RunsMutex.RUnlock()

	if exists {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(run)
		return
	}

	run2, err := services.GetRunFromMongoDB(runID)
	if err != nil {
		http.Error(w, `{"error":"run not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run2)
}

// HandleListRuns handles GET /runs, listing recent runs from MongoDB.
func HandleListRuns(w http.ResponseWriter, r *http.Request) {
	if config.RunsCollection == nil {
		http.Error(w, `{"error":"runs collection not available"}`, http.StatusServiceUnavailable)
		return
	}

	limit := int64(10)
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.ParseInt(v, 10, 64); err == nil {
			limit = l
		}
	}
	statusFilter := r.URL.Query().Get("status")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if statusFilter != "" {
		filter["status"] = statusFilter
	}

	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := config.RunsCollection.Find(ctx, filter, opts)
	if err != nil {
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var runs []models.Run
	if err := cursor.All(ctx, &runs); err != nil {
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}
