package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/seoaudit/pipeline/config"
	"github.com/seoaudit/pipeline/crawl"
	"github.com/seoaudit/pipeline/handlers"
	"github.com/seoaudit/pipeline/middleware"
	"github.com/seoaudit/pipeline/pipeline"
	"github.com/seoaudit/pipeline/services"
	"github.com/seoaudit/pipeline/store"
)

// StartAPIServer starts the thin run-dispatcher HTTP surface: POST /runs
// queues a pipeline run, GET /runs/{id} polls its status, GET
// /runs/{id}/events streams live progress, GET /runs lists recent runs,
// and GET /health reports dependency status. This replaces the
// teacher's generic content-extraction API (/crawl, /content) and its
// API-key middleware/swagger UI, which are out of scope for the
// dispatcher surface this binary exposes.
func StartAPIServer(settings config.Settings) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	if settings.MongoURI != "" {
		if err := services.InitMongoDB(settings.MongoURI, settings.MongoDB); err != nil {
			logger.Warn().Err(err).Msg("mongodb initialization failed, running without run bookkeeping")
		} else {
			services.LoadActiveRunsFromMongoDB()
		}
	}

	if settings.RabbitMQURL != "" {
		if err := services.InitRabbitMQ(settings.RabbitMQURL); err != nil {
			logger.Warn().Err(err).Msg("rabbitmq initialization failed, running without live event streaming")
		}
	}

	repo, closeRepo, err := openRepository(settings, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open repository")
	}
	defer closeRepo()

	blobs, err := store.NewFSBlobSink(settings.OutputDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open report output directory")
	}

	publisher := crawl.EventPublisher(crawl.LogEventPublisher{Logger: logger})
	if settings.RabbitMQURL != "" {
		publisher = crawl.FuncEventPublisher(services.PublishCrawlEvent)
	}
	p := pipeline.New(nil, nil, nil, nil, publisher, logger)
	dispatcher := handlers.NewDispatcher(p, repo, blobs, settings.TenantID, logger)

	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware)
	r.Use(corsMiddleware)

	r.HandleFunc("/runs", handlers.HandleStartRun(dispatcher)).Methods("POST", "OPTIONS")
	r.HandleFunc("/runs", handlers.HandleListRuns).Methods("GET", "OPTIONS")
	r.HandleFunc("/runs/{id}", handlers.HandleRunStatus).Methods("GET", "OPTIONS")
	r.HandleFunc("/runs/{id}/events", handlers.HandleRunEvents).Methods("GET", "OPTIONS")
	r.HandleFunc("/health", handlers.HandleHealth).Methods("GET")

	logger.Info().Str("port", settings.Port).Msg("starting dispatcher API server")
	logger.Fatal().Err(http.ListenAndServe(":"+settings.Port, r)).Msg("server exited")
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func openRepository(settings config.Settings, logger zerolog.Logger) (store.Repository, func(), error) {
	ctx := context.Background()
	switch {
	case settings.PostgresDSN != "":
		repo, err := store.NewPostgresRepository(ctx, settings.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case settings.MongoURI != "":
		repo, err := store.NewMongoRepository(ctx, settings.MongoURI, settings.MongoDB, 30*24*time.Hour, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close(ctx) }, nil
	default:
		return store.NewMemoryRepository(), func() {}, nil
	}
}
