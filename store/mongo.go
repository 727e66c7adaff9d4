package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/seoaudit/pipeline/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository is a Repository backed by MongoDB, adapted from the
// teacher's services/database.go: connect-and-ping-on-init, one
// collection per concern instead of a single jobs collection, and the
// same TTL-index pattern repurposed to expire completed audit runs
// after a retention window instead of 24-hour job bookkeeping.
type MongoRepository struct {
	client   *mongo.Client
	sites    *mongo.Collection
	runs     *mongo.Collection
	checks   *mongo.Collection
	issues   *mongo.Collection
	log      zerolog.Logger
}

// NewMongoRepository connects to mongoURI, pings it, and ensures the
// run-retention TTL index exists, matching InitMongoDB's
// connect-then-ping-then-index sequence.
func NewMongoRepository(ctx context.Context, mongoURI, dbName string, retention time.Duration, logger zerolog.Logger) (*MongoRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("store: connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("store: ping mongo: %w", err)
	}

	db := client.Database(dbName)
	r := &MongoRepository{
		client: client,
		sites:  db.Collection("sites"),
		runs:   db.Collection("audit_runs"),
		checks: db.Collection("checks"),
		issues: db.Collection("issues"),
		log:    logger.With().Str("component", "mongo_repository").Logger(),
	}

	if err := r.ensureRunRetentionIndex(ctx, retention); err != nil {
		r.log.Warn().Err(err).Msg("failed to create audit_runs retention index")
	}

	r.log.Info().Str("db", dbName).Msg("connected to mongodb")
	return r, nil
}

// ensureRunRetentionIndex creates a TTL index on completed_at so audit
// runs older than retention are purged automatically, the same
// mechanism CreateJobsTTLIndex uses for 24-hour job expiry.
func (r *MongoRepository) ensureRunRetentionIndex(ctx context.Context, retention time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "completed_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(retention.Seconds())),
	}
	_, err := r.runs.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		return fmt.Errorf("create retention index: %w", err)
	}
	return nil
}

func (r *MongoRepository) FindOrCreateSite(ctx context.Context, tenantID, domain string) (Site, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"tenant_id": tenantID, "domain": domain}
	var site Site
	err := r.sites.FindOne(ctx, filter).Decode(&site)
	if err == nil {
		return site, nil
	}
	if err != mongo.ErrNoDocuments {
		return Site{}, fmt.Errorf("store: find site %s/%s: %w", tenantID, domain, err)
	}

	site = Site{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Domain:    domain,
		CreatedAt: time.Now(),
	}
	if _, err := r.sites.InsertOne(ctx, site); err != nil {
		return Site{}, fmt.Errorf("store: create site %s/%s: %w", tenantID, domain, err)
	}
	return site, nil
}

// WriteAuditRun commits run, checks, and issues using a Mongo session
// transaction so a partial write never leaves checks/issues without
// their parent run (or vice versa), honoring the same atomicity
// contract MemoryRepository and PostgresRepository give.
func (r *MongoRepository) WriteAuditRun(ctx context.Context, run AuditRun, checks []models.CheckResult, issues []models.SeoIssue) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("store: start mongo session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if _, err := r.runs.InsertOne(sessCtx, run); err != nil {
			return nil, fmt.Errorf("insert audit run: %w", err)
		}

		if len(checks) > 0 {
			docs := make([]interface{}, len(checks))
			for i, c := range checks {
				docs[i] = bson.M{"run_id": run.ID, "check": c}
			}
			if _, err := r.checks.InsertMany(sessCtx, docs); err != nil {
				return nil, fmt.Errorf("insert checks: %w", err)
			}
		}

		for _, issue := range issues {
			_, err := r.issues.ReplaceOne(sessCtx, bson.M{"_id": issue.ID}, issue, options.Replace().SetUpsert(true))
			if err != nil {
				return nil, fmt.Errorf("upsert issue %s: %w", issue.ID, err)
			}
		}

		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("store: write audit run %s: %w", run.ID, err)
	}
	return nil
}

func (r *MongoRepository) GetLatestCompletedAudit(ctx context.Context, siteID string) (AuditRun, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"site_id": siteID, "status": models.RunStatusCompleted}
	opts := options.FindOne().SetSort(bson.D{{Key: "completed_at", Value: -1}})

	var run AuditRun
	err := r.runs.FindOne(ctx, filter, opts).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return AuditRun{}, false, nil
	}
	if err != nil {
		return AuditRun{}, false, fmt.Errorf("store: latest completed audit for %s: %w", siteID, err)
	}
	return run, true, nil
}

// Close disconnects the underlying Mongo client.
func (r *MongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
