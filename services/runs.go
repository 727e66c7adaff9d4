package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seoaudit/pipeline/config"
	"github.com/seoaudit/pipeline/models"
)

// InitMongoDB connects to the dispatcher's bookkeeping database, separate
// from store.MongoRepository's audit data: this one holds the
// short-lived Run records the HTTP surface polls/streams while a
// pipeline is in flight, matching the teacher's job-tracking split.
func InitMongoDB(mongoURI, dbName string) error {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(context.Background(), nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	config.MongoClient = client
	db := client.Database(dbName)
	config.RunsCollection = db.Collection("runs")

	log.Printf("Connected to MongoDB: %s/%s", mongoURI, dbName)

	if err := CreateRunsTTLIndex(); err != nil {
		log.Printf("Warning: Failed to create TTL index for runs cleanup: %v", err)
	}

	return nil
}

// CreateRunsTTLIndex expires dispatcher run records 24 hours after
// creation — this is bookkeeping retention only, distinct from
// store.MongoRepository's separately configurable audit-run retention.
func CreateRunsTTLIndex() error {
	if config.RunsCollection == nil {
		return fmt.Errorf("runs collection not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(86400),
	}

	indexName, err := config.RunsCollection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		return fmt.Errorf("failed to create TTL index: %v", err)
	}

	log.Printf("Created TTL index '%s' on runs collection - runs will auto-expire after 24 hours", indexName)
	return nil
}

// SaveRunToMongoDB inserts a new run record.
func SaveRunToMongoDB(run *models.Run) error {
	if config.RunsCollection == nil {
		return fmt.Errorf("runs collection not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := config.RunsCollection.InsertOne(ctx, run)
	return err
}

// UpdateRunInMongoDB replaces a run record's fields in place.
func UpdateRunInMongoDB(run *models.Run) error {
	if config.RunsCollection == nil {
		return fmt.Errorf("runs collection not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"_id": run.ID}
	update := bson.M{"$set": run}

	_, err := config.RunsCollection.UpdateOne(ctx, filter, update)
	return err
}

// GetRunFromMongoDB looks up a run record that has aged out of
// config.ActiveRuns.
func GetRunFromMongoDB(runID string) (*models.Run, error) {
	if config.RunsCollection == nil {
		return nil, fmt.Errorf("runs collection not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var run models.Run
	err := config.RunsCollection.FindOne(ctx, bson.M{"_id": runID}).Decode(&run)
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// LoadActiveRunsFromMongoDB recovers in-flight runs on startup, marking
// each as failed since its goroutine died with the previous process —
// the same interrupted-job recovery the teacher's
// LoadActiveJobsFromMongoDB performed.
func LoadActiveRunsFromMongoDB() {
	if config.RunsCollection == nil {
		log.Println("Runs collection not initialized, skipping run recovery")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := config.RunsCollection.Find(ctx, bson.M{"status": bson.M{"$in": []models.RunStatus{models.RunStatusQueued, models.RunStatusRunning}}})
	if err != nil {
		log.Printf("Failed to load active runs from MongoDB: %v", err)
		return
	}
	defer cursor.Close(ctx)

	var recovered []models.Run
	if err := cursor.All(ctx, &recovered); err != nil {
		log.Printf("Failed to decode active runs: %v", err)
		return
	}

	config.RunsMutex.Lock()
	for i := range recovered {
		run := recovered[i]
		run.Status = models.RunStatusFailed
		run.Error = "run interrupted by server restart"
		run.UpdatedAt = time.Now()

		config.ActiveRuns[run.ID] = &run
		go UpdateRunInMongoDB(&run)
	}
	config.RunsMutex.Unlock()

	log.Printf("Recovered %d interrupted runs from MongoDB", len(recovered))
}
