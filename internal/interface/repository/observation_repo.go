// internal/interface/repository/observation_repo.go
package repository

import (
	"context"
	"errors"
	"time"

	"flightdeals-service/internal/domain/entity"
	derr "flightdeals-service/internal/domain/errors"
	"flightdeals-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoObservationRepository implements the ObservationRepository interface
type MongoObservationRepository struct {
	collection *mongo.Collection
}

// NewMongoObservationRepository creates a new MongoDB observation batch repository
func NewMongoObservationRepository(db *mongo.Database) repository.ObservationRepository {
	collection := db.Collection("observation_batches")

	// Index on scrapedAt so the latest batch lookup stays cheap
	ctx := context.Background()
	scrapedAtIndex := mongo.IndexModel{
		Keys: bson.M{"scrapedAt": -1},
	}
	collection.Indexes().CreateOne(ctx, scrapedAtIndex)

	return &MongoObservationRepository{
		collection: collection,
	}
}

// SaveBatch stores one scraper run's raw observations
func (r *MongoObservationRepository) SaveBatch(ctx context.Context, batch *entity.ObservationBatch) error {
	if batch.ID == "" {
		batch.ID = primitive.NewObjectID().Hex()
	}
	if batch.ScrapedAt.IsZero() {
		batch.ScrapedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, batch)
	return err
}

// LatestBatch returns the most recently scraped batch
func (r *MongoObservationRepository) LatestBatch(ctx context.Context) (*entity.ObservationBatch, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "scrapedAt", Value: -1}})

	var batch entity.ObservationBatch
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&batch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, derr.ErrBatchNotFound
		}
		return nil, err
	}
	return &batch, nil
}
