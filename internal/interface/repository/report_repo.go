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

// MongoReportRepository implements the ReportRepository interface
type MongoReportRepository struct {
	collection *mongo.Collection
}

// NewMongoReportRepository creates a new MongoDB report repository
func NewMongoReportRepository(db *mongo.Database) repository.ReportRepository {
	collection := db.Collection("deal_reports")

	ctx := context.Background()
	generatedAtIndex := mongo.IndexModel{
		Keys: bson.M{"generatedAt": -1},
	}
	collection.Indexes().CreateOne(ctx, generatedAtIndex)

	return &MongoReportRepository{
		collection: collection,
	}
}

// Save stores a rendered report
func (r *MongoReportRepository) Save(ctx context.Context, report *entity.Report) error {
	if report.ID == "" {
		report.ID = primitive.NewObjectID().Hex()
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, report)
	return err
}

// Latest returns the most recently generated report
func (r *MongoReportRepository) Latest(ctx context.Context) (*entity.Report, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "generatedAt", Value: -1}})

	var report entity.Report
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, derr.ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}
