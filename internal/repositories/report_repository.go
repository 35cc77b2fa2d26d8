package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/futurepulse/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrReportNotFound is returned when a referenced report does not exist
var ErrReportNotFound = fmt.Errorf("report not found")

// ReportRepository defines the interface for report data operations
type ReportRepository interface {
	CreateReport(ctx context.Context, report *models.Report) error
	GetReportByID(ctx context.Context, id string) (*models.Report, error)
	GetRecentReports(ctx context.Context, window time.Duration) ([]models.Report, error)
	GetReportsByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Report, error)
}

// MongoReportRepository implements ReportRepository for MongoDB
type MongoReportRepository struct {
	collection *mongo.Collection
}

// NewMongoReportRepository creates a new MongoReportRepository
func NewMongoReportRepository(db *mongo.Database) *MongoReportRepository {
	return &MongoReportRepository{collection: db.Collection("reports")}
}

// CreateReport creates a new report in MongoDB
func (r *MongoReportRepository) CreateReport(ctx context.Context, report *models.Report) error {
	report.ID = primitive.NewObjectID()
	report.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, report)
	return err
}

// GetReportByID retrieves a report by ID from MongoDB
func (r *MongoReportRepository) GetReportByID(ctx context.Context, id string) (*models.Report, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid report ID format: %w", err)
	}

	var report models.Report
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

// GetRecentReports retrieves reports submitted within the given window,
// newest first. This is the listing pushed on the reports channel.
func (r *MongoReportRepository) GetRecentReports(ctx context.Context, window time.Duration) ([]models.Report, error) {
	since := time.Now().Add(-window)
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"created_at": bson.M{"$gte": since}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.Report
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// GetReportsByUserID retrieves reports submitted by a specific user
func (r *MongoReportRepository) GetReportsByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Report, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.Report
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}
