package repositories

import (
	"time"

	"github.com/futurepulse/backend/internal/models"
	"gorm.io/gorm"
)

// PredictionRepository defines the interface for prediction data operations
type PredictionRepository interface {
	CreatePrediction(prediction *models.Prediction) error
	GetPredictionByID(id uint) (*models.Prediction, error)
	GetRecentPredictions(window time.Duration) ([]models.Prediction, error)
	GetPredictionsByReportID(reportID string) ([]models.Prediction, error)
}

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *gorm.DB
}

// NewPostgresPredictionRepository creates a new PostgresPredictionRepository
func NewPostgresPredictionRepository(db *gorm.DB) *PostgresPredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// CreatePrediction creates a new prediction in PostgreSQL
func (r *PostgresPredictionRepository) CreatePrediction(prediction *models.Prediction) error {
	return r.db.Create(prediction).Error
}

// GetPredictionByID retrieves a prediction by ID from PostgreSQL
func (r *PostgresPredictionRepository) GetPredictionByID(id uint) (*models.Prediction, error) {
	var prediction models.Prediction
	if err := r.db.First(&prediction, id).Error; err != nil {
		return nil, err
	}
	return &prediction, nil
}

// GetRecentPredictions retrieves predictions created within the given
// window, newest first. This is the listing pushed on the predictions channel.
func (r *PostgresPredictionRepository) GetRecentPredictions(window time.Duration) ([]models.Prediction, error) {
	var predictions []models.Prediction
	since := time.Now().Add(-window)
	if err := r.db.Where("created_at >= ?", since).
		Order("created_at DESC").
		Find(&predictions).Error; err != nil {
		return nil, err
	}
	return predictions, nil
}

// GetPredictionsByReportID retrieves all predictions attached to a report
func (r *PostgresPredictionRepository) GetPredictionsByReportID(reportID string) ([]models.Prediction, error) {
	var predictions []models.Prediction
	if err := r.db.Where("report_id = ?", reportID).
		Order("created_at DESC").
		Find(&predictions).Error; err != nil {
		return nil, err
	}
	return predictions, nil
}
