package repositories

import (
	"fmt"

	"github.com/futurepulse/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for report and prediction like operations
type LikeRepository interface {
	CreateReportLike(like *models.ReportLike) error
	DeleteReportLike(reportID string, userID uint) error
	HasUserLikedReport(reportID string, userID uint) (bool, error)
	GetReportLikesCount(reportID string) (int64, error)
	CreatePredictionLike(like *models.PredictionLike) error
	DeletePredictionLike(predictionID, userID uint) error
	HasUserLikedPrediction(predictionID, userID uint) (bool, error)
	GetPredictionLikesCount(predictionID uint) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateReportLike creates a new report like in PostgreSQL
func (r *PostgresLikeRepository) CreateReportLike(like *models.ReportLike) error {
	return r.db.Create(like).Error
}

// DeleteReportLike deletes a report like from PostgreSQL
func (r *PostgresLikeRepository) DeleteReportLike(reportID string, userID uint) error {
	res := r.db.Where("report_id = ? AND user_id = ?", reportID, userID).Delete(&models.ReportLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

// HasUserLikedReport checks if a user has liked a specific report
func (r *PostgresLikeRepository) HasUserLikedReport(reportID string, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.ReportLike{}).Where("report_id = ? AND user_id = ?", reportID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetReportLikesCount retrieves the count of likes for a specific report
func (r *PostgresLikeRepository) GetReportLikesCount(reportID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.ReportLike{}).Where("report_id = ?", reportID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreatePredictionLike creates a new prediction like in PostgreSQL
func (r *PostgresLikeRepository) CreatePredictionLike(like *models.PredictionLike) error {
	return r.db.Create(like).Error
}

// DeletePredictionLike deletes a prediction like from PostgreSQL
func (r *PostgresLikeRepository) DeletePredictionLike(predictionID, userID uint) error {
	res := r.db.Where("prediction_id = ? AND user_id = ?", predictionID, userID).Delete(&models.PredictionLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

// HasUserLikedPrediction checks if a user has liked a specific prediction
func (r *PostgresLikeRepository) HasUserLikedPrediction(predictionID, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.PredictionLike{}).Where("prediction_id = ? AND user_id = ?", predictionID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetPredictionLikesCount retrieves the count of likes for a specific prediction
func (r *PostgresLikeRepository) GetPredictionLikesCount(predictionID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.PredictionLike{}).Where("prediction_id = ?", predictionID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
