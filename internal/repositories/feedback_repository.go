package repositories

import (
	"github.com/futurepulse/backend/internal/models"
	"gorm.io/gorm"
)

// FeedbackRepository defines the interface for feedback data operations
type FeedbackRepository interface {
	CreateFeedback(feedback *models.Feedback) error
	GetFeedbackByID(id uint) (*models.Feedback, error)
	GetFeedbacksByReportID(reportID string) ([]models.Feedback, error)
	GetFeedbacksByPredictionID(predictionID uint) ([]models.Feedback, error)
	GetReplies(parentFeedbackID uint) ([]models.Feedback, error)
}

// PostgresFeedbackRepository implements FeedbackRepository for PostgreSQL
type PostgresFeedbackRepository struct {
	db *gorm.DB
}

// NewPostgresFeedbackRepository creates a new PostgresFeedbackRepository
func NewPostgresFeedbackRepository(db *gorm.DB) *PostgresFeedbackRepository {
	return &PostgresFeedbackRepository{db: db}
}

// CreateFeedback creates a new feedback in PostgreSQL
func (r *PostgresFeedbackRepository) CreateFeedback(feedback *models.Feedback) error {
	return r.db.Create(feedback).Error
}

// GetFeedbackByID retrieves a feedback by ID from PostgreSQL
func (r *PostgresFeedbackRepository) GetFeedbackByID(id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.First(&feedback, id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

// GetFeedbacksByReportID retrieves all feedbacks on a specific report
func (r *PostgresFeedbackRepository) GetFeedbacksByReportID(reportID string) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	if err := r.db.Where("report_id = ?", reportID).
		Order("created_at DESC").
		Find(&feedbacks).Error; err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// GetFeedbacksByPredictionID retrieves all feedbacks on a specific prediction
func (r *PostgresFeedbackRepository) GetFeedbacksByPredictionID(predictionID uint) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	if err := r.db.Where("prediction_id = ?", predictionID).
		Order("created_at DESC").
		Find(&feedbacks).Error; err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// GetReplies retrieves all replies to a specific feedback
func (r *PostgresFeedbackRepository) GetReplies(parentFeedbackID uint) ([]models.Feedback, error) {
	var replies []models.Feedback
	if err := r.db.Where("parent_feedback_id = ?", parentFeedbackID).
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}
