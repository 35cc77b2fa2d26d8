package models

import (
	"time"

	"gorm.io/gorm"
)

// Prediction represents an analysis outcome attached to a report
type Prediction struct {
	gorm.Model      `json:"-"`
	ID              uint      `json:"id" gorm:"primaryKey"`
	PredictedEvent  string    `json:"predicted_event" gorm:"size:255;index"`
	GeneratedText   string    `json:"generated_text"`
	ConfidenceScore float64   `json:"confidence_score" gorm:"index"` // 0-1 indicating model confidence
	ValidUntil      time.Time `json:"valid_until"`
	AIModelVersion  string    `json:"ai_model_version" gorm:"size:255;default:'GPT-4'"`
	ReportID        string    `json:"report_id" gorm:"index"` // ID of the report this prediction is about (MongoDB ObjectID as string)
	UserID          uint      `json:"user_id" gorm:"index"`   // ID of the user who submitted the prediction
	CreatedAt       time.Time `json:"timestamp" gorm:"index"`
}

// CreatePredictionRequest defines the request body for submitting a prediction
type CreatePredictionRequest struct {
	PredictedEvent  string  `json:"predicted_event" validate:"required,max=255"`
	GeneratedText   string  `json:"generated_text" validate:"required"`
	ConfidenceScore float64 `json:"confidence_score" validate:"min=0,max=1"`
	ValidUntil      string  `json:"valid_until" validate:"required"`
	AIModelVersion  string  `json:"ai_model_version,omitempty" validate:"omitempty,max=255"`
}
