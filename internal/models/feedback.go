package models

import "gorm.io/gorm"

// Feedback represents user feedback on a report or prediction, or a reply
// to another feedback. Exactly one of ReportID, PredictionID and
// ParentFeedbackID is set.
type Feedback struct {
	gorm.Model       `json:"-"`
	ID               uint    `json:"id" gorm:"primaryKey"`
	Rating           *int    `json:"rating,omitempty" gorm:"index"`
	Comment          string  `json:"comment"`
	IsAccurate       *bool   `json:"is_accurate,omitempty" gorm:"index"`
	ParentFeedbackID *uint   `json:"parent_feedback_id,omitempty" gorm:"index"`
	ReportID         *string `json:"report_id,omitempty" gorm:"index"` // MongoDB ObjectID as string
	PredictionID     *uint   `json:"prediction_id,omitempty" gorm:"index"`
	UserID           uint    `json:"user_id" gorm:"index"` // ID of the user who wrote the feedback
}

// CreateFeedbackRequest defines the request body for submitting feedback
type CreateFeedbackRequest struct {
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"required,min=1"`
	IsAccurate *bool  `json:"is_accurate" validate:"required"`
}

// CreateReplyRequest defines the request body for replying to a feedback
type CreateReplyRequest struct {
	Comment string `json:"comment" validate:"required,min=1"`
}
