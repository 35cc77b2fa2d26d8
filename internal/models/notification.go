package models

import "time"

// ActionType enumerates the domain events a notification can describe
type ActionType string

const (
	ActionReportCreated     ActionType = "Report"
	ActionReportLiked       ActionType = "ReportLike"
	ActionPredictionCreated ActionType = "Prediction"
	ActionPredictionLiked   ActionType = "PredictionLike"
	ActionFeedbackAdded     ActionType = "Feedback"
)

// Notification represents a durable notification record (PostgreSQL).
// At most one of the subject reference fields is set; the message and
// timestamp are written once at creation and never updated.
type Notification struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	ActorID          uint       `json:"actor_id" gorm:"index"`
	ReportID         *string    `json:"report_id,omitempty" gorm:"index"` // MongoDB ObjectID as string
	ReportLikeID     *uint      `json:"report_like_id,omitempty" gorm:"index"`
	PredictionID     *uint      `json:"prediction_id,omitempty" gorm:"index"`
	PredictionLikeID *uint      `json:"prediction_like_id,omitempty" gorm:"index"`
	FeedbackID       *uint      `json:"feedback_id,omitempty" gorm:"index"`
	ActionType       ActionType `json:"action_type" gorm:"size:16;index"`
	Message          string     `json:"message" gorm:"size:225"`
	CreatedAt        time.Time  `json:"timestamp" gorm:"index"`
	Recipients       []User     `json:"-" gorm:"many2many:notification_recipients;"`
}
