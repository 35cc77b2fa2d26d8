package models

import "gorm.io/gorm"

// ReportLike represents a like on a report
type ReportLike struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	ReportID   string `json:"report_id" gorm:"index:idx_report_likes_report_user,unique"` // ID of the liked report (MongoDB ObjectID as string)
	UserID     uint   `json:"user_id" gorm:"index:idx_report_likes_report_user,unique"`   // ID of the user who liked the report
}

// PredictionLike represents a like on a prediction
type PredictionLike struct {
	gorm.Model   `json:"-"`
	ID           uint `json:"id" gorm:"primaryKey"`
	PredictionID uint `json:"prediction_id" gorm:"index:idx_prediction_likes_prediction_user,unique"`
	UserID       uint `json:"user_id" gorm:"index:idx_prediction_likes_prediction_user,unique"`
}
