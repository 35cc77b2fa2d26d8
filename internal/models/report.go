package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report represents a location-tagged incident report stored in MongoDB
type Report struct {
	ID                 primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	Location           string                 `json:"location" bson:"location"`
	Latitude           float64                `json:"latitude" bson:"latitude"`
	Longitude          float64                `json:"longitude" bson:"longitude"`
	ReportType         string                 `json:"report_type" bson:"report_type"` // e.g., traffic, noise, crowd
	Description        string                 `json:"description" bson:"description"`
	Status             string                 `json:"status" bson:"status"` // e.g., active, expired
	SensorData         map[string]interface{} `json:"sensor_data,omitempty" bson:"sensor_data,omitempty"`
	VerificationStatus bool                   `json:"verification_status" bson:"verification_status"`
	Rating             float64                `json:"rating" bson:"rating"`
	UserID             uint                   `json:"user_id" bson:"user_id"` // ID of the submitting user (PostgreSQL)
	CreatedAt          time.Time              `json:"timestamp" bson:"created_at"`
}

// CreateReportRequest defines the request body for submitting a report
type CreateReportRequest struct {
	Location    string                 `json:"location" validate:"required,max=225"`
	Latitude    float64                `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude   float64                `json:"longitude" validate:"required,min=-180,max=180"`
	ReportType  string                 `json:"report_type" validate:"required,max=255"`
	Description string                 `json:"description" validate:"required"`
	SensorData  map[string]interface{} `json:"sensor_data,omitempty"`
	Rating      float64                `json:"rating" validate:"required,min=0,max=5"`
}
