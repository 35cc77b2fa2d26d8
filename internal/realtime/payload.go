package realtime

import "github.com/futurepulse/backend/internal/models"

// Payload is the closed set of frame shapes pushed to channel clients.
// Each variant knows its own wire envelope, so a group carries exactly the
// JSON shape its subscribers expect.
type Payload interface {
	frame() interface{}
}

// ReportsFeed carries the recent-reports listing pushed on the reports channel
type ReportsFeed struct {
	Reports []models.Report
}

func (p ReportsFeed) frame() interface{} {
	reports := p.Reports
	if reports == nil {
		reports = []models.Report{}
	}
	return map[string]interface{}{"reports": reports}
}

// PredictionsFeed carries the recent-predictions listing pushed on the
// predictions channel
type PredictionsFeed struct {
	Predictions []models.Prediction
}

func (p PredictionsFeed) frame() interface{} {
	predictions := p.Predictions
	if predictions == nil {
		predictions = []models.Prediction{}
	}
	return map[string]interface{}{"predictions": predictions}
}

// NotificationAlert carries a single notification message
type NotificationAlert struct {
	Data string
}

func (p NotificationAlert) frame() interface{} {
	return map[string]interface{}{
		"notifications": map[string]string{"data": p.Data},
	}
}

// NotificationDigest carries a bulk notification listing, sent as the
// backlog when an authenticated client first connects
type NotificationDigest struct {
	Notifications []models.Notification
}

func (p NotificationDigest) frame() interface{} {
	notifications := p.Notifications
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return map[string]interface{}{"notifications": notifications}
}
