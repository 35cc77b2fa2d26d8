package events

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/futurepulse/backend/internal/models"
	"github.com/futurepulse/backend/internal/realtime"
	"github.com/futurepulse/backend/internal/repositories"
)

// recentWindow bounds the listing pushed on the category feed channels
const recentWindow = 24 * time.Hour

var (
	// ErrSelfLike is returned when a user likes their own report or
	// prediction. The like is rejected outright: no row, no notification,
	// no publish. Repeated attempts behave identically.
	ErrSelfLike = errors.New("cannot like your own content")
	// ErrAlreadyLiked is returned when the user has already liked the subject
	ErrAlreadyLiked = errors.New("already liked")
	// ErrInvalidTimestamp is returned when a prediction's valid_until field
	// cannot be parsed
	ErrInvalidTimestamp = errors.New("invalid valid_until timestamp")
)

// Publisher delivers a payload to every connection currently in a group
type Publisher interface {
	Publish(group string, payload realtime.Payload)
}

// Notifier is the application-facing surface of the notification core: one
// explicit function per domain write, each sequencing persistence,
// recipient resolution, record creation and channel publish.
type Notifier interface {
	SubmitReport(ctx context.Context, actor *models.User, req *models.CreateReportRequest) (*models.Report, error)
	LikeReport(ctx context.Context, actor *models.User, reportID string) (*models.ReportLike, error)
	SubmitPrediction(ctx context.Context, actor *models.User, reportID string, req *models.CreatePredictionRequest) (*models.Prediction, error)
	LikePrediction(ctx context.Context, actor *models.User, predictionID uint) (*models.PredictionLike, error)
	SubmitReportFeedback(ctx context.Context, actor *models.User, reportID string, req *models.CreateFeedbackRequest) (*models.Feedback, error)
	SubmitPredictionFeedback(ctx context.Context, actor *models.User, predictionID uint, req *models.CreateFeedbackRequest) (*models.Feedback, error)
	SubmitReply(ctx context.Context, actor *models.User, parentFeedbackID uint, req *models.CreateReplyRequest) (*models.Feedback, error)
}

// Service implements Notifier over the repositories and the fan-out
// dispatcher. A publish failure never fails the producing call: once the
// domain write and the notification record are persisted, the operation
// reports success and missed connections rely on the pull path.
type Service struct {
	users         repositories.UserRepository
	reports       repositories.ReportRepository
	predictions   repositories.PredictionRepository
	likes         repositories.LikeRepository
	feedbacks     repositories.FeedbackRepository
	notifications repositories.NotificationRepository
	resolver      *Resolver
	publisher     Publisher
}

// NewService creates the notification application service
func NewService(
	users repositories.UserRepository,
	reports repositories.ReportRepository,
	predictions repositories.PredictionRepository,
	likes repositories.LikeRepository,
	feedbacks repositories.FeedbackRepository,
	notifications repositories.NotificationRepository,
	publisher Publisher,
) *Service {
	return &Service{
		users:         users,
		reports:       reports,
		predictions:   predictions,
		likes:         likes,
		feedbacks:     feedbacks,
		notifications: notifications,
		resolver:      NewResolver(users),
		publisher:     publisher,
	}
}

// SubmitReport persists a new report, records a broadcast notification for
// every registered user, then pushes the refreshed recent-reports listing
// to the reports channel and the notification message to the notifications
// channel.
func (s *Service) SubmitReport(ctx context.Context, actor *models.User, req *models.CreateReportRequest) (*models.Report, error) {
	report := &models.Report{
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ReportType:  req.ReportType,
		Description: req.Description,
		SensorData:  req.SensorData,
		Status:      "active",
		Rating:      req.Rating,
		UserID:      actor.ID,
	}
	if err := s.reports.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	recipients, err := s.resolver.Resolve(models.ActionReportCreated, actor.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("resolve recipients: %w", err)
	}

	reportID := report.ID.Hex()
	notification := &models.Notification{
		ActorID:    actor.ID,
		ReportID:   &reportID,
		ActionType: models.ActionReportCreated,
		Message:    fmt.Sprintf("%s reported %s at %s", actor.Name, report.Description, report.Location),
	}
	if err := s.notifications.CreateWithRecipients(notification, recipients); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	s.publishRecentReports(ctx)
	s.publisher.Publish(realtime.GroupNotifications, realtime.NotificationAlert{Data: notification.Message})
	return report, nil
}

// LikeReport persists a like on another user's report and notifies the
// report's owner on their private channel. Liking your own report is
// rejected with ErrSelfLike before anything is written.
func (s *Service) LikeReport(ctx context.Context, actor *models.User, reportID string) (*models.ReportLike, error) {
	report, err := s.reports.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	recipients, err := s.resolver.Resolve(models.ActionReportLiked, actor.ID, report.UserID)
	if errors.Is(err, ErrSuppressed) {
		return nil, ErrSelfLike
	}
	if err != nil {
		return nil, fmt.Errorf("resolve recipients: %w", err)
	}

	liked, err := s.likes.HasUserLikedReport(reportID, actor.ID)
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, ErrAlreadyLiked
	}

	like := &models.ReportLike{ReportID: reportID, UserID: actor.ID}
	if err := s.likes.CreateReportLike(like); err != nil {
		return nil, fmt.Errorf("create like: %w", err)
	}

	notification := &models.Notification{
		ActorID:      actor.ID,
		ReportLikeID: &like.ID,
		ActionType:   models.ActionReportLiked,
		Message:      fmt.Sprintf("%s liked your report", actor.Name),
	}
	if err := s.notifications.CreateWithRecipients(notification, recipients); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	s.publisher.Publish(realtime.UserGroup(report.UserID), realtime.NotificationAlert{Data: notification.Message})
	return like, nil
}

// SubmitPrediction persists a prediction on an existing report, records a
// broadcast notification, then pushes the refreshed recent-predictions
// listing and the notification message.
func (s *Service) SubmitPrediction(ctx context.Context, actor *models.User, reportID string, req *models.CreatePredictionRequest) (*models.Prediction, error) {
	report, err := s.reports.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	validUntil, err := time.Parse(time.RFC3339, req.ValidUntil)
	if err != nil {
		return nil, ErrInvalidTimestamp
	}

	prediction := &models.Prediction{
		PredictedEvent:  req.PredictedEvent,
		GeneratedText:   req.GeneratedText,
		ConfidenceScore: req.ConfidenceScore,
		ValidUntil:      validUntil,
		AIModelVersion:  req.AIModelVersion,
		ReportID:        reportID,
		UserID:          actor.ID,
	}
	if prediction.AIModelVersion == "" {
		prediction.AIModelVersion = "GPT-4"
	}
	if err := s.predictions.CreatePrediction(prediction); err != nil {
		return nil, fmt.Errorf("create prediction: %w", err)
	}

	recipients, err := s.resolver.Resolve(models.ActionPredictionCreated, actor.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("resolve recipients: %w", err)
	}

	notification := &models.Notification{
		ActorID:      actor.ID,
		PredictionID: &prediction.ID,
		ActionType:   models.ActionPredictionCreated,
		Message:      fmt.Sprintf("%s added prediction on %s", actor.Name, report.Description),
	}
	if err := s.notifications.CreateWithRecipients(notification, recipients); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	s.publishRecentPredictions()
	s.publisher.Publish(realtime.GroupNotifications, realtime.NotificationAlert{Data: notification.Message})
	return prediction, nil
}

// LikePrediction persists a like on another user's prediction and notifies
// the prediction's owner on their private channel.
func (s *Service) LikePrediction(ctx context.Context, actor *models.User, predictionID uint) (*models.PredictionLike, error) {
	prediction, err := s.predictions.GetPredictionByID(predictionID)
	if err != nil {
		return nil, err
	}

	recipients, err := s.resolver.Resolve(models.ActionPredictionLiked, actor.ID, prediction.UserID)
	if errors.Is(err, ErrSuppressed) {
		return nil, ErrSelfLike
	}
	if err != nil {
		return nil, fmt.Errorf("resolve recipients: %w", err)
	}

	liked, err := s.likes.HasUserLikedPrediction(predictionID, actor.ID)
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, ErrAlreadyLiked
	}

	like := &models.PredictionLike{PredictionID: predictionID, UserID: actor.ID}
	if err := s.likes.CreatePredictionLike(like); err != nil {
		return nil, fmt.Errorf("create like: %w", err)
	}

	notification := &models.Notification{
		ActorID:          actor.ID,
		PredictionLikeID: &like.ID,
		ActionType:       models.ActionPredictionLiked,
		Message:          fmt.Sprintf("%s liked your prediction", actor.Name),
	}
	if err := s.notifications.CreateWithRecipients(notification, recipients); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	s.publisher.Publish(realtime.UserGroup(prediction.UserID), realtime.NotificationAlert{Data: notification.Message})
	return like, nil
}

// SubmitReportFeedback persists feedback on a report and notifies the
// report's owner on their private channel.
func (s *Service) SubmitReportFeedback(ctx context.Context, actor *models.User, reportID string, req *models.CreateFeedbackRequest) (*models.Feedback, error) {
	report, err := s.reports.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	feedback := &models.Feedback{
		Rating:     &req.Rating,
		Comment:    req.Comment,
		IsAccurate: req.IsAccurate,
		ReportID:   &reportID,
		UserID:     actor.ID,
	}
	message := fmt.Sprintf("%s added feedback on your report", actor.Name)
	return s.createFeedback(feedback, report.UserID, message)
}

// SubmitPredictionFeedback persists feedback on a prediction and notifies
// the prediction's owner on their private channel.
func (s *Service) SubmitPredictionFeedback(ctx context.Context, actor *models.User, predictionID uint, req *models.CreateFeedbackRequest) (*models.Feedback, error) {
	prediction, err := s.predictions.GetPredictionByID(predictionID)
	if err != nil {
		return nil, err
	}

	feedback := &models.Feedback{
		Rating:       &req.Rating,
		Comment:      req.Comment,
		IsAccurate:   req.IsAccurate,
		PredictionID: &predictionID,
		UserID:       actor.ID,
	}
	message := fmt.Sprintf("%s added feedback on your prediction", actor.Name)
	return s.createFeedback(feedback, prediction.UserID, message)
}

// SubmitReply persists a reply to an existing feedback and notifies the
// parent feedback's author on their private channel.
func (s *Service) SubmitReply(ctx context.Context, actor *models.User, parentFeedbackID uint, req *models.CreateReplyRequest) (*models.Feedback, error) {
	parent, err := s.feedbacks.GetFeedbackByID(parentFeedbackID)
	if err != nil {
		return nil, err
	}

	reply := &models.Feedback{
		Comment:          req.Comment,
		ParentFeedbackID: &parentFeedbackID,
		UserID:           actor.ID,
	}
	message := fmt.Sprintf("%s replied to your feedback", actor.Name)
	return s.createFeedback(reply, parent.UserID, message)
}

// createFeedback runs the shared persist, record, publish sequence for the
// three feedback variants.
func (s *Service) createFeedback(feedback *models.Feedback, ownerID uint, message string) (*models.Feedback, error) {
	recipients, err := s.resolver.Resolve(models.ActionFeedbackAdded, feedback.UserID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("resolve recipients: %w", err)
	}

	if err := s.feedbacks.CreateFeedback(feedback); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	notification := &models.Notification{
		ActorID:    feedback.UserID,
		FeedbackID: &feedback.ID,
		ActionType: models.ActionFeedbackAdded,
		Message:    message,
	}
	if err := s.notifications.CreateWithRecipients(notification, recipients); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	s.publisher.Publish(realtime.UserGroup(ownerID), realtime.NotificationAlert{Data: notification.Message})
	return feedback, nil
}

func (s *Service) publishRecentReports(ctx context.Context) {
	recent, err := s.reports.GetRecentReports(ctx, recentWindow)
	if err != nil {
		log.Printf("events: failed to load recent reports for feed push: %v", err)
		return
	}
	s.publisher.Publish(realtime.GroupReports, realtime.ReportsFeed{Reports: recent})
}

func (s *Service) publishRecentPredictions() {
	recent, err := s.predictions.GetRecentPredictions(recentWindow)
	if err != nil {
		log.Printf("events: failed to load recent predictions for feed push: %v", err)
		return
	}
	s.publisher.Publish(realtime.GroupPredictions, realtime.PredictionsFeed{Predictions: recent})
}
