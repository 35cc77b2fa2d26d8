package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/futurepulse/backend/internal/models"
	"github.com/futurepulse/backend/internal/realtime"
	"github.com/futurepulse/backend/internal/repositories"
)

type fakeUserRepo struct {
	ids []uint
	err error
}

func (f *fakeUserRepo) CreateUser(user *models.User) error                  { return nil }
func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error)           { return nil, nil }
func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error)   { return nil, nil }
func (f *fakeUserRepo) GetUserByName(name string) (*models.User, error)     { return nil, nil }
func (f *fakeUserRepo) GetUserByFirebaseUID(uid string) (*models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetUserIDs() ([]uint, error)                         { return f.ids, f.err }
func (f *fakeUserRepo) UpdateUser(user *models.User) error                  { return nil }
func (f *fakeUserRepo) GetProfileByUserID(userID uint) (*models.Profile, error) {
	return nil, nil
}
func (f *fakeUserRepo) CreateProfile(profile *models.Profile) error { return nil }
func (f *fakeUserRepo) UpdateProfile(profile *models.Profile) error { return nil }

type fakeReportRepo struct {
	reports map[string]*models.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[string]*models.Report)}
}

func (f *fakeReportRepo) CreateReport(ctx context.Context, report *models.Report) error {
	report.ID = primitive.NewObjectID()
	f.reports[report.ID.Hex()] = report
	return nil
}

func (f *fakeReportRepo) GetReportByID(ctx context.Context, id string) (*models.Report, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, repositories.ErrReportNotFound
	}
	return report, nil
}

func (f *fakeReportRepo) GetRecentReports(ctx context.Context, window time.Duration) ([]models.Report, error) {
	reports := make([]models.Report, 0, len(f.reports))
	for _, r := range f.reports {
		reports = append(reports, *r)
	}
	return reports, nil
}

func (f *fakeReportRepo) GetReportsByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Report, error) {
	return nil, nil
}

func (f *fakeReportRepo) addReport(ownerID uint, description string) string {
	report := &models.Report{
		ID:          primitive.NewObjectID(),
		Description: description,
		Location:    "Main St",
		UserID:      ownerID,
	}
	f.reports[report.ID.Hex()] = report
	return report.ID.Hex()
}

type fakePredictionRepo struct {
	predictions map[uint]*models.Prediction
	nextID      uint
}

func newFakePredictionRepo() *fakePredictionRepo {
	return &fakePredictionRepo{predictions: make(map[uint]*models.Prediction), nextID: 1}
}

func (f *fakePredictionRepo) CreatePrediction(prediction *models.Prediction) error {
	prediction.ID = f.nextID
	f.nextID++
	f.predictions[prediction.ID] = prediction
	return nil
}

func (f *fakePredictionRepo) GetPredictionByID(id uint) (*models.Prediction, error) {
	prediction, ok := f.predictions[id]
	if !ok {
		return nil, errors.New("prediction not found")
	}
	return prediction, nil
}

func (f *fakePredictionRepo) GetRecentPredictions(window time.Duration) ([]models.Prediction, error) {
	predictions := make([]models.Prediction, 0, len(f.predictions))
	for _, p := range f.predictions {
		predictions = append(predictions, *p)
	}
	return predictions, nil
}

func (f *fakePredictionRepo) GetPredictionsByReportID(reportID string) ([]models.Prediction, error) {
	return nil, nil
}

func (f *fakePredictionRepo) addPrediction(ownerID uint) uint {
	prediction := &models.Prediction{ID: f.nextID, UserID: ownerID}
	f.nextID++
	f.predictions[prediction.ID] = prediction
	return prediction.ID
}

type fakeLikeRepo struct {
	reportLikes     []models.ReportLike
	predictionLikes []models.PredictionLike
	nextID          uint
}

func newFakeLikeRepo() *fakeLikeRepo { return &fakeLikeRepo{nextID: 1} }

func (f *fakeLikeRepo) CreateReportLike(like *models.ReportLike) error {
	like.ID = f.nextID
	f.nextID++
	f.reportLikes = append(f.reportLikes, *like)
	return nil
}

func (f *fakeLikeRepo) DeleteReportLike(reportID string, userID uint) error { return nil }

func (f *fakeLikeRepo) HasUserLikedReport(reportID string, userID uint) (bool, error) {
	for _, l := range f.reportLikes {
		if l.ReportID == reportID && l.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLikeRepo) GetReportLikesCount(reportID string) (int64, error) { return 0, nil }

func (f *fakeLikeRepo) CreatePredictionLike(like *models.PredictionLike) error {
	like.ID = f.nextID
	f.nextID++
	f.predictionLikes = append(f.predictionLikes, *like)
	return nil
}

func (f *fakeLikeRepo) DeletePredictionLike(predictionID, userID uint) error { return nil }

func (f *fakeLikeRepo) HasUserLikedPrediction(predictionID, userID uint) (bool, error) {
	for _, l := range f.predictionLikes {
		if l.PredictionID == predictionID && l.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLikeRepo) GetPredictionLikesCount(predictionID uint) (int64, error) { return 0, nil }

type fakeFeedbackRepo struct {
	feedbacks map[uint]*models.Feedback
	nextID    uint
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{feedbacks: make(map[uint]*models.Feedback), nextID: 1}
}

func (f *fakeFeedbackRepo) CreateFeedback(feedback *models.Feedback) error {
	feedback.ID = f.nextID
	f.nextID++
	f.feedbacks[feedback.ID] = feedback
	return nil
}

func (f *fakeFeedbackRepo) GetFeedbackByID(id uint) (*models.Feedback, error) {
	feedback, ok := f.feedbacks[id]
	if !ok {
		return nil, errors.New("feedback not found")
	}
	return feedback, nil
}

func (f *fakeFeedbackRepo) GetFeedbacksByReportID(reportID string) ([]models.Feedback, error) {
	return nil, nil
}

func (f *fakeFeedbackRepo) GetFeedbacksByPredictionID(predictionID uint) ([]models.Feedback, error) {
	return nil, nil
}

func (f *fakeFeedbackRepo) GetReplies(parentFeedbackID uint) ([]models.Feedback, error) {
	return nil, nil
}

func (f *fakeFeedbackRepo) addFeedback(authorID uint) uint {
	feedback := &models.Feedback{ID: f.nextID, UserID: authorID}
	f.nextID++
	f.feedbacks[feedback.ID] = feedback
	return feedback.ID
}

type storedNotification struct {
	notification *models.Notification
	recipients   []uint
}

type fakeNotificationRepo struct {
	stored []storedNotification
	nextID uint
}

func newFakeNotificationRepo() *fakeNotificationRepo { return &fakeNotificationRepo{nextID: 1} }

func (f *fakeNotificationRepo) CreateWithRecipients(notification *models.Notification, recipientIDs []uint) error {
	notification.ID = f.nextID
	f.nextID++
	f.stored = append(f.stored, storedNotification{notification: notification, recipients: recipientIDs})
	return nil
}

func (f *fakeNotificationRepo) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}

type publishCall struct {
	group   string
	payload realtime.Payload
}

type recordingPublisher struct {
	calls []publishCall
}

func (p *recordingPublisher) Publish(group string, payload realtime.Payload) {
	p.calls = append(p.calls, publishCall{group: group, payload: payload})
}

type serviceFixture struct {
	users         *fakeUserRepo
	reports       *fakeReportRepo
	predictions   *fakePredictionRepo
	likes         *fakeLikeRepo
	feedbacks     *fakeFeedbackRepo
	notifications *fakeNotificationRepo
	publisher     *recordingPublisher
	service       *Service
}

func newServiceFixture(userIDs []uint) *serviceFixture {
	f := &serviceFixture{
		users:         &fakeUserRepo{ids: userIDs},
		reports:       newFakeReportRepo(),
		predictions:   newFakePredictionRepo(),
		likes:         newFakeLikeRepo(),
		feedbacks:     newFakeFeedbackRepo(),
		notifications: newFakeNotificationRepo(),
		publisher:     &recordingPublisher{},
	}
	f.service = NewService(f.users, f.reports, f.predictions, f.likes, f.feedbacks, f.notifications, f.publisher)
	return f
}

func TestSubmitReportBroadcastsToAllUsers(t *testing.T) {
	f := newServiceFixture([]uint{1, 2, 3})
	actor := &models.User{ID: 1, Name: "alice"}

	report, err := f.service.SubmitReport(context.Background(), actor, &models.CreateReportRequest{
		Location:    "Main St",
		Latitude:    52.52,
		Longitude:   13.4,
		ReportType:  "infrastructure",
		Description: "pothole",
		Rating:      3,
	})
	require.NoError(t, err)
	require.False(t, report.ID.IsZero())
	assert.Equal(t, uint(1), report.UserID)
	assert.Equal(t, "active", report.Status)

	require.Len(t, f.notifications.stored, 1)
	stored := f.notifications.stored[0]
	assert.Equal(t, models.ActionReportCreated, stored.notification.ActionType)
	assert.Equal(t, uint(1), stored.notification.ActorID)
	assert.Equal(t, "alice reported pothole at Main St", stored.notification.Message)
	require.NotNil(t, stored.notification.ReportID)
	assert.Equal(t, report.ID.Hex(), *stored.notification.ReportID)
	assert.Equal(t, []uint{1, 2, 3}, stored.recipients)

	require.Len(t, f.publisher.calls, 2)
	assert.Equal(t, realtime.GroupReports, f.publisher.calls[0].group)
	feed, ok := f.publisher.calls[0].payload.(realtime.ReportsFeed)
	require.True(t, ok)
	assert.Len(t, feed.Reports, 1)
	assert.Equal(t, realtime.GroupNotifications, f.publisher.calls[1].group)
	assert.Equal(t, realtime.NotificationAlert{Data: "alice reported pothole at Main St"}, f.publisher.calls[1].payload)
}

func TestLikeReportNotifiesOwnerOnly(t *testing.T) {
	f := newServiceFixture([]uint{1, 2, 3})
	reportID := f.reports.addReport(1, "pothole")
	actor := &models.User{ID: 2, Name: "bob"}

	like, err := f.service.LikeReport(context.Background(), actor, reportID)
	require.NoError(t, err)
	assert.Equal(t, reportID, like.ReportID)
	assert.Equal(t, uint(2), like.UserID)

	require.Len(t, f.notifications.stored, 1)
	stored := f.notifications.stored[0]
	assert.Equal(t, models.ActionReportLiked, stored.notification.ActionType)
	assert.Equal(t, "bob liked your report", stored.notification.Message)
	assert.Equal(t, []uint{1}, stored.recipients)

	require.Len(t, f.publisher.calls, 1)
	assert.Equal(t, "user_1", f.publisher.calls[0].group)
	assert.Equal(t, realtime.NotificationAlert{Data: "bob liked your report"}, f.publisher.calls[0].payload)
}

func TestLikeReportRejectsSelfLike(t *testing.T) {
	f := newServiceFixture([]uint{1, 2})
	reportID := f.reports.addReport(1, "pothole")
	owner := &models.User{ID: 1, Name: "alice"}

	_, err := f.service.LikeReport(context.Background(), owner, reportID)
	require.ErrorIs(t, err, ErrSelfLike)

	// Nothing may be written or published, and a retry behaves identically
	assert.Empty(t, f.likes.reportLikes)
	assert.Empty(t, f.notifications.stored)
	assert.Empty(t, f.publisher.calls)

	_, err = f.service.LikeReport(context.Background(), owner, reportID)
	require.ErrorIs(t, err, ErrSelfLike)
	assert.Empty(t, f.likes.reportLikes)
}

func TestLikeReportRejectsDuplicate(t *testing.T) {
	f := newServiceFixture([]uint{1, 2})
	reportID := f.reports.addReport(1, "pothole")
	actor := &models.User{ID: 2, Name: "bob"}

	_, err := f.service.LikeReport(context.Background(), actor, reportID)
	require.NoError(t, err)

	_, err = f.service.LikeReport(context.Background(), actor, reportID)
	require.ErrorIs(t, err, ErrAlreadyLiked)
	assert.Len(t, f.likes.reportLikes, 1)
	assert.Len(t, f.notifications.stored, 1)
}

func TestLikeReportUnknownReport(t *testing.T) {
	f := newServiceFixture([]uint{1})
	actor := &models.User{ID: 1, Name: "alice"}

	_, err := f.service.LikeReport(context.Background(), actor, primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, repositories.ErrReportNotFound)
}

func TestSubmitPredictionBroadcastsAndPushesFeed(t *testing.T) {
	f := newServiceFixture([]uint{1, 2})
	reportID := f.reports.addReport(2, "flooding on Elm St")
	actor := &models.User{ID: 1, Name: "alice"}

	prediction, err := f.service.SubmitPrediction(context.Background(), actor, reportID, &models.CreatePredictionRequest{
		PredictedEvent:  "road closure",
		GeneratedText:   "Expect closures within 48 hours",
		ConfidenceScore: 0.8,
		ValidUntil:      "2026-09-01T12:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "GPT-4", prediction.AIModelVersion)
	assert.Equal(t, reportID, prediction.ReportID)

	require.Len(t, f.notifications.stored, 1)
	stored := f.notifications.stored[0]
	assert.Equal(t, models.ActionPredictionCreated, stored.notification.ActionType)
	assert.Equal(t, "alice added prediction on flooding on Elm St", stored.notification.Message)
	assert.Equal(t, []uint{1, 2}, stored.recipients)

	require.Len(t, f.publisher.calls, 2)
	assert.Equal(t, realtime.GroupPredictions, f.publisher.calls[0].group)
	assert.Equal(t, realtime.GroupNotifications, f.publisher.calls[1].group)
}

func TestSubmitPredictionInvalidTimestamp(t *testing.T) {
	f := newServiceFixture([]uint{1, 2})
	reportID := f.reports.addReport(2, "flooding")
	actor := &models.User{ID: 1, Name: "alice"}

	_, err := f.service.SubmitPrediction(context.Background(), actor, reportID, &models.CreatePredictionRequest{
		PredictedEvent: "road closure",
		GeneratedText:  "text",
		ValidUntil:     "next tuesday",
	})
	require.ErrorIs(t, err, ErrInvalidTimestamp)
	assert.Empty(t, f.predictions.predictions)
	assert.Empty(t, f.notifications.stored)
	assert.Empty(t, f.publisher.calls)
}

func TestLikePredictionRejectsSelfLike(t *testing.T) {
	f := newServiceFixture([]uint{1})
	predictionID := f.predictions.addPrediction(1)
	owner := &models.User{ID: 1, Name: "alice"}

	_, err := f.service.LikePrediction(context.Background(), owner, predictionID)
	require.ErrorIs(t, err, ErrSelfLike)
	assert.Empty(t, f.likes.predictionLikes)
	assert.Empty(t, f.publisher.calls)
}

func TestLikePredictionNotifiesOwner(t *testing.T) {
	f := newServiceFixture([]uint{1, 2})
	predictionID := f.predictions.addPrediction(1)
	actor := &models.User{ID: 2, Name: "bob"}

	like, err := f.service.LikePrediction(context.Background(), actor, predictionID)
	require.NoError(t, err)
	assert.Equal(t, predictionID, like.PredictionID)

	require.Len(t, f.publisher.calls, 1)
	assert.Equal(t, "user_1", f.publisher.calls[0].group)
	assert.Equal(t, realtime.NotificationAlert{Data: "bob liked your prediction"}, f.publisher.calls[0].payload)
	require.Len(t, f.notifications.stored, 1)
	assert.Equal(t, []uint{1}, f.notifications.stored[0].recipients)
}

func TestSubmitReportFeedbackNotifiesReportOwner(t *testing.T) {
	f := newServiceFixture([]uint{1, 2})
	reportID := f.reports.addReport(1, "pothole")
	actor := &models.User{ID: 2, Name: "bob"}
	accurate := true

	feedback, err := f.service.SubmitReportFeedback(context.Background(), actor, reportID, &models.CreateFeedbackRequest{
		Rating:     4,
		Comment:    "confirmed, still there",
		IsAccurate: &accurate,
	})
	require.NoError(t, err)
	require.NotNil(t, feedback.ReportID)
	assert.Equal(t, reportID, *feedback.ReportID)

	require.Len(t, f.notifications.stored, 1)
	stored := f.notifications.stored[0]
	assert.Equal(t, models.ActionFeedbackAdded, stored.notification.ActionType)
	assert.Equal(t, "bob added feedback on your report", stored.notification.Message)
	assert.Equal(t, []uint{1}, stored.recipients)

	require.Len(t, f.publisher.calls, 1)
	assert.Equal(t, "user_1", f.publisher.calls[0].group)
}

func TestSubmitPredictionFeedbackNotifiesPredictionOwner(t *testing.T) {
	f := newServiceFixture([]uint{1, 2})
	predictionID := f.predictions.addPrediction(1)
	actor := &models.User{ID: 2, Name: "bob"}
	accurate := false

	_, err := f.service.SubmitPredictionFeedback(context.Background(), actor, predictionID, &models.CreateFeedbackRequest{
		Rating:     2,
		Comment:    "did not happen",
		IsAccurate: &accurate,
	})
	require.NoError(t, err)

	require.Len(t, f.publisher.calls, 1)
	assert.Equal(t, "user_1", f.publisher.calls[0].group)
	assert.Equal(t, realtime.NotificationAlert{Data: "bob added feedback on your prediction"}, f.publisher.calls[0].payload)
}

func TestSubmitReplyNotifiesParentAuthor(t *testing.T) {
	f := newServiceFixture([]uint{1, 2, 5})
	parentID := f.feedbacks.addFeedback(5)
	actor := &models.User{ID: 2, Name: "bob"}

	reply, err := f.service.SubmitReply(context.Background(), actor, parentID, &models.CreateReplyRequest{
		Comment: "thanks for checking",
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentFeedbackID)
	assert.Equal(t, parentID, *reply.ParentFeedbackID)

	require.Len(t, f.notifications.stored, 1)
	assert.Equal(t, "bob replied to your feedback", f.notifications.stored[0].notification.Message)
	assert.Equal(t, []uint{5}, f.notifications.stored[0].recipients)

	require.Len(t, f.publisher.calls, 1)
	assert.Equal(t, "user_5", f.publisher.calls[0].group)
}

// A user replying to their own feedback still notifies themselves; only
// likes carry the self-interaction suppression.
func TestSubmitReplyToOwnFeedback(t *testing.T) {
	f := newServiceFixture([]uint{1})
	parentID := f.feedbacks.addFeedback(1)
	actor := &models.User{ID: 1, Name: "alice"}

	_, err := f.service.SubmitReply(context.Background(), actor, parentID, &models.CreateReplyRequest{
		Comment: "follow-up",
	})
	require.NoError(t, err)
	require.Len(t, f.notifications.stored, 1)
	assert.Equal(t, []uint{1}, f.notifications.stored[0].recipients)
}
