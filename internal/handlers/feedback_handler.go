package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/futurepulse/backend/internal/events"
	"github.com/futurepulse/backend/internal/models"
	"github.com/futurepulse/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FeedbackHandler handles HTTP requests related to feedback and replies
type FeedbackHandler struct {
	feedbackRepository repositories.FeedbackRepository
	userRepository     repositories.UserRepository
	notifier           events.Notifier
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(feedbackRepo repositories.FeedbackRepository, userRepo repositories.UserRepository, notifier events.Notifier) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackRepository: feedbackRepo,
		userRepository:     userRepo,
		notifier:           notifier,
	}
}

// RegisterFeedbackRoutes registers feedback-related routes
func (h *FeedbackHandler) RegisterFeedbackRoutes(g *echo.Group) {
	g.POST("/reports/:report_id/feedbacks", h.SubmitReportFeedback)
	g.GET("/reports/:report_id/feedbacks", h.GetReportFeedbacks)
	g.POST("/predictions/:prediction_id/feedbacks", h.SubmitPredictionFeedback)
	g.GET("/predictions/:prediction_id/feedbacks", h.GetPredictionFeedbacks)
	g.POST("/feedbacks/:feedback_id/replies", h.SubmitReply)
	g.GET("/feedbacks/:feedback_id/replies", h.GetReplies)
}

// SubmitReportFeedback handles submitting feedback on a report
func (h *FeedbackHandler) SubmitReportFeedback(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	actor, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	feedback, err := h.notifier.SubmitReportFeedback(c.Request().Context(), actor, c.Param("report_id"), &req)
	if err != nil {
		if errors.Is(err, repositories.ErrReportNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Report not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, feedback)
}

// GetReportFeedbacks retrieves all feedbacks on a report
func (h *FeedbackHandler) GetReportFeedbacks(c echo.Context) error {
	feedbacks, err := h.feedbackRepository.GetFeedbacksByReportID(c.Param("report_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"feedbacks": feedbacks})
}

// SubmitPredictionFeedback handles submitting feedback on a prediction
func (h *FeedbackHandler) SubmitPredictionFeedback(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	predictionID, err := strconv.ParseUint(c.Param("prediction_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid prediction ID")
	}

	var req models.CreateFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	actor, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	feedback, err := h.notifier.SubmitPredictionFeedback(c.Request().Context(), actor, uint(predictionID), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Prediction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, feedback)
}

// GetPredictionFeedbacks retrieves all feedbacks on a prediction
func (h *FeedbackHandler) GetPredictionFeedbacks(c echo.Context) error {
	predictionID, err := strconv.ParseUint(c.Param("prediction_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid prediction ID")
	}

	feedbacks, err := h.feedbackRepository.GetFeedbacksByPredictionID(uint(predictionID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"feedbacks": feedbacks})
}

// SubmitReply handles replying to an existing feedback
func (h *FeedbackHandler) SubmitReply(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	feedbackID, err := strconv.ParseUint(c.Param("feedback_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid feedback ID")
	}

	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	actor, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	reply, err := h.notifier.SubmitReply(c.Request().Context(), actor, uint(feedbackID), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Feedback not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, reply)
}

// GetReplies retrieves all replies to a feedback
func (h *FeedbackHandler) GetReplies(c echo.Context) error {
	feedbackID, err := strconv.ParseUint(c.Param("feedback_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid feedback ID")
	}

	replies, err := h.feedbackRepository.GetReplies(uint(feedbackID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"replies": replies})
}
