package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/futurepulse/backend/internal/events"
	"github.com/futurepulse/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// LikeHandler handles HTTP requests related to report and prediction likes
type LikeHandler struct {
	likeRepository       repositories.LikeRepository
	userRepository       repositories.UserRepository
	reportRepository     repositories.ReportRepository
	predictionRepository repositories.PredictionRepository
	notifier             events.Notifier
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, userRepo repositories.UserRepository, reportRepo repositories.ReportRepository, predictionRepo repositories.PredictionRepository, notifier events.Notifier) *LikeHandler {
	return &LikeHandler{
		likeRepository:       likeRepo,
		userRepository:       userRepo,
		reportRepository:     reportRepo,
		predictionRepository: predictionRepo,
		notifier:             notifier,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/reports/:report_id/likes", h.LikeReport)
	g.DELETE("/reports/:report_id/likes", h.UnlikeReport)
	g.GET("/reports/:report_id/likes/count", h.GetReportLikesCount)
	g.GET("/reports/:report_id/likes/status", h.GetReportLikeStatus)
	g.POST("/predictions/:prediction_id/likes", h.LikePrediction)
	g.DELETE("/predictions/:prediction_id/likes", h.UnlikePrediction)
	g.GET("/predictions/:prediction_id/likes/count", h.GetPredictionLikesCount)
	g.GET("/predictions/:prediction_id/likes/status", h.GetPredictionLikeStatus)
}

// LikeReport handles liking a report. Liking your own report is rejected
// with 400 and writes nothing.
func (h *LikeHandler) LikeReport(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	actor, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	like, err := h.notifier.LikeReport(c.Request().Context(), actor, c.Param("report_id"))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrReportNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Report not found")
		case errors.Is(err, events.ErrSelfLike):
			return echo.NewHTTPError(http.StatusBadRequest, "Cannot like your own report")
		case errors.Is(err, events.ErrAlreadyLiked):
			return echo.NewHTTPError(http.StatusConflict, "Report already liked by this user")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, like)
}

// UnlikeReport handles removing a like from a report
func (h *LikeHandler) UnlikeReport(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.likeRepository.DeleteReportLike(c.Param("report_id"), currentUserID); err != nil {
		if err.Error() == "like not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Like not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// GetReportLikesCount retrieves the total number of likes for a report
func (h *LikeHandler) GetReportLikesCount(c echo.Context) error {
	reportID := c.Param("report_id")

	if _, err := h.reportRepository.GetReportByID(c.Request().Context(), reportID); err != nil {
		if errors.Is(err, repositories.ErrReportNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Report not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	count, err := h.likeRepository.GetReportLikesCount(reportID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"report_id": reportID, "likes_count": count})
}

// GetReportLikeStatus checks if the authenticated user has liked a report
func (h *LikeHandler) GetReportLikeStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	reportID := c.Param("report_id")
	hasLiked, err := h.likeRepository.HasUserLikedReport(reportID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"report_id": reportID, "user_id": currentUserID, "has_liked": hasLiked})
}

// LikePrediction handles liking a prediction. Liking your own prediction is
// rejected with 400 and writes nothing.
func (h *LikeHandler) LikePrediction(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	predictionID, err := strconv.ParseUint(c.Param("prediction_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid prediction ID")
	}

	actor, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	like, err := h.notifier.LikePrediction(c.Request().Context(), actor, uint(predictionID))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Prediction not found")
		case errors.Is(err, events.ErrSelfLike):
			return echo.NewHTTPError(http.StatusBadRequest, "Cannot like your own prediction")
		case errors.Is(err, events.ErrAlreadyLiked):
			return echo.NewHTTPError(http.StatusConflict, "Prediction already liked by this user")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, like)
}

// UnlikePrediction handles removing a like from a prediction
func (h *LikeHandler) UnlikePrediction(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	predictionID, err := strconv.ParseUint(c.Param("prediction_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid prediction ID")
	}

	if err := h.likeRepository.DeletePredictionLike(uint(predictionID), currentUserID); err != nil {
		if err.Error() == "like not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Like not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// GetPredictionLikesCount retrieves the total number of likes for a prediction
func (h *LikeHandler) GetPredictionLikesCount(c echo.Context) error {
	predictionID, err := strconv.ParseUint(c.Param("prediction_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid prediction ID")
	}

	if _, err := h.predictionRepository.GetPredictionByID(uint(predictionID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Prediction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	count, err := h.likeRepository.GetPredictionLikesCount(uint(predictionID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"prediction_id": predictionID, "likes_count": count})
}

// GetPredictionLikeStatus checks if the authenticated user has liked a prediction
func (h *LikeHandler) GetPredictionLikeStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	predictionID, err := strconv.ParseUint(c.Param("prediction_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid prediction ID")
	}

	hasLiked, err := h.likeRepository.HasUserLikedPrediction(uint(predictionID), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"prediction_id": predictionID, "user_id": currentUserID, "has_liked": hasLiked})
}
