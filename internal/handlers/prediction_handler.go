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

// PredictionHandler handles HTTP requests related to predictions
type PredictionHandler struct {
	predictionRepository repositories.PredictionRepository
	userRepository       repositories.UserRepository
	notifier             events.Notifier
}

// NewPredictionHandler creates a new PredictionHandler
func NewPredictionHandler(predictionRepo repositories.PredictionRepository, userRepo repositories.UserRepository, notifier events.Notifier) *PredictionHandler {
	return &PredictionHandler{
		predictionRepository: predictionRepo,
		userRepository:       userRepo,
		notifier:             notifier,
	}
}

// RegisterPredictionRoutes registers prediction-related routes
func (h *PredictionHandler) RegisterPredictionRoutes(g *echo.Group) {
	g.POST("/reports/:report_id/predictions", h.SubmitPrediction)
	g.GET("/reports/:report_id/predictions", h.GetPredictionsForReport)
	g.GET("/predictions", h.GetRecentPredictions)
	g.GET("/predictions/:prediction_id", h.GetPrediction)
}

// SubmitPrediction handles submitting a prediction on an existing report
func (h *PredictionHandler) SubmitPrediction(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePredictionRequest
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

	prediction, err := h.notifier.SubmitPrediction(c.Request().Context(), actor, c.Param("report_id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrReportNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Report not found")
		case errors.Is(err, events.ErrInvalidTimestamp):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid valid_until timestamp")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, prediction)
}

// GetPredictionsForReport retrieves all predictions attached to a report
func (h *PredictionHandler) GetPredictionsForReport(c echo.Context) error {
	predictions, err := h.predictionRepository.GetPredictionsByReportID(c.Param("report_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"predictions": predictions})
}

// GetRecentPredictions retrieves predictions created within the last
// 24 hours, newest first
func (h *PredictionHandler) GetRecentPredictions(c echo.Context) error {
	predictions, err := h.predictionRepository.GetRecentPredictions(recentWindow)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"predictions": predictions})
}

// GetPrediction retrieves a single prediction by ID
func (h *PredictionHandler) GetPrediction(c echo.Context) error {
	predictionID, err := strconv.ParseUint(c.Param("prediction_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid prediction ID")
	}

	prediction, err := h.predictionRepository.GetPredictionByID(uint(predictionID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Prediction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, prediction)
}
