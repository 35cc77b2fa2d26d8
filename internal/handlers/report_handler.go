package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/futurepulse/backend/internal/events"
	"github.com/futurepulse/backend/internal/models"
	"github.com/futurepulse/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// recentWindow is the listing window for the recent reports and predictions
// endpoints, matching what the channels push.
const recentWindow = 24 * time.Hour

// ReportHandler handles HTTP requests related to reports
type ReportHandler struct {
	reportRepository repositories.ReportRepository
	userRepository   repositories.UserRepository
	notifier         events.Notifier
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportRepo repositories.ReportRepository, userRepo repositories.UserRepository, notifier events.Notifier) *ReportHandler {
	return &ReportHandler{
		reportRepository: reportRepo,
		userRepository:   userRepo,
		notifier:         notifier,
	}
}

// RegisterReportRoutes registers report-related routes
func (h *ReportHandler) RegisterReportRoutes(g *echo.Group) {
	g.POST("/reports", h.SubmitReport)
	g.GET("/reports", h.GetReports)
	g.GET("/reports/:report_id", h.GetReport)
}

// SubmitReport handles submitting a new incident report
func (h *ReportHandler) SubmitReport(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateReportRequest
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

	report, err := h.notifier.SubmitReport(c.Request().Context(), actor, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, report)
}

// GetReports retrieves multiple reports. Without a user_id query param it
// returns the last 24 hours, newest first; with one it returns that user's
// reports paginated via skip/limit.
func (h *ReportHandler) GetReports(c echo.Context) error {
	var reports []models.Report
	var err error

	if userParam := c.QueryParam("user_id"); userParam != "" {
		userID, parseErr := strconv.ParseUint(userParam, 10, 32)
		if parseErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
		}
		skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
		limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
		if limit == 0 {
			limit = 10 // Default limit
		}
		reports, err = h.reportRepository.GetReportsByUserID(c.Request().Context(), uint(userID), skip, limit)
	} else {
		reports, err = h.reportRepository.GetRecentReports(c.Request().Context(), recentWindow)
	}

	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"reports": reports})
}

// GetReport retrieves a single report by ID
func (h *ReportHandler) GetReport(c echo.Context) error {
	reportID := c.Param("report_id")

	report, err := h.reportRepository.GetReportByID(c.Request().Context(), reportID)
	if err != nil {
		if errors.Is(err, repositories.ErrReportNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Report not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, report)
}
