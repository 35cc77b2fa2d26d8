package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futurepulse/backend/internal/models"
)

func reportsContext(query string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest("GET", "/reports"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetReportsRecent(t *testing.T) {
	reportRepo := newStubReportRepo()
	reportRepo.recent = []models.Report{{Description: "pothole"}}
	h := NewReportHandler(reportRepo, nil, nil)

	c, rec := reportsContext("")
	require.NoError(t, h.GetReports(c))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "pothole")
}

func TestGetReportsFilteredByUser(t *testing.T) {
	reportRepo := newStubReportRepo()
	mineID := reportRepo.addReport(7)
	otherID := reportRepo.addReport(8)
	h := NewReportHandler(reportRepo, nil, nil)

	c, rec := reportsContext("?user_id=7")
	require.NoError(t, h.GetReports(c))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), mineID)
	assert.NotContains(t, rec.Body.String(), otherID)
}

func TestGetReportsInvalidUserFilter(t *testing.T) {
	h := NewReportHandler(newStubReportRepo(), nil, nil)

	c, _ := reportsContext("?user_id=abc")
	err := h.GetReports(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}
