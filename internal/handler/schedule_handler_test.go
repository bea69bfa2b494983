package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedly/course-planner-api/internal/models"
	"github.com/schedly/course-planner-api/internal/service"
	"github.com/schedly/course-planner-api/pkg/export"
)

func newScheduleHandler(t *testing.T) (*ScheduleHandler, *service.CatalogService, *service.SelectionService) {
	t.Helper()
	catalog, selection, _ := testServices(t)
	layout := service.NewLayoutService(catalog, selection, nil)
	exportSvc := service.NewExportService(catalog, selection, layout, "My Schedule", "Weekly Schedule", nil)
	return NewScheduleHandler(layout, exportSvc), catalog, selection
}

func TestScheduleHandlerLayout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, catalog, selection := newScheduleHandler(t)

	math, ok := catalog.Get("MATH101")
	require.True(t, ok)
	selection.Add(context.Background(), math)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedule/terms/1/layout", nil)
	c.Params = gin.Params{{Key: "term", Value: "1"}}

	h.Layout(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var placements []models.SlotPlacement
	require.NoError(t, json.Unmarshal(envelope.Data, &placements))
	require.Len(t, placements, 1)
	assert.Equal(t, "MATH101", placements[0].CourseID)
	assert.Equal(t, 1, placements[0].DayColumn)
}

func TestScheduleHandlerLayoutBadTerm(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, _ := newScheduleHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedule/terms/x/layout", nil)
	c.Params = gin.Params{{Key: "term", Value: "x"}}

	h.Layout(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleHandlerExportICS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, _ := newScheduleHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedule/export/ics", nil)

	h.ExportICS(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "schedule.ics")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "BEGIN:VCALENDAR"))
}

func TestScheduleHandlerImportICS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, _ := newScheduleHandler(t)

	doc := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"UID:uid-1",
		"SUMMARY:Calculus I",
		"DTSTART:20261018T090000",
		"DTEND:20261018T103000",
		"RRULE:FREQ=WEEKLY;BYDAY=SU;UNTIL=20270122T000000Z",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedule/import/ics", strings.NewReader(doc))

	h.ImportICS(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var events []export.Event
	require.NoError(t, json.Unmarshal(envelope.Data, &events))
	require.Len(t, events, 1)
	assert.Equal(t, "Calculus I", events[0].Summary)
	assert.Equal(t, "SU", events[0].RepeatDay)
}

func TestScheduleHandlerExportPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, catalog, selection := newScheduleHandler(t)

	math, _ := catalog.Get("MATH101")
	selection.Add(context.Background(), math)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedule/terms/1/export/pdf", nil)
	c.Params = gin.Params{{Key: "term", Value: "1"}}

	h.ExportPDF(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestScheduleHandlerExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, catalog, selection := newScheduleHandler(t)

	math, _ := catalog.Get("MATH101")
	selection.Add(context.Background(), math)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedule/export/csv", nil)

	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "MATH101")
}
