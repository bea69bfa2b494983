package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/schedly/course-planner-api/internal/service"
	appErrors "github.com/schedly/course-planner-api/pkg/errors"
	"github.com/schedly/course-planner-api/pkg/response"
)

// ScheduleHandler exposes the weekly grid layout and the export surface.
type ScheduleHandler struct {
	layout *service.LayoutService
	export *service.ExportService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(layout *service.LayoutService, export *service.ExportService) *ScheduleHandler {
	return &ScheduleHandler{layout: layout, export: export}
}

// Layout godoc
// @Summary Grid placements for a term
// @Tags Schedule
// @Produce json
// @Param term path int true "Term"
// @Success 200 {object} response.Envelope
// @Router /schedule/terms/{term}/layout [get]
func (h *ScheduleHandler) Layout(c *gin.Context) {
	term, err := strconv.Atoi(c.Param("term"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "term must be an integer"))
		return
	}
	placements := h.layout.Layout(term)
	response.JSON(c, http.StatusOK, placements, nil)
}

// ExportICS godoc
// @Summary Export the picked schedule as iCalendar text
// @Tags Schedule
// @Produce plain
// @Success 200 {string} string "text/calendar payload"
// @Router /schedule/export/ics [get]
func (h *ScheduleHandler) ExportICS(c *gin.Context) {
	payload := h.export.RenderICS()
	c.Header("Content-Disposition", `attachment; filename="schedule.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", payload)
}

// ImportICS godoc
// @Summary Parse previously exported calendar text back into events
// @Tags Schedule
// @Accept plain
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule/import/ics [post]
func (h *ScheduleHandler) ImportICS(c *gin.Context) {
	events, err := h.export.ParseICS(c.Request.Body)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid calendar payload"))
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// ExportPDF godoc
// @Summary Export a term's weekly grid as PDF
// @Tags Schedule
// @Produce application/pdf
// @Param term path int true "Term"
// @Success 200 {string} string "application/pdf payload"
// @Router /schedule/terms/{term}/export/pdf [get]
func (h *ScheduleHandler) ExportPDF(c *gin.Context) {
	term, err := strconv.Atoi(c.Param("term"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "term must be an integer"))
		return
	}
	payload, err := h.export.RenderGridPDF(term)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="schedule-term-%d.pdf"`, term))
	c.Data(http.StatusOK, "application/pdf", payload)
}

// ExportCSV godoc
// @Summary Export the picked course list as CSV
// @Tags Schedule
// @Produce text/csv
// @Success 200 {string} string "text/csv payload"
// @Router /schedule/export/csv [get]
func (h *ScheduleHandler) ExportCSV(c *gin.Context) {
	payload, err := h.export.RenderSelectionCSV()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="selection.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}
