package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/schedly/course-planner-api/internal/models"
	"github.com/schedly/course-planner-api/internal/service"
	appErrors "github.com/schedly/course-planner-api/pkg/errors"
	"github.com/schedly/course-planner-api/pkg/response"
)

// CatalogHandler exposes catalog browsing and filtering.
type CatalogHandler struct {
	catalog *service.CatalogService
	filter  *service.FilterService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService, filter *service.FilterService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, filter: filter}
}

// List godoc
// @Summary Browse the course catalog
// @Tags Catalog
// @Produce json
// @Param search query string false "Substring match on id or title"
// @Param term query int false "Filter by term (0 = term-independent)"
// @Param days query string false "Comma-separated day names, OR-matched"
// @Param fields query string false "Comma-separated field labels, OR-matched"
// @Param min_from_time query string false "Earliest acceptable start time HH:MM"
// @Param hide_conflicting query bool false "Exclude courses conflicting with the selection"
// @Success 200 {object} response.Envelope
// @Router /catalog [get]
func (h *CatalogHandler) List(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	courses := h.filter.Evaluate(criteria)
	response.JSON(c, http.StatusOK, courses, nil, map[string]interface{}{
		"catalog_loaded": h.catalog.Loaded(),
	})
}

// Get godoc
// @Summary Course details
// @Tags Catalog
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/courses/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	course, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "course not found"))
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Fields godoc
// @Summary Field-of-study filter vocabulary
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/fields [get]
func (h *CatalogHandler) Fields(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.catalog.FieldOptions(), nil)
}

// Available godoc
// @Summary Courses not yet picked in any term
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/available [get]
func (h *CatalogHandler) Available(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.filter.AvailableForPicking(), nil)
}

func parseCriteria(c *gin.Context) (models.FilterCriteria, error) {
	criteria := models.FilterCriteria{
		Search:          c.Query("search"),
		HideConflicting: c.Query("hide_conflicting") == "true",
	}

	if raw := c.Query("term"); raw != "" {
		term, err := strconv.Atoi(raw)
		if err != nil {
			return criteria, appErrors.Clone(appErrors.ErrValidation, "term must be an integer")
		}
		criteria.Term = &term
	}

	if raw := c.Query("days"); raw != "" {
		criteria.Days = make(map[models.Day]struct{})
		for _, part := range strings.Split(raw, ",") {
			day := models.Day(strings.TrimSpace(part))
			if !day.Valid() {
				return criteria, appErrors.Clone(appErrors.ErrValidation, "unknown day name: "+string(day))
			}
			criteria.Days[day] = struct{}{}
		}
	}

	if raw, ok := c.GetQuery("fields"); ok {
		fields := make(map[string]struct{})
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				fields[trimmed] = struct{}{}
			}
		}
		if raw == "" {
			// A bare fields= selects the courses that carry no label.
			fields[""] = struct{}{}
		}
		if len(fields) > 0 {
			criteria.Fields = fields
		}
	}

	if raw := c.Query("min_from_time"); raw != "" {
		min, err := models.ParseMinute(raw)
		if err != nil {
			return criteria, appErrors.Clone(appErrors.ErrValidation, "min_from_time must be HH:MM")
		}
		criteria.MinFromTime = &min
	}

	return criteria, nil
}
