package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/schedly/course-planner-api/internal/dto"
	"github.com/schedly/course-planner-api/internal/service"
	appErrors "github.com/schedly/course-planner-api/pkg/errors"
	"github.com/schedly/course-planner-api/pkg/response"
)

// SelectionHandler exposes the selection store mutations.
type SelectionHandler struct {
	catalog   *service.CatalogService
	selection *service.SelectionService
	metrics   *service.MetricsService
	validator *validator.Validate
}

// NewSelectionHandler constructs handler.
func NewSelectionHandler(catalog *service.CatalogService, selection *service.SelectionService, metrics *service.MetricsService, validate *validator.Validate) *SelectionHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &SelectionHandler{catalog: catalog, selection: selection, metrics: metrics, validator: validate}
}

// Get godoc
// @Summary Picked courses per term
// @Tags Selection
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /selection [get]
func (h *SelectionHandler) Get(c *gin.Context) {
	views := []dto.SelectionTermView{}
	for _, term := range h.selection.Terms() {
		view := dto.SelectionTermView{Term: term, Courses: []dto.SelectedCourse{}}
		for _, id := range h.selection.TermList(term) {
			item := dto.SelectedCourse{ID: id, Term: term}
			if course, ok := h.catalog.Get(id); ok {
				item.Title = course.Title
			}
			view.Courses = append(view.Courses, item)
		}
		views = append(views, view)
	}
	response.JSON(c, http.StatusOK, views, nil)
}

// Terms godoc
// @Summary Known terms
// @Tags Selection
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /terms [get]
func (h *SelectionHandler) Terms(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.selection.Terms(), nil)
}

// Add godoc
// @Summary Pick a course
// @Tags Selection
// @Accept json
// @Produce json
// @Param payload body dto.AddCourseRequest true "Course to pick"
// @Success 201 {object} response.Envelope
// @Router /selection/courses [post]
func (h *SelectionHandler) Add(c *gin.Context) {
	var req dto.AddCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	course, ok := h.catalog.Get(req.CourseID)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "course not found"))
		return
	}

	added := h.selection.Add(c.Request.Context(), course)
	if !added {
		response.JSON(c, http.StatusOK, course, nil, map[string]interface{}{"already_picked": true})
		return
	}
	h.metrics.RecordMutation("add")
	response.Created(c, course)
}

// Remove godoc
// @Summary Unpick a course from a term
// @Tags Selection
// @Param term path int true "Term"
// @Param id path string true "Course ID"
// @Success 204
// @Router /selection/terms/{term}/courses/{id} [delete]
func (h *SelectionHandler) Remove(c *gin.Context) {
	term, err := strconv.Atoi(c.Param("term"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "term must be an integer"))
		return
	}
	if h.selection.Remove(c.Request.Context(), c.Param("id"), term) {
		h.metrics.RecordMutation("remove")
	}
	response.NoContent(c)
}

// ClearTerm godoc
// @Summary Empty one term's picks
// @Tags Selection
// @Param term path int true "Term"
// @Success 204
// @Router /selection/terms/{term} [delete]
func (h *SelectionHandler) ClearTerm(c *gin.Context) {
	term, err := strconv.Atoi(c.Param("term"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "term must be an integer"))
		return
	}
	h.selection.ClearTerm(c.Request.Context(), term)
	h.metrics.RecordMutation("clear_term")
	response.NoContent(c)
}

// ClearAll godoc
// @Summary Empty every term's picks
// @Tags Selection
// @Success 204
// @Router /selection [delete]
func (h *SelectionHandler) ClearAll(c *gin.Context) {
	h.selection.ClearAll(c.Request.Context())
	h.metrics.RecordMutation("clear_all")
	response.NoContent(c)
}
