package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/schedly/course-planner-api/internal/models"
	"github.com/schedly/course-planner-api/internal/overlap"
)

// FilterService evaluates browse criteria against the catalog. All
// dimensions AND together; the days and fields sets OR within
// themselves.
type FilterService struct {
	catalog   *CatalogService
	selection *SelectionService
	logger    *zap.Logger
}

// NewFilterService constructs the service.
func NewFilterService(catalog *CatalogService, selection *SelectionService, logger *zap.Logger) *FilterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FilterService{catalog: catalog, selection: selection, logger: logger}
}

// Evaluate returns the catalog courses matching the criteria.
func (s *FilterService) Evaluate(criteria models.FilterCriteria) []models.CourseRecord {
	search := strings.ToLower(strings.TrimSpace(criteria.Search))

	result := []models.CourseRecord{}
	for _, course := range s.catalog.Courses() {
		if !matchesSearch(course, search) {
			continue
		}
		if criteria.Term != nil && course.Term != *criteria.Term {
			continue
		}
		if !matchesDays(course, criteria.Days) {
			continue
		}
		if !matchesFields(course, criteria.Fields) {
			continue
		}
		if !matchesMinFromTime(course, criteria.MinFromTime) {
			continue
		}
		if criteria.HideConflicting && s.ConflictsWithSelection(course) {
			continue
		}
		result = append(result, course)
	}
	return result
}

// AvailableForPicking returns the catalog courses not yet picked in any
// term list, the source for the quick-search box.
func (s *FilterService) AvailableForPicking() []models.CourseRecord {
	result := []models.CourseRecord{}
	for _, course := range s.catalog.Courses() {
		if s.selection.Contains(course.ID) {
			continue
		}
		result = append(result, course)
	}
	return result
}

// ConflictsWithSelection reports whether any meeting of the candidate
// collides with any meeting of any picked course, across every term
// list, honoring term compatibility.
func (s *FilterService) ConflictsWithSelection(candidate models.CourseRecord) bool {
	for _, term := range s.selection.Terms() {
		for _, id := range s.selection.TermList(term) {
			picked, ok := s.catalog.Get(id)
			if !ok {
				continue
			}
			if overlap.CourseConflicts(candidate, picked) {
				return true
			}
		}
	}
	return false
}

func matchesSearch(course models.CourseRecord, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(course.ID), search) ||
		strings.Contains(strings.ToLower(course.Title), search)
}

func matchesDays(course models.CourseRecord, days map[models.Day]struct{}) bool {
	if len(days) == 0 {
		return true
	}
	for _, slot := range course.Schedule {
		if _, ok := days[slot.Day]; ok {
			return true
		}
	}
	return false
}

func matchesFields(course models.CourseRecord, fields map[string]struct{}) bool {
	if len(fields) == 0 {
		return true
	}
	for field := range fields {
		if course.HasField(field) {
			return true
		}
	}
	return false
}

func matchesMinFromTime(course models.CourseRecord, min *models.Minute) bool {
	if min == nil {
		return true
	}
	for _, slot := range course.Schedule {
		if slot.FromTime >= *min {
			return true
		}
	}
	return false
}
