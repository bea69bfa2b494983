package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/schedly/course-planner-api/internal/dto"
	"github.com/schedly/course-planner-api/internal/models"
	appErrors "github.com/schedly/course-planner-api/pkg/errors"
)

// CatalogSource supplies the raw course records. It is the single
// asynchronous boundary of the system: fetched once at startup.
type CatalogSource interface {
	Fetch(ctx context.Context) ([]dto.RawCourseRecord, error)
}

// CatalogService owns the normalized course catalog and the derived
// field vocabulary. Until Load succeeds the catalog is empty and every
// downstream component degrades to empty results.
type CatalogService struct {
	source     CatalogSource
	normalizer *Normalizer
	priority   []string
	logger     *zap.Logger

	mu      sync.RWMutex
	courses []models.CourseRecord
	byID    map[string]models.CourseRecord
	fields  []string
	loaded  bool
}

// NewCatalogService constructs the service.
func NewCatalogService(source CatalogSource, normalizer *Normalizer, priorityFields []string, logger *zap.Logger) *CatalogService {
	if normalizer == nil {
		normalizer = NewNormalizer(logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		source:     source,
		normalizer: normalizer,
		priority:   priorityFields,
		logger:     logger,
		byID:       make(map[string]models.CourseRecord),
	}
}

// Load fetches and normalizes the catalog. A failed fetch leaves the
// catalog empty; the session continues without it.
func (s *CatalogService) Load(ctx context.Context) error {
	if s.source == nil {
		return appErrors.Clone(appErrors.ErrCatalogUnavailable, "no catalog source configured")
	}

	raw, err := s.source.Fetch(ctx)
	if err != nil {
		s.logger.Warn("catalog load failed, continuing with empty catalog", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrCatalogUnavailable.Code, appErrors.ErrCatalogUnavailable.Status, "catalog fetch failed")
	}

	courses := s.normalizer.NormalizeAll(raw)
	byID := make(map[string]models.CourseRecord, len(courses))
	for _, course := range courses {
		if _, dup := byID[course.ID]; dup {
			s.logger.Warn("duplicate course id in catalog", zap.String("course_id", course.ID))
			continue
		}
		byID[course.ID] = course
	}
	fields := s.normalizer.FieldVocabulary(courses, s.priority)

	s.mu.Lock()
	s.courses = courses
	s.byID = byID
	s.fields = fields
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("catalog loaded",
		zap.Int("courses", len(courses)),
		zap.Int("fields", len(fields)))
	return nil
}

// Courses returns the normalized catalog in title order.
func (s *CatalogService) Courses() []models.CourseRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CourseRecord, len(s.courses))
	copy(out, s.courses)
	return out
}

// Get looks up a course by id.
func (s *CatalogService) Get(id string) (models.CourseRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	course, ok := s.byID[id]
	return course, ok
}

// FieldOptions returns the filter vocabulary.
func (s *CatalogService) FieldOptions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.fields))
	copy(out, s.fields)
	return out
}

// Loaded reports whether the startup fetch has completed successfully.
func (s *CatalogService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
