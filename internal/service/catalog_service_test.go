package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedly/course-planner-api/internal/dto"
	appErrors "github.com/schedly/course-planner-api/pkg/errors"
)

type catalogSourceStub struct {
	records []dto.RawCourseRecord
	err     error
}

func (s *catalogSourceStub) Fetch(context.Context) ([]dto.RawCourseRecord, error) {
	return s.records, s.err
}

func rawCourse(id, title string, term int, slots ...dto.RawTimeSlot) dto.RawCourseRecord {
	return dto.RawCourseRecord{ID: id, Title: title, Term: term, Schedule: slots}
}

func loadedCatalog(t *testing.T, records ...dto.RawCourseRecord) *CatalogService {
	t.Helper()
	svc := NewCatalogService(&catalogSourceStub{records: records}, nil, nil, nil)
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func TestCatalogServiceLoad(t *testing.T) {
	svc := loadedCatalog(t,
		rawCourse("B1", "Biology", 1, rawSlot("Monday", "09:00", "10:00")),
		rawCourse("A1", "Algebra", 2),
	)

	assert.True(t, svc.Loaded())

	courses := svc.Courses()
	require.Len(t, courses, 2)
	assert.Equal(t, "Algebra", courses[0].Title)
	assert.Equal(t, "Biology", courses[1].Title)

	got, ok := svc.Get("B1")
	require.True(t, ok)
	assert.Equal(t, "Biology", got.Title)

	_, ok = svc.Get("missing")
	assert.False(t, ok)
}

func TestCatalogServiceLoadFailureLeavesCatalogEmpty(t *testing.T) {
	svc := NewCatalogService(&catalogSourceStub{err: errors.New("upstream down")}, nil, nil, nil)

	err := svc.Load(context.Background())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrCatalogUnavailable.Code, appErr.Code)

	assert.False(t, svc.Loaded())
	assert.Empty(t, svc.Courses())
	assert.Empty(t, svc.FieldOptions())
}

func TestCatalogServiceNoSourceConfigured(t *testing.T) {
	svc := NewCatalogService(nil, nil, nil, nil)
	assert.Error(t, svc.Load(context.Background()))
}

func TestCatalogServiceDropsDuplicateIDs(t *testing.T) {
	svc := loadedCatalog(t,
		rawCourse("X1", "First", 1),
		rawCourse("X1", "Second", 1),
	)

	// The catalog list keeps both rows; the id index keeps the first
	// occurrence in title order.
	assert.Len(t, svc.Courses(), 2)
	got, ok := svc.Get("X1")
	require.True(t, ok)
	assert.Equal(t, "First", got.Title)
}

func TestCatalogServiceFieldOptions(t *testing.T) {
	records := []dto.RawCourseRecord{
		{ID: "A", Title: "A", Term: 1, Fields: []string{"Physics"}},
		{ID: "B", Title: "B", Term: 1, Fields: []string{"Core"}},
		{ID: "C", Title: "C", Term: 1},
	}
	svc := NewCatalogService(&catalogSourceStub{records: records}, nil, []string{"Core"}, nil)
	require.NoError(t, svc.Load(context.Background()))

	assert.Equal(t, []string{"Core", "", "Physics"}, svc.FieldOptions())
}
