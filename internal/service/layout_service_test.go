package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedly/course-planner-api/internal/dto"
	"github.com/schedly/course-planner-api/internal/models"
)

func layoutFixture(t *testing.T, records ...dto.RawCourseRecord) (*LayoutService, *CatalogService, *SelectionService) {
	t.Helper()
	catalog := NewCatalogService(&catalogSourceStub{records: records}, nil, nil, nil)
	require.NoError(t, catalog.Load(context.Background()))
	selection := NewSelectionService(&snapshotStoreStub{}, time.Hour, nil)
	return NewLayoutService(catalog, selection, nil), catalog, selection
}

func pick(t *testing.T, catalog *CatalogService, selection *SelectionService, id string) {
	t.Helper()
	course, ok := catalog.Get(id)
	require.True(t, ok)
	require.True(t, selection.Add(context.Background(), course))
}

func placementFor(t *testing.T, placements []models.SlotPlacement, courseID string) models.SlotPlacement {
	t.Helper()
	for _, p := range placements {
		if p.CourseID == courseID {
			return p
		}
	}
	t.Fatalf("no placement for %s", courseID)
	return models.SlotPlacement{}
}

func TestLayoutOverlappingSlotsShareColumn(t *testing.T) {
	svc, catalog, selection := layoutFixture(t,
		rawCourse("A", "Algebra", 1, rawSlot("Sunday", "09:00", "10:00")),
		rawCourse("B", "Biology", 1, rawSlot("Sunday", "09:30", "10:30")),
	)
	pick(t, catalog, selection, "A")
	pick(t, catalog, selection, "B")

	placements := svc.Layout(1)
	require.Len(t, placements, 2)

	a := placementFor(t, placements, "A")
	b := placementFor(t, placements, "B")

	assert.Equal(t, a.Group, b.Group)
	assert.Equal(t, 1, a.DayColumn)
	assert.InDelta(t, 0.5, a.WidthFraction, 1e-9)
	assert.InDelta(t, 0.5, b.WidthFraction, 1e-9)
	assert.InDelta(t, 0.0, a.OffsetFraction, 1e-9)
	assert.InDelta(t, 0.5, b.OffsetFraction, 1e-9)
}

func TestLayoutDisjointSlotsKeepFullWidth(t *testing.T) {
	svc, catalog, selection := layoutFixture(t,
		rawCourse("A", "Algebra", 1, rawSlot("Sunday", "09:00", "10:00")),
		rawCourse("B", "Biology", 1, rawSlot("Sunday", "10:00", "11:00")),
		rawCourse("C", "Chemistry", 1, rawSlot("Monday", "09:00", "10:00")),
	)
	pick(t, catalog, selection, "A")
	pick(t, catalog, selection, "B")
	pick(t, catalog, selection, "C")

	placements := svc.Layout(1)
	require.Len(t, placements, 3)
	for _, p := range placements {
		assert.InDelta(t, 1.0, p.WidthFraction, 1e-9)
		assert.InDelta(t, 0.0, p.OffsetFraction, 1e-9)
	}
}

func TestLayoutGridRows(t *testing.T) {
	svc, catalog, selection := layoutFixture(t,
		rawCourse("A", "Algebra", 1, rawSlot("Tuesday", "09:00", "10:30")),
		rawCourse("B", "Biology", 1, rawSlot("Thursday", "13:15", "14:00")),
	)
	pick(t, catalog, selection, "A")
	pick(t, catalog, selection, "B")

	placements := svc.Layout(1)

	a := placementFor(t, placements, "A")
	assert.Equal(t, 3, a.DayColumn)
	assert.Equal(t, 1, a.StartRow)
	assert.Equal(t, 7, a.EndRow)

	b := placementFor(t, placements, "B")
	assert.Equal(t, 5, b.DayColumn)
	assert.Equal(t, 18, b.StartRow)
	assert.Equal(t, 21, b.EndRow)
}

func TestLayoutTermIndependentCoursesAppearInEveryTerm(t *testing.T) {
	svc, catalog, selection := layoutFixture(t,
		rawCourse("MATH", "Calculus", 1, rawSlot("Sunday", "09:00", "10:00")),
		rawCourse("YOGA", "Morning Yoga", 0, rawSlot("Wednesday", "08:00", "09:00")),
	)
	pick(t, catalog, selection, "MATH")
	pick(t, catalog, selection, "YOGA")

	term1 := svc.VisibleCourses(1)
	assert.Equal(t, []string{"MATH", "YOGA"}, ids(term1))

	term2 := svc.VisibleCourses(2)
	assert.Equal(t, []string{"YOGA"}, ids(term2))

	require.Len(t, svc.Layout(1), 2)
	require.Len(t, svc.Layout(2), 1)
}

func TestLayoutChainJoinsFirstMatchingGroup(t *testing.T) {
	svc, catalog, selection := layoutFixture(t,
		rawCourse("A", "Alpha", 1, rawSlot("Sunday", "09:00", "10:00")),
		rawCourse("B", "Beta", 1, rawSlot("Sunday", "09:30", "10:30")),
		rawCourse("C", "Gamma", 1, rawSlot("Sunday", "10:15", "11:15")),
	)
	pick(t, catalog, selection, "A")
	pick(t, catalog, selection, "B")
	pick(t, catalog, selection, "C")

	placements := svc.Layout(1)
	require.Len(t, placements, 3)

	// A and C do not collide, but both collide with B, so the chain
	// clusters into one group and every block takes a third.
	a := placementFor(t, placements, "A")
	b := placementFor(t, placements, "B")
	c := placementFor(t, placements, "C")
	assert.Equal(t, a.Group, b.Group)
	assert.Equal(t, b.Group, c.Group)
	assert.InDelta(t, 1.0/3.0, a.WidthFraction, 1e-9)
}

func TestLayoutCoversEveryVisibleSlot(t *testing.T) {
	svc, catalog, selection := layoutFixture(t,
		rawCourse("A", "Algebra", 1,
			rawSlot("Sunday", "09:00", "10:30"),
			rawSlot("Tuesday", "09:00", "10:30"),
		),
		rawCourse("B", "Biology", 1, rawSlot("Sunday", "10:00", "11:00")),
		rawCourse("Y", "Yearly", 0, rawSlot("Thursday", "16:00", "18:00")),
	)
	pick(t, catalog, selection, "A")
	pick(t, catalog, selection, "B")
	pick(t, catalog, selection, "Y")

	placements := svc.Layout(1)
	require.Len(t, placements, 4)

	sizes := make(map[int]int)
	for _, p := range placements {
		sizes[p.Group]++
	}
	for _, p := range placements {
		assert.InDelta(t, 1.0/float64(sizes[p.Group]), p.WidthFraction, 1e-9)
	}
}

func TestLayoutSkipsPicksMissingFromCatalog(t *testing.T) {
	svc, catalog, selection := layoutFixture(t,
		rawCourse("A", "Algebra", 1, rawSlot("Sunday", "09:00", "10:00")),
	)
	pick(t, catalog, selection, "A")
	selection.Add(context.Background(), models.CourseRecord{ID: "GONE", Term: 1})

	assert.Equal(t, []string{"A"}, ids(svc.VisibleCourses(1)))
	assert.Len(t, svc.Layout(1), 1)
}
