package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedly/course-planner-api/internal/dto"
)

func exportFixture(t *testing.T) (*ExportService, *CatalogService, *SelectionService) {
	t.Helper()
	records := []dto.RawCourseRecord{
		{
			ID: "MATH101", Title: "Calculus I", Term: 1,
			Fields: []string{"Mathematics"},
			Schedule: []dto.RawTimeSlot{
				rawSlot("Sunday", "09:00", "10:30"),
				rawSlot("Tuesday", "09:00", "10:30"),
			},
			StartDate: "2026-10-18",
			EndDate:   "2027-01-22",
		},
		{
			ID: "SEM1", Title: "Research Seminar", Term: 1,
			// No recurrence window, so no calendar events.
			Schedule: []dto.RawTimeSlot{rawSlot("Monday", "16:00", "18:00")},
		},
	}
	catalog := NewCatalogService(&catalogSourceStub{records: records}, nil, nil, nil)
	require.NoError(t, catalog.Load(context.Background()))
	selection := NewSelectionService(&snapshotStoreStub{}, time.Hour, nil)
	layout := NewLayoutService(catalog, selection, nil)
	svc := NewExportService(catalog, selection, layout, "My Schedule", "Weekly Schedule", nil)
	return svc, catalog, selection
}

func TestRenderICS(t *testing.T) {
	svc, catalog, selection := exportFixture(t)
	pick(t, catalog, selection, "MATH101")
	pick(t, catalog, selection, "SEM1")

	raw := svc.RenderICS()

	events, err := svc.ParseICS(bytes.NewReader(raw))
	require.NoError(t, err)
	// MATH101 yields one event per meeting; SEM1 has no window and is
	// skipped.
	require.Len(t, events, 2)

	sunday := events[0]
	assert.Equal(t, "Calculus I - Mathematics", sunday.Summary)
	assert.Equal(t, "Course ID: MATH101", sunday.Description)
	assert.Equal(t, "Hall 3", sunday.Location)
	assert.Equal(t, "SU", sunday.RepeatDay)
	// 2026-10-18 is a Sunday, so the first occurrence is the window
	// start itself.
	assert.Equal(t, time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC), sunday.Start)
	assert.Equal(t, time.Date(2026, 10, 18, 10, 30, 0, 0, time.UTC), sunday.End)
	assert.Equal(t, time.Date(2027, 1, 22, 0, 0, 0, 0, time.UTC), sunday.Until)
	assert.NotEmpty(t, sunday.UID)

	tuesday := events[1]
	assert.Equal(t, "TU", tuesday.RepeatDay)
	// The Tuesday meeting first occurs two days into the window.
	assert.Equal(t, time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC), tuesday.Start)
	assert.NotEqual(t, sunday.UID, tuesday.UID)
}

func TestRenderICSEmptySelection(t *testing.T) {
	svc, _, _ := exportFixture(t)

	events, err := svc.ParseICS(bytes.NewReader(svc.RenderICS()))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRenderSelectionCSV(t *testing.T) {
	svc, catalog, selection := exportFixture(t)
	pick(t, catalog, selection, "MATH101")
	pick(t, catalog, selection, "SEM1")

	raw, err := svc.RenderSelectionCSV()
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Term", "ID", "Title", "Day", "From", "To", "Location"}, rows[0])
	assert.Equal(t, []string{"1", "MATH101", "Calculus I", "Sunday", "09:00", "10:30", "Hall 3"}, rows[1])
	assert.Equal(t, []string{"1", "MATH101", "Calculus I", "Tuesday", "09:00", "10:30", "Hall 3"}, rows[2])
	assert.Equal(t, "SEM1", rows[3][1])
}

func TestRenderGridPDF(t *testing.T) {
	svc, catalog, selection := exportFixture(t)
	pick(t, catalog, selection, "MATH101")

	raw, err := svc.RenderGridPDF(1)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}
