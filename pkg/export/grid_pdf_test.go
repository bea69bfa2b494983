package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedly/course-planner-api/internal/models"
)

func gridPlacement(day, startRow, endRow int) models.SlotPlacement {
	return models.SlotPlacement{
		CourseID:    "MATH101",
		CourseTitle: "Calculus I",
		Slot: models.TimeSlot{
			Day:      models.WeekDays[day-1],
			FromTime: models.Minute(9 * 60),
			ToTime:   models.Minute(10*60 + 30),
			Location: "Hall 3",
		},
		DayColumn:     day,
		StartRow:      startRow,
		EndRow:        endRow,
		WidthFraction: 1,
	}
}

func TestGridPDFExporterRender(t *testing.T) {
	exporter := NewGridPDFExporter()

	raw, err := exporter.Render([]models.SlotPlacement{gridPlacement(1, 1, 7)}, "Term 1")
	require.NoError(t, err)
	assert.True(t, len(raw) > 4 && string(raw[:4]) == "%PDF")
}

func TestClipRows(t *testing.T) {
	maxRow := (models.GridLastHour-models.GridBaseHour+1)*models.GridRowsPerHour + 1

	tests := []struct {
		name        string
		start, end  int
		wantStart   int
		wantEnd     int
		wantVisible bool
	}{
		{"inside the grid", 1, 7, 1, 7, true},
		{"starts before first grid hour", -3, 5, 1, 5, true},
		{"runs past last grid hour", maxRow - 2, maxRow + 8, maxRow - 2, maxRow, true},
		{"entirely above the grid", -6, -2, 1, -2, false},
		{"zero height", 5, 5, 5, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, visible := clipRows(tt.start, tt.end, maxRow)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			assert.Equal(t, tt.wantVisible, visible)
		})
	}
}

func TestGridPDFExporterRendersClippedPlacements(t *testing.T) {
	exporter := NewGridPDFExporter()

	placements := []models.SlotPlacement{
		gridPlacement(1, -3, 5),
		gridPlacement(2, -6, -2),
	}
	placements[1].DayColumn = len(models.WeekDays) + 1

	raw, err := exporter.Render(placements, "Term 1")
	require.NoError(t, err)
	assert.True(t, len(raw) > 4 && string(raw[:4]) == "%PDF")
}
