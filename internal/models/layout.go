package models

// Grid geometry: five day columns, rows of fifteen minutes, first
// displayed hour 09:00 and last labelled hour 19:00.
const (
	GridBaseHour    = 9
	GridLastHour    = 19
	GridRowsPerHour = 4
)

// SlotPlacement positions one visible time slot on the weekly grid.
// Slots whose times overlap share a group and split the day column:
// each gets WidthFraction = 1/groupSize and an offset by join order.
type SlotPlacement struct {
	CourseID       string   `json:"course_id"`
	CourseTitle    string   `json:"course_title"`
	Slot           TimeSlot `json:"slot"`
	DayColumn      int      `json:"day_column"`
	StartRow       int      `json:"start_row"`
	EndRow         int      `json:"end_row"`
	WidthFraction  float64  `json:"width_fraction"`
	OffsetFraction float64  `json:"offset_fraction"`
	Group          int      `json:"group"`
}
