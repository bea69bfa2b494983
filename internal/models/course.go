package models

import "time"

// Day is a weekday on the planning grid. The grid covers the five-day
// teaching week Sunday through Thursday.
type Day string

const (
	DaySunday    Day = "Sunday"
	DayMonday    Day = "Monday"
	DayTuesday   Day = "Tuesday"
	DayWednesday Day = "Wednesday"
	DayThursday  Day = "Thursday"
)

// WeekDays lists the grid days in column order (Sunday first).
var WeekDays = []Day{DaySunday, DayMonday, DayTuesday, DayWednesday, DayThursday}

// Valid reports whether the day belongs to the five-day grid.
func (d Day) Valid() bool {
	for _, day := range WeekDays {
		if day == d {
			return true
		}
	}
	return false
}

// Column returns the 1-based grid column for the day, or 0 when the day is
// not part of the grid.
func (d Day) Column() int {
	for i, day := range WeekDays {
		if day == d {
			return i + 1
		}
	}
	return 0
}

// TermIndependent is the reserved term value for courses that run across
// every concrete term (yearly and summer courses).
const TermIndependent = 0

// TimeSlot is one weekly recurring meeting of a course.
type TimeSlot struct {
	Day      Day    `json:"day"`
	FromTime Minute `json:"from_time"`
	ToTime   Minute `json:"to_time"`
	Location string `json:"location"`
}

// CourseRecord is a pickable course section after normalization. Records
// that failed structural validation keep an empty Schedule but remain in
// the catalog.
type CourseRecord struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Term      int        `json:"term"`
	Fields    []string   `json:"fields"`
	Schedule  []TimeSlot `json:"schedule"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	URL       string     `json:"url,omitempty"`
}

// HasField reports whether the course carries the given category label.
// The empty label matches courses with no labels at all.
func (c CourseRecord) HasField(field string) bool {
	if field == "" {
		return len(c.Fields) == 0
	}
	for _, f := range c.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// FilterCriteria is the transient browse query. Days and Fields are
// OR-matched within themselves; all dimensions are AND-combined.
type FilterCriteria struct {
	Search          string
	Term            *int
	Days            map[Day]struct{}
	Fields          map[string]struct{}
	MinFromTime     *Minute
	HideConflicting bool
}

// Pagination mirrors the response envelope's paging block.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
