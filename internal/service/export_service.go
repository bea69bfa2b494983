package service

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schedly/course-planner-api/internal/models"
	"github.com/schedly/course-planner-api/pkg/export"
)

// byDayCodes maps grid days onto iCalendar BYDAY codes.
var byDayCodes = map[models.Day]string{
	models.DaySunday:    "SU",
	models.DayMonday:    "MO",
	models.DayTuesday:   "TU",
	models.DayWednesday: "WE",
	models.DayThursday:  "TH",
}

var dayWeekdays = map[models.Day]time.Weekday{
	models.DaySunday:    time.Sunday,
	models.DayMonday:    time.Monday,
	models.DayTuesday:   time.Tuesday,
	models.DayWednesday: time.Wednesday,
	models.DayThursday:  time.Thursday,
}

// ExportService turns the picked schedule into the collaborator formats:
// iCalendar text, the weekly grid as PDF and the picked list as CSV.
type ExportService struct {
	catalog   *CatalogService
	selection *SelectionService
	layout    *LayoutService
	ics       *export.ICSCodec
	pdf       *export.GridPDFExporter
	csv       *export.CSVExporter

	calendarName string
	pdfTitle     string
	logger       *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(catalog *CatalogService, selection *SelectionService, layout *LayoutService, calendarName, pdfTitle string, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		catalog:      catalog,
		selection:    selection,
		layout:       layout,
		ics:          export.NewICSCodec(),
		pdf:          export.NewGridPDFExporter(),
		csv:          export.NewCSVExporter(),
		calendarName: calendarName,
		pdfTitle:     pdfTitle,
		logger:       logger,
	}
}

// RenderICS produces an iCalendar document with one weekly recurring
// event per picked time slot across every term, each bounded by the
// owning course's recurrence window.
func (s *ExportService) RenderICS() []byte {
	var events []export.Event
	for _, term := range s.selection.Terms() {
		for _, id := range s.selection.TermList(term) {
			course, ok := s.catalog.Get(id)
			if !ok {
				continue
			}
			events = append(events, s.courseEvents(course)...)
		}
	}
	return s.ics.Render(events, s.calendarName)
}

// ParseICS reads previously exported calendar text back into events.
func (s *ExportService) ParseICS(r io.Reader) ([]export.Event, error) {
	return s.ics.Parse(r)
}

func (s *ExportService) courseEvents(course models.CourseRecord) []export.Event {
	if course.StartDate.IsZero() || course.EndDate.IsZero() {
		s.logger.Debug("course without recurrence window skipped in calendar export",
			zap.String("course_id", course.ID))
		return nil
	}

	summary := course.Title
	if len(course.Fields) > 0 {
		summary = fmt.Sprintf("%s - %s", course.Title, strings.Join(course.Fields, ", "))
	}

	events := make([]export.Event, 0, len(course.Schedule))
	for _, slot := range course.Schedule {
		first := firstOccurrence(course.StartDate, dayWeekdays[slot.Day])
		start := atMinute(first, slot.FromTime)
		end := atMinute(first, slot.ToTime)
		events = append(events, export.Event{
			UID:         uuid.New().String(),
			Summary:     summary,
			Description: "Course ID: " + course.ID,
			Location:    slot.Location,
			Start:       start,
			End:         end,
			RepeatDay:   byDayCodes[slot.Day],
			Until:       course.EndDate,
		})
	}
	return events
}

// RenderGridPDF draws the term's weekly grid into a PDF page.
func (s *ExportService) RenderGridPDF(term int) ([]byte, error) {
	placements := s.layout.Layout(term)
	title := fmt.Sprintf("%s - Term %d", s.pdfTitle, term)
	return s.pdf.Render(placements, title)
}

// RenderSelectionCSV lists every picked course, one row per meeting;
// courses without meetings get a single row with empty slot columns.
func (s *ExportService) RenderSelectionCSV() ([]byte, error) {
	data := export.Dataset{
		Headers: []string{"Term", "ID", "Title", "Day", "From", "To", "Location"},
	}
	for _, term := range s.selection.Terms() {
		for _, id := range s.selection.TermList(term) {
			course, ok := s.catalog.Get(id)
			if !ok {
				continue
			}
			base := map[string]string{
				"Term":  strconv.Itoa(course.Term),
				"ID":    course.ID,
				"Title": course.Title,
			}
			if len(course.Schedule) == 0 {
				data.Rows = append(data.Rows, base)
				continue
			}
			for _, slot := range course.Schedule {
				row := map[string]string{
					"Term":     base["Term"],
					"ID":       base["ID"],
					"Title":    base["Title"],
					"Day":      string(slot.Day),
					"From":     slot.FromTime.String(),
					"To":       slot.ToTime.String(),
					"Location": slot.Location,
				}
				data.Rows = append(data.Rows, row)
			}
		}
	}
	return s.csv.Render(data)
}

// firstOccurrence shifts the window start forward to the first date
// falling on the wanted weekday.
func firstOccurrence(start time.Time, weekday time.Weekday) time.Time {
	days := (int(weekday) - int(start.Weekday()) + 7) % 7
	return start.AddDate(0, 0, days)
}

func atMinute(date time.Time, m models.Minute) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(m)/60, int(m)%60, 0, 0, date.Location())
}
