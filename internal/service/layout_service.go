package service

import (
	"math"

	"go.uber.org/zap"

	"github.com/schedly/course-planner-api/internal/models"
	"github.com/schedly/course-planner-api/internal/overlap"
)

// LayoutService converts the picked time slots of a term into grid
// placements. Slots colliding in time share a group and split their day
// column side by side.
type LayoutService struct {
	catalog   *CatalogService
	selection *SelectionService
	logger    *zap.Logger
}

// NewLayoutService constructs the service.
func NewLayoutService(catalog *CatalogService, selection *SelectionService, logger *zap.Logger) *LayoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LayoutService{catalog: catalog, selection: selection, logger: logger}
}

type layoutPair struct {
	course models.CourseRecord
	slot   models.TimeSlot
}

// VisibleCourses returns the courses shown for a term: the term's own
// picks followed by the term-independent ones, in insertion order.
func (s *LayoutService) VisibleCourses(term int) []models.CourseRecord {
	ids := s.selection.TermList(term)
	if term != models.TermIndependent {
		ids = append(ids, s.selection.TermList(models.TermIndependent)...)
	}

	courses := make([]models.CourseRecord, 0, len(ids))
	for _, id := range ids {
		course, ok := s.catalog.Get(id)
		if !ok {
			s.logger.Debug("picked course missing from catalog", zap.String("course_id", id))
			continue
		}
		courses = append(courses, course)
	}
	return courses
}

// Layout produces one placement per visible time slot of the term.
//
// Grouping is greedy first-match-wins in input order: a slot joins the
// first existing group holding any slot it collides with, regardless of
// term (only one term is on screen at a time, so term compatibility
// does not gate the visual clustering). With chains like A-B and B-C
// overlapping but not A-C the split therefore depends on input order;
// this matches the selection list's first-picked-first-shown behavior.
func (s *LayoutService) Layout(term int) []models.SlotPlacement {
	var pairs []layoutPair
	for _, course := range s.VisibleCourses(term) {
		for _, slot := range course.Schedule {
			pairs = append(pairs, layoutPair{course: course, slot: slot})
		}
	}

	var groups [][]int
	for i, pair := range pairs {
		joined := false
		for g, members := range groups {
			for _, m := range members {
				if overlap.Slots(pairs[m].slot, pair.slot) {
					groups[g] = append(groups[g], i)
					joined = true
					break
				}
			}
			if joined {
				break
			}
		}
		if !joined {
			groups = append(groups, []int{i})
		}
	}

	placements := make([]models.SlotPlacement, 0, len(pairs))
	for g, members := range groups {
		size := len(members)
		for order, idx := range members {
			pair := pairs[idx]
			placements = append(placements, models.SlotPlacement{
				CourseID:       pair.course.ID,
				CourseTitle:    pair.course.Title,
				Slot:           pair.slot,
				DayColumn:      pair.slot.Day.Column(),
				StartRow:       gridRow(pair.slot.FromTime),
				EndRow:         gridRow(pair.slot.ToTime),
				WidthFraction:  1 / float64(size),
				OffsetFraction: float64(order) / float64(size),
				Group:          g,
			})
		}
	}
	return placements
}

// gridRow maps a wall-clock time onto the 1-based 15-minute row grid
// anchored at the base hour.
func gridRow(t models.Minute) int {
	return int(math.Floor((t.Hours()-models.GridBaseHour)*models.GridRowsPerHour)) + 1
}
