// Package overlap holds the pure conflict predicates shared by the filter
// engine and the calendar layout engine.
package overlap

import "github.com/schedly/course-planner-api/internal/models"

// Slots reports whether two meetings collide on the grid: same day and
// intersecting half-open time ranges. A slot ending exactly when another
// starts does not collide.
func Slots(a, b models.TimeSlot) bool {
	if a.Day != b.Day {
		return false
	}
	return a.FromTime < b.ToTime && a.ToTime > b.FromTime
}

// TermsCompatible reports whether two terms can meet in the same week.
// The reserved term-independent value is active in every concrete term.
func TermsCompatible(a, b int) bool {
	return a == b || a == models.TermIndependent || b == models.TermIndependent
}

// Conflicts is the full scheduling predicate: the slots collide and their
// owning terms are compatible. It is symmetric in its pairs.
func Conflicts(a models.TimeSlot, aTerm int, b models.TimeSlot, bTerm int) bool {
	return TermsCompatible(aTerm, bTerm) && Slots(a, b)
}

// CourseConflicts reports whether any meeting of a collides with any
// meeting of b, honoring term compatibility.
func CourseConflicts(a, b models.CourseRecord) bool {
	for _, sa := range a.Schedule {
		for _, sb := range b.Schedule {
			if Conflicts(sa, a.Term, sb, b.Term) {
				return true
			}
		}
	}
	return false
}
