package dto

// AddCourseRequest asks the selection store to pick a catalog course.
// The term is resolved from the catalog record, never trusted from the
// client.
type AddCourseRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

// SelectionTermView is one term's picked courses in insertion order.
type SelectionTermView struct {
	Term    int              `json:"term"`
	Courses []SelectedCourse `json:"courses"`
}

// SelectedCourse is the list-item projection of a picked course.
type SelectedCourse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Term  int    `json:"term"`
}
