package dto

// RawTimeSlot is one meeting entry exactly as the upstream source ships
// it. Times are free-form strings until the normalizer validates them.
type RawTimeSlot struct {
	Day      string `json:"day" yaml:"day" db:"day"`
	FromTime string `json:"from_time" yaml:"from_time" db:"from_time"`
	ToTime   string `json:"to_time" yaml:"to_time" db:"to_time"`
	Location string `json:"location" yaml:"location" db:"location"`
}

// RawCourseRecord is an unvalidated catalog entry. The upstream feed is
// heterogeneous: ids arrive as strings or numbers, terms as anything,
// dates as RFC 3339 or plain YYYY-MM-DD.
type RawCourseRecord struct {
	ID        interface{}   `json:"id" yaml:"id"`
	Title     string        `json:"title" yaml:"title"`
	Term      interface{}   `json:"term" yaml:"term"`
	Fields    []string      `json:"fields" yaml:"fields"`
	Schedule  []RawTimeSlot `json:"schedule" yaml:"schedule"`
	StartDate string        `json:"start_date" yaml:"start_date"`
	EndDate   string        `json:"end_date" yaml:"end_date"`
	URL       string        `json:"url" yaml:"url"`
}
