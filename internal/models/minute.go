package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// Minute is a wall-clock time expressed as minutes since midnight. It
// marshals as an HH:MM string, which is the only time format the API
// speaks. No timezone is modelled.
type Minute int

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ParseMinute converts an HH:MM string into minutes since midnight.
func ParseMinute(s string) (Minute, error) {
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return Minute(hours*60 + minutes), nil
}

// Hours returns the time as fractional hours (14:30 -> 14.5).
func (m Minute) Hours() float64 {
	return float64(m) / 60
}

// String formats the time as HH:MM.
func (m Minute) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// MarshalJSON encodes the time as an HH:MM string.
func (m Minute) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes an HH:MM string.
func (m *Minute) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseMinute(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
