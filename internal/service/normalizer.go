package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/schedly/course-planner-api/internal/dto"
	"github.com/schedly/course-planner-api/internal/models"
)

// UnknownCourseID replaces ids the upstream feed failed to supply.
const UnknownCourseID = "Unknown ID"

// Normalizer turns raw heterogeneous catalog records into validated
// CourseRecords. Malformed records degrade instead of being dropped: a
// record with any invalid schedule entry keeps an empty schedule so it
// stays browsable but contributes no overlap or layout obligations.
type Normalizer struct {
	collator *collate.Collator
	logger   *zap.Logger
}

// NewNormalizer constructs a normalizer.
func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{
		collator: collate.New(language.English, collate.Loose),
		logger:   logger,
	}
}

// NormalizeAll validates every record and returns the catalog sorted by
// title in locale-aware order.
func (n *Normalizer) NormalizeAll(raw []dto.RawCourseRecord) []models.CourseRecord {
	records := make([]models.CourseRecord, 0, len(raw))
	for _, r := range raw {
		records = append(records, n.Normalize(r))
	}
	sort.SliceStable(records, func(i, j int) bool {
		return n.collator.CompareString(records[i].Title, records[j].Title) < 0
	})
	return records
}

// Normalize coerces and validates one raw record.
func (n *Normalizer) Normalize(raw dto.RawCourseRecord) models.CourseRecord {
	record := models.CourseRecord{
		ID:        coerceID(raw.ID),
		Title:     strings.TrimSpace(raw.Title),
		Term:      coerceTerm(raw.Term),
		StartDate: parseDate(raw.StartDate),
		EndDate:   parseDate(raw.EndDate),
		URL:       strings.TrimSpace(raw.URL),
	}

	for _, f := range raw.Fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			record.Fields = append(record.Fields, trimmed)
		}
	}

	schedule, err := normalizeSchedule(raw.Schedule)
	if err != nil {
		n.logger.Warn("degrading malformed course record",
			zap.String("course_id", record.ID),
			zap.Error(err))
		record.Schedule = nil
		return record
	}
	if record.Title == "" {
		// Structural failure: the record stays visible but carries no
		// schedule obligations.
		n.logger.Warn("course record missing title", zap.String("course_id", record.ID))
		record.Schedule = nil
		return record
	}
	record.Schedule = schedule
	return record
}

// normalizeSchedule validates all entries or none: a single invalid
// entry invalidates the whole schedule.
func normalizeSchedule(raw []dto.RawTimeSlot) ([]models.TimeSlot, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	slots := make([]models.TimeSlot, 0, len(raw))
	for i, entry := range raw {
		day := models.Day(strings.TrimSpace(entry.Day))
		if !day.Valid() {
			return nil, fmt.Errorf("entry %d: unknown day %q", i, entry.Day)
		}
		from, err := models.ParseMinute(strings.TrimSpace(entry.FromTime))
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		to, err := models.ParseMinute(strings.TrimSpace(entry.ToTime))
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if from >= to {
			return nil, fmt.Errorf("entry %d: from %s not before to %s", i, from, to)
		}
		location := strings.TrimSpace(entry.Location)
		if location == "" {
			return nil, fmt.Errorf("entry %d: empty location", i)
		}
		slots = append(slots, models.TimeSlot{Day: day, FromTime: from, ToTime: to, Location: location})
	}
	return slots, nil
}

// FieldVocabulary derives the distinct field labels across the catalog
// for the browse filter dropdown. Labels in the priority prefix come
// first in their configured order, the rest follow lexically. Courses
// without labels contribute the empty label so they stay filterable.
func (n *Normalizer) FieldVocabulary(catalog []models.CourseRecord, priority []string) []string {
	seen := make(map[string]struct{})
	for _, course := range catalog {
		if len(course.Fields) == 0 {
			seen[""] = struct{}{}
			continue
		}
		for _, f := range course.Fields {
			seen[f] = struct{}{}
		}
	}

	result := make([]string, 0, len(seen))
	for _, p := range priority {
		if _, ok := seen[p]; ok {
			result = append(result, p)
			delete(seen, p)
		}
	}

	rest := make([]string, 0, len(seen))
	for f := range seen {
		rest = append(rest, f)
	}
	sort.Slice(rest, func(i, j int) bool {
		return n.collator.CompareString(rest[i], rest[j]) < 0
	})

	return append(result, rest...)
}

func coerceID(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return UnknownCourseID
}

func coerceTerm(raw interface{}) int {
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return models.TermIndependent
}

func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}
