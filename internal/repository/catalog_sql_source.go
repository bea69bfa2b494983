package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/schedly/course-planner-api/internal/dto"
)

// CatalogSQLSource loads raw course records from a Postgres table. The
// fields and schedule columns hold JSON documents so the table mirrors
// the upstream feed one row per course.
type CatalogSQLSource struct {
	db *sqlx.DB
}

// NewCatalogSQLSource constructs a Postgres-backed catalog source.
func NewCatalogSQLSource(db *sqlx.DB) *CatalogSQLSource {
	return &CatalogSQLSource{db: db}
}

type catalogRow struct {
	ID        string         `db:"id"`
	Title     string         `db:"title"`
	Term      int            `db:"term"`
	Fields    []byte         `db:"fields"`
	Schedule  []byte         `db:"schedule"`
	StartDate sql.NullString `db:"start_date"`
	EndDate   sql.NullString `db:"end_date"`
	URL       sql.NullString `db:"url"`
}

// Fetch reads every course row and converts it into the raw record shape
// the normalizer expects.
func (s *CatalogSQLSource) Fetch(ctx context.Context) ([]dto.RawCourseRecord, error) {
	query := "SELECT id, title, term, fields, schedule, start_date, end_date, url FROM catalog_courses ORDER BY id"

	var rows []catalogRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list catalog courses: %w", err)
	}

	records := make([]dto.RawCourseRecord, 0, len(rows))
	for _, row := range rows {
		record := dto.RawCourseRecord{
			ID:        row.ID,
			Title:     row.Title,
			Term:      row.Term,
			StartDate: row.StartDate.String,
			EndDate:   row.EndDate.String,
			URL:       row.URL.String,
		}
		if len(row.Fields) > 0 {
			if err := json.Unmarshal(row.Fields, &record.Fields); err != nil {
				return nil, fmt.Errorf("decode fields for course %s: %w", row.ID, err)
			}
		}
		if len(row.Schedule) > 0 {
			if err := json.Unmarshal(row.Schedule, &record.Schedule); err != nil {
				return nil, fmt.Errorf("decode schedule for course %s: %w", row.ID, err)
			}
		}
		records = append(records, record)
	}

	return records, nil
}
