package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/schedly/course-planner-api/internal/dto"
)

// CatalogHTTPSource fetches raw course records from an upstream JSON
// endpoint. The fetch happens once at startup.
type CatalogHTTPSource struct {
	url    string
	client *http.Client
}

// NewCatalogHTTPSource constructs an HTTP catalog source.
func NewCatalogHTTPSource(url string, timeout time.Duration) *CatalogHTTPSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CatalogHTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads and decodes the catalog feed.
func (s *CatalogHTTPSource) Fetch(ctx context.Context) ([]dto.RawCourseRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog feed returned status %d", resp.StatusCode)
	}

	var records []dto.RawCourseRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog feed: %w", err)
	}

	return records, nil
}
