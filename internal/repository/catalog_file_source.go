package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/schedly/course-planner-api/internal/dto"
)

// CatalogFileSource reads raw course records from a local JSON or YAML
// file. The format follows the file extension.
type CatalogFileSource struct {
	path string
}

// NewCatalogFileSource constructs a file-backed catalog source.
func NewCatalogFileSource(path string) *CatalogFileSource {
	return &CatalogFileSource{path: path}
}

// Fetch loads and decodes the catalog file.
func (s *CatalogFileSource) Fetch(ctx context.Context) ([]dto.RawCourseRecord, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", s.path, err)
	}

	var records []dto.RawCourseRecord
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("decode catalog yaml %s: %w", s.path, err)
		}
	default:
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("decode catalog json %s: %w", s.path, err)
		}
	}

	return records, nil
}
