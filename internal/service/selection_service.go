package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/schedly/course-planner-api/internal/models"
	appErrors "github.com/schedly/course-planner-api/pkg/errors"
)

// SnapshotStore is the persistence port for the selection store. Load
// returns ErrCacheMiss when nothing was persisted.
type SnapshotStore interface {
	Load(ctx context.Context) (*models.SelectionSnapshot, error)
	Save(ctx context.Context, snapshot models.SelectionSnapshot, ttl time.Duration) error
	Clear(ctx context.Context) error
}

// SelectionService owns the term to picked-course-id mapping. Every
// mutation runs under one mutex and triggers a best-effort persist: a
// failed write never fails the in-memory mutation.
type SelectionService struct {
	store   SnapshotStore
	ttl     time.Duration
	logger  *zap.Logger
	metrics *MetricsService
	now     func() time.Time

	mu    sync.Mutex
	terms map[int][]string
}

// NewSelectionService constructs the service with the base terms
// pre-initialized.
func NewSelectionService(store SnapshotStore, ttl time.Duration, logger *zap.Logger) *SelectionService {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SelectionService{
		store:  store,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
		terms:  make(map[int][]string),
	}
	for _, term := range models.BaseTerms {
		s.terms[term] = []string{}
	}
	return s
}

// SetMetrics attaches the instrumentation sink. Safe to skip in tests.
func (s *SelectionService) SetMetrics(metrics *MetricsService) {
	s.metrics = metrics
}

// Restore replaces the in-memory state with the persisted snapshot when
// one exists and is inside the expiry horizon. Anything else (absent
// snapshot, expired snapshot, unavailable storage) leaves the default
// empty structure in place.
func (s *SelectionService) Restore(ctx context.Context) {
	if s.store == nil {
		return
	}
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("selection restore failed, starting empty", zap.Error(err))
		}
		return
	}
	if snapshot.Expired(s.ttl, s.now()) {
		s.logger.Info("selection snapshot expired, starting empty",
			zap.Time("saved_at", snapshot.SavedAt))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms = make(map[int][]string, len(snapshot.Terms))
	for _, term := range models.BaseTerms {
		s.terms[term] = []string{}
	}
	for term, ids := range snapshot.Terms {
		list := make([]string, 0, len(ids))
		seen := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			list = append(list, id)
		}
		s.terms[term] = list
	}
}

// Add appends the course to its term's list. Picking a course twice is a
// no-op; the insertion order of first picks is preserved.
func (s *SelectionService) Add(ctx context.Context, course models.CourseRecord) bool {
	s.mu.Lock()
	list := s.terms[course.Term]
	for _, id := range list {
		if id == course.ID {
			s.mu.Unlock()
			return false
		}
	}
	s.terms[course.Term] = append(list, course.ID)
	s.mu.Unlock()

	s.persist(ctx)
	return true
}

// Remove drops the id from the given term's list. A missing term or id
// is a no-op, not an error.
func (s *SelectionService) Remove(ctx context.Context, id string, term int) bool {
	s.mu.Lock()
	list, ok := s.terms[term]
	if !ok {
		s.mu.Unlock()
		s.logger.Debug("remove on unknown term", zap.Int("term", term), zap.String("course_id", id))
		return false
	}
	removed := false
	next := list[:0]
	for _, existing := range list {
		if existing == id {
			removed = true
			continue
		}
		next = append(next, existing)
	}
	s.terms[term] = next
	s.mu.Unlock()

	if removed {
		s.persist(ctx)
	}
	return removed
}

// ClearTerm empties one term's list.
func (s *SelectionService) ClearTerm(ctx context.Context, term int) {
	s.mu.Lock()
	if _, ok := s.terms[term]; !ok {
		s.mu.Unlock()
		s.logger.Debug("clear on unknown term", zap.Int("term", term))
		return
	}
	s.terms[term] = []string{}
	s.mu.Unlock()

	s.persist(ctx)
}

// ClearAll empties every term list back to the base structure.
func (s *SelectionService) ClearAll(ctx context.Context) {
	s.mu.Lock()
	s.terms = make(map[int][]string)
	for _, term := range models.BaseTerms {
		s.terms[term] = []string{}
	}
	s.mu.Unlock()

	s.persist(ctx)
}

// Contains reports whether the id is picked in any term list.
func (s *SelectionService) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, list := range s.terms {
		for _, existing := range list {
			if existing == id {
				return true
			}
		}
	}
	return false
}

// TermList returns the picked ids for one term in insertion order.
func (s *SelectionService) TermList(term int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.terms[term]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Terms returns every known term in ascending order.
func (s *SelectionService) Terms() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	terms := make([]int, 0, len(s.terms))
	for term := range s.terms {
		terms = append(terms, term)
	}
	sort.Ints(terms)
	return terms
}

// Snapshot captures the current state for persistence or inspection.
func (s *SelectionService) Snapshot() models.SelectionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *SelectionService) snapshotLocked() models.SelectionSnapshot {
	terms := make(map[int][]string, len(s.terms))
	for term, list := range s.terms {
		ids := make([]string, len(list))
		copy(ids, list)
		terms[term] = ids
	}
	return models.SelectionSnapshot{Terms: terms, SavedAt: s.now()}
}

// persist writes the snapshot after a mutation. Failures are logged and
// swallowed so the in-memory state stays authoritative.
func (s *SelectionService) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.store.Save(ctx, snapshot, s.ttl); err != nil {
		s.metrics.RecordPersistFailure()
		s.logger.Warn("selection persist failed", zap.Error(err))
	}
}
