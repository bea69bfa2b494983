package models

import "time"

// SelectionSnapshot is the persisted form of the selection store: the
// term to id-list mapping plus the time it was saved. Full course records
// are rehydrated from the catalog on restore, never persisted.
type SelectionSnapshot struct {
	Terms   map[int][]string `json:"terms"`
	SavedAt time.Time        `json:"saved_at"`
}

// Expired reports whether the snapshot is older than the given horizon.
func (s SelectionSnapshot) Expired(ttl time.Duration, now time.Time) bool {
	if s.SavedAt.IsZero() {
		return true
	}
	return now.Sub(s.SavedAt) > ttl
}

// BaseTerms are the term lists every fresh store starts with. Further
// terms (including the reserved term-independent bucket) are created on
// first pick.
var BaseTerms = []int{1, 2}
