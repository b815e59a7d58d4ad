package cache

import (
	"sync"
	"time"

	"github.com/Taishi66/folio-tui/internal/domain"
)

// ProjectStore is the in-memory project cache shared across views.
type ProjectStore struct {
	mu        sync.RWMutex
	items     []domain.Project
	details   map[string]domain.Project
	lastFetch time.Time
	loading   bool
	err       string

	ttl time.Duration
	now func() time.Time
}

// NewProjectStore creates an empty store. A non-positive ttl uses the
// five minute default.
func NewProjectStore(ttl time.Duration) *ProjectStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProjectStore{
		details: make(map[string]domain.Project),
		ttl:     ttl,
		now:     time.Now,
	}
}

// SetClock replaces the time source.
func (s *ProjectStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// SetItems replaces the list, stamps the fetch time and clears any
// standing error.
func (s *ProjectStore) SetItems(items []domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.lastFetch = s.now()
	s.err = ""
}

func (s *ProjectStore) Items() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

func (s *ProjectStore) SetDetail(key string, p domain.Project) {
	s.mu.Lock()
	s.details[key] = p
	s.mu.Unlock()
}

func (s *ProjectStore) Detail(key string) (domain.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.details[key]
	return p, ok
}

// Find looks a project up in the loaded list by ID.
func (s *ProjectStore) Find(id string) (domain.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.items {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}

// ClearAll empties list, details, timestamp and error together.
func (s *ProjectStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.details = make(map[string]domain.Project)
	s.lastFetch = time.Time{}
	s.err = ""
}

// IsStale is true when nothing was fetched yet or the list is older than
// the TTL.
func (s *ProjectStore) IsStale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastFetch.IsZero() {
		return true
	}
	return s.now().Sub(s.lastFetch) > s.ttl
}

// LastFetch returns when the list was last stored, zero if never.
func (s *ProjectStore) LastFetch() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFetch
}

func (s *ProjectStore) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

func (s *ProjectStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *ProjectStore) SetError(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

// Error returns the standing error message, "" if none.
func (s *ProjectStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
