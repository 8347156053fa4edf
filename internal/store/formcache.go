package store

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-falcon/internal/models"
)

// formEntry is one cached team-form report with its fetch timestamp
type formEntry struct {
	Form      models.TeamForm `json:"form"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// FormCacheStore is the cross-run team-form cache. Entries expire by
// TTL at read time; stale entries stay on disk until overwritten.
type FormCacheStore struct {
	path   string
	logger *logrus.Logger
	mu     sync.Mutex
}

// NewFormCacheStore creates a form cache backed by the given file
func NewFormCacheStore(path string, logger *logrus.Logger) *FormCacheStore {
	return &FormCacheStore{path: path, logger: logger}
}

// Get returns the cached form for a team when it is younger than ttl
func (s *FormCacheStore) Get(team string, ttl time.Duration, now time.Time) (models.TeamForm, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.loadLocked()
	entry, ok := entries[team]
	if !ok || now.Sub(entry.FetchedAt) > ttl {
		return models.TeamForm{}, false
	}
	return entry.Form, true
}

// Put stores a freshly fetched form report for a team
func (s *FormCacheStore) Put(team string, form models.TeamForm, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.loadLocked()
	entries[team] = formEntry{Form: form, FetchedAt: now}
	return writeJSONAtomic(s.path, entries)
}

func (s *FormCacheStore) loadLocked() map[string]formEntry {
	entries := make(map[string]formEntry)
	if err := readJSON(s.path, &entries); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.WithError(err).WithField("path", s.path).
				Warn("Form cache unreadable, starting empty")
		}
		return make(map[string]formEntry)
	}
	return entries
}
