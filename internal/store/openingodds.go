package store

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-falcon/internal/models"
)

// OpeningOddsEntry is one fixture's earliest captured price snapshot
type OpeningOddsEntry struct {
	FixtureID  string               `json:"fixture_id"`
	HomeTeam   string               `json:"home_team"`
	AwayTeam   string               `json:"away_team"`
	Kickoff    time.Time            `json:"kickoff"`
	CapturedAt time.Time            `json:"captured_at"`
	Odds       models.CanonicalOdds `json:"odds"`
}

// OpeningOddsStore persists the first price snapshot seen for fixtures
// still far from kickoff. A fixture is captured at most once.
type OpeningOddsStore struct {
	path   string
	logger *logrus.Logger
	mu     sync.Mutex
}

// NewOpeningOddsStore creates an opening-odds store backed by the given file
func NewOpeningOddsStore(path string, logger *logrus.Logger) *OpeningOddsStore {
	return &OpeningOddsStore{path: path, logger: logger}
}

// Has reports whether a fixture's opening odds were already captured
func (s *OpeningOddsStore) Has(fixtureID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.loadLocked()[fixtureID]
	return ok
}

// Put records a fixture's opening snapshot unless one already exists
func (s *OpeningOddsStore) Put(entry OpeningOddsEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.loadLocked()
	if _, ok := entries[entry.FixtureID]; ok {
		return nil
	}
	entries[entry.FixtureID] = entry
	return writeJSONAtomic(s.path, entries)
}

// Get returns a fixture's opening snapshot, if captured
func (s *OpeningOddsStore) Get(fixtureID string) (OpeningOddsEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.loadLocked()[fixtureID]
	return entry, ok
}

func (s *OpeningOddsStore) loadLocked() map[string]OpeningOddsEntry {
	entries := make(map[string]OpeningOddsEntry)
	if err := readJSON(s.path, &entries); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.WithError(err).WithField("path", s.path).
				Warn("Opening odds store unreadable, starting empty")
		}
		return make(map[string]OpeningOddsEntry)
	}
	return entries
}
