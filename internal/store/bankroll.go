package store

import (
	"errors"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-falcon/internal/models"
)

// BankrollStore persists the singleton bankroll state
type BankrollStore struct {
	path     string
	defaults models.BankrollState
	logger   *logrus.Logger
	mu       sync.Mutex
}

// NewBankrollStore creates a bankroll store backed by the given file.
// An absent or corrupt file recovers to the given default state, which
// carries the operator's configured capital and stake percentage.
func NewBankrollStore(path string, defaults models.BankrollState, logger *logrus.Logger) *BankrollStore {
	return &BankrollStore{path: path, defaults: defaults, logger: logger}
}

// Load returns the persisted bankroll. An absent or corrupt file
// recovers to the default state rather than failing the run.
func (s *BankrollStore) Load() models.BankrollState {
	s.mu.Lock()
	defer s.mu.Unlock()

	var state models.BankrollState
	if err := readJSON(s.path, &state); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.WithError(err).WithField("path", s.path).
				Warn("Bankroll store unreadable, starting from defaults")
		}
		return s.defaults
	}
	return state
}

// Save persists the bankroll state
func (s *BankrollStore) Save(state models.BankrollState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONAtomic(s.path, state)
}
