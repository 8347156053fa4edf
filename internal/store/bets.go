package store

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-falcon/internal/models"
)

// BetStore persists the pending-bet set and the append-only ledger of
// settled bets. Settlement removes a bet from the pending file and
// appends it to the ledger; the pending removal is persisted first so
// a crash between the two writes can lose a ledger row but can never
// leave a bet both pending and ledgered.
type BetStore struct {
	pendingPath string
	ledgerPath  string
	logger      *logrus.Logger
	mu          sync.Mutex
}

// NewBetStore creates a bet store backed by the given files
func NewBetStore(pendingPath, ledgerPath string, logger *logrus.Logger) *BetStore {
	return &BetStore{pendingPath: pendingPath, ledgerPath: ledgerPath, logger: logger}
}

// LoadPending returns the current pending-bet set. An absent or
// corrupt file yields an empty set.
func (s *BetStore) LoadPending() []models.PendingBet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadPendingLocked()
}

func (s *BetStore) loadPendingLocked() []models.PendingBet {
	var pending []models.PendingBet
	if err := readJSON(s.pendingPath, &pending); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.WithError(err).WithField("path", s.pendingPath).
				Warn("Pending store unreadable, starting empty")
		}
		return nil
	}
	return pending
}

// AddPending appends a new pending bet. Returns ErrAlreadyPending when
// the fixture already has one.
func (s *BetStore) AddPending(bet models.PendingBet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.loadPendingLocked()
	for i := range pending {
		if pending[i].FixtureID == bet.FixtureID {
			return fmt.Errorf("fixture %s: %w", bet.FixtureID, models.ErrAlreadyPending)
		}
	}
	pending = append(pending, bet)
	return writeJSONAtomic(s.pendingPath, pending)
}

// HasPending reports whether a fixture already has a pending bet
func (s *BetStore) HasPending(fixtureID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, bet := range s.loadPendingLocked() {
		if bet.FixtureID == fixtureID {
			return true
		}
	}
	return false
}

// Settle removes a pending bet and appends its settled form to the
// ledger. Settling an id that is no longer pending returns ErrNotFound,
// which makes re-settlement a no-op for callers that ignore it.
func (s *BetStore) Settle(id uuid.UUID, settled models.SettledBet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.loadPendingLocked()
	kept := pending[:0]
	found := false
	for _, bet := range pending {
		if bet.ID == id {
			found = true
			continue
		}
		kept = append(kept, bet)
	}
	if !found {
		return fmt.Errorf("pending bet %s: %w", id, models.ErrNotFound)
	}

	if err := writeJSONAtomic(s.pendingPath, kept); err != nil {
		return err
	}

	ledger := s.loadLedgerLocked()
	ledger = append(ledger, settled)
	return writeJSONAtomic(s.ledgerPath, ledger)
}

// LoadLedger returns every settled bet, oldest first
func (s *BetStore) LoadLedger() []models.SettledBet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLedgerLocked()
}

func (s *BetStore) loadLedgerLocked() []models.SettledBet {
	var ledger []models.SettledBet
	if err := readJSON(s.ledgerPath, &ledger); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.WithError(err).WithField("path", s.ledgerPath).
				Warn("Ledger store unreadable, starting empty")
		}
		return nil
	}
	return ledger
}
