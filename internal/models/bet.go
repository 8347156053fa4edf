package models

import (
	"time"

	"github.com/google/uuid"
)

// BetStatus represents the lifecycle state of a bet
type BetStatus string

const (
	BetStatusPending BetStatus = "pending"
	BetStatusWon     BetStatus = "won"
	BetStatusLost    BetStatus = "lost"
)

// PendingBet is an accepted bet candidate awaiting its fixture's final
// result. The orchestrator guarantees at most one pending bet per
// fixture identifier.
type PendingBet struct {
	ID        uuid.UUID `json:"id"`
	FixtureID string    `json:"fixture_id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	League    string    `json:"league,omitempty"`
	Market    BetMarket `json:"market"`
	Price     float64   `json:"price"`
	Stake     float64   `json:"stake"`
	Kickoff   time.Time `json:"kickoff"`
	Strategy  string    `json:"strategy"`
	PlacedAt  time.Time `json:"placed_at"`
}

// Name returns the human-readable fixture description
func (b *PendingBet) Name() string {
	return b.HomeTeam + " vs " + b.AwayTeam
}

// SettleEligible reports whether the minimum delay since kickoff has
// elapsed so a result poll will not catch a match still in progress.
func (b *PendingBet) SettleEligible(now time.Time, settleDelay time.Duration) bool {
	return !now.Before(b.Kickoff.Add(settleDelay))
}

// SettledBet is one entry of the append-only historical ledger
type SettledBet struct {
	PendingBet
	Result    BetStatus `json:"result"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	Profit    float64   `json:"profit"`
	SettledAt time.Time `json:"settled_at"`
}
