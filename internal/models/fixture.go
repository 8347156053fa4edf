package models

import (
	"fmt"
	"time"
)

// Fixture represents a single upcoming match between two teams.
// It is immutable once fetched for a run; team names arrive already
// normalized by the name-resolution collaborator.
type Fixture struct {
	ID         string    `json:"id" validate:"required"`
	HomeTeam   string    `json:"home_team" validate:"required"`
	AwayTeam   string    `json:"away_team" validate:"required"`
	League     string    `json:"league"`
	LeagueCode string    `json:"league_code,omitempty"`
	Kickoff    time.Time `json:"kickoff" validate:"required"`
}

// Name returns the human-readable fixture description
func (f *Fixture) Name() string {
	return fmt.Sprintf("%s vs %s", f.HomeTeam, f.AwayTeam)
}

// IsLive reports whether the fixture has already kicked off
func (f *Fixture) IsLive(now time.Time) bool {
	return now.After(f.Kickoff)
}

// Teams returns both team names, home first
func (f *Fixture) Teams() [2]string {
	return [2]string{f.HomeTeam, f.AwayTeam}
}
