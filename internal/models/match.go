package models

import (
	"sort"
	"strings"
	"time"
)

// MatchResult is the outcome of a finished match from one team's
// perspective
type MatchResult string

const (
	ResultWin  MatchResult = "W"
	ResultDraw MatchResult = "D"
	ResultLoss MatchResult = "L"
)

// Invert flips a result to the opposing team's perspective
func (r MatchResult) Invert() MatchResult {
	switch r {
	case ResultWin:
		return ResultLoss
	case ResultLoss:
		return ResultWin
	default:
		return r
	}
}

// MatchRecord is one row of the historical finished-match table.
// Missing numeric columns default to zero at load time.
type MatchRecord struct {
	League            string    `db:"league" json:"league"`
	Date              time.Time `db:"match_date" json:"date"`
	HomeTeam          string    `db:"home_team" json:"home_team"`
	AwayTeam          string    `db:"away_team" json:"away_team"`
	HomeGoals         int       `db:"home_goals" json:"home_goals"`
	AwayGoals         int       `db:"away_goals" json:"away_goals"`
	HomeCorners       int       `db:"home_corners" json:"home_corners"`
	AwayCorners       int       `db:"away_corners" json:"away_corners"`
	HomeShots         int       `db:"home_shots" json:"home_shots"`
	AwayShots         int       `db:"away_shots" json:"away_shots"`
	HomeShotsOnTarget int       `db:"home_shots_on_target" json:"home_shots_on_target"`
	AwayShotsOnTarget int       `db:"away_shots_on_target" json:"away_shots_on_target"`
	HomeYellow        int       `db:"home_yellow" json:"home_yellow"`
	AwayYellow        int       `db:"away_yellow" json:"away_yellow"`
}

// TotalGoals returns the combined final score
func (m *MatchRecord) TotalGoals() int {
	return m.HomeGoals + m.AwayGoals
}

// HomeResult returns the outcome from the home team's perspective
func (m *MatchRecord) HomeResult() MatchResult {
	switch {
	case m.HomeGoals > m.AwayGoals:
		return ResultWin
	case m.HomeGoals < m.AwayGoals:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// H2HKey builds the canonical unordered-pair key for a matchup:
// the two team names sorted and joined with a pipe.
func H2HKey(teamA, teamB string) string {
	pair := []string{teamA, teamB}
	sort.Strings(pair)
	return strings.Join(pair, "|")
}
