package models

// TeamStats holds the aggregated historical statistics for one team,
// split by home and away roles. All averages are per-game means over
// the team's sample in that role. GamesHome and GamesAway are the
// sample sizes consumers must gate on before trusting any average.
type TeamStats struct {
	Team string `json:"team"`

	AvgGoalsForHome     float64 `json:"avg_goals_for_home"`
	AvgGoalsAgainstHome float64 `json:"avg_goals_against_home"`
	AvgGoalsForAway     float64 `json:"avg_goals_for_away"`
	AvgGoalsAgainstAway float64 `json:"avg_goals_against_away"`

	AvgShotsForHome     float64 `json:"avg_shots_for_home"`
	AvgShotsAgainstHome float64 `json:"avg_shots_against_home"`
	AvgShotsForAway     float64 `json:"avg_shots_for_away"`
	AvgShotsAgainstAway float64 `json:"avg_shots_against_away"`

	AvgShotsOnTargetForHome     float64 `json:"avg_sot_for_home"`
	AvgShotsOnTargetAgainstHome float64 `json:"avg_sot_against_home"`
	AvgShotsOnTargetForAway     float64 `json:"avg_sot_for_away"`
	AvgShotsOnTargetAgainstAway float64 `json:"avg_sot_against_away"`

	AvgCornersForHome     float64 `json:"avg_corners_for_home"`
	AvgCornersAgainstHome float64 `json:"avg_corners_against_home"`
	AvgCornersForAway     float64 `json:"avg_corners_for_away"`
	AvgCornersAgainstAway float64 `json:"avg_corners_against_away"`

	AvgYellowForHome     float64 `json:"avg_yellow_for_home"`
	AvgYellowAgainstHome float64 `json:"avg_yellow_against_home"`
	AvgYellowForAway     float64 `json:"avg_yellow_for_away"`
	AvgYellowAgainstAway float64 `json:"avg_yellow_against_away"`

	HomeWins   int `json:"home_wins"`
	HomeDraws  int `json:"home_draws"`
	HomeLosses int `json:"home_losses"`
	AwayWins   int `json:"away_wins"`
	AwayDraws  int `json:"away_draws"`
	AwayLosses int `json:"away_losses"`

	WinPct      float64 `json:"win_pct"`
	DrawPct     float64 `json:"draw_pct"`
	LossPct     float64 `json:"loss_pct"`
	HomeLossPct float64 `json:"home_loss_pct"`
	AwayLossPct float64 `json:"away_loss_pct"`

	LastResult MatchResult `json:"last_result"`

	GamesHome int `json:"games_home"`
	GamesAway int `json:"games_away"`
}

// GamesTotal returns the team's full sample size across both roles
func (s *TeamStats) GamesTotal() int {
	return s.GamesHome + s.GamesAway
}

// H2HStats holds aggregated statistics for the direct meetings of an
// unordered pair of teams, keyed by H2HKey.
type H2HStats struct {
	Key      string  `json:"key"`
	AvgGoals float64 `json:"avg_goals"`
	Meetings int     `json:"meetings"`
}

// LeagueStats holds per-league per-game averages used by strategies
// as contextual normalization.
type LeagueStats struct {
	League            string  `json:"league"`
	AvgGoalsPerGame   float64 `json:"avg_goals_per_game"`
	AvgCornersPerGame float64 `json:"avg_corners_per_game"`
	AvgCardsPerGame   float64 `json:"avg_cards_per_game"`
	Games             int     `json:"games"`
}

// TeamForm is the collaborator-provided recent-form report for a team:
// results ordered most recent last, plus the mean combined goals across
// those matches.
type TeamForm struct {
	Results          string  `json:"results"`
	AvgGoalsPerMatch float64 `json:"avg_goals_per_match"`
}

// Wins counts wins across the whole form window
func (f TeamForm) Wins() int {
	n := 0
	for _, r := range f.Results {
		if MatchResult(r) == ResultWin {
			n++
		}
	}
	return n
}

// RecentWins counts wins in the last n results
func (f TeamForm) RecentWins(n int) int {
	runes := []rune(f.Results)
	if n > len(runes) {
		n = len(runes)
	}
	wins := 0
	for _, r := range runes[len(runes)-n:] {
		if MatchResult(r) == ResultWin {
			wins++
		}
	}
	return wins
}

// HasBlemish reports whether the form window contains any draw or loss
func (f TeamForm) HasBlemish() bool {
	for _, r := range f.Results {
		if MatchResult(r) == ResultDraw || MatchResult(r) == ResultLoss {
			return true
		}
	}
	return false
}

// StandingsRow is one row of a league table
type StandingsRow struct {
	Team string `json:"team"`
	Rank int    `json:"rank"`
}

// MatchStatus is the provider-reported state of a fixture's result
type MatchStatus string

const (
	StatusFinished   MatchStatus = "finished"
	StatusInProgress MatchStatus = "in_progress"
	StatusUnknown    MatchStatus = "unknown"
)

// FinalScore is the collaborator-provided result lookup payload
type FinalScore struct {
	Status    MatchStatus `json:"status"`
	HomeScore int         `json:"home_score"`
	AwayScore int         `json:"away_score"`
}

// TotalGoals returns the combined final score
func (s FinalScore) TotalGoals() int {
	return s.HomeScore + s.AwayScore
}
