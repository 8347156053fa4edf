// Package stats aggregates historical match records into the per-team,
// head-to-head and per-league tables consumed by the strategy battery.
package stats

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-falcon/internal/models"
)

// Aggregator computes statistics tables from finished-match history
type Aggregator struct {
	logger *logrus.Logger
}

// NewAggregator creates a new statistics aggregator
func NewAggregator(logger *logrus.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// teamAccumulator collects raw sums for one team before averaging
type teamAccumulator struct {
	goalsForHome, goalsAgainstHome int
	goalsForAway, goalsAgainstAway int

	shotsForHome, shotsAgainstHome int
	shotsForAway, shotsAgainstAway int

	sotForHome, sotAgainstHome int
	sotForAway, sotAgainstAway int

	cornersForHome, cornersAgainstHome int
	cornersForAway, cornersAgainstAway int

	yellowForHome, yellowAgainstHome int
	yellowForAway, yellowAgainstAway int

	homeWins, homeDraws, homeLosses int
	awayWins, awayDraws, awayLosses int

	gamesHome, gamesAway int

	lastDate   time.Time
	lastResult models.MatchResult
}

// BuildTeamStats aggregates every record into per-team role-split
// averages. Teams appear in the result as soon as they have a single
// game; consumers gate on sample size themselves.
func (a *Aggregator) BuildTeamStats(records []models.MatchRecord) map[string]models.TeamStats {
	acc := make(map[string]*teamAccumulator)

	for i := range records {
		rec := &records[i]
		home := accFor(acc, rec.HomeTeam)
		away := accFor(acc, rec.AwayTeam)

		home.gamesHome++
		home.goalsForHome += rec.HomeGoals
		home.goalsAgainstHome += rec.AwayGoals
		home.shotsForHome += rec.HomeShots
		home.shotsAgainstHome += rec.AwayShots
		home.sotForHome += rec.HomeShotsOnTarget
		home.sotAgainstHome += rec.AwayShotsOnTarget
		home.cornersForHome += rec.HomeCorners
		home.cornersAgainstHome += rec.AwayCorners
		home.yellowForHome += rec.HomeYellow
		home.yellowAgainstHome += rec.AwayYellow

		away.gamesAway++
		away.goalsForAway += rec.AwayGoals
		away.goalsAgainstAway += rec.HomeGoals
		away.shotsForAway += rec.AwayShots
		away.shotsAgainstAway += rec.HomeShots
		away.sotForAway += rec.AwayShotsOnTarget
		away.sotAgainstAway += rec.HomeShotsOnTarget
		away.cornersForAway += rec.AwayCorners
		away.cornersAgainstAway += rec.HomeCorners
		away.yellowForAway += rec.AwayYellow
		away.yellowAgainstAway += rec.HomeYellow

		result := rec.HomeResult()
		switch result {
		case models.ResultWin:
			home.homeWins++
			away.awayLosses++
		case models.ResultLoss:
			home.homeLosses++
			away.awayWins++
		default:
			home.homeDraws++
			away.awayDraws++
		}

		if !rec.Date.Before(home.lastDate) {
			home.lastDate = rec.Date
			home.lastResult = result
		}
		if !rec.Date.Before(away.lastDate) {
			away.lastDate = rec.Date
			away.lastResult = result.Invert()
		}
	}

	out := make(map[string]models.TeamStats, len(acc))
	for team, t := range acc {
		out[team] = t.finalize(team)
	}

	a.logger.WithFields(logrus.Fields{
		"records": len(records),
		"teams":   len(out),
	}).Debug("Built team statistics")

	return out
}

// BuildH2HStats aggregates direct meetings keyed by the canonical
// unordered pair key.
func (a *Aggregator) BuildH2HStats(records []models.MatchRecord) map[string]models.H2HStats {
	type h2hAcc struct {
		goals    int
		meetings int
	}
	acc := make(map[string]*h2hAcc)

	for i := range records {
		rec := &records[i]
		key := models.H2HKey(rec.HomeTeam, rec.AwayTeam)
		h, ok := acc[key]
		if !ok {
			h = &h2hAcc{}
			acc[key] = h
		}
		h.goals += rec.TotalGoals()
		h.meetings++
	}

	out := make(map[string]models.H2HStats, len(acc))
	for key, h := range acc {
		out[key] = models.H2HStats{
			Key:      key,
			AvgGoals: float64(h.goals) / float64(h.meetings),
			Meetings: h.meetings,
		}
	}
	return out
}

// BuildLeagueStats computes per-league per-game averages
func (a *Aggregator) BuildLeagueStats(records []models.MatchRecord) map[string]models.LeagueStats {
	type leagueAcc struct {
		goals, corners, cards int
		games                 int
	}
	acc := make(map[string]*leagueAcc)

	for i := range records {
		rec := &records[i]
		l, ok := acc[rec.League]
		if !ok {
			l = &leagueAcc{}
			acc[rec.League] = l
		}
		l.goals += rec.TotalGoals()
		l.corners += rec.HomeCorners + rec.AwayCorners
		l.cards += rec.HomeYellow + rec.AwayYellow
		l.games++
	}

	out := make(map[string]models.LeagueStats, len(acc))
	for league, l := range acc {
		out[league] = models.LeagueStats{
			League:            league,
			AvgGoalsPerGame:   float64(l.goals) / float64(l.games),
			AvgCornersPerGame: float64(l.corners) / float64(l.games),
			AvgCardsPerGame:   float64(l.cards) / float64(l.games),
			Games:             l.games,
		}
	}
	return out
}

func accFor(acc map[string]*teamAccumulator, team string) *teamAccumulator {
	t, ok := acc[team]
	if !ok {
		t = &teamAccumulator{}
		acc[team] = t
	}
	return t
}

func (t *teamAccumulator) finalize(team string) models.TeamStats {
	s := models.TeamStats{
		Team:       team,
		HomeWins:   t.homeWins,
		HomeDraws:  t.homeDraws,
		HomeLosses: t.homeLosses,
		AwayWins:   t.awayWins,
		AwayDraws:  t.awayDraws,
		AwayLosses: t.awayLosses,
		LastResult: t.lastResult,
		GamesHome:  t.gamesHome,
		GamesAway:  t.gamesAway,
	}

	if t.gamesHome > 0 {
		h := float64(t.gamesHome)
		s.AvgGoalsForHome = float64(t.goalsForHome) / h
		s.AvgGoalsAgainstHome = float64(t.goalsAgainstHome) / h
		s.AvgShotsForHome = float64(t.shotsForHome) / h
		s.AvgShotsAgainstHome = float64(t.shotsAgainstHome) / h
		s.AvgShotsOnTargetForHome = float64(t.sotForHome) / h
		s.AvgShotsOnTargetAgainstHome = float64(t.sotAgainstHome) / h
		s.AvgCornersForHome = float64(t.cornersForHome) / h
		s.AvgCornersAgainstHome = float64(t.cornersAgainstHome) / h
		s.AvgYellowForHome = float64(t.yellowForHome) / h
		s.AvgYellowAgainstHome = float64(t.yellowAgainstHome) / h
		s.HomeLossPct = 100 * float64(t.homeLosses) / h
	}
	if t.gamesAway > 0 {
		aw := float64(t.gamesAway)
		s.AvgGoalsForAway = float64(t.goalsForAway) / aw
		s.AvgGoalsAgainstAway = float64(t.goalsAgainstAway) / aw
		s.AvgShotsForAway = float64(t.shotsForAway) / aw
		s.AvgShotsAgainstAway = float64(t.shotsAgainstAway) / aw
		s.AvgShotsOnTargetForAway = float64(t.sotForAway) / aw
		s.AvgShotsOnTargetAgainstAway = float64(t.sotAgainstAway) / aw
		s.AvgCornersForAway = float64(t.cornersForAway) / aw
		s.AvgCornersAgainstAway = float64(t.cornersAgainstAway) / aw
		s.AvgYellowForAway = float64(t.yellowForAway) / aw
		s.AvgYellowAgainstAway = float64(t.yellowAgainstAway) / aw
		s.AwayLossPct = 100 * float64(t.awayLosses) / aw
	}

	total := t.gamesHome + t.gamesAway
	if total > 0 {
		n := float64(total)
		s.WinPct = 100 * float64(t.homeWins+t.awayWins) / n
		s.DrawPct = 100 * float64(t.homeDraws+t.awayDraws) / n
		s.LossPct = 100 * float64(t.homeLosses+t.awayLosses) / n
	}

	return s
}
