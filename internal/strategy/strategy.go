// Package strategy holds the ordered battery of rule evaluators that
// turn a fixture, its canonical odds and the aggregated context into a
// signal. Evaluators are pure with respect to their inputs apart from
// the lookups they perform through the context facade, and they return
// NoSignal instead of erroring when the data they need is unavailable.
package strategy

import (
	"github.com/yourusername/odds-falcon/internal/models"
)

// Strategy is one independent rule evaluator
type Strategy interface {
	Name() string
	Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal
}

// Context carries the per-run aggregated tables and the memoized
// external lookups shared by every evaluation. The tables are
// recomputed once per run and read-only afterwards; the lookup
// functions go through the cache facade and may return ok=false when
// the external provider fails or has no data.
type Context struct {
	TeamStats   map[string]models.TeamStats
	H2HStats    map[string]models.H2HStats
	LeagueStats map[string]models.LeagueStats

	MinHistoryGames int
	MinH2HGames     int

	FormLookup      func(team string) (models.TeamForm, bool)
	StandingsLookup func(league string) ([]models.StandingsRow, bool)
	CornerLookup    func(team string) (float64, bool)
}

// Team returns a team's aggregated stats, if present
func (c *Context) Team(name string) (models.TeamStats, bool) {
	s, ok := c.TeamStats[name]
	return s, ok
}

// H2H returns the direct-meeting stats for an unordered pair
func (c *Context) H2H(teamA, teamB string) (models.H2HStats, bool) {
	s, ok := c.H2HStats[models.H2HKey(teamA, teamB)]
	return s, ok
}

// League returns the per-league averages for a division code
func (c *Context) League(code string) (models.LeagueStats, bool) {
	if code == "" {
		return models.LeagueStats{}, false
	}
	s, ok := c.LeagueStats[code]
	return s, ok
}

// Form looks up a team's recent-form report through the cache facade
func (c *Context) Form(team string) (models.TeamForm, bool) {
	if c.FormLookup == nil {
		return models.TeamForm{}, false
	}
	return c.FormLookup(team)
}

// Standings looks up a league table through the cache facade
func (c *Context) Standings(league string) ([]models.StandingsRow, bool) {
	if c.StandingsLookup == nil {
		return nil, false
	}
	return c.StandingsLookup(league)
}

// CornerAverage looks up a team's recent corner average
func (c *Context) CornerAverage(team string) (float64, bool) {
	if c.CornerLookup == nil {
		return 0, false
	}
	return c.CornerLookup(team)
}

func betSignal(strategy, emoji string, market models.BetMarket, price float64, rationale string) models.Signal {
	return models.Signal{
		Kind:      models.SignalBet,
		Strategy:  strategy,
		Market:    market,
		Price:     price,
		Rationale: rationale,
		Emoji:     emoji,
	}
}

func alertSignal(strategy, emoji, rationale string) models.Signal {
	return models.Signal{
		Kind:      models.SignalAlert,
		Strategy:  strategy,
		Rationale: rationale,
		Emoji:     emoji,
	}
}

func overMarket(line float64) models.BetMarket {
	return models.BetMarket{Kind: models.BetMarketOver, Line: line}
}

func underMarket(line float64) models.BetMarket {
	return models.BetMarket{Kind: models.BetMarketUnder, Line: line}
}

func winnerMarket(team string) models.BetMarket {
	return models.BetMarket{Kind: models.BetMarketWinner, Team: team}
}
