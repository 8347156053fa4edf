package strategy

import (
	"fmt"

	"github.com/yourusername/odds-falcon/internal/config"
	"github.com/yourusername/odds-falcon/internal/models"
)

// Alert strategies surface statistical situations with no priced
// market to act on. They never stake.

// cornerTrend flags fixtures whose expected corner volume is high,
// based on both sides' recent corner averages.
type cornerTrend struct {
	cfg config.CornerTrendConfig
}

func (s *cornerTrend) Name() string { return "corner_trend" }

func (s *cornerTrend) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	homeAvg, ok := ctx.CornerAverage(fixture.HomeTeam)
	if !ok {
		return models.NoSignal()
	}
	awayAvg, ok := ctx.CornerAverage(fixture.AwayTeam)
	if !ok {
		return models.NoSignal()
	}

	expected := (homeAvg + awayAvg) / 2
	if expected < s.cfg.MinAvgTotal {
		return models.NoSignal()
	}

	rationale := fmt.Sprintf(
		"High corner volume expected: %s averages %.2f corners in recent matches and %s %.2f, projecting %.2f for this game.",
		fixture.HomeTeam, homeAvg, fixture.AwayTeam, awayAvg, expected)
	return alertSignal(s.Name(), "🚩", rationale)
}

// cornerDominance flags a home side that wins many corners against a
// visitor that concedes many, also against the league baseline when
// one is known.
type cornerDominance struct {
	cfg config.CornerDominanceConfig
}

func (s *cornerDominance) Name() string { return "corner_dominance" }

func (s *cornerDominance) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	home, ok := ctx.Team(fixture.HomeTeam)
	if !ok || home.GamesHome < ctx.MinHistoryGames {
		return models.NoSignal()
	}
	away, ok := ctx.Team(fixture.AwayTeam)
	if !ok || away.GamesAway < ctx.MinHistoryGames {
		return models.NoSignal()
	}

	if home.AvgCornersForHome < s.cfg.MinAvgForHome || away.AvgCornersAgainstAway < s.cfg.MinAvgAgainstAway {
		return models.NoSignal()
	}

	combined := home.AvgCornersForHome + away.AvgCornersForAway
	if combined < s.cfg.MinCombinedFor {
		return models.NoSignal()
	}

	leagueAvg := 0.0
	if league, ok := ctx.League(fixture.LeagueCode); ok {
		leagueAvg = league.AvgCornersPerGame
	}
	if leagueAvg > 0 && combined <= leagueAvg*s.cfg.LeagueUplift {
		return models.NoSignal()
	}

	rationale := fmt.Sprintf(
		"%s wins %.2f corners per home game while %s concedes %.2f away.",
		fixture.HomeTeam, home.AvgCornersForHome, fixture.AwayTeam, away.AvgCornersAgainstAway)
	if leagueAvg > 0 {
		rationale = fmt.Sprintf("%s Their combined %.2f is well above the league's %.2f per game.",
			rationale, combined, leagueAvg)
	}
	return alertSignal(s.Name(), "🚩", rationale)
}

// aggressiveGame flags fixtures between two card-heavy sides
type aggressiveGame struct {
	cfg config.AggressiveGameConfig
}

func (s *aggressiveGame) Name() string { return "aggressive_game" }

func (s *aggressiveGame) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	home, ok := ctx.Team(fixture.HomeTeam)
	if !ok || home.GamesHome < ctx.MinHistoryGames {
		return models.NoSignal()
	}
	away, ok := ctx.Team(fixture.AwayTeam)
	if !ok || away.GamesAway < ctx.MinHistoryGames {
		return models.NoSignal()
	}

	homeCards := home.AvgYellowForHome
	awayCards := away.AvgYellowForAway
	if homeCards < s.cfg.MinAvgPerTeam || awayCards < s.cfg.MinAvgPerTeam {
		return models.NoSignal()
	}
	if homeCards+awayCards < s.cfg.MinCombinedAvg {
		return models.NoSignal()
	}

	rationale := fmt.Sprintf(
		"Card-heavy matchup: %s picks up %.2f yellows per home game and %s %.2f away, %.2f combined.",
		fixture.HomeTeam, homeCards, fixture.AwayTeam, awayCards, homeCards+awayCards)
	return alertSignal(s.Name(), "🟨", rationale)
}
