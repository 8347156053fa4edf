package strategy

import (
	"fmt"

	"github.com/yourusername/odds-falcon/internal/config"
	"github.com/yourusername/odds-falcon/internal/models"
)

// giantReaction backs a historically dominant team to bounce back from
// a loss.
type giantReaction struct {
	cfg config.GiantReactionConfig
}

func (s *giantReaction) Name() string { return "giant_reaction" }

func (s *giantReaction) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	for _, team := range fixture.Teams() {
		stats, ok := ctx.Team(team)
		if !ok || stats.WinPct < s.cfg.MinWinPct || stats.LastResult != models.ResultLoss {
			continue
		}
		price, ok := odds.Price(models.MarketHeadToHead, team)
		if !ok || price < s.cfg.MinPrice {
			continue
		}
		rationale := fmt.Sprintf(
			"%s wins %.1f%% of its matches historically and is coming off a loss, a strong setup for a reaction.",
			team, stats.WinPct)
		return betSignal(s.Name(), "⚡", winnerMarket(team), price, rationale)
	}
	return models.NoSignal()
}

// defensiveFortress backs the under when the home side concedes very
// little at home.
type defensiveFortress struct {
	cfg config.DefensiveFortressConfig
}

func (s *defensiveFortress) Name() string { return "defensive_fortress" }

func (s *defensiveFortress) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	stats, ok := ctx.Team(fixture.HomeTeam)
	if !ok || stats.GamesHome < ctx.MinHistoryGames {
		return models.NoSignal()
	}
	if stats.AvgGoalsAgainstHome > s.cfg.MaxAvgGoalsConceded {
		return models.NoSignal()
	}
	price, ok := odds.Price(models.MarketTotals25, models.SelectionUnder)
	if !ok || price < s.cfg.MinUnderPrice {
		return models.NoSignal()
	}
	rationale := fmt.Sprintf(
		"%s has a historically tight home defense, conceding just %.2f goals per game at home.",
		fixture.HomeTeam, stats.AvgGoalsAgainstHome)
	return betSignal(s.Name(), "🛡️", underMarket(2.5), price, rationale)
}

// goalClassic backs the over when the direct meetings of the pair are
// high-scoring, also against the league baseline when one is known.
type goalClassic struct {
	cfg config.GoalClassicConfig
}

func (s *goalClassic) Name() string { return "goal_classic" }

func (s *goalClassic) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	h2h, ok := ctx.H2H(fixture.HomeTeam, fixture.AwayTeam)
	if !ok || h2h.Meetings < ctx.MinH2HGames {
		return models.NoSignal()
	}
	if h2h.AvgGoals < s.cfg.MinH2HAvgGoals {
		return models.NoSignal()
	}

	leagueAvg := 0.0
	if league, ok := ctx.League(fixture.LeagueCode); ok {
		leagueAvg = league.AvgGoalsPerGame
	}
	if leagueAvg > 0 && h2h.AvgGoals <= leagueAvg*s.cfg.LeagueUplift {
		return models.NoSignal()
	}

	price, ok := odds.Price(models.MarketTotals25, models.SelectionOver)
	if !ok || price < s.cfg.MinOverPrice {
		return models.NoSignal()
	}

	rationale := fmt.Sprintf(
		"Direct meetings between these sides average %.2f goals across %d matches.",
		h2h.AvgGoals, h2h.Meetings)
	if leagueAvg > 0 {
		rationale = fmt.Sprintf("%s That is well above the league average of %.2f.", rationale, leagueAvg)
	}
	return betSignal(s.Name(), "💥", overMarket(2.5), price, rationale)
}

// homeScorer backs over 1.5 behind a prolific home attack
type homeScorer struct {
	cfg config.HomeScorerConfig
}

func (s *homeScorer) Name() string { return "home_scorer" }

func (s *homeScorer) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	stats, ok := ctx.Team(fixture.HomeTeam)
	if !ok || stats.GamesHome < ctx.MinHistoryGames {
		return models.NoSignal()
	}
	if stats.AvgGoalsForHome < s.cfg.MinAvgGoalsScored {
		return models.NoSignal()
	}
	price, ok := odds.Price(models.MarketTotals15, models.SelectionOver)
	if !ok || price < s.cfg.MinOverPrice {
		return models.NoSignal()
	}
	rationale := fmt.Sprintf(
		"%s scores %.2f goals per game at home, a strong base for at least two goals in the match.",
		fixture.HomeTeam, stats.AvgGoalsForHome)
	return betSignal(s.Name(), "🏠", overMarket(1.5), price, rationale)
}

// weakAway backs the home side against a visitor that loses most of
// its away matches.
type weakAway struct {
	cfg config.WeakSideConfig
}

func (s *weakAway) Name() string { return "weak_away" }

func (s *weakAway) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	stats, ok := ctx.Team(fixture.AwayTeam)
	if !ok || stats.GamesAway < ctx.MinHistoryGames {
		return models.NoSignal()
	}
	if stats.AwayLossPct < s.cfg.MinLossPct {
		return models.NoSignal()
	}
	price, ok := odds.Price(models.MarketHeadToHead, fixture.HomeTeam)
	if !ok || price < s.cfg.MinPrice || price > s.cfg.MaxPrice {
		return models.NoSignal()
	}
	rationale := fmt.Sprintf(
		"%s loses %.1f%% of its away matches, and the home win is priced inside the value band.",
		fixture.AwayTeam, stats.AwayLossPct)
	return betSignal(s.Name(), "📉", winnerMarket(fixture.HomeTeam), price, rationale)
}

// weakHome backs the visitor against a host that loses most of its
// home matches.
type weakHome struct {
	cfg config.WeakSideConfig
}

func (s *weakHome) Name() string { return "weak_home" }

func (s *weakHome) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	stats, ok := ctx.Team(fixture.HomeTeam)
	if !ok || stats.GamesHome < ctx.MinHistoryGames {
		return models.NoSignal()
	}
	if stats.HomeLossPct < s.cfg.MinLossPct {
		return models.NoSignal()
	}
	price, ok := odds.Price(models.MarketHeadToHead, fixture.AwayTeam)
	if !ok || price < s.cfg.MinPrice || price > s.cfg.MaxPrice {
		return models.NoSignal()
	}
	rationale := fmt.Sprintf(
		"%s loses %.1f%% of its home matches, and the away win is priced inside the value band.",
		fixture.HomeTeam, stats.HomeLossPct)
	return betSignal(s.Name(), "✈️", winnerMarket(fixture.AwayTeam), price, rationale)
}

// offensivePressure backs the over behind sustained home shot volume
type offensivePressure struct {
	cfg config.OffensivePressureConfig
}

func (s *offensivePressure) Name() string { return "offensive_pressure" }

func (s *offensivePressure) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	home, ok := ctx.Team(fixture.HomeTeam)
	if !ok || home.GamesHome < ctx.MinHistoryGames {
		return models.NoSignal()
	}
	away, ok := ctx.Team(fixture.AwayTeam)
	if !ok || away.GamesAway < ctx.MinHistoryGames {
		return models.NoSignal()
	}
	if home.AvgShotsForHome < s.cfg.MinShotsFor || home.AvgShotsOnTargetForHome < s.cfg.MinShotsOnTargetFor {
		return models.NoSignal()
	}
	price, ok := odds.Price(models.MarketTotals25, models.SelectionOver)
	if !ok || price < s.cfg.MinOverPrice {
		return models.NoSignal()
	}
	rationale := fmt.Sprintf(
		"%s averages %.2f shots and %.2f on target per home game, and the over is still priced with value.",
		fixture.HomeTeam, home.AvgShotsForHome, home.AvgShotsOnTargetForHome)
	return betSignal(s.Name(), "💥", overMarket(2.5), price, rationale)
}

// extremePressure is the tighter variant: extreme home shot volume
// with the over priced inside a band.
type extremePressure struct {
	cfg config.ExtremePressureConfig
}

func (s *extremePressure) Name() string { return "extreme_pressure" }

func (s *extremePressure) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	home, ok := ctx.Team(fixture.HomeTeam)
	if !ok || home.GamesHome < ctx.MinHistoryGames {
		return models.NoSignal()
	}
	if home.AvgShotsForHome < s.cfg.MinShotsFor || home.AvgShotsOnTargetForHome < s.cfg.MinShotsOnTargetFor {
		return models.NoSignal()
	}
	price, ok := odds.Price(models.MarketTotals25, models.SelectionOver)
	if !ok || price < s.cfg.MinPrice || price > s.cfg.MaxPrice {
		return models.NoSignal()
	}
	rationale := fmt.Sprintf(
		"%s dominates at home with %.2f shots and %.2f on target per game, and the over sits inside the value band.",
		fixture.HomeTeam, home.AvgShotsForHome, home.AvgShotsOnTargetForHome)
	return betSignal(s.Name(), "🎯", overMarket(2.5), price, rationale)
}
