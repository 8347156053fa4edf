package strategy

import (
	"fmt"

	"github.com/yourusername/odds-falcon/internal/config"
	"github.com/yourusername/odds-falcon/internal/models"
)

// Market-driven strategies qualify a fixture on its prices first and
// only then spend a form lookup to validate the read. The price checks
// have to come first: they are free, the form report may cost a
// network call.

// bothTeamsScore validates a priced BTTS market with both sides'
// recent scoring form.
type bothTeamsScore struct {
	cfg config.BTTSConfig
}

func (s *bothTeamsScore) Name() string { return "btts" }

func (s *bothTeamsScore) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	price, ok := odds.Price(models.MarketBTTS, models.SelectionYes)
	if !ok {
		return models.NoSignal()
	}

	homeForm, ok := ctx.Form(fixture.HomeTeam)
	if !ok {
		return models.NoSignal()
	}
	awayForm, ok := ctx.Form(fixture.AwayTeam)
	if !ok {
		return models.NoSignal()
	}

	if homeForm.AvgGoalsPerMatch < s.cfg.MinAvgGoalsPerMatch || awayForm.AvgGoalsPerMatch < s.cfg.MinAvgGoalsPerMatch {
		return models.NoSignal()
	}

	rationale := fmt.Sprintf(
		"Both sides come from high-scoring matches: %s averages %.2f goals per recent game and %s %.2f.",
		fixture.HomeTeam, homeForm.AvgGoalsPerMatch, fixture.AwayTeam, awayForm.AvgGoalsPerMatch)
	return betSignal(s.Name(), "⚽", models.BetMarket{Kind: models.BetMarketBTTS}, price, rationale)
}

// tieredFavorite backs over 1.5 behind a short-priced favorite whose
// form confirms the price.
type tieredFavorite struct {
	cfg config.TieredFavoriteConfig
}

func (s *tieredFavorite) Name() string { return "tiered_favorite" }

func (s *tieredFavorite) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	favorite, favPrice, ok := odds.Favorite()
	if !ok {
		return models.NoSignal()
	}

	var tier string
	switch {
	case favPrice <= s.cfg.SuperFavoriteMaxPrice:
		tier = "super favorite"
	case favPrice <= s.cfg.FavoriteMaxPrice:
		tier = "favorite"
	default:
		return models.NoSignal()
	}

	overPrice, ok := odds.Price(models.MarketTotals15, models.SelectionOver)
	if !ok || overPrice <= s.cfg.MinOverPrice {
		return models.NoSignal()
	}

	form, ok := ctx.Form(favorite)
	if !ok {
		return models.NoSignal()
	}
	if form.Wins() < s.cfg.MinFormWins || form.RecentWins(3) < s.cfg.MinRecentWins {
		return models.NoSignal()
	}

	rationale := fmt.Sprintf(
		"%s is the %s at %.2f, with %d recent wins and %d of the last 3.",
		favorite, tier, favPrice, form.Wins(), form.RecentWins(3))
	return betSignal(s.Name(), "👑", overMarket(1.5), overPrice, rationale)
}

// tacticalDuel backs the under in an evenly priced match where both
// sides come from quiet games.
type tacticalDuel struct {
	cfg config.TacticalDuelConfig
}

func (s *tacticalDuel) Name() string { return "tactical_duel" }

func (s *tacticalDuel) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	homePrice, ok := odds.Price(models.MarketHeadToHead, fixture.HomeTeam)
	if !ok || homePrice <= s.cfg.MinSidePrice {
		return models.NoSignal()
	}
	awayPrice, ok := odds.Price(models.MarketHeadToHead, fixture.AwayTeam)
	if !ok || awayPrice <= s.cfg.MinSidePrice {
		return models.NoSignal()
	}
	underPrice, ok := odds.Price(models.MarketTotals25, models.SelectionUnder)
	if !ok || underPrice <= s.cfg.MinUnderPrice {
		return models.NoSignal()
	}

	homeForm, ok := ctx.Form(fixture.HomeTeam)
	if !ok {
		return models.NoSignal()
	}
	awayForm, ok := ctx.Form(fixture.AwayTeam)
	if !ok {
		return models.NoSignal()
	}
	if homeForm.AvgGoalsPerMatch >= s.cfg.MaxAvgGoalsForm || awayForm.AvgGoalsPerMatch >= s.cfg.MaxAvgGoalsForm {
		return models.NoSignal()
	}

	rationale := fmt.Sprintf(
		"Neither side is favored and both come from quiet matches (%.2f and %.2f goals per recent game).",
		homeForm.AvgGoalsPerMatch, awayForm.AvgGoalsPerMatch)
	return betSignal(s.Name(), "♟️", underMarket(2.5), underPrice, rationale)
}

// optimisticMarket drops a goal-heavy market read down to the safer
// 1.5 line when both sides' scoring form supports it.
type optimisticMarket struct {
	cfg config.OptimisticMarketConfig
}

func (s *optimisticMarket) Name() string { return "optimistic_market" }

func (s *optimisticMarket) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	over25, ok := odds.Price(models.MarketTotals25, models.SelectionOver)
	if !ok || over25 > s.cfg.MaxOver25Price {
		return models.NoSignal()
	}
	over15, ok := odds.Price(models.MarketTotals15, models.SelectionOver)
	if !ok || over15 <= s.cfg.MinOver15Price {
		return models.NoSignal()
	}

	homeForm, ok := ctx.Form(fixture.HomeTeam)
	if !ok {
		return models.NoSignal()
	}
	awayForm, ok := ctx.Form(fixture.AwayTeam)
	if !ok {
		return models.NoSignal()
	}
	if homeForm.AvgGoalsPerMatch <= s.cfg.MinAvgGoalsForm || awayForm.AvgGoalsPerMatch <= s.cfg.MinAvgGoalsForm {
		return models.NoSignal()
	}

	rationale := fmt.Sprintf(
		"The market expects goals and recent form agrees: %.2f and %.2f goals per game for the two sides.",
		homeForm.AvgGoalsPerMatch, awayForm.AvgGoalsPerMatch)
	return betSignal(s.Name(), "📈", overMarket(1.5), over15, rationale)
}

// goalConsensus pairs a strong favorite with a cheap over line and
// validates both with form.
type goalConsensus struct {
	cfg config.GoalConsensusConfig
}

func (s *goalConsensus) Name() string { return "goal_consensus" }

func (s *goalConsensus) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	favorite, favPrice, ok := odds.Favorite()
	if !ok || favPrice > s.cfg.MaxFavoritePrice {
		return models.NoSignal()
	}
	over25, ok := odds.Price(models.MarketTotals25, models.SelectionOver)
	if !ok || over25 > s.cfg.MaxOverPrice || over25 <= s.cfg.MinOverPrice {
		return models.NoSignal()
	}

	other := fixture.AwayTeam
	if favorite == fixture.AwayTeam {
		other = fixture.HomeTeam
	}

	favForm, ok := ctx.Form(favorite)
	if !ok {
		return models.NoSignal()
	}
	otherForm, ok := ctx.Form(other)
	if !ok {
		return models.NoSignal()
	}

	combined := (favForm.AvgGoalsPerMatch + otherForm.AvgGoalsPerMatch) / 2
	if favForm.Wins() < s.cfg.MinFormWins || combined <= s.cfg.MinCombinedGoals {
		return models.NoSignal()
	}

	rationale := fmt.Sprintf(
		"%s is in form with %d recent wins and the sides combine for %.2f goals per recent game.",
		favorite, favForm.Wins(), combined)
	return betSignal(s.Name(), "🎯", overMarket(2.5), over25, rationale)
}

// defenseConsensus pairs a short draw price with a cheap under line
type defenseConsensus struct {
	cfg config.DefenseConsensusConfig
}

func (s *defenseConsensus) Name() string { return "defense_consensus" }

func (s *defenseConsensus) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	drawPrice, ok := odds.Price(models.MarketHeadToHead, models.SelectionDraw)
	if !ok || drawPrice > s.cfg.MaxDrawPrice {
		return models.NoSignal()
	}
	underPrice, ok := odds.Price(models.MarketTotals25, models.SelectionUnder)
	if !ok || underPrice > s.cfg.MaxUnderPrice || underPrice <= s.cfg.MinUnderPrice {
		return models.NoSignal()
	}

	homeForm, ok := ctx.Form(fixture.HomeTeam)
	if !ok {
		return models.NoSignal()
	}
	awayForm, ok := ctx.Form(fixture.AwayTeam)
	if !ok {
		return models.NoSignal()
	}
	if homeForm.AvgGoalsPerMatch >= s.cfg.MaxAvgGoalsForm || awayForm.AvgGoalsPerMatch >= s.cfg.MaxAvgGoalsForm {
		return models.NoSignal()
	}

	rationale := fmt.Sprintf(
		"The market reads a tight match (draw at %.2f) and both sides average few goals recently (%.2f and %.2f).",
		drawPrice, homeForm.AvgGoalsPerMatch, awayForm.AvgGoalsPerMatch)
	return betSignal(s.Name(), "🛡️", underMarket(2.5), underPrice, rationale)
}

// stretchedLine fades the 3.5 line when the market expects goals but
// recent form does not reach that far.
type stretchedLine struct {
	cfg config.StretchedLineConfig
}

func (s *stretchedLine) Name() string { return "stretched_line" }

func (s *stretchedLine) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	over25, ok := odds.Price(models.MarketTotals25, models.SelectionOver)
	if !ok || over25 >= s.cfg.MaxOver25Price {
		return models.NoSignal()
	}
	under35, ok := odds.Price(models.MarketTotals35, models.SelectionUnder)
	if !ok || under35 <= s.cfg.MinUnder35Price {
		return models.NoSignal()
	}

	homeForm, ok := ctx.Form(fixture.HomeTeam)
	if !ok {
		return models.NoSignal()
	}
	awayForm, ok := ctx.Form(fixture.AwayTeam)
	if !ok {
		return models.NoSignal()
	}
	if homeForm.AvgGoalsPerMatch >= s.cfg.MaxAvgGoalsForm || awayForm.AvgGoalsPerMatch >= s.cfg.MaxAvgGoalsForm {
		return models.NoSignal()
	}

	rationale := fmt.Sprintf(
		"The market expects goals (over 2.5 at %.2f) but recent form (%.2f and %.2f per game) says four is a stretch.",
		over25, homeForm.AvgGoalsPerMatch, awayForm.AvgGoalsPerMatch)
	return betSignal(s.Name(), "📏", underMarket(3.5), under35, rationale)
}

// valueDraw takes the draw against a crushing favorite whose recent
// form shows cracks.
type valueDraw struct {
	cfg config.ValueDrawConfig
}

func (s *valueDraw) Name() string { return "value_draw" }

func (s *valueDraw) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	favorite, favPrice, ok := odds.Favorite()
	if !ok || favPrice >= s.cfg.MaxFavoritePrice {
		return models.NoSignal()
	}
	drawPrice, ok := odds.Price(models.MarketHeadToHead, models.SelectionDraw)
	if !ok || drawPrice < s.cfg.MinDrawPrice || drawPrice > s.cfg.MaxDrawPrice {
		return models.NoSignal()
	}

	form, ok := ctx.Form(favorite)
	if !ok {
		return models.NoSignal()
	}
	if !form.HasBlemish() {
		return models.NoSignal()
	}

	rationale := fmt.Sprintf(
		"Despite crushing favoritism, %s has shown instability recently (%s), giving the draw value at %.2f.",
		favorite, form.Results, drawPrice)
	return betSignal(s.Name(), "🦓", models.BetMarket{Kind: models.BetMarketDraw}, drawPrice, rationale)
}

// steadyFavorite backs over 1.5 behind a short favorite in consistent
// form.
type steadyFavorite struct {
	cfg config.SteadyFavoriteConfig
}

func (s *steadyFavorite) Name() string { return "steady_favorite" }

func (s *steadyFavorite) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	favorite, favPrice, ok := odds.Favorite()
	if !ok || favPrice > s.cfg.MaxFavoritePrice {
		return models.NoSignal()
	}
	over15, ok := odds.Price(models.MarketTotals15, models.SelectionOver)
	if !ok || over15 <= s.cfg.MinOverPrice {
		return models.NoSignal()
	}

	form, ok := ctx.Form(favorite)
	if !ok || form.Wins() < s.cfg.MinFormWins {
		return models.NoSignal()
	}

	rationale := fmt.Sprintf(
		"%s is a steady favorite with %d wins in its last %d matches.",
		favorite, form.Wins(), len(form.Results))
	return betSignal(s.Name(), "💪", overMarket(1.5), over15, rationale)
}

// marketPressure backs the over when its price sits in a value band
// and combined recent scoring supports it.
type marketPressure struct {
	cfg config.MarketPressureConfig
}

func (s *marketPressure) Name() string { return "market_pressure" }

func (s *marketPressure) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	over25, ok := odds.Price(models.MarketTotals25, models.SelectionOver)
	if !ok || over25 < s.cfg.MinOverPrice || over25 > s.cfg.MaxOverPrice {
		return models.NoSignal()
	}

	homeForm, ok := ctx.Form(fixture.HomeTeam)
	if !ok {
		return models.NoSignal()
	}
	awayForm, ok := ctx.Form(fixture.AwayTeam)
	if !ok {
		return models.NoSignal()
	}

	combined := (homeForm.AvgGoalsPerMatch + awayForm.AvgGoalsPerMatch) / 2
	if combined <= s.cfg.MinCombinedGoals {
		return models.NoSignal()
	}

	rationale := fmt.Sprintf(
		"The over is priced in the value band at %.2f and the sides combine for %.2f goals per recent game.",
		over25, combined)
	return betSignal(s.Name(), "🌡️", overMarket(2.5), over25, rationale)
}
