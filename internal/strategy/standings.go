package strategy

import (
	"fmt"

	"github.com/yourusername/odds-falcon/internal/config"
	"github.com/yourusername/odds-falcon/internal/models"
)

// leaderVsStraggler backs a side from the top of the table against one
// from the bottom, with the win priced above a floor.
type leaderVsStraggler struct {
	cfg config.LeaderVsStragglerConfig
}

func (s *leaderVsStraggler) Name() string { return "leader_vs_straggler" }

func (s *leaderVsStraggler) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	// the h2h market gates the standings lookup: without prices there
	// is nothing to bet regardless of the table
	if _, ok := odds.Price(models.MarketHeadToHead, fixture.HomeTeam); !ok {
		return models.NoSignal()
	}

	table, ok := ctx.Standings(fixture.League)
	if !ok || len(table) < s.cfg.MinTableSize {
		return models.NoSignal()
	}

	homeRank, awayRank := 0, 0
	for _, row := range table {
		if row.Team == fixture.HomeTeam {
			homeRank = row.Rank
		}
		if row.Team == fixture.AwayTeam {
			awayRank = row.Rank
		}
	}
	if homeRank == 0 || awayRank == 0 {
		return models.NoSignal()
	}

	stragglerCutoff := len(table) - s.cfg.StragglerFromEnd + 1

	var leader, straggler string
	var leaderRank, stragglerRank int
	switch {
	case homeRank <= s.cfg.MaxLeaderRank && awayRank >= stragglerCutoff:
		leader, straggler = fixture.HomeTeam, fixture.AwayTeam
		leaderRank, stragglerRank = homeRank, awayRank
	case awayRank <= s.cfg.MaxLeaderRank && homeRank >= stragglerCutoff:
		leader, straggler = fixture.AwayTeam, fixture.HomeTeam
		leaderRank, stragglerRank = awayRank, homeRank
	default:
		return models.NoSignal()
	}

	price, ok := odds.Price(models.MarketHeadToHead, leader)
	if !ok || price < s.cfg.MinPrice {
		return models.NoSignal()
	}

	rationale := fmt.Sprintf(
		"%s sits at the top of the table (rank %d) while %s is near the bottom (rank %d of %d).",
		leader, leaderRank, straggler, stragglerRank, len(table))
	return betSignal(s.Name(), "⚔️", winnerMarket(leader), price, rationale)
}
