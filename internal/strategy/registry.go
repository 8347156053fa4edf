package strategy

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-falcon/internal/config"
	"github.com/yourusername/odds-falcon/internal/models"
)

// Registry holds the enabled strategies in evaluation order
type Registry struct {
	strategies []Strategy
	logger     *logrus.Logger
}

// NewRegistry builds the battery from the configured enabled list,
// preserving its order. Unknown names fail construction rather than
// silently changing the battery.
func NewRegistry(cfg config.StrategiesConfig, logger *logrus.Logger) (*Registry, error) {
	strategies := make([]Strategy, 0, len(cfg.Enabled))
	for _, name := range cfg.Enabled {
		s, err := build(name, cfg)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	return &Registry{strategies: strategies, logger: logger}, nil
}

// Strategies returns the battery in evaluation order
func (r *Registry) Strategies() []Strategy {
	return r.strategies
}

// Evaluate runs the battery against a fixture until the first strategy
// produces an alert or bet candidate. One fixture yields at most one
// acted-upon signal per run so stakes never concentrate on a single
// match.
func (r *Registry) Evaluate(fixture models.Fixture, odds models.CanonicalOdds, ctx *Context) models.Signal {
	for _, s := range r.strategies {
		signal := s.Evaluate(fixture, odds, ctx)
		if signal.IsActionable() {
			r.logger.WithFields(logrus.Fields{
				"fixture":  fixture.Name(),
				"strategy": s.Name(),
				"kind":     signal.Kind,
			}).Info("Strategy produced a signal")
			return signal
		}
	}
	return models.NoSignal()
}

func build(name string, cfg config.StrategiesConfig) (Strategy, error) {
	switch name {
	case "corner_trend":
		return &cornerTrend{cfg: cfg.CornerTrend}, nil
	case "btts":
		return &bothTeamsScore{cfg: cfg.BTTS}, nil
	case "leader_vs_straggler":
		return &leaderVsStraggler{cfg: cfg.LeaderVsStraggler}, nil
	case "giant_reaction":
		return &giantReaction{cfg: cfg.GiantReaction}, nil
	case "defensive_fortress":
		return &defensiveFortress{cfg: cfg.DefensiveFortress}, nil
	case "goal_classic":
		return &goalClassic{cfg: cfg.GoalClassic}, nil
	case "home_scorer":
		return &homeScorer{cfg: cfg.HomeScorer}, nil
	case "weak_away":
		return &weakAway{cfg: cfg.WeakAway}, nil
	case "weak_home":
		return &weakHome{cfg: cfg.WeakHome}, nil
	case "tiered_favorite":
		return &tieredFavorite{cfg: cfg.TieredFavorite}, nil
	case "tactical_duel":
		return &tacticalDuel{cfg: cfg.TacticalDuel}, nil
	case "optimistic_market":
		return &optimisticMarket{cfg: cfg.OptimisticMarket}, nil
	case "goal_consensus":
		return &goalConsensus{cfg: cfg.GoalConsensus}, nil
	case "defense_consensus":
		return &defenseConsensus{cfg: cfg.DefenseConsensus}, nil
	case "stretched_line":
		return &stretchedLine{cfg: cfg.StretchedLine}, nil
	case "value_draw":
		return &valueDraw{cfg: cfg.ValueDraw}, nil
	case "steady_favorite":
		return &steadyFavorite{cfg: cfg.SteadyFavorite}, nil
	case "market_pressure":
		return &marketPressure{cfg: cfg.MarketPressure}, nil
	case "corner_dominance":
		return &cornerDominance{cfg: cfg.CornerDominance}, nil
	case "offensive_pressure":
		return &offensivePressure{cfg: cfg.OffensivePressure}, nil
	case "aggressive_game":
		return &aggressiveGame{cfg: cfg.AggressiveGame}, nil
	case "extreme_pressure":
		return &extremePressure{cfg: cfg.ExtremePressure}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}
