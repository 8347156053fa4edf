// Package config provides configuration management for the odds-falcon application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	v.SetEnvPrefix("ODDS_FALCON")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// DefaultStrategyOrder is the fixed evaluation order used when the
// config does not override strategies.enabled. The order is part of the
// engine's contract: the first strategy to produce a signal wins the
// fixture for that run.
var DefaultStrategyOrder = []string{
	"corner_trend",
	"btts",
	"leader_vs_straggler",
	"giant_reaction",
	"defensive_fortress",
	"goal_classic",
	"home_scorer",
	"weak_away",
	"weak_home",
	"tiered_favorite",
	"optimistic_market",
	"goal_consensus",
	"defense_consensus",
	"stretched_line",
	"value_draw",
	"steady_favorite",
	"market_pressure",
	"corner_dominance",
	"offensive_pressure",
	"aggressive_game",
	"extreme_pressure",
}

// setDefaults seeds every optional knob so a minimal config file still
// yields a runnable configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "odds-falcon")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.timezone", "America/Sao_Paulo")

	v.SetDefault("history.source", "csv")
	v.SetDefault("history.csv_path", "data/historical_matches.csv")

	v.SetDefault("odds_feed.bookmaker", "pinnacle")
	v.SetDefault("odds_feed.regions", "eu,us,uk,au")
	v.SetDefault("odds_feed.timeout_seconds", 30)
	v.SetDefault("odds_feed.rate_limit", 1.0)
	v.SetDefault("odds_feed.max_retries", 3)

	v.SetDefault("stats_feed.timeout_seconds", 15)
	v.SetDefault("stats_feed.rate_limit", 0.5)
	v.SetDefault("stats_feed.max_retries", 2)
	v.SetDefault("stats_feed.form_window", 6)

	v.SetDefault("bankroll.initial_capital", 100.0)
	v.SetDefault("bankroll.default_stake_pct", 5.0)
	v.SetDefault("bankroll.min_accepted_price", 1.40)
	v.SetDefault("bankroll.max_recovery_multiple", 3.0)
	v.SetDefault("bankroll.settle_delay_minutes", 110)
	v.SetDefault("bankroll.opening_odds_lead_hours", 22)

	v.SetDefault("stores.dir", "data")
	v.SetDefault("stores.bankroll_file", "bankroll.json")
	v.SetDefault("stores.pending_file", "pending_bets.json")
	v.SetDefault("stores.ledger_file", "bet_ledger.json")
	v.SetDefault("stores.form_cache_file", "form_cache.json")
	v.SetDefault("stores.opening_odds_file", "opening_odds.json")

	v.SetDefault("cache.form_ttl_hours", 12)
	v.SetDefault("cache.standings_ttl_hours", 24)
	v.SetDefault("cache.corners_ttl_hours", 24)

	v.SetDefault("daemon.schedule", "0 */4 * * *")
	v.SetDefault("daemon.metrics_port", 9090)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("strategies.enabled", DefaultStrategyOrder)
	v.SetDefault("strategies.min_history_games", 6)
	v.SetDefault("strategies.min_h2h_games", 4)

	v.SetDefault("strategies.corner_trend.games_window", 6)
	v.SetDefault("strategies.corner_trend.min_avg_total", 10.5)

	v.SetDefault("strategies.btts.min_avg_goals_per_match", 2.8)

	v.SetDefault("strategies.leader_vs_straggler.max_leader_rank", 3)
	v.SetDefault("strategies.leader_vs_straggler.straggler_from_end", 3)
	v.SetDefault("strategies.leader_vs_straggler.min_price", 1.45)
	v.SetDefault("strategies.leader_vs_straggler.min_table_size", 10)

	v.SetDefault("strategies.giant_reaction.min_win_pct", 55.0)
	v.SetDefault("strategies.giant_reaction.min_price", 1.60)

	v.SetDefault("strategies.defensive_fortress.max_avg_goals_conceded", 0.80)
	v.SetDefault("strategies.defensive_fortress.min_under_price", 1.55)

	v.SetDefault("strategies.goal_classic.min_h2h_avg_goals", 3.2)
	v.SetDefault("strategies.goal_classic.league_uplift", 1.15)
	v.SetDefault("strategies.goal_classic.min_over_price", 1.60)

	v.SetDefault("strategies.home_scorer.min_avg_goals_scored", 2.0)
	v.SetDefault("strategies.home_scorer.min_over_price", 1.35)

	v.SetDefault("strategies.weak_away.min_loss_pct", 60.0)
	v.SetDefault("strategies.weak_away.min_price", 1.50)
	v.SetDefault("strategies.weak_away.max_price", 2.20)

	v.SetDefault("strategies.weak_home.min_loss_pct", 55.0)
	v.SetDefault("strategies.weak_home.min_price", 1.60)
	v.SetDefault("strategies.weak_home.max_price", 2.40)

	v.SetDefault("strategies.tiered_favorite.super_favorite_max_price", 1.30)
	v.SetDefault("strategies.tiered_favorite.favorite_max_price", 1.55)
	v.SetDefault("strategies.tiered_favorite.min_over_price", 1.40)
	v.SetDefault("strategies.tiered_favorite.min_form_wins", 3)
	v.SetDefault("strategies.tiered_favorite.min_recent_wins", 2)

	v.SetDefault("strategies.tactical_duel.min_side_price", 2.40)
	v.SetDefault("strategies.tactical_duel.min_under_price", 1.70)
	v.SetDefault("strategies.tactical_duel.max_avg_goals_form", 2.6)

	v.SetDefault("strategies.optimistic_market.max_over_2_5_price", 1.70)
	v.SetDefault("strategies.optimistic_market.min_over_1_5_price", 1.30)
	v.SetDefault("strategies.optimistic_market.min_avg_goals_form", 2.7)

	v.SetDefault("strategies.goal_consensus.max_favorite_price", 1.60)
	v.SetDefault("strategies.goal_consensus.max_over_price", 1.80)
	v.SetDefault("strategies.goal_consensus.min_over_price", 1.45)
	v.SetDefault("strategies.goal_consensus.min_form_wins", 3)
	v.SetDefault("strategies.goal_consensus.min_combined_goals", 2.8)

	v.SetDefault("strategies.defense_consensus.max_draw_price", 3.40)
	v.SetDefault("strategies.defense_consensus.max_under_price", 1.75)
	v.SetDefault("strategies.defense_consensus.min_under_price", 1.45)
	v.SetDefault("strategies.defense_consensus.max_avg_goals_form", 2.5)

	v.SetDefault("strategies.stretched_line.max_over_2_5_price", 1.60)
	v.SetDefault("strategies.stretched_line.min_under_3_5_price", 1.40)
	v.SetDefault("strategies.stretched_line.max_avg_goals_form", 3.5)

	v.SetDefault("strategies.value_draw.max_favorite_price", 1.35)
	v.SetDefault("strategies.value_draw.min_draw_price", 4.50)
	v.SetDefault("strategies.value_draw.max_draw_price", 7.00)

	v.SetDefault("strategies.steady_favorite.max_favorite_price", 1.50)
	v.SetDefault("strategies.steady_favorite.min_over_price", 1.32)
	v.SetDefault("strategies.steady_favorite.min_form_wins", 3)

	v.SetDefault("strategies.market_pressure.min_over_price", 1.65)
	v.SetDefault("strategies.market_pressure.max_over_price", 1.95)
	v.SetDefault("strategies.market_pressure.min_combined_goals", 2.6)

	v.SetDefault("strategies.corner_dominance.min_avg_for_home", 6.0)
	v.SetDefault("strategies.corner_dominance.min_avg_against_away", 5.5)
	v.SetDefault("strategies.corner_dominance.min_combined_for", 11.0)
	v.SetDefault("strategies.corner_dominance.league_uplift", 1.20)

	v.SetDefault("strategies.offensive_pressure.min_shots_for", 15.0)
	v.SetDefault("strategies.offensive_pressure.min_shots_on_target_for", 5.5)
	v.SetDefault("strategies.offensive_pressure.min_over_price", 1.55)

	v.SetDefault("strategies.aggressive_game.min_avg_per_team", 2.2)
	v.SetDefault("strategies.aggressive_game.min_combined_avg", 4.8)

	v.SetDefault("strategies.extreme_pressure.min_shots_for", 18.0)
	v.SetDefault("strategies.extreme_pressure.min_shots_on_target_for", 6.5)
	v.SetDefault("strategies.extreme_pressure.min_price", 1.50)
	v.SetDefault("strategies.extreme_pressure.max_price", 2.10)
}
