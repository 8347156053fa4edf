// Package config provides configuration management for the odds-falcon application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	History    HistoryConfig    `mapstructure:"history" validate:"required"`
	OddsFeed   OddsFeedConfig   `mapstructure:"odds_feed" validate:"required"`
	StatsFeed  StatsFeedConfig  `mapstructure:"stats_feed" validate:"required"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Bankroll   BankrollConfig   `mapstructure:"bankroll" validate:"required"`
	Stores     StoresConfig     `mapstructure:"stores" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache" validate:"required"`
	Strategies StrategiesConfig `mapstructure:"strategies" validate:"required"`
	Daemon     DaemonConfig     `mapstructure:"daemon"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
	Timezone    string `mapstructure:"timezone"`
}

// DatabaseConfig represents the historical match database connection.
// Only used when History.Source is "postgres".
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
}

// HistoryConfig selects where the finished-match table is loaded from
type HistoryConfig struct {
	Source  string `mapstructure:"source" validate:"required,oneof=postgres csv"`
	CSVPath string `mapstructure:"csv_path"`
}

// OddsFeedConfig represents the odds provider API configuration
type OddsFeedConfig struct {
	BaseURL        string  `mapstructure:"base_url" validate:"required,url"`
	APIKey         string  `mapstructure:"api_key"`
	Bookmaker      string  `mapstructure:"bookmaker" validate:"required"`
	Regions        string  `mapstructure:"regions"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
}

// StatsFeedConfig represents the team-statistics provider configuration
// (form, standings, corner history, final scores)
type StatsFeedConfig struct {
	BaseURL        string  `mapstructure:"base_url" validate:"required,url"`
	APIKey         string  `mapstructure:"api_key"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	FormWindow     int     `mapstructure:"form_window" validate:"required,gt=0"`
}

// TelegramConfig represents the notification channel configuration
type TelegramConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
	ChatID  int64  `mapstructure:"chat_id"`
}

// BankrollConfig represents staking and settlement configuration
type BankrollConfig struct {
	InitialCapital       float64 `mapstructure:"initial_capital" validate:"required,gt=0"`
	DefaultStakePct      float64 `mapstructure:"default_stake_pct" validate:"required,gt=0,lte=100"`
	MinAcceptedPrice     float64 `mapstructure:"min_accepted_price" validate:"required,gt=1"`
	MaxRecoveryMultiple  float64 `mapstructure:"max_recovery_multiple" validate:"required,gte=1"`
	SettleDelayMinutes   int     `mapstructure:"settle_delay_minutes" validate:"required,gt=0"`
	OpeningOddsLeadHours int     `mapstructure:"opening_odds_lead_hours" validate:"gte=0"`
}

// SettleDelay returns the minimum delay after kickoff before a result poll
func (b BankrollConfig) SettleDelay() time.Duration {
	return time.Duration(b.SettleDelayMinutes) * time.Minute
}

// StoresConfig holds the paths of the persisted JSON collections
type StoresConfig struct {
	Dir             string `mapstructure:"dir" validate:"required"`
	BankrollFile    string `mapstructure:"bankroll_file" validate:"required"`
	PendingFile     string `mapstructure:"pending_file" validate:"required"`
	LedgerFile      string `mapstructure:"ledger_file" validate:"required"`
	FormCacheFile   string `mapstructure:"form_cache_file" validate:"required"`
	OpeningOddsFile string `mapstructure:"opening_odds_file" validate:"required"`
}

// CacheConfig holds the time-to-live per lookup kind
type CacheConfig struct {
	FormTTLHours      int `mapstructure:"form_ttl_hours" validate:"required,gt=0"`
	StandingsTTLHours int `mapstructure:"standings_ttl_hours" validate:"required,gt=0"`
	CornersTTLHours   int `mapstructure:"corners_ttl_hours" validate:"required,gt=0"`
}

// DaemonConfig drives scheduled execution in daemon mode
type DaemonConfig struct {
	Schedule    string `mapstructure:"schedule"`
	MetricsPort int    `mapstructure:"metrics_port" validate:"omitempty,min=1,max=65535"`
}

// MetricsConfig represents metrics exposure configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// StrategiesConfig carries the per-strategy thresholds and the ordered
// list of enabled strategies. Registration order is evaluation order.
type StrategiesConfig struct {
	Enabled []string `mapstructure:"enabled" validate:"required,min=1"`

	MinHistoryGames int `mapstructure:"min_history_games" validate:"required,gt=0"`
	MinH2HGames     int `mapstructure:"min_h2h_games" validate:"required,gt=0"`

	CornerTrend        CornerTrendConfig        `mapstructure:"corner_trend"`
	BTTS               BTTSConfig               `mapstructure:"btts"`
	LeaderVsStraggler  LeaderVsStragglerConfig  `mapstructure:"leader_vs_straggler"`
	GiantReaction      GiantReactionConfig      `mapstructure:"giant_reaction"`
	DefensiveFortress  DefensiveFortressConfig  `mapstructure:"defensive_fortress"`
	GoalClassic        GoalClassicConfig        `mapstructure:"goal_classic"`
	HomeScorer         HomeScorerConfig         `mapstructure:"home_scorer"`
	WeakAway           WeakSideConfig           `mapstructure:"weak_away"`
	WeakHome           WeakSideConfig           `mapstructure:"weak_home"`
	TieredFavorite     TieredFavoriteConfig     `mapstructure:"tiered_favorite"`
	TacticalDuel       TacticalDuelConfig       `mapstructure:"tactical_duel"`
	OptimisticMarket   OptimisticMarketConfig   `mapstructure:"optimistic_market"`
	GoalConsensus      GoalConsensusConfig      `mapstructure:"goal_consensus"`
	DefenseConsensus   DefenseConsensusConfig   `mapstructure:"defense_consensus"`
	StretchedLine      StretchedLineConfig      `mapstructure:"stretched_line"`
	ValueDraw          ValueDrawConfig          `mapstructure:"value_draw"`
	SteadyFavorite     SteadyFavoriteConfig     `mapstructure:"steady_favorite"`
	MarketPressure     MarketPressureConfig     `mapstructure:"market_pressure"`
	CornerDominance    CornerDominanceConfig    `mapstructure:"corner_dominance"`
	OffensivePressure  OffensivePressureConfig  `mapstructure:"offensive_pressure"`
	AggressiveGame     AggressiveGameConfig     `mapstructure:"aggressive_game"`
	ExtremePressure    ExtremePressureConfig    `mapstructure:"extreme_pressure"`
}

// CornerTrendConfig: statistical corner-volume alert
type CornerTrendConfig struct {
	GamesWindow  int     `mapstructure:"games_window"`
	MinAvgTotal  float64 `mapstructure:"min_avg_total"`
}

// BTTSConfig: both-teams-to-score validated by recent goal averages
type BTTSConfig struct {
	MinAvgGoalsPerMatch float64 `mapstructure:"min_avg_goals_per_match"`
}

// LeaderVsStragglerConfig: table-context winner bet
type LeaderVsStragglerConfig struct {
	MaxLeaderRank     int     `mapstructure:"max_leader_rank"`
	StragglerFromEnd  int     `mapstructure:"straggler_from_end"`
	MinPrice          float64 `mapstructure:"min_price"`
	MinTableSize      int     `mapstructure:"min_table_size"`
}

// GiantReactionConfig: historically dominant team coming off a loss
type GiantReactionConfig struct {
	MinWinPct float64 `mapstructure:"min_win_pct"`
	MinPrice  float64 `mapstructure:"min_price"`
}

// DefensiveFortressConfig: home side with a historically tight defense
type DefensiveFortressConfig struct {
	MaxAvgGoalsConceded float64 `mapstructure:"max_avg_goals_conceded"`
	MinUnderPrice       float64 `mapstructure:"min_under_price"`
}

// GoalClassicConfig: high-scoring direct-meeting history
type GoalClassicConfig struct {
	MinH2HAvgGoals  float64 `mapstructure:"min_h2h_avg_goals"`
	LeagueUplift    float64 `mapstructure:"league_uplift"`
	MinOverPrice    float64 `mapstructure:"min_over_price"`
}

// HomeScorerConfig: prolific home attack
type HomeScorerConfig struct {
	MinAvgGoalsScored float64 `mapstructure:"min_avg_goals_scored"`
	MinOverPrice      float64 `mapstructure:"min_over_price"`
}

// WeakSideConfig: a side losing a large share of its games in one role
type WeakSideConfig struct {
	MinLossPct float64 `mapstructure:"min_loss_pct"`
	MinPrice   float64 `mapstructure:"min_price"`
	MaxPrice   float64 `mapstructure:"max_price"`
}

// TieredFavoriteConfig: super-favorite/favorite attack validated by form
type TieredFavoriteConfig struct {
	SuperFavoriteMaxPrice float64 `mapstructure:"super_favorite_max_price"`
	FavoriteMaxPrice      float64 `mapstructure:"favorite_max_price"`
	MinOverPrice          float64 `mapstructure:"min_over_price"`
	MinFormWins           int     `mapstructure:"min_form_wins"`
	MinRecentWins         int     `mapstructure:"min_recent_wins"`
}

// TacticalDuelConfig: evenly priced sides with quiet recent goal averages
type TacticalDuelConfig struct {
	MinSidePrice     float64 `mapstructure:"min_side_price"`
	MinUnderPrice    float64 `mapstructure:"min_under_price"`
	MaxAvgGoalsForm  float64 `mapstructure:"max_avg_goals_form"`
}

// OptimisticMarketConfig: compressed over prices backed by scoring form
type OptimisticMarketConfig struct {
	MaxOver25Price  float64 `mapstructure:"max_over_2_5_price"`
	MinOver15Price  float64 `mapstructure:"min_over_1_5_price"`
	MinAvgGoalsForm float64 `mapstructure:"min_avg_goals_form"`
}

// GoalConsensusConfig: strong favorite plus cheap over line
type GoalConsensusConfig struct {
	MaxFavoritePrice  float64 `mapstructure:"max_favorite_price"`
	MaxOverPrice      float64 `mapstructure:"max_over_price"`
	MinOverPrice      float64 `mapstructure:"min_over_price"`
	MinFormWins       int     `mapstructure:"min_form_wins"`
	MinCombinedGoals  float64 `mapstructure:"min_combined_goals"`
}

// DefenseConsensusConfig: short draw price plus cheap under line
type DefenseConsensusConfig struct {
	MaxDrawPrice    float64 `mapstructure:"max_draw_price"`
	MaxUnderPrice   float64 `mapstructure:"max_under_price"`
	MinUnderPrice   float64 `mapstructure:"min_under_price"`
	MaxAvgGoalsForm float64 `mapstructure:"max_avg_goals_form"`
}

// StretchedLineConfig: market expects goals but 3.5 looks a line too far
type StretchedLineConfig struct {
	MaxOver25Price  float64 `mapstructure:"max_over_2_5_price"`
	MinUnder35Price float64 `mapstructure:"min_under_3_5_price"`
	MaxAvgGoalsForm float64 `mapstructure:"max_avg_goals_form"`
}

// ValueDrawConfig: crushing favorite with cracks in its form
type ValueDrawConfig struct {
	MaxFavoritePrice float64 `mapstructure:"max_favorite_price"`
	MinDrawPrice     float64 `mapstructure:"min_draw_price"`
	MaxDrawPrice     float64 `mapstructure:"max_draw_price"`
}

// SteadyFavoriteConfig: short favorite in consistent form
type SteadyFavoriteConfig struct {
	MaxFavoritePrice float64 `mapstructure:"max_favorite_price"`
	MinOverPrice     float64 `mapstructure:"min_over_price"`
	MinFormWins      int     `mapstructure:"min_form_wins"`
}

// MarketPressureConfig: over price inside a value band backed by form
type MarketPressureConfig struct {
	MinOverPrice     float64 `mapstructure:"min_over_price"`
	MaxOverPrice     float64 `mapstructure:"max_over_price"`
	MinCombinedGoals float64 `mapstructure:"min_combined_goals"`
}

// CornerDominanceConfig: historical corner pressure alert
type CornerDominanceConfig struct {
	MinAvgForHome    float64 `mapstructure:"min_avg_for_home"`
	MinAvgAgainstAway float64 `mapstructure:"min_avg_against_away"`
	MinCombinedFor   float64 `mapstructure:"min_combined_for"`
	LeagueUplift     float64 `mapstructure:"league_uplift"`
}

// OffensivePressureConfig: shot-volume driven over bet
type OffensivePressureConfig struct {
	MinShotsFor         float64 `mapstructure:"min_shots_for"`
	MinShotsOnTargetFor float64 `mapstructure:"min_shots_on_target_for"`
	MinOverPrice        float64 `mapstructure:"min_over_price"`
}

// AggressiveGameConfig: yellow-card volume alert
type AggressiveGameConfig struct {
	MinAvgPerTeam  float64 `mapstructure:"min_avg_per_team"`
	MinCombinedAvg float64 `mapstructure:"min_combined_avg"`
}

// ExtremePressureConfig: extreme shot volume inside a price band
type ExtremePressureConfig struct {
	MinShotsFor         float64 `mapstructure:"min_shots_for"`
	MinShotsOnTargetFor float64 `mapstructure:"min_shots_on_target_for"`
	MinPrice            float64 `mapstructure:"min_price"`
	MaxPrice            float64 `mapstructure:"max_price"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
