package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/odds-falcon/internal/bankroll"
	"github.com/yourusername/odds-falcon/internal/cache"
	"github.com/yourusername/odds-falcon/internal/config"
	"github.com/yourusername/odds-falcon/internal/models"
	"github.com/yourusername/odds-falcon/internal/odds"
	"github.com/yourusername/odds-falcon/internal/provider"
	"github.com/yourusername/odds-falcon/internal/store"
	"github.com/yourusername/odds-falcon/internal/strategy"
)

type fakeMatches struct {
	records []models.MatchRecord
	err     error
}

func (f *fakeMatches) ListMatches(ctx context.Context) ([]models.MatchRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type fakeOddsFeed struct {
	events []provider.OddsEvent
}

func (f *fakeOddsFeed) ListEvents(ctx context.Context) ([]provider.OddsEvent, error) {
	return f.events, nil
}

type fakeStatsFeed struct{}

func (f *fakeStatsFeed) TeamForm(ctx context.Context, team string) (models.TeamForm, error) {
	return models.TeamForm{}, models.ErrNoData
}

func (f *fakeStatsFeed) Standings(ctx context.Context, league string) ([]models.StandingsRow, error) {
	return nil, models.ErrNoData
}

func (f *fakeStatsFeed) CornerAverage(ctx context.Context, team string, window int) (float64, error) {
	return 0, models.ErrNoData
}

type orchestratorFixture struct {
	orchestrator *Orchestrator
	bets         *store.BetStore
	bankroll     *store.BankrollStore
	openingOdds  *store.OpeningOddsStore
	notifier     *captureNotifier
	matches      *fakeMatches
	now          time.Time
}

func newOrchestratorFixture(t *testing.T, events []provider.OddsEvent, opts ...func(*config.Config)) *orchestratorFixture {
	t.Helper()
	dir := t.TempDir()
	logger := testLogger()
	now := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)

	cfg := &config.Config{
		Bankroll: config.BankrollConfig{
			InitialCapital:       100,
			DefaultStakePct:      5,
			MinAcceptedPrice:     1.40,
			MaxRecoveryMultiple:  3,
			SettleDelayMinutes:   110,
			OpeningOddsLeadHours: 22,
		},
		Cache: config.CacheConfig{FormTTLHours: 12, StandingsTTLHours: 6, CornersTTLHours: 6},
		Strategies: config.StrategiesConfig{
			Enabled:         []string{"home_scorer"},
			MinHistoryGames: 2,
			MinH2HGames:     2,
			HomeScorer:      config.HomeScorerConfig{MinAvgGoalsScored: 2.0, MinOverPrice: 1.10},
		},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	registry, err := strategy.NewRegistry(cfg.Strategies, logger)
	require.NoError(t, err)

	defaults := models.NewBankroll(cfg.Bankroll.InitialCapital, cfg.Bankroll.DefaultStakePct)
	bets := store.NewBetStore(filepath.Join(dir, "pending.json"), filepath.Join(dir, "ledger.json"), logger)
	bankrollStore := store.NewBankrollStore(filepath.Join(dir, "bankroll.json"), defaults, logger)
	formCache := store.NewFormCacheStore(filepath.Join(dir, "form.json"), logger)
	openingOdds := store.NewOpeningOddsStore(filepath.Join(dir, "opening.json"), logger)
	notifier := &captureNotifier{}

	tracker := NewTracker(bets, bankrollStore, &fakeResults{}, notifier, nil, cfg.Bankroll.SettleDelay(), logger)
	tracker.now = func() time.Time { return now }

	// Rovers average 2.5 goals per home game across two matches
	matches := &fakeMatches{records: []models.MatchRecord{
		{League: "E0", Date: now.AddDate(0, -2, 0), HomeTeam: "Rovers", AwayTeam: "City", HomeGoals: 3, AwayGoals: 0},
		{League: "E0", Date: now.AddDate(0, -1, 0), HomeTeam: "Rovers", AwayTeam: "Albion", HomeGoals: 2, AwayGoals: 1},
	}}

	orchestrator := NewOrchestrator(Deps{
		Config:      cfg,
		Matches:     matches,
		OddsFeed:    &fakeOddsFeed{events: events},
		StatsFeed:   &fakeStatsFeed{},
		Registry:    registry,
		Staking:     bankroll.NewStakingEngine(cfg.Bankroll, logger),
		Tracker:     tracker,
		Bets:        bets,
		Bankroll:    bankrollStore,
		FormCache:   formCache,
		OpeningOdds: openingOdds,
		Lookups:     cache.NewLookupCache(time.Hour, logger),
		Notifier:    notifier,
		Logger:      logger,
	})
	orchestrator.now = func() time.Time { return now }

	return &orchestratorFixture{
		orchestrator: orchestrator,
		bets:         bets,
		bankroll:     bankrollStore,
		openingOdds:  openingOdds,
		notifier:     notifier,
		matches:      matches,
		now:          now,
	}
}

func oddsEvent(id string, kickoff time.Time, overPrice float64) provider.OddsEvent {
	return provider.OddsEvent{
		ID:           id,
		SportTitle:   "Premier League",
		CommenceTime: kickoff,
		HomeTeam:     "Rovers",
		AwayTeam:     "United",
		Bookmakers: []odds.Bookmaker{{
			Key: "pinnacle",
			Markets: []odds.RawMarket{{
				Key: "totals",
				Outcomes: []odds.Outcome{
					{Name: "Over", Price: overPrice, Point: 1.5},
					{Name: "Under", Price: 2.30, Point: 1.5},
				},
			}},
		}},
	}
}

func TestRunPlacesBetAndCapturesOpeningOdds(t *testing.T) {
	f := newOrchestratorFixture(t, []provider.OddsEvent{
		oddsEvent("ev-1", time.Date(2026, 3, 8, 15, 0, 0, 0, time.UTC), 1.55),
	})

	summary, err := f.orchestrator.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.FixturesAnalyzed)
	assert.Equal(t, 1, summary.BetsPlaced)
	assert.Zero(t, summary.Alerts)

	pending := f.bets.LoadPending()
	require.Len(t, pending, 1)
	assert.Equal(t, "ev-1", pending[0].FixtureID)
	assert.Equal(t, "home_scorer", pending[0].Strategy)
	assert.Equal(t, models.BetMarketOver, pending[0].Market.Kind)
	assert.InDelta(t, 5.00, pending[0].Stake, 0.001)

	entry, captured := f.openingOdds.Get("ev-1")
	require.True(t, captured, "kickoff beyond the lead window captures opening odds")
	price, ok := entry.Odds.Price(models.MarketTotals15, models.SelectionOver)
	require.True(t, ok)
	assert.InDelta(t, 1.55, price, 0.001)

	// bet notification plus run summary
	require.Len(t, f.notifier.messages, 2)
	assert.Contains(t, f.notifier.messages[0], "BET PLACED")
	assert.Contains(t, f.notifier.messages[1], "RUN SUMMARY")
}

func TestRunSkipsFixturesWithPendingBet(t *testing.T) {
	kickoff := time.Date(2026, 3, 8, 15, 0, 0, 0, time.UTC)
	f := newOrchestratorFixture(t, []provider.OddsEvent{oddsEvent("ev-1", kickoff, 1.55)})

	require.NoError(t, f.bets.AddPending(models.PendingBet{
		FixtureID: "ev-1",
		HomeTeam:  "Rovers",
		AwayTeam:  "United",
		Market:    models.BetMarket{Kind: models.BetMarketOver, Line: 2.5},
		Kickoff:   kickoff,
	}))

	summary, err := f.orchestrator.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Zero(t, summary.BetsPlaced)
	assert.Len(t, f.bets.LoadPending(), 1, "no second bet on the same fixture")
}

func TestRunDowngradesLiveFixtureToAlert(t *testing.T) {
	f := newOrchestratorFixture(t, []provider.OddsEvent{
		oddsEvent("ev-1", time.Date(2026, 3, 7, 9, 30, 0, 0, time.UTC), 1.55),
	})

	summary, err := f.orchestrator.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, summary.BetsPlaced)
	assert.Equal(t, 1, summary.Alerts)
	assert.Empty(t, f.bets.LoadPending())
	assert.Contains(t, f.notifier.messages[0], "ALERT")
	assert.Contains(t, f.notifier.messages[0], "match already started")
}

func TestRunPriceBelowMinimumBecomesAlert(t *testing.T) {
	f := newOrchestratorFixture(t, []provider.OddsEvent{
		oddsEvent("ev-1", time.Date(2026, 3, 8, 15, 0, 0, 0, time.UTC), 1.25),
	})

	summary, err := f.orchestrator.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, summary.BetsPlaced)
	assert.Equal(t, 1, summary.Alerts)
	assert.Empty(t, f.bets.LoadPending())
	assert.Contains(t, f.notifier.messages[0], "below minimum")
}

func TestRunSizesRecoveryStakeFromPersistedBankroll(t *testing.T) {
	f := newOrchestratorFixture(t, []provider.OddsEvent{
		oddsEvent("ev-1", time.Date(2026, 3, 8, 15, 0, 0, 0, time.UTC), 1.55),
	})

	require.NoError(t, f.bankroll.Save(models.BankrollState{
		InitialCapital:  decimal.NewFromInt(100),
		CurrentCapital:  decimal.NewFromInt(95),
		DefaultStakePct: decimal.NewFromInt(5),
		LossToRecover:   decimal.NewFromInt(5),
	}))

	summary, err := f.orchestrator.Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1, summary.BetsPlaced)

	pending := f.bets.LoadPending()
	require.Len(t, pending, 1)
	// (5 + 5*0.40) / 0.55 = 12.7272...
	assert.InDelta(t, 12.73, pending[0].Stake, 0.001)
}

func TestRunContinuesWhenHistoryUnavailable(t *testing.T) {
	f := newOrchestratorFixture(t, []provider.OddsEvent{
		oddsEvent("ev-1", time.Date(2026, 3, 8, 15, 0, 0, 0, time.UTC), 1.55),
	})
	f.matches.err = errors.New("historical table unavailable")

	summary, err := f.orchestrator.Run(context.Background())

	require.NoError(t, err, "a broken history source must not abort the batch")
	assert.Equal(t, 1, summary.FixturesAnalyzed)
	assert.Zero(t, summary.BetsPlaced, "form-driven strategies stay silent without history")
	assert.Empty(t, f.bets.LoadPending())

	require.Len(t, f.notifier.messages, 1)
	assert.Contains(t, f.notifier.messages[0], "RUN SUMMARY")
}

func TestRunStakesFromConfiguredBankroll(t *testing.T) {
	f := newOrchestratorFixture(t, []provider.OddsEvent{
		oddsEvent("ev-1", time.Date(2026, 3, 8, 15, 0, 0, 0, time.UTC), 1.55),
	}, func(cfg *config.Config) {
		cfg.Bankroll.InitialCapital = 500
		cfg.Bankroll.DefaultStakePct = 10
	})

	summary, err := f.orchestrator.Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1, summary.BetsPlaced)

	pending := f.bets.LoadPending()
	require.Len(t, pending, 1)
	assert.InDelta(t, 50.00, pending[0].Stake, 0.001)

	state := f.bankroll.Load()
	assert.Equal(t, "50.00", state.BaselineStake().StringFixed(2))
}

func TestRunUnpricedFixtureProducesNoSignal(t *testing.T) {
	event := oddsEvent("ev-1", time.Date(2026, 3, 8, 15, 0, 0, 0, time.UTC), 1.55)
	event.Bookmakers = nil
	f := newOrchestratorFixture(t, []provider.OddsEvent{event})

	summary, err := f.orchestrator.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.FixturesAnalyzed)
	assert.Zero(t, summary.BetsPlaced)
	assert.Zero(t, summary.Alerts)

	_, captured := f.openingOdds.Get("ev-1")
	assert.False(t, captured, "no payload means nothing to snapshot")
}
