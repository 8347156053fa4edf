package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-falcon/internal/bankroll"
	"github.com/yourusername/odds-falcon/internal/cache"
	"github.com/yourusername/odds-falcon/internal/config"
	"github.com/yourusername/odds-falcon/internal/metrics"
	"github.com/yourusername/odds-falcon/internal/models"
	"github.com/yourusername/odds-falcon/internal/notify"
	"github.com/yourusername/odds-falcon/internal/odds"
	"github.com/yourusername/odds-falcon/internal/provider"
	"github.com/yourusername/odds-falcon/internal/repository"
	"github.com/yourusername/odds-falcon/internal/stats"
	"github.com/yourusername/odds-falcon/internal/store"
	"github.com/yourusername/odds-falcon/internal/strategy"
)

// OddsSource lists the fixtures the odds provider currently prices
type OddsSource interface {
	ListEvents(ctx context.Context) ([]provider.OddsEvent, error)
}

// StatsSource performs the per-team external lookups strategies consume
type StatsSource interface {
	TeamForm(ctx context.Context, team string) (models.TeamForm, error)
	Standings(ctx context.Context, league string) ([]models.StandingsRow, error)
	CornerAverage(ctx context.Context, team string, window int) (float64, error)
}

// Orchestrator runs one synchronous analysis batch: settle what can be
// settled, rebuild the aggregated history, evaluate every priced
// fixture and stake the accepted candidates.
type Orchestrator struct {
	cfg        *config.Config
	matches    repository.MatchSource
	oddsFeed   OddsSource
	statsFeed  StatsSource
	aggregator *stats.Aggregator
	normalizer *odds.Normalizer
	registry   *strategy.Registry
	staking    *bankroll.StakingEngine
	tracker    *Tracker

	bets         *store.BetStore
	bankrollFile *store.BankrollStore
	formCache    *store.FormCacheStore
	openingOdds  *store.OpeningOddsStore
	lookups      *cache.LookupCache

	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *logrus.Logger
	now      func() time.Time
}

// Deps bundles the orchestrator's collaborators
type Deps struct {
	Config      *config.Config
	Matches     repository.MatchSource
	OddsFeed    OddsSource
	StatsFeed   StatsSource
	Registry    *strategy.Registry
	Staking     *bankroll.StakingEngine
	Tracker     *Tracker
	Bets        *store.BetStore
	Bankroll    *store.BankrollStore
	FormCache   *store.FormCacheStore
	OpeningOdds *store.OpeningOddsStore
	Lookups     *cache.LookupCache
	Notifier    notify.Notifier
	Metrics     *metrics.Metrics
	Logger      *logrus.Logger
}

// NewOrchestrator wires an orchestrator from its collaborators
func NewOrchestrator(d Deps) *Orchestrator {
	return &Orchestrator{
		cfg:          d.Config,
		matches:      d.Matches,
		oddsFeed:     d.OddsFeed,
		statsFeed:    d.StatsFeed,
		aggregator:   stats.NewAggregator(d.Logger),
		normalizer:   odds.NewNormalizer(d.Logger),
		registry:     d.Registry,
		staking:      d.Staking,
		tracker:      d.Tracker,
		bets:         d.Bets,
		bankrollFile: d.Bankroll,
		formCache:    d.FormCache,
		openingOdds:  d.OpeningOdds,
		lookups:      d.Lookups,
		notifier:     d.Notifier,
		metrics:      d.Metrics,
		logger:       d.Logger,
		now:          time.Now,
	}
}

// Run executes one full batch. Per-fixture failures are logged and
// skipped; only the odds feed fetch aborts the run, since without
// priced fixtures there is nothing to evaluate.
func (o *Orchestrator) Run(ctx context.Context) (notify.RunSummary, error) {
	started := o.now()
	summary := notify.RunSummary{}

	settled, err := o.tracker.ResolvePending(ctx)
	if err != nil {
		return summary, err
	}
	summary.BetsSettled = settled

	// An unreadable historical table only silences the strategies
	// that need it; market-only evaluation still runs.
	records, err := o.matches.ListMatches(ctx)
	if err != nil {
		o.logger.WithError(err).Warn("Match history unavailable, history-driven strategies disabled for this run")
		records = nil
	}

	evalCtx := &strategy.Context{
		TeamStats:       o.aggregator.BuildTeamStats(records),
		H2HStats:        o.aggregator.BuildH2HStats(records),
		LeagueStats:     o.aggregator.BuildLeagueStats(records),
		MinHistoryGames: o.cfg.Strategies.MinHistoryGames,
		MinH2HGames:     o.cfg.Strategies.MinH2HGames,
		FormLookup:      o.formLookup(ctx),
		StandingsLookup: o.standingsLookup(ctx),
		CornerLookup:    o.cornerLookup(ctx),
	}

	events, err := o.oddsFeed.ListEvents(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to fetch odds feed: %w", err)
	}

	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		o.analyzeFixture(ctx, event, evalCtx, &summary)
	}

	pending := o.bets.LoadPending()
	summary.Pending = pending
	o.metrics.SetPendingBets(len(pending))
	o.metrics.ObserveRunDuration(o.now().Sub(started).Seconds())

	state := o.bankrollFile.Load()
	o.metrics.SetBankroll(state.CurrentCapital, state.LossToRecover)

	o.logger.WithFields(logrus.Fields{
		"fixtures": summary.FixturesAnalyzed,
		"bets":     summary.BetsPlaced,
		"alerts":   summary.Alerts,
		"settled":  summary.BetsSettled,
		"duration": o.now().Sub(started).String(),
	}).Info("Run finished")

	if err := o.notifier.Send(ctx, notify.FormatRunSummary(summary, state)); err != nil {
		o.logger.WithError(err).Warn("Failed to send run summary")
	}
	return summary, nil
}

func (o *Orchestrator) analyzeFixture(ctx context.Context, event provider.OddsEvent, evalCtx *strategy.Context, summary *notify.RunSummary) {
	fixture := event.Fixture()
	log := o.logger.WithField("fixture", fixture.Name())

	if o.bets.HasPending(fixture.ID) {
		summary.Skipped++
		log.Debug("Fixture already has a pending bet, skipping")
		return
	}

	canonical := o.normalizer.Normalize(event.Bookmakers)
	o.captureOpeningOdds(fixture, canonical)

	summary.FixturesAnalyzed++
	o.metrics.ObserveFixture()

	signal := o.registry.Evaluate(fixture, canonical, evalCtx)
	if !signal.IsActionable() {
		return
	}
	o.metrics.ObserveSignal(string(signal.Kind), signal.Strategy)

	if signal.Kind == models.SignalBet {
		o.handleBetCandidate(ctx, fixture, signal, summary, log)
		return
	}
	o.sendAlert(ctx, fixture, signal, summary)
}

// handleBetCandidate stakes an accepted candidate or downgrades it to
// an alert when it cannot be staked: fixture already live, no usable
// price, or price below the accepted minimum.
func (o *Orchestrator) handleBetCandidate(ctx context.Context, fixture models.Fixture, signal models.Signal, summary *notify.RunSummary, log *logrus.Entry) {
	if fixture.IsLive(o.now()) {
		log.WithField("strategy", signal.Strategy).
			Info("Fixture already live, downgrading bet to alert")
		signal.Rationale += " (match already started, not staked)"
		o.sendAlert(ctx, fixture, signal, summary)
		return
	}
	if !signal.Priced() {
		log.WithField("strategy", signal.Strategy).
			Info("Bet candidate has no usable price, flagging for manual review")
		signal.Rationale += " (no price available, review manually)"
		o.sendAlert(ctx, fixture, signal, summary)
		return
	}
	if !o.staking.Accepts(signal.Price) {
		log.WithFields(logrus.Fields{
			"strategy": signal.Strategy,
			"price":    signal.Price,
		}).Info("Price below accepted minimum, alert only")
		signal.Rationale += fmt.Sprintf(" (price %.2f below minimum, not staked)", signal.Price)
		o.sendAlert(ctx, fixture, signal, summary)
		return
	}

	state := o.bankrollFile.Load()
	decision := o.staking.Stake(signal.Price, state)

	bet := models.PendingBet{
		ID:        uuid.New(),
		FixtureID: fixture.ID,
		HomeTeam:  fixture.HomeTeam,
		AwayTeam:  fixture.AwayTeam,
		League:    fixture.League,
		Market:    signal.Market,
		Price:     signal.Price,
		Stake:     decision.Stake.InexactFloat64(),
		Kickoff:   fixture.Kickoff,
		Strategy:  signal.Strategy,
		PlacedAt:  o.now(),
	}

	if err := o.bets.AddPending(bet); err != nil {
		log.WithError(err).Warn("Failed to record pending bet")
		return
	}
	summary.BetsPlaced++
	o.metrics.ObserveBetPlaced()

	log.WithFields(logrus.Fields{
		"strategy": signal.Strategy,
		"market":   bet.Market.String(),
		"price":    bet.Price,
		"stake":    bet.Stake,
	}).Info("Placed bet")

	if err := o.notifier.Send(ctx, notify.FormatBetPlaced(bet, signal.Rationale, signal.Emoji, decision.Snapshot)); err != nil {
		log.WithError(err).Warn("Failed to send bet notification")
	}
}

func (o *Orchestrator) sendAlert(ctx context.Context, fixture models.Fixture, signal models.Signal, summary *notify.RunSummary) {
	summary.Alerts++
	if err := o.notifier.Send(ctx, notify.FormatAlert(fixture.Name(), signal)); err != nil {
		o.logger.WithError(err).WithField("fixture", fixture.Name()).
			Warn("Failed to send alert notification")
	}
}

// captureOpeningOdds snapshots prices for fixtures still far enough
// from kickoff that the current quote approximates the opening line.
func (o *Orchestrator) captureOpeningOdds(fixture models.Fixture, canonical models.CanonicalOdds) {
	lead := time.Duration(o.cfg.Bankroll.OpeningOddsLeadHours) * time.Hour
	if lead <= 0 || canonical == nil {
		return
	}
	if fixture.Kickoff.Before(o.now().Add(lead)) {
		return
	}
	if o.openingOdds.Has(fixture.ID) {
		return
	}
	entry := store.OpeningOddsEntry{
		FixtureID:  fixture.ID,
		HomeTeam:   fixture.HomeTeam,
		AwayTeam:   fixture.AwayTeam,
		Kickoff:    fixture.Kickoff,
		CapturedAt: o.now(),
		Odds:       canonical,
	}
	if err := o.openingOdds.Put(entry); err != nil {
		o.logger.WithError(err).WithField("fixture", fixture.Name()).
			Warn("Failed to capture opening odds")
	}
}

// formLookup resolves a team's recent form through two cache layers:
// the persistent cross-run file first, the in-run memo second, the
// provider last. Fresh provider results are written back to the file.
func (o *Orchestrator) formLookup(ctx context.Context) func(team string) (models.TeamForm, bool) {
	ttl := time.Duration(o.cfg.Cache.FormTTLHours) * time.Hour
	return func(team string) (models.TeamForm, bool) {
		if form, ok := o.formCache.Get(team, ttl, o.now()); ok {
			return form, true
		}
		value, err := o.lookups.GetOrFetch("form:"+team, ttl, func() (any, error) {
			form, err := o.statsFeed.TeamForm(ctx, team)
			if err != nil {
				return nil, err
			}
			if err := o.formCache.Put(team, form, o.now()); err != nil {
				o.logger.WithError(err).WithField("team", team).
					Warn("Failed to persist form cache entry")
			}
			return form, nil
		})
		if err != nil {
			return models.TeamForm{}, false
		}
		return value.(models.TeamForm), true
	}
}

func (o *Orchestrator) standingsLookup(ctx context.Context) func(league string) ([]models.StandingsRow, bool) {
	ttl := time.Duration(o.cfg.Cache.StandingsTTLHours) * time.Hour
	return func(league string) ([]models.StandingsRow, bool) {
		value, err := o.lookups.GetOrFetch("standings:"+league, ttl, func() (any, error) {
			return o.statsFeed.Standings(ctx, league)
		})
		if err != nil {
			return nil, false
		}
		return value.([]models.StandingsRow), true
	}
}

func (o *Orchestrator) cornerLookup(ctx context.Context) func(team string) (float64, bool) {
	ttl := time.Duration(o.cfg.Cache.CornersTTLHours) * time.Hour
	window := o.cfg.Strategies.CornerTrend.GamesWindow
	return func(team string) (float64, bool) {
		value, err := o.lookups.GetOrFetch("corners:"+team, ttl, func() (any, error) {
			return o.statsFeed.CornerAverage(ctx, team, window)
		})
		if err != nil {
			return 0, false
		}
		return value.(float64), true
	}
}
