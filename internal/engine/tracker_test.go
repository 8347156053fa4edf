package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/odds-falcon/internal/models"
	"github.com/yourusername/odds-falcon/internal/store"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

type fakeResults struct {
	scores map[string]models.FinalScore
	err    error
	calls  int
}

func (f *fakeResults) FinalScore(ctx context.Context, fixtureID string) (models.FinalScore, error) {
	f.calls++
	if f.err != nil {
		return models.FinalScore{}, f.err
	}
	score, ok := f.scores[fixtureID]
	if !ok {
		return models.FinalScore{}, models.ErrNoData
	}
	return score, nil
}

type captureNotifier struct {
	messages []string
}

func (n *captureNotifier) Send(ctx context.Context, text string) error {
	n.messages = append(n.messages, text)
	return nil
}

type trackerFixture struct {
	tracker  *Tracker
	bets     *store.BetStore
	bankroll *store.BankrollStore
	notifier *captureNotifier
	results  *fakeResults
	now      time.Time
}

func newTrackerFixture(t *testing.T, results *fakeResults) *trackerFixture {
	t.Helper()
	dir := t.TempDir()
	logger := testLogger()

	bets := store.NewBetStore(filepath.Join(dir, "pending.json"), filepath.Join(dir, "ledger.json"), logger)
	bankroll := store.NewBankrollStore(filepath.Join(dir, "bankroll.json"), models.DefaultBankroll(), logger)
	notifier := &captureNotifier{}
	now := time.Date(2026, 3, 7, 18, 0, 0, 0, time.UTC)

	tracker := NewTracker(bets, bankroll, results, notifier, nil, 110*time.Minute, logger)
	tracker.now = func() time.Time { return now }

	return &trackerFixture{
		tracker:  tracker,
		bets:     bets,
		bankroll: bankroll,
		notifier: notifier,
		results:  results,
		now:      now,
	}
}

func pendingOverBet(fixtureID string, kickoff time.Time) models.PendingBet {
	return models.PendingBet{
		ID:        uuid.New(),
		FixtureID: fixtureID,
		HomeTeam:  "Rovers",
		AwayTeam:  "United",
		Market:    models.BetMarket{Kind: models.BetMarketOver, Line: 2.5},
		Price:     1.80,
		Stake:     5.00,
		Kickoff:   kickoff,
		Strategy:  "goal_classic",
		PlacedAt:  kickoff.Add(-4 * time.Hour),
	}
}

func TestResolvePendingSettlesWonBet(t *testing.T) {
	results := &fakeResults{scores: map[string]models.FinalScore{
		"fx-1": {Status: models.StatusFinished, HomeScore: 2, AwayScore: 1},
	}}
	f := newTrackerFixture(t, results)
	require.NoError(t, f.bets.AddPending(pendingOverBet("fx-1", f.now.Add(-3*time.Hour))))

	settled, err := f.tracker.ResolvePending(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, settled)
	assert.Empty(t, f.bets.LoadPending())

	ledger := f.bets.LoadLedger()
	require.Len(t, ledger, 1)
	assert.Equal(t, models.BetStatusWon, ledger[0].Result)
	assert.Equal(t, 2, ledger[0].HomeScore)
	assert.InDelta(t, 4.00, ledger[0].Profit, 0.001)

	state := f.bankroll.Load()
	assert.True(t, state.CurrentCapital.Equal(decimal.NewFromInt(104)),
		"capital %s", state.CurrentCapital)
	assert.True(t, state.LossToRecover.IsZero())

	require.Len(t, f.notifier.messages, 1)
	assert.Contains(t, f.notifier.messages[0], "GREEN")
}

func TestResolvePendingLostBetAddsLossToRecover(t *testing.T) {
	results := &fakeResults{scores: map[string]models.FinalScore{
		"fx-1": {Status: models.StatusFinished, HomeScore: 1, AwayScore: 0},
	}}
	f := newTrackerFixture(t, results)
	require.NoError(t, f.bets.AddPending(pendingOverBet("fx-1", f.now.Add(-3*time.Hour))))

	settled, err := f.tracker.ResolvePending(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, settled)

	state := f.bankroll.Load()
	assert.True(t, state.CurrentCapital.Equal(decimal.NewFromInt(95)),
		"capital %s", state.CurrentCapital)
	assert.True(t, state.LossToRecover.Equal(decimal.NewFromInt(5)),
		"loss %s", state.LossToRecover)

	require.Len(t, f.notifier.messages, 1)
	assert.Contains(t, f.notifier.messages[0], "RED")
}

func TestResolvePendingRespectsSettleDelay(t *testing.T) {
	results := &fakeResults{scores: map[string]models.FinalScore{
		"fx-1": {Status: models.StatusFinished, HomeScore: 2, AwayScore: 1},
	}}
	f := newTrackerFixture(t, results)
	require.NoError(t, f.bets.AddPending(pendingOverBet("fx-1", f.now.Add(-30*time.Minute))))

	settled, err := f.tracker.ResolvePending(context.Background())

	require.NoError(t, err)
	assert.Zero(t, settled)
	assert.Zero(t, results.calls, "result lookup must wait for the settle delay")
	assert.Len(t, f.bets.LoadPending(), 1)
}

func TestResolvePendingMatchStillInProgress(t *testing.T) {
	results := &fakeResults{scores: map[string]models.FinalScore{
		"fx-1": {Status: models.StatusInProgress, HomeScore: 1, AwayScore: 0},
	}}
	f := newTrackerFixture(t, results)
	require.NoError(t, f.bets.AddPending(pendingOverBet("fx-1", f.now.Add(-3*time.Hour))))

	settled, err := f.tracker.ResolvePending(context.Background())

	require.NoError(t, err)
	assert.Zero(t, settled)
	assert.Len(t, f.bets.LoadPending(), 1)
	assert.Empty(t, f.notifier.messages)
}

func TestResolvePendingLookupFailureDoesNotAbortBatch(t *testing.T) {
	results := &fakeResults{err: assert.AnError}
	f := newTrackerFixture(t, results)
	require.NoError(t, f.bets.AddPending(pendingOverBet("fx-1", f.now.Add(-3*time.Hour))))
	require.NoError(t, f.bets.AddPending(pendingOverBet("fx-2", f.now.Add(-3*time.Hour))))

	settled, err := f.tracker.ResolvePending(context.Background())

	require.NoError(t, err)
	assert.Zero(t, settled)
	assert.Equal(t, 2, results.calls, "every eligible bet gets its own lookup")
	assert.Len(t, f.bets.LoadPending(), 2)
}

func TestResolvePendingUnknownMarketStaysPending(t *testing.T) {
	results := &fakeResults{scores: map[string]models.FinalScore{
		"fx-1": {Status: models.StatusFinished, HomeScore: 2, AwayScore: 1},
	}}
	f := newTrackerFixture(t, results)

	bet := pendingOverBet("fx-1", f.now.Add(-3*time.Hour))
	bet.Market = models.BetMarket{Kind: "handicap"}
	require.NoError(t, f.bets.AddPending(bet))

	settled, err := f.tracker.ResolvePending(context.Background())

	require.NoError(t, err)
	assert.Zero(t, settled)
	assert.Len(t, f.bets.LoadPending(), 1)
	assert.Empty(t, f.bets.LoadLedger())
}

func TestDecideOutcome(t *testing.T) {
	bet := models.PendingBet{HomeTeam: "Rovers", AwayTeam: "United"}
	finished := func(home, away int) models.FinalScore {
		return models.FinalScore{Status: models.StatusFinished, HomeScore: home, AwayScore: away}
	}

	cases := []struct {
		name    string
		market  models.BetMarket
		score   models.FinalScore
		want    models.BetStatus
		decided bool
	}{
		{"over hit", models.BetMarket{Kind: models.BetMarketOver, Line: 2.5}, finished(2, 1), models.BetStatusWon, true},
		{"over miss", models.BetMarket{Kind: models.BetMarketOver, Line: 2.5}, finished(1, 1), models.BetStatusLost, true},
		{"under hit", models.BetMarket{Kind: models.BetMarketUnder, Line: 3.5}, finished(2, 1), models.BetStatusWon, true},
		{"under miss", models.BetMarket{Kind: models.BetMarketUnder, Line: 2.5}, finished(2, 2), models.BetStatusLost, true},
		{"draw hit", models.BetMarket{Kind: models.BetMarketDraw}, finished(1, 1), models.BetStatusWon, true},
		{"draw miss", models.BetMarket{Kind: models.BetMarketDraw}, finished(2, 1), models.BetStatusLost, true},
		{"home winner hit", models.BetMarket{Kind: models.BetMarketWinner, Team: "Rovers"}, finished(2, 0), models.BetStatusWon, true},
		{"home winner drawn", models.BetMarket{Kind: models.BetMarketWinner, Team: "Rovers"}, finished(1, 1), models.BetStatusLost, true},
		{"away winner hit", models.BetMarket{Kind: models.BetMarketWinner, Team: "United"}, finished(0, 1), models.BetStatusWon, true},
		{"winner unknown team", models.BetMarket{Kind: models.BetMarketWinner, Team: "City"}, finished(2, 0), models.BetStatusPending, false},
		{"btts hit", models.BetMarket{Kind: models.BetMarketBTTS}, finished(1, 1), models.BetStatusWon, true},
		{"btts miss", models.BetMarket{Kind: models.BetMarketBTTS}, finished(2, 0), models.BetStatusLost, true},
		{"unknown kind", models.BetMarket{Kind: "handicap"}, finished(2, 0), models.BetStatusPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bet.Market = tc.market
			got, decided := decideOutcome(bet, tc.score)
			assert.Equal(t, tc.decided, decided)
			assert.Equal(t, tc.want, got)
		})
	}
}
