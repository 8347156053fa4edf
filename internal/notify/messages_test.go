package notify

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/odds-falcon/internal/models"
)

func sampleBet() models.PendingBet {
	return models.PendingBet{
		ID:        uuid.New(),
		FixtureID: "fx-1",
		HomeTeam:  "Rovers",
		AwayTeam:  "United",
		League:    "Premier League",
		Market:    models.BetMarket{Kind: models.BetMarketOver, Line: 2.5},
		Price:     1.85,
		Stake:     5.00,
		Kickoff:   time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC),
		Strategy:  "goal_classic",
		PlacedAt:  time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC),
	}
}

func TestFormatBetPlaced(t *testing.T) {
	bankroll := models.BankrollState{
		InitialCapital:  decimal.NewFromInt(100),
		CurrentCapital:  decimal.NewFromFloat(95.50),
		DefaultStakePct: decimal.NewFromInt(5),
		LossToRecover:   decimal.NewFromFloat(4.50),
	}

	got := FormatBetPlaced(sampleBet(), "Both sides average over two goals", "💥", bankroll)

	assert.Contains(t, got, "💥")
	assert.Contains(t, got, "BET PLACED")
	assert.Contains(t, got, "Rovers vs United")
	assert.Contains(t, got, "Over 2.5 Goals")
	assert.Contains(t, got, "Price: 1.85")
	assert.Contains(t, got, "Stake: 5.00")
	assert.Contains(t, got, "Strategy: goal_classic")
	assert.Contains(t, got, "Capital: 95.50")
	assert.Contains(t, got, "To recover: 4.50")
}

func TestFormatAlert(t *testing.T) {
	signal := models.Signal{
		Kind:      models.SignalAlert,
		Strategy:  "corner_trend",
		Rationale: "Combined corner average 11.3 per match",
		Emoji:     "🚩",
	}

	got := FormatAlert("Rovers vs United", signal)

	assert.Contains(t, got, "ALERT")
	assert.Contains(t, got, "Rovers vs United")
	assert.Contains(t, got, "corner_trend")
	assert.Contains(t, got, "11.3")
	assert.NotContains(t, got, "Price:")
}

func TestFormatBetSettled(t *testing.T) {
	settled := models.SettledBet{
		PendingBet: sampleBet(),
		Result:     models.BetStatusWon,
		HomeScore:  2,
		AwayScore:  1,
		Profit:     4.25,
		SettledAt:  time.Date(2026, 3, 7, 17, 0, 0, 0, time.UTC),
	}
	bankroll := models.DefaultBankroll()

	got := FormatBetSettled(settled, bankroll)

	assert.Contains(t, got, "GREEN")
	assert.Contains(t, got, "(2-1)")
	assert.Contains(t, got, "Profit: +4.25")

	settled.Result = models.BetStatusLost
	settled.Profit = -5.00
	got = FormatBetSettled(settled, bankroll)
	assert.Contains(t, got, "RED")
	assert.Contains(t, got, "Profit: -5.00")
}

func TestFormatRunSummary(t *testing.T) {
	summary := RunSummary{
		FixturesAnalyzed: 12,
		BetsPlaced:       2,
		Alerts:           1,
		BetsSettled:      3,
		Skipped:          1,
		Pending:          []models.PendingBet{sampleBet()},
	}

	got := FormatRunSummary(summary, models.DefaultBankroll())

	assert.Contains(t, got, "Fixtures analyzed: 12")
	assert.Contains(t, got, "Bets placed: 2")
	assert.Contains(t, got, "skipped (bet open): 1")
	assert.Contains(t, got, "Open bets (1)")
	assert.Contains(t, got, "Rovers vs United")
}

func TestLogNotifierSend(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	n := NewLogNotifier(logger)

	require.NoError(t, n.Send(context.Background(), "hello"))
}
