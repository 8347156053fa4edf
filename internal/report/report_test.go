package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/odds-falcon/internal/models"
)

func settledAt(day time.Time, strategy string, result models.BetStatus, stake, profit float64) models.SettledBet {
	return models.SettledBet{
		PendingBet: models.PendingBet{
			HomeTeam: "Rovers",
			AwayTeam: "United",
			Stake:    stake,
			Strategy: strategy,
		},
		Result:    result,
		Profit:    profit,
		SettledAt: day,
	}
}

func TestDailySummary(t *testing.T) {
	day := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	ledger := []models.SettledBet{
		settledAt(day.Add(10*time.Hour), "goal_classic", models.BetStatusWon, 5, 4),
		settledAt(day.Add(15*time.Hour), "goal_classic", models.BetStatusLost, 5, -5),
		settledAt(day.Add(20*time.Hour), "btts", models.BetStatusWon, 5, 3.5),
		// previous day, excluded
		settledAt(day.Add(-2*time.Hour), "btts", models.BetStatusLost, 5, -5),
	}

	s := Daily(ledger, day)

	assert.Equal(t, 2, s.Won)
	assert.Equal(t, 1, s.Lost)
	assert.InDelta(t, 2.5, s.Profit, 0.001)
	assert.InDelta(t, 15, s.Staked, 0.001)
	assert.InDelta(t, 66.7, s.HitRate(), 0.1)

	require.Len(t, s.Strategies, 2)
	assert.Equal(t, "btts", s.Strategies[0].Strategy, "most profitable strategy first")
	assert.InDelta(t, 3.5, s.Strategies[0].Profit, 0.001)
	assert.InDelta(t, -1.0, s.Strategies[1].Profit, 0.001)
}

func TestWeeklySummaryWindow(t *testing.T) {
	day := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	ledger := []models.SettledBet{
		settledAt(day.AddDate(0, 0, -6), "btts", models.BetStatusWon, 5, 4),
		settledAt(day.Add(12*time.Hour), "btts", models.BetStatusWon, 5, 4),
		// eight days back, excluded
		settledAt(day.AddDate(0, 0, -8), "btts", models.BetStatusWon, 5, 4),
	}

	s := Weekly(ledger, day)

	assert.Equal(t, 2, s.Won)
	assert.Zero(t, s.Lost)
}

func TestFormatEmptyWindow(t *testing.T) {
	day := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	got := Format("Daily report", Daily(nil, day))

	assert.Contains(t, got, "Daily report")
	assert.Contains(t, got, "No bets settled")
}

func TestFormatWithStrategies(t *testing.T) {
	day := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	ledger := []models.SettledBet{
		settledAt(day.Add(10*time.Hour), "goal_classic", models.BetStatusWon, 5, 4),
		settledAt(day.Add(11*time.Hour), "goal_classic", models.BetStatusLost, 5, -5),
	}

	got := Format("Daily report", Daily(ledger, day))

	assert.Contains(t, got, "Settled: 2")
	assert.Contains(t, got, "Hit rate: 50.0%")
	assert.Contains(t, got, "goal_classic: 1-1, -1.00")
}
