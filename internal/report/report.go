// Package report builds performance summaries from the settled-bet
// ledger.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yourusername/odds-falcon/internal/models"
)

// StrategyLine is one strategy's row of the scoreboard
type StrategyLine struct {
	Strategy string
	Won      int
	Lost     int
	Profit   float64
}

// Summary aggregates the settled bets of one reporting window
type Summary struct {
	From       time.Time
	To         time.Time
	Won        int
	Lost       int
	Profit     float64
	Staked     float64
	Strategies []StrategyLine
}

// Bets returns the number of settled bets in the window
func (s Summary) Bets() int {
	return s.Won + s.Lost
}

// HitRate returns the share of settled bets that won, in percent
func (s Summary) HitRate() float64 {
	if s.Bets() == 0 {
		return 0
	}
	return float64(s.Won) / float64(s.Bets()) * 100
}

// Build aggregates every ledger entry settled inside [from, to)
func Build(ledger []models.SettledBet, from, to time.Time) Summary {
	summary := Summary{From: from, To: to}
	byStrategy := make(map[string]*StrategyLine)

	for _, bet := range ledger {
		if bet.SettledAt.Before(from) || !bet.SettledAt.Before(to) {
			continue
		}

		line, ok := byStrategy[bet.Strategy]
		if !ok {
			line = &StrategyLine{Strategy: bet.Strategy}
			byStrategy[bet.Strategy] = line
		}

		if bet.Result == models.BetStatusWon {
			summary.Won++
			line.Won++
		} else {
			summary.Lost++
			line.Lost++
		}
		summary.Profit += bet.Profit
		summary.Staked += bet.Stake
		line.Profit += bet.Profit
	}

	summary.Strategies = make([]StrategyLine, 0, len(byStrategy))
	for _, line := range byStrategy {
		summary.Strategies = append(summary.Strategies, *line)
	}
	// most profitable first, name as tiebreak so output is stable
	sort.Slice(summary.Strategies, func(i, j int) bool {
		if summary.Strategies[i].Profit != summary.Strategies[j].Profit {
			return summary.Strategies[i].Profit > summary.Strategies[j].Profit
		}
		return summary.Strategies[i].Strategy < summary.Strategies[j].Strategy
	})
	return summary
}

// Daily aggregates the bets settled on the given calendar day
func Daily(ledger []models.SettledBet, day time.Time) Summary {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return Build(ledger, from, from.AddDate(0, 0, 1))
}

// Weekly aggregates the bets settled in the seven days ending at the
// given day, inclusive.
func Weekly(ledger []models.SettledBet, day time.Time) Summary {
	to := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).AddDate(0, 0, 1)
	return Build(ledger, to.AddDate(0, 0, -7), to)
}

// Format renders a summary for the notification channel
func Format(title string, s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>%s</b>\n", title)
	fmt.Fprintf(&b, "%s to %s\n\n", s.From.Format("2006-01-02"), s.To.AddDate(0, 0, -1).Format("2006-01-02"))

	if s.Bets() == 0 {
		b.WriteString("No bets settled in this window.")
		return b.String()
	}

	fmt.Fprintf(&b, "Settled: %d (✅ %d / ❌ %d)\n", s.Bets(), s.Won, s.Lost)
	fmt.Fprintf(&b, "Hit rate: %.1f%%\n", s.HitRate())
	fmt.Fprintf(&b, "Staked: %.2f | Profit: %+.2f\n", s.Staked, s.Profit)

	if len(s.Strategies) > 0 {
		b.WriteString("\n<b>By strategy</b>\n")
		for _, line := range s.Strategies {
			fmt.Fprintf(&b, "• %s: %d-%d, %+.2f\n", line.Strategy, line.Won, line.Lost, line.Profit)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
