package notify

import (
	"fmt"
	"strings"

	"github.com/yourusername/odds-falcon/internal/models"
)

// FormatBetPlaced renders the entry message for an accepted bet
func FormatBetPlaced(bet models.PendingBet, rationale string, emoji string, bankroll models.BankrollState) string {
	var b strings.Builder
	if emoji != "" {
		fmt.Fprintf(&b, "%s ", emoji)
	}
	fmt.Fprintf(&b, "<b>BET PLACED</b>\n\n")
	fmt.Fprintf(&b, "%s\n", bet.Name())
	if bet.League != "" {
		fmt.Fprintf(&b, "League: %s\n", bet.League)
	}
	fmt.Fprintf(&b, "Market: %s\n", bet.Market.String())
	fmt.Fprintf(&b, "Price: %.2f\n", bet.Price)
	fmt.Fprintf(&b, "Stake: %.2f\n", bet.Stake)
	fmt.Fprintf(&b, "Strategy: %s\n", bet.Strategy)
	if rationale != "" {
		fmt.Fprintf(&b, "\n%s\n", rationale)
	}
	fmt.Fprintf(&b, "\nCapital: %s | To recover: %s",
		bankroll.CurrentCapital.StringFixed(models.CurrencyPlaces),
		bankroll.LossToRecover.StringFixed(models.CurrencyPlaces))
	return b.String()
}

// FormatAlert renders an observation-only signal
func FormatAlert(fixtureName string, signal models.Signal) string {
	var b strings.Builder
	if signal.Emoji != "" {
		fmt.Fprintf(&b, "%s ", signal.Emoji)
	}
	fmt.Fprintf(&b, "<b>ALERT</b>\n\n")
	fmt.Fprintf(&b, "%s\n", fixtureName)
	if signal.Market.Kind != "" {
		fmt.Fprintf(&b, "Market: %s\n", signal.Market.String())
		if signal.Price > 0 {
			fmt.Fprintf(&b, "Price: %.2f\n", signal.Price)
		}
	}
	fmt.Fprintf(&b, "Strategy: %s\n", signal.Strategy)
	if signal.Rationale != "" {
		fmt.Fprintf(&b, "\n%s", signal.Rationale)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatBetSettled renders the result message for a settled bet
func FormatBetSettled(settled models.SettledBet, bankroll models.BankrollState) string {
	var b strings.Builder
	if settled.Result == models.BetStatusWon {
		fmt.Fprintf(&b, "✅ <b>GREEN</b>\n\n")
	} else {
		fmt.Fprintf(&b, "❌ <b>RED</b>\n\n")
	}
	fmt.Fprintf(&b, "%s (%d-%d)\n", settled.Name(), settled.HomeScore, settled.AwayScore)
	fmt.Fprintf(&b, "Market: %s @ %.2f\n", settled.Market.String(), settled.Price)
	fmt.Fprintf(&b, "Stake: %.2f | Profit: %+.2f\n", settled.Stake, settled.Profit)
	fmt.Fprintf(&b, "Strategy: %s\n", settled.Strategy)
	fmt.Fprintf(&b, "\nCapital: %s | To recover: %s",
		bankroll.CurrentCapital.StringFixed(models.CurrencyPlaces),
		bankroll.LossToRecover.StringFixed(models.CurrencyPlaces))
	return b.String()
}

// RunSummary aggregates what a single analysis run did
type RunSummary struct {
	FixturesAnalyzed int
	BetsPlaced       int
	Alerts           int
	BetsSettled      int
	Skipped          int
	Pending          []models.PendingBet
}

// FormatRunSummary renders the end-of-run report
func FormatRunSummary(s RunSummary, bankroll models.BankrollState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>RUN SUMMARY</b>\n\n")
	fmt.Fprintf(&b, "Fixtures analyzed: %d\n", s.FixturesAnalyzed)
	fmt.Fprintf(&b, "Bets placed: %d\n", s.BetsPlaced)
	fmt.Fprintf(&b, "Alerts: %d\n", s.Alerts)
	fmt.Fprintf(&b, "Bets settled: %d\n", s.BetsSettled)
	if s.Skipped > 0 {
		fmt.Fprintf(&b, "Fixtures skipped (bet open): %d\n", s.Skipped)
	}
	fmt.Fprintf(&b, "\nCapital: %s | To recover: %s\n",
		bankroll.CurrentCapital.StringFixed(models.CurrencyPlaces),
		bankroll.LossToRecover.StringFixed(models.CurrencyPlaces))
	if len(s.Pending) > 0 {
		fmt.Fprintf(&b, "\n<b>Open bets (%d)</b>\n", len(s.Pending))
		for _, bet := range s.Pending {
			fmt.Fprintf(&b, "• %s | %s @ %.2f | %.2f\n",
				bet.Name(), bet.Market.String(), bet.Price, bet.Stake)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
