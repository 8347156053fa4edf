// Package engine wires the aggregated history, the odds feed, the
// strategy battery, the staking policy and the bet lifecycle into a
// single synchronous analysis run.
package engine

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-falcon/internal/metrics"
	"github.com/yourusername/odds-falcon/internal/models"
	"github.com/yourusername/odds-falcon/internal/notify"
	"github.com/yourusername/odds-falcon/internal/store"
)

// ResultSource fetches the final score of a fixture
type ResultSource interface {
	FinalScore(ctx context.Context, fixtureID string) (models.FinalScore, error)
}

// Tracker settles pending bets against final scores and applies the
// outcome to the persisted bankroll.
type Tracker struct {
	bets        *store.BetStore
	bankroll    *store.BankrollStore
	results     ResultSource
	notifier    notify.Notifier
	metrics     *metrics.Metrics
	settleDelay time.Duration
	logger      *logrus.Logger
	now         func() time.Time
}

// NewTracker creates a bet lifecycle tracker
func NewTracker(
	bets *store.BetStore,
	bankroll *store.BankrollStore,
	results ResultSource,
	notifier notify.Notifier,
	m *metrics.Metrics,
	settleDelay time.Duration,
	logger *logrus.Logger,
) *Tracker {
	return &Tracker{
		bets:        bets,
		bankroll:    bankroll,
		results:     results,
		notifier:    notifier,
		metrics:     m,
		settleDelay: settleDelay,
		logger:      logger,
		now:         time.Now,
	}
}

// ResolvePending settles every pending bet whose fixture finished and
// whose settle delay has elapsed. A result lookup failure or a match
// still in progress leaves the bet pending for the next run; settling
// never stops the batch.
func (t *Tracker) ResolvePending(ctx context.Context) (int, error) {
	settled := 0
	for _, bet := range t.bets.LoadPending() {
		if err := ctx.Err(); err != nil {
			return settled, err
		}
		if !bet.SettleEligible(t.now(), t.settleDelay) {
			continue
		}

		score, err := t.results.FinalScore(ctx, bet.FixtureID)
		if err != nil {
			t.logger.WithError(err).WithField("fixture", bet.Name()).
				Warn("Result lookup failed, bet stays pending")
			continue
		}
		if score.Status != models.StatusFinished {
			t.logger.WithFields(logrus.Fields{
				"fixture": bet.Name(),
				"status":  score.Status,
			}).Debug("Match not finished, bet stays pending")
			continue
		}

		if t.settle(ctx, bet, score) {
			settled++
		}
	}
	return settled, nil
}

// settle resolves one bet against a finished match. Returns false when
// the outcome could not be decided or the store rejected the update.
func (t *Tracker) settle(ctx context.Context, bet models.PendingBet, score models.FinalScore) bool {
	result, ok := decideOutcome(bet, score)
	if !ok {
		t.logger.WithFields(logrus.Fields{
			"fixture": bet.Name(),
			"market":  bet.Market.Kind,
		}).Warn("Cannot settle unknown market kind, bet stays pending")
		return false
	}

	profit := -bet.Stake
	if result == models.BetStatusWon {
		profit = bet.Stake * (bet.Price - 1)
	}

	entry := models.SettledBet{
		PendingBet: bet,
		Result:     result,
		HomeScore:  score.HomeScore,
		AwayScore:  score.AwayScore,
		Profit:     profit,
		SettledAt:  t.now(),
	}

	// The store removes the bet from the pending set before the
	// bankroll is touched, so a bet can never pay out twice.
	if err := t.bets.Settle(bet.ID, entry); err != nil {
		t.logger.WithError(err).WithField("fixture", bet.Name()).
			Error("Failed to persist settlement")
		return false
	}

	state := t.bankroll.Load()
	stake := decimalFromFloat(bet.Stake)
	if result == models.BetStatusWon {
		state = state.ApplyWin(stake, decimalFromFloat(bet.Price))
	} else {
		state = state.ApplyLoss(stake)
	}
	if err := t.bankroll.Save(state); err != nil {
		t.logger.WithError(err).Error("Failed to persist bankroll after settlement")
	}

	t.metrics.ObserveBetSettled(string(result))
	t.metrics.SetBankroll(state.CurrentCapital, state.LossToRecover)

	t.logger.WithFields(logrus.Fields{
		"fixture": bet.Name(),
		"market":  bet.Market.String(),
		"result":  result,
		"profit":  profit,
		"capital": state.CurrentCapital.String(),
	}).Info("Settled bet")

	if err := t.notifier.Send(ctx, notify.FormatBetSettled(entry, state)); err != nil {
		t.logger.WithError(err).Warn("Failed to send settlement notification")
	}
	return true
}

// decideOutcome maps a bet's market and a final score onto won or
// lost. Market kinds the tracker does not understand return ok=false
// so the bet stays pending instead of settling arbitrarily.
func decideOutcome(bet models.PendingBet, score models.FinalScore) (models.BetStatus, bool) {
	market := bet.Market
	switch market.Kind {
	case models.BetMarketOver:
		return wonWhen(float64(score.TotalGoals()) > market.Line), true
	case models.BetMarketUnder:
		return wonWhen(float64(score.TotalGoals()) < market.Line), true
	case models.BetMarketDraw:
		return wonWhen(score.HomeScore == score.AwayScore), true
	case models.BetMarketWinner:
		switch market.Team {
		case bet.HomeTeam:
			return wonWhen(score.HomeScore > score.AwayScore), true
		case bet.AwayTeam:
			return wonWhen(score.AwayScore > score.HomeScore), true
		}
		return models.BetStatusPending, false
	case models.BetMarketBTTS:
		return wonWhen(score.HomeScore > 0 && score.AwayScore > 0), true
	default:
		return models.BetStatusPending, false
	}
}

func wonWhen(cond bool) models.BetStatus {
	if cond {
		return models.BetStatusWon
	}
	return models.BetStatusLost
}

func decimalFromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(models.CurrencyPlaces)
}
