// Package bankroll sizes stakes from the persisted bankroll state,
// applying a bounded loss-recovery policy.
package bankroll

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-falcon/internal/config"
	"github.com/yourusername/odds-falcon/internal/models"
)

// StakeDecision is a sized stake plus the bankroll snapshot it was
// computed from, carried into the notification for audit.
type StakeDecision struct {
	Stake    decimal.Decimal
	Snapshot models.BankrollState
}

// StakingEngine converts an accepted price and the current bankroll
// into a stake amount.
type StakingEngine struct {
	minAcceptedPrice    decimal.Decimal
	maxRecoveryMultiple decimal.Decimal
	logger              *logrus.Logger
}

// NewStakingEngine creates a staking engine from bankroll configuration
func NewStakingEngine(cfg config.BankrollConfig, logger *logrus.Logger) *StakingEngine {
	return &StakingEngine{
		minAcceptedPrice:    decimal.NewFromFloat(cfg.MinAcceptedPrice),
		maxRecoveryMultiple: decimal.NewFromFloat(cfg.MaxRecoveryMultiple),
		logger:              logger,
	}
}

// Accepts reports whether a price clears the global minimum. Candidates
// below it are never staked; the orchestrator downgrades them to
// alert-only notifications.
func (e *StakingEngine) Accepts(price float64) bool {
	return decimal.NewFromFloat(price).GreaterThanOrEqual(e.minAcceptedPrice)
}

// Stake sizes a bet at the given decimal price. With no outstanding
// loss the stake is the baseline. Otherwise the stake is the amount
// that would, at this price, net the outstanding loss plus the profit
// a baseline bet earns at the minimum accepted price, clamped between
// the baseline and its configured multiple. A price at or below 1.0
// cannot recover anything and degenerates to the baseline.
func (e *StakingEngine) Stake(price float64, state models.BankrollState) StakeDecision {
	baseline := state.BaselineStake()
	decision := StakeDecision{Stake: baseline, Snapshot: state}

	one := decimal.NewFromInt(1)
	p := decimal.NewFromFloat(price)
	if state.LossToRecover.IsZero() || p.LessThanOrEqual(one) {
		return decision
	}

	baselineProfit := baseline.Mul(e.minAcceptedPrice.Sub(one))
	required := state.LossToRecover.Add(baselineProfit).Div(p.Sub(one))

	ceiling := baseline.Mul(e.maxRecoveryMultiple)
	if required.GreaterThan(ceiling) {
		required = ceiling
	}
	if required.LessThan(baseline) {
		required = baseline
	}

	decision.Stake = required.Round(models.CurrencyPlaces)

	e.logger.WithFields(logrus.Fields{
		"price":           price,
		"loss_to_recover": state.LossToRecover.String(),
		"stake":           decision.Stake.String(),
	}).Debug("Sized recovery stake")

	return decision
}
