package models

import "github.com/shopspring/decimal"

// CurrencyPlaces is the fixed precision every persisted money amount is
// rounded to.
const CurrencyPlaces = 2

// BankrollState is the singleton virtual bankroll persisted across
// runs. Invariants: CurrentCapital and LossToRecover are always rounded
// to CurrencyPlaces, and LossToRecover is never negative.
type BankrollState struct {
	InitialCapital  decimal.Decimal `json:"initial_capital"`
	CurrentCapital  decimal.Decimal `json:"current_capital"`
	DefaultStakePct decimal.Decimal `json:"default_stake_pct"`
	LossToRecover   decimal.Decimal `json:"loss_to_recover"`
}

// NewBankroll builds a fresh bankroll state from the operator's
// configured capital and stake percentage. Current capital starts at
// the initial capital with nothing to recover.
func NewBankroll(initialCapital, defaultStakePct float64) BankrollState {
	initial := decimal.NewFromFloat(initialCapital).Round(CurrencyPlaces)
	return BankrollState{
		InitialCapital:  initial,
		CurrentCapital:  initial,
		DefaultStakePct: decimal.NewFromFloat(defaultStakePct),
		LossToRecover:   decimal.Zero,
	}
}

// DefaultBankroll returns the state used when no configuration is
// available.
func DefaultBankroll() BankrollState {
	return NewBankroll(100, 5)
}

// BaselineStake is the default stake: initial capital times the default
// stake percentage, rounded to currency precision.
func (b BankrollState) BaselineStake() decimal.Decimal {
	pct := b.DefaultStakePct.Div(decimal.NewFromInt(100))
	return b.InitialCapital.Mul(pct).Round(CurrencyPlaces)
}

// ApplyWin credits the profit of a won bet and clears the outstanding
// loss to recover.
func (b BankrollState) ApplyWin(stake, price decimal.Decimal) BankrollState {
	profit := stake.Mul(price.Sub(decimal.NewFromInt(1)))
	b.CurrentCapital = b.CurrentCapital.Add(profit).Round(CurrencyPlaces)
	b.LossToRecover = decimal.Zero
	return b
}

// ApplyLoss debits the stake of a lost bet and adds it to the
// outstanding loss to recover.
func (b BankrollState) ApplyLoss(stake decimal.Decimal) BankrollState {
	b.CurrentCapital = b.CurrentCapital.Sub(stake).Round(CurrencyPlaces)
	b.LossToRecover = b.LossToRecover.Add(stake).Round(CurrencyPlaces)
	return b
}
