package models

import "fmt"

// SignalKind tags the result of a strategy evaluation
type SignalKind string

const (
	SignalNone  SignalKind = "none"
	SignalAlert SignalKind = "alert"
	SignalBet   SignalKind = "bet"
)

// BetMarketKind identifies how a bet market settles
type BetMarketKind string

const (
	BetMarketOver   BetMarketKind = "over"
	BetMarketUnder  BetMarketKind = "under"
	BetMarketDraw   BetMarketKind = "draw"
	BetMarketWinner BetMarketKind = "winner"
	BetMarketBTTS   BetMarketKind = "btts_yes"
)

// BetMarket describes the market and selection of a bet candidate in a
// form the lifecycle tracker can settle against a final score. Line is
// set for totals markets, Team for winner markets.
type BetMarket struct {
	Kind BetMarketKind `json:"kind"`
	Line float64       `json:"line,omitempty"`
	Team string        `json:"team,omitempty"`
}

// String renders the market as it appears in notifications
func (m BetMarket) String() string {
	switch m.Kind {
	case BetMarketOver:
		return fmt.Sprintf("Over %.1f Goals", m.Line)
	case BetMarketUnder:
		return fmt.Sprintf("Under %.1f Goals", m.Line)
	case BetMarketDraw:
		return "Draw"
	case BetMarketWinner:
		return fmt.Sprintf("Full Time Result - %s", m.Team)
	case BetMarketBTTS:
		return "Both Teams To Score - Yes"
	default:
		return string(m.Kind)
	}
}

// Signal is the tagged output of a strategy evaluator. A bet signal
// without a price is "unpriced" and is surfaced for manual review
// instead of being staked.
type Signal struct {
	Kind      SignalKind `json:"kind"`
	Strategy  string     `json:"strategy"`
	Market    BetMarket  `json:"market,omitempty"`
	Price     float64    `json:"price,omitempty"`
	Rationale string     `json:"rationale"`
	Emoji     string     `json:"emoji,omitempty"`
}

// NoSignal is the zero result of an evaluation
func NoSignal() Signal {
	return Signal{Kind: SignalNone}
}

// IsActionable reports whether the signal is an alert or bet candidate
func (s Signal) IsActionable() bool {
	return s.Kind == SignalAlert || s.Kind == SignalBet
}

// Priced reports whether a bet candidate carries a usable price
func (s Signal) Priced() bool {
	return s.Price > 0
}
