package models

// Market identifies a canonical betting market key
type Market string

const (
	MarketHeadToHead Market = "head_to_head"
	MarketTotals15   Market = "totals_1_5"
	MarketTotals25   Market = "totals_2_5"
	MarketTotals35   Market = "totals_3_5"
	MarketBTTS       Market = "both_teams_to_score"
)

// Selection names shared across markets. Winner markets use the team
// name itself as the selection.
const (
	SelectionOver  = "Over"
	SelectionUnder = "Under"
	SelectionDraw  = "Draw"
	SelectionYes   = "Yes"
	SelectionNo    = "No"
)

// CanonicalMarkets lists every market the normalizer produces
var CanonicalMarkets = []Market{
	MarketHeadToHead,
	MarketTotals15,
	MarketTotals25,
	MarketTotals35,
	MarketBTTS,
}

// CanonicalOdds is the normalized price view of a fixture:
// market key to selection name to decimal price. A nil value means the
// fixture's bookmaker payload was missing or malformed and no market
// can be evaluated.
type CanonicalOdds map[Market]map[string]float64

// Price returns the decimal price for a selection, if present.
// Safe on a nil receiver and on absent markets.
func (c CanonicalOdds) Price(market Market, selection string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	price, ok := c[market][selection]
	if !ok || price <= 0 {
		return 0, false
	}
	return price, true
}

// Favorite returns the non-draw head-to-head selection with the lowest
// price. ok is false when no non-draw selection is priced.
func (c CanonicalOdds) Favorite() (name string, price float64, ok bool) {
	if c == nil {
		return "", 0, false
	}
	for sel, p := range c[MarketHeadToHead] {
		if sel == SelectionDraw || p <= 0 {
			continue
		}
		if !ok || p < price {
			name, price, ok = sel, p, true
		}
	}
	return name, price, ok
}
