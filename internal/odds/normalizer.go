// Package odds converts raw bookmaker payloads into the canonical
// per-fixture price view strategies evaluate against.
package odds

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-falcon/internal/models"
)

// Provider market keys
const (
	rawMarketH2H    = "h2h"
	rawMarketTotals = "totals"
	rawMarketBTTS   = "btts"
)

// Bookmaker is one bookmaker entry of a fixture's raw odds payload
type Bookmaker struct {
	Key     string      `json:"key"`
	Title   string      `json:"title"`
	Markets []RawMarket `json:"markets"`
}

// RawMarket is a provider market with its outcomes in arbitrary order
type RawMarket struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is a single priced selection. Point carries the totals line
// and is zero for non-totals markets.
type Outcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Point float64 `json:"point"`
}

// Normalizer builds CanonicalOdds from raw bookmaker payloads
type Normalizer struct {
	logger *logrus.Logger
}

// NewNormalizer creates a new odds normalizer
func NewNormalizer(logger *logrus.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize maps a fixture's bookmaker payload onto the five canonical
// markets. Only the first bookmaker is read so every price in the
// result comes from one source. Returns nil when the payload carries
// no usable bookmaker, and every canonical market key is present (an
// unpriced market is an empty sub-map).
func (n *Normalizer) Normalize(bookmakers []Bookmaker) models.CanonicalOdds {
	if len(bookmakers) == 0 || len(bookmakers[0].Markets) == 0 {
		return nil
	}

	canonical := make(models.CanonicalOdds, len(models.CanonicalMarkets))
	for _, market := range models.CanonicalMarkets {
		canonical[market] = make(map[string]float64)
	}

	book := bookmakers[0]
	for _, market := range book.Markets {
		switch market.Key {
		case rawMarketH2H:
			for _, out := range market.Outcomes {
				if out.Price > 0 {
					canonical[models.MarketHeadToHead][out.Name] = out.Price
				}
			}
		case rawMarketTotals:
			for _, out := range market.Outcomes {
				bucket, ok := totalsBucket(out.Point)
				if !ok || out.Price <= 0 {
					continue
				}
				canonical[bucket][out.Name] = out.Price
			}
		case rawMarketBTTS:
			for _, out := range market.Outcomes {
				if out.Price > 0 {
					canonical[models.MarketBTTS][out.Name] = out.Price
				}
			}
		default:
			n.logger.WithField("market", market.Key).Debug("Skipping unrecognized market")
		}
	}

	return canonical
}

// totalsBucket maps a totals line onto one of the three tracked lines
func totalsBucket(point float64) (models.Market, bool) {
	switch {
	case math.Abs(point-1.5) < 1e-9:
		return models.MarketTotals15, true
	case math.Abs(point-2.5) < 1e-9:
		return models.MarketTotals25, true
	case math.Abs(point-3.5) < 1e-9:
		return models.MarketTotals35, true
	default:
		return "", false
	}
}
