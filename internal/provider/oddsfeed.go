package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-falcon/internal/config"
	"github.com/yourusername/odds-falcon/internal/models"
	"github.com/yourusername/odds-falcon/internal/odds"
)

// OddsEvent is one fixture of the odds feed with its raw bookmaker
// payload still attached.
type OddsEvent struct {
	ID           string           `json:"id"`
	SportTitle   string           `json:"sport_title"`
	CommenceTime time.Time        `json:"commence_time"`
	HomeTeam     string           `json:"home_team"`
	AwayTeam     string           `json:"away_team"`
	Bookmakers   []odds.Bookmaker `json:"bookmakers"`
}

// Fixture converts the event header into the run's fixture model
func (e *OddsEvent) Fixture() models.Fixture {
	return models.Fixture{
		ID:         e.ID,
		HomeTeam:   e.HomeTeam,
		AwayTeam:   e.AwayTeam,
		League:     e.SportTitle,
		LeagueCode: leagueCodes[e.SportTitle],
		Kickoff:    e.CommenceTime,
	}
}

// leagueCodes maps feed league titles onto historical-table division
// codes. Leagues outside the map simply have no league-average context.
var leagueCodes = map[string]string{
	"Premier League": "E0",
	"La Liga":        "SP1",
	"Serie A":        "I1",
	"Bundesliga":     "D1",
}

// OddsFeedClient fetches today's fixtures and their prices
type OddsFeedClient struct {
	cfg    config.OddsFeedConfig
	http   *RateLimitedHTTPClient
	logger *logrus.Logger
}

// NewOddsFeedClient creates an odds feed client
func NewOddsFeedClient(cfg config.OddsFeedConfig, logger *logrus.Logger) *OddsFeedClient {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	httpCfg.RateLimit = cfg.RateLimit
	httpCfg.MaxRetries = cfg.MaxRetries

	return &OddsFeedClient{
		cfg:    cfg,
		http:   NewRateLimitedHTTPClient(httpCfg, logger),
		logger: logger,
	}
}

// ListEvents returns every soccer fixture the feed currently prices,
// with h2h, totals and both-teams-to-score markets attached.
func (c *OddsFeedClient) ListEvents(ctx context.Context) ([]OddsEvent, error) {
	query := url.Values{}
	query.Set("apiKey", c.cfg.APIKey)
	query.Set("regions", c.cfg.Regions)
	query.Set("markets", "h2h,totals,btts")
	query.Set("bookmakers", c.cfg.Bookmaker)
	query.Set("oddsFormat", "decimal")

	endpoint := fmt.Sprintf("%s/sports/soccer/odds?%s", c.cfg.BaseURL, query.Encode())

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("odds feed request failed: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds feed returned status %d", resp.StatusCode)
	}

	var events []OddsEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode odds feed response: %w", err)
	}

	c.logger.WithField("events", len(events)).Debug("Fetched odds feed events")
	return events, nil
}

// Close releases the underlying HTTP client
func (c *OddsFeedClient) Close() error {
	return c.http.Close()
}
