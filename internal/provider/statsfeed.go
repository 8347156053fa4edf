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
)

// StatsFeedClient fetches per-team recent form, league standings,
// corner history and final scores from the statistics provider.
type StatsFeedClient struct {
	cfg    config.StatsFeedConfig
	http   *RateLimitedHTTPClient
	logger *logrus.Logger
}

// NewStatsFeedClient creates a stats feed client
func NewStatsFeedClient(cfg config.StatsFeedConfig, logger *logrus.Logger) *StatsFeedClient {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	httpCfg.RateLimit = cfg.RateLimit
	httpCfg.MaxRetries = cfg.MaxRetries

	return &StatsFeedClient{
		cfg:    cfg,
		http:   NewRateLimitedHTTPClient(httpCfg, logger),
		logger: logger,
	}
}

type formResponse struct {
	Results          string  `json:"results"`
	AvgGoalsPerMatch float64 `json:"avg_goals_per_match"`
}

// TeamForm returns a team's recent results (most recent last) and the
// mean combined goals across that window.
func (c *StatsFeedClient) TeamForm(ctx context.Context, team string) (models.TeamForm, error) {
	endpoint := fmt.Sprintf("%s/teams/%s/form?window=%d",
		c.cfg.BaseURL, url.PathEscape(team), c.cfg.FormWindow)

	var payload formResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return models.TeamForm{}, err
	}
	if payload.Results == "" {
		return models.TeamForm{}, fmt.Errorf("form for %s: %w", team, models.ErrNoData)
	}
	return models.TeamForm{
		Results:          payload.Results,
		AvgGoalsPerMatch: payload.AvgGoalsPerMatch,
	}, nil
}

type standingsResponse struct {
	Rows []models.StandingsRow `json:"standings"`
}

// Standings returns the current league table, best rank first
func (c *StatsFeedClient) Standings(ctx context.Context, league string) ([]models.StandingsRow, error) {
	endpoint := fmt.Sprintf("%s/leagues/%s/standings", c.cfg.BaseURL, url.PathEscape(league))

	var payload standingsResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if len(payload.Rows) == 0 {
		return nil, fmt.Errorf("standings for %s: %w", league, models.ErrNoData)
	}
	return payload.Rows, nil
}

type cornersResponse struct {
	AvgTotalCorners float64 `json:"avg_total_corners"`
	Games           int     `json:"games"`
}

// CornerAverage returns the mean combined corner count across a team's
// recent matches.
func (c *StatsFeedClient) CornerAverage(ctx context.Context, team string, window int) (float64, error) {
	endpoint := fmt.Sprintf("%s/teams/%s/corners?window=%d",
		c.cfg.BaseURL, url.PathEscape(team), window)

	var payload cornersResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return 0, err
	}
	if payload.Games == 0 {
		return 0, fmt.Errorf("corners for %s: %w", team, models.ErrNoData)
	}
	return payload.AvgTotalCorners, nil
}

type scoreResponse struct {
	Status    string `json:"status"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

// FinalScore returns the provider-reported result of a fixture. The
// status distinguishes a finished match from one still in progress.
func (c *StatsFeedClient) FinalScore(ctx context.Context, fixtureID string) (models.FinalScore, error) {
	endpoint := fmt.Sprintf("%s/fixtures/%s/result", c.cfg.BaseURL, url.PathEscape(fixtureID))

	var payload scoreResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return models.FinalScore{}, err
	}

	status := models.StatusUnknown
	switch payload.Status {
	case "finished":
		status = models.StatusFinished
	case "in_progress":
		status = models.StatusInProgress
	}
	return models.FinalScore{
		Status:    status,
		HomeScore: payload.HomeScore,
		AwayScore: payload.AwayScore,
	}, nil
}

func (c *StatsFeedClient) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("stats feed request failed: %w", err)
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", c.cfg.APIKey)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("stats feed request failed: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return models.ErrNoData
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stats feed returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode stats feed response: %w", err)
	}
	return nil
}

// Close releases the underlying HTTP client
func (c *StatsFeedClient) Close() error {
	return c.http.Close()
}
