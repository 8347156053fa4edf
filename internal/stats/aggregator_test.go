package stats

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/odds-falcon/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func day(n int) time.Time {
	return time.Date(2026, 1, n, 15, 0, 0, 0, time.UTC)
}

func TestBuildTeamStatsRoleSplit(t *testing.T) {
	records := []models.MatchRecord{
		{League: "E0", Date: day(1), HomeTeam: "Rovers", AwayTeam: "United", HomeGoals: 2, AwayGoals: 0, HomeCorners: 6, AwayCorners: 3, HomeShots: 14, AwayShots: 8, HomeShotsOnTarget: 6, AwayShotsOnTarget: 2, HomeYellow: 1, AwayYellow: 3},
		{League: "E0", Date: day(2), HomeTeam: "Rovers", AwayTeam: "City", HomeGoals: 1, AwayGoals: 1, HomeCorners: 4, AwayCorners: 5, HomeShots: 10, AwayShots: 12, HomeShotsOnTarget: 4, AwayShotsOnTarget: 5, HomeYellow: 2, AwayYellow: 2},
		{League: "E0", Date: day(3), HomeTeam: "City", AwayTeam: "Rovers", HomeGoals: 3, AwayGoals: 1, HomeCorners: 7, AwayCorners: 2, HomeShots: 16, AwayShots: 6, HomeShotsOnTarget: 8, AwayShotsOnTarget: 3, HomeYellow: 0, AwayYellow: 4},
	}

	agg := NewAggregator(testLogger())
	table := agg.BuildTeamStats(records)

	require.Contains(t, table, "Rovers")
	rovers := table["Rovers"]

	assert.Equal(t, 2, rovers.GamesHome)
	assert.Equal(t, 1, rovers.GamesAway)
	assert.Equal(t, 3, rovers.GamesTotal())

	assert.InDelta(t, 1.5, rovers.AvgGoalsForHome, 1e-9)
	assert.InDelta(t, 0.5, rovers.AvgGoalsAgainstHome, 1e-9)
	assert.InDelta(t, 1.0, rovers.AvgGoalsForAway, 1e-9)
	assert.InDelta(t, 3.0, rovers.AvgGoalsAgainstAway, 1e-9)
	assert.InDelta(t, 5.0, rovers.AvgCornersForHome, 1e-9)
	assert.InDelta(t, 12.0, rovers.AvgShotsForHome, 1e-9)
	assert.InDelta(t, 3.0, rovers.AvgShotsOnTargetForAway, 1e-9)

	assert.Equal(t, 1, rovers.HomeWins)
	assert.Equal(t, 1, rovers.HomeDraws)
	assert.Equal(t, 0, rovers.HomeLosses)
	assert.Equal(t, 1, rovers.AwayLosses)

	assert.InDelta(t, 100.0/3.0, rovers.WinPct, 1e-9)
	assert.InDelta(t, 100.0/3.0, rovers.LossPct, 1e-9)
	assert.InDelta(t, 100.0, rovers.AwayLossPct, 1e-9)
	assert.InDelta(t, 0.0, rovers.HomeLossPct, 1e-9)

	assert.Equal(t, models.ResultLoss, rovers.LastResult)
}

func TestBuildTeamStatsLastResultTracksLatestDate(t *testing.T) {
	records := []models.MatchRecord{
		{League: "E0", Date: day(5), HomeTeam: "United", AwayTeam: "City", HomeGoals: 2, AwayGoals: 1},
		{League: "E0", Date: day(1), HomeTeam: "City", AwayTeam: "United", HomeGoals: 4, AwayGoals: 0},
	}

	agg := NewAggregator(testLogger())
	table := agg.BuildTeamStats(records)

	assert.Equal(t, models.ResultWin, table["United"].LastResult)
	assert.Equal(t, models.ResultLoss, table["City"].LastResult)
}

func TestBuildTeamStatsEmptyInput(t *testing.T) {
	agg := NewAggregator(testLogger())

	table := agg.BuildTeamStats(nil)
	require.NotNil(t, table)
	assert.Empty(t, table)

	h2h := agg.BuildH2HStats(nil)
	require.NotNil(t, h2h)
	assert.Empty(t, h2h)

	leagues := agg.BuildLeagueStats(nil)
	require.NotNil(t, leagues)
	assert.Empty(t, leagues)
}

func TestBuildH2HStatsUnorderedPair(t *testing.T) {
	records := []models.MatchRecord{
		{League: "E0", Date: day(1), HomeTeam: "Rovers", AwayTeam: "United", HomeGoals: 2, AwayGoals: 2},
		{League: "E0", Date: day(2), HomeTeam: "United", AwayTeam: "Rovers", HomeGoals: 0, AwayGoals: 1},
		{League: "E0", Date: day(3), HomeTeam: "Rovers", AwayTeam: "City", HomeGoals: 1, AwayGoals: 0},
	}

	agg := NewAggregator(testLogger())
	h2h := agg.BuildH2HStats(records)

	key := models.H2HKey("United", "Rovers")
	require.Contains(t, h2h, key)
	assert.Equal(t, 2, h2h[key].Meetings)
	assert.InDelta(t, 2.5, h2h[key].AvgGoals, 1e-9)

	// reversed order resolves to the same key
	assert.Equal(t, key, models.H2HKey("Rovers", "United"))
}

func TestBuildLeagueStats(t *testing.T) {
	records := []models.MatchRecord{
		{League: "E0", Date: day(1), HomeTeam: "A", AwayTeam: "B", HomeGoals: 3, AwayGoals: 1, HomeCorners: 5, AwayCorners: 5, HomeYellow: 2, AwayYellow: 2},
		{League: "E0", Date: day(2), HomeTeam: "C", AwayTeam: "D", HomeGoals: 0, AwayGoals: 0, HomeCorners: 8, AwayCorners: 2, HomeYellow: 1, AwayYellow: 1},
		{League: "SP1", Date: day(2), HomeTeam: "E", AwayTeam: "F", HomeGoals: 2, AwayGoals: 2},
	}

	agg := NewAggregator(testLogger())
	leagues := agg.BuildLeagueStats(records)

	require.Contains(t, leagues, "E0")
	assert.InDelta(t, 2.0, leagues["E0"].AvgGoalsPerGame, 1e-9)
	assert.InDelta(t, 10.0, leagues["E0"].AvgCornersPerGame, 1e-9)
	assert.InDelta(t, 3.0, leagues["E0"].AvgCardsPerGame, 1e-9)
	assert.Equal(t, 2, leagues["E0"].Games)

	require.Contains(t, leagues, "SP1")
	assert.InDelta(t, 4.0, leagues["SP1"].AvgGoalsPerGame, 1e-9)
}
