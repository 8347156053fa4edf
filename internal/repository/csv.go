package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-falcon/internal/models"
)

// CSVMatchSource implements MatchSource for football-data style CSV
// exports (Div,Date,HomeTeam,AwayTeam,FTHG,FTAG,... column layout).
type CSVMatchSource struct {
	path   string
	logger *logrus.Logger
}

// NewCSVMatchSource creates a CSV-backed match source
func NewCSVMatchSource(path string, logger *logrus.Logger) *CSVMatchSource {
	return &CSVMatchSource{path: path, logger: logger}
}

// csvDateLayouts covers the two date formats the exports mix
var csvDateLayouts = []string{"02/01/2006", "02/01/06"}

// ListMatches parses the whole CSV. Rows with an unparseable date are
// skipped rather than failing the load; missing numeric columns
// default to zero.
func (s *CSVMatchSource) ListMatches(ctx context.Context) ([]models.MatchRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open match CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"Date", "HomeTeam", "AwayTeam"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("match CSV missing required column %q", required)
		}
	}

	var records []models.MatchRecord
	skipped := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		date, ok := parseCSVDate(field(row, col, "Date"))
		if !ok {
			skipped++
			continue
		}

		records = append(records, models.MatchRecord{
			League:            field(row, col, "Div"),
			Date:              date,
			HomeTeam:          field(row, col, "HomeTeam"),
			AwayTeam:          field(row, col, "AwayTeam"),
			HomeGoals:         intField(row, col, "FTHG"),
			AwayGoals:         intField(row, col, "FTAG"),
			HomeCorners:       intField(row, col, "HC"),
			AwayCorners:       intField(row, col, "AC"),
			HomeShots:         intField(row, col, "HS"),
			AwayShots:         intField(row, col, "AS"),
			HomeShotsOnTarget: intField(row, col, "HST"),
			AwayShotsOnTarget: intField(row, col, "AST"),
			HomeYellow:        intField(row, col, "HY"),
			AwayYellow:        intField(row, col, "AY"),
		})
	}

	if skipped > 0 {
		s.logger.WithFields(logrus.Fields{
			"path":    s.path,
			"skipped": skipped,
		}).Warn("Skipped CSV rows with unparseable dates")
	}
	return records, nil
}

func parseCSVDate(value string) (time.Time, bool) {
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func intField(row []string, col map[string]int, name string) int {
	n, err := strconv.Atoi(field(row, col, name))
	if err != nil {
		return 0
	}
	return n
}
