package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhizzard/Strata/config"
	"github.com/jhizzard/Strata/market"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runsPath := filepath.Join(dir, "runs.csv")
	valsPath := filepath.Join(dir, "valuations.csv")

	j, err := NewCSV(runsPath, valsPath)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	assert.Equal(t, [][]string{runsHeader}, readCSV(t, runsPath))
	assert.Equal(t, [][]string{valuationsHeader}, readCSV(t, valsPath))
}

func TestCSVJournalAppends(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runsPath := filepath.Join(dir, "runs.csv")
	valsPath := filepath.Join(dir, "valuations.csv")

	started := time.Date(2025, 1, 2, 18, 0, 0, 0, time.UTC)
	for i, id := range []string{"run_1", "run_2"} {
		j, err := NewCSV(runsPath, valsPath)
		require.NoError(t, err)
		require.NoError(t, j.RecordRun(testRun(id, started.Add(time.Duration(i)*time.Hour))))
		require.NoError(t, j.RecordValuation(NewValuationRecord(id, "T1", "swap", market.AmountOf(market.USD, -50))))
		require.NoError(t, j.Close())
	}

	runs := readCSV(t, runsPath)
	require.Len(t, runs, 3, "header written once")
	assert.Equal(t, []string{
		"run_2", "2025-01-02T19:00:00Z", "2025-01-02T19:00:01.5Z", "2025-01-02", "pv", "book.yaml", "3", "ok", "",
	}, runs[2])

	vals := readCSV(t, valsPath)
	require.Len(t, vals, 3)
	assert.Equal(t, []string{"run_1", "T1", "swap", "USD", "-50.00"}, vals[1])
}

func TestOpen(t *testing.T) {
	t.Parallel()

	j, err := Open(config.JournalConfig{Type: "none"})
	require.NoError(t, err)
	assert.Equal(t, Noop{}, j)
	assert.NoError(t, j.RecordRun(RunRecord{}))

	dir := t.TempDir()
	j, err = Open(config.JournalConfig{Type: "sqlite", DBPath: filepath.Join(dir, "runs.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, j)
	require.NoError(t, j.Close())

	j, err = Open(config.JournalConfig{Type: "csv", RunsFile: filepath.Join(dir, "r.csv"), ValuationsFile: filepath.Join(dir, "v.csv")})
	require.NoError(t, err)
	assert.IsType(t, &CSVJournal{}, j)
	require.NoError(t, j.Close())

	_, err = Open(config.JournalConfig{Type: "kafka"})
	assert.Error(t, err)
}
