package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhizzard/Strata/config"
	"github.com/jhizzard/Strata/market"
)

var (
	testConfigFile = filepath.Join("..", "..", "..", "config", "testdata", "strata.yaml")
	testBookFile   = filepath.Join("..", "..", "..", "portfolio", "testdata", "book.yaml")
)

// execute runs the root command with fresh flag values. The commands share
// package state, so these tests do not run in parallel.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgFile, cfg = "", nil
	valuePortfolio, valueDate, valueKind, valueReporting, valueJournal = "", "", "", "", ""
	watchCron, watchNow = "", false
	runsDBPath, runsLimit = "", 20
	configInitOutput, configValidatePath = "strata.yaml", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// sqliteConfig writes a copy of the test config that journals to SQLite.
func sqliteConfig(t *testing.T) (cfgPath, dbPath string) {
	t.Helper()

	c, err := config.Load(testConfigFile)
	require.NoError(t, err)
	dir := t.TempDir()
	dbPath = filepath.Join(dir, "runs.db")
	c.Journal = config.JournalConfig{Type: "sqlite", DBPath: dbPath}
	c.Valuation.Portfolio = testBookFile
	cfgPath = filepath.Join(dir, "strata.yaml")
	require.NoError(t, c.SaveToFile(cfgPath))
	return cfgPath, dbPath
}

var runIDPattern = regexp.MustCompile(`Run (run_[0-9A-Z]{26})`)

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "strata version "+version)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strata.yaml")

	out, err := execute(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = execute(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Journal: none")

	out, err = execute(t, "config", "validate", "-f", testConfigFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Environment: 2025-01-02")
}

func TestConfigValidateRejectsMissingFile(t *testing.T) {
	_, err := execute(t, "config", "validate", "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValuePrintsTradesAndTotals(t *testing.T) {
	out, err := execute(t, "value", "-c", testConfigFile, "--portfolio", testBookFile, "--reporting", "USD")
	require.NoError(t, err)

	assert.Regexp(t, runIDPattern, out)
	assert.Contains(t, out, "2025-01-02  pv")
	for _, id := range []string{"IRS-1", "XCCY-1", "CDS-1"} {
		assert.Contains(t, out, id)
	}
	assert.Regexp(t, `TOTAL\s+EUR`, out)
	assert.Regexp(t, `TOTAL\s+GBP`, out)
	assert.Regexp(t, `REPORTING\s+USD`, out)
}

func TestValueFlagsOverrideConfig(t *testing.T) {
	out, err := execute(t, "value", "-c", testConfigFile, "-p", testBookFile, "--kind", "fv", "--date", "2025-01-03", "--reporting", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-01-03  fv")
	assert.NotContains(t, out, "REPORTING")

	out, err = execute(t, "value", "-c", testConfigFile, "-p", testBookFile)
	require.NoError(t, err)
	assert.Regexp(t, `REPORTING\s+USD`, out, "config reporting currency applies without the flag")

	_, err = execute(t, "value", "-c", testConfigFile, "-p", testBookFile, "--kind", "npv")
	assert.ErrorIs(t, err, market.ErrInvalidArgument)
}

func TestValueNeedsPortfolio(t *testing.T) {
	_, err := execute(t, "value", "-c", testConfigFile)
	assert.ErrorIs(t, err, market.ErrInvalidArgument)
}

func TestValueJournalsToSQLite(t *testing.T) {
	cfgPath, dbPath := sqliteConfig(t)

	out, err := execute(t, "value", "-c", cfgPath)
	require.NoError(t, err)
	m := runIDPattern.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	runID := m[1]

	out, err = execute(t, "runs", "list", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, runID)
	assert.Contains(t, out, "rates-and-credit")
	assert.Contains(t, out, "ok")

	out, err = execute(t, "runs", "show", runID, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, ":RUN_ID:     "+runID)
	assert.Contains(t, out, "| XCCY-1 | swap | EUR |")

	_, err = execute(t, "runs", "show", "run_missing", "--db", dbPath)
	assert.Error(t, err)

	// --journal none leaves the database untouched
	out, err = execute(t, "value", "-c", cfgPath, "--journal", "none")
	require.NoError(t, err)
	skipped := runIDPattern.FindStringSubmatch(out)
	require.Len(t, skipped, 2, out)
	listing, err := execute(t, "runs", "list", "--db", dbPath)
	require.NoError(t, err)
	assert.NotContains(t, listing, skipped[1])
}

func TestRunsNeedsDatabase(t *testing.T) {
	_, err := execute(t, "runs", "list", "-c", testConfigFile)
	assert.ErrorIs(t, err, market.ErrInvalidArgument)
}

func TestWatchRunsOnStart(t *testing.T) {
	cfgPath, dbPath := sqliteConfig(t)
	c, err := config.Load(cfgPath)
	require.NoError(t, err)
	c.Schedule.RunOnStart = true
	c.Schedule.Cron = "@every 1h"
	cfg = c

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	require.NoError(t, watch(ctx, cmd, time.Now))

	assert.Regexp(t, runIDPattern, out.String())
	assert.Contains(t, out.String(), "Watching rates-and-credit")

	listing, err := execute(t, "runs", "list", "--db", dbPath)
	require.NoError(t, err)
	assert.Regexp(t, `run_[0-9A-Z]{26}`, listing)
}
