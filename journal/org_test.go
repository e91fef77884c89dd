package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhizzard/Strata/market"
)

func TestExportRunOrg(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	run := testRun("run_01", time.Date(2025, 1, 2, 18, 0, 0, 0, time.UTC))
	require.NoError(t, j.RecordRun(run))
	require.NoError(t, j.RecordValuation(NewValuationRecord("run_01", "IRS-1", "swap", market.AmountOf(market.USD, -50))))

	result, err := j.ExportRunOrg("run_01")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result, "* VALUATION: pv as of 2025-01-02"), result)
	assert.Contains(t, result, ":RUN_ID:     run_01")
	assert.Contains(t, result, ":PORTFOLIO:  book.yaml")
	assert.Contains(t, result, ":STARTED:    [2025-01-02 Thu 18:00]")
	assert.Contains(t, result, ":DURATION:   1.5s")
	assert.Contains(t, result, "| IRS-1 | swap | USD | -50.00 |")
	assert.NotContains(t, result, "** Error")
}

func TestRunReportShowsError(t *testing.T) {
	t.Parallel()

	run := testRun("run_02", time.Date(2025, 1, 2, 18, 0, 0, 0, time.UTC))
	run.Portfolio = ""
	run.Status = StatusFailed
	run.Error = "boom"

	var sb strings.Builder
	require.NoError(t, RunReport{Run: run}.WriteOrg(&sb))
	assert.Contains(t, sb.String(), ":PORTFOLIO:  (inline)")
	assert.Contains(t, sb.String(), "** Error\nboom")
	assert.NotContains(t, sb.String(), "** Valuations")
}

func TestExportRunOrgUnknownRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.ExportRunOrg("nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}
