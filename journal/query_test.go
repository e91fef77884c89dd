package journal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhizzard/Strata/market"
)

func TestGetRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	started := time.Date(2025, 1, 2, 18, 0, 0, 0, time.UTC)
	expected := testRun("run_01", started)
	expected.Status = StatusFailed
	expected.Error = "trade T9: market data not available"

	require.NoError(t, j.RecordRun(expected))

	actual, err := j.GetRun("run_01")
	require.NoError(t, err)

	assert.Equal(t, expected.RunID, actual.RunID)
	assert.True(t, expected.StartedAt.Equal(actual.StartedAt), actual.StartedAt)
	assert.True(t, expected.FinishedAt.Equal(actual.FinishedAt), actual.FinishedAt)
	assert.Equal(t, expected.ValuationDate, actual.ValuationDate)
	assert.Equal(t, expected.Kind, actual.Kind)
	assert.Equal(t, expected.Portfolio, actual.Portfolio)
	assert.Equal(t, expected.Trades, actual.Trades)
	assert.Equal(t, expected.Status, actual.Status)
	assert.Equal(t, expected.Error, actual.Error)
	assert.Equal(t, 1500*time.Millisecond, actual.Duration())
}

func TestGetRunNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetRun("missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRunsNewestFirst(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	base := time.Date(2025, 1, 2, 18, 0, 0, 0, time.UTC)
	for i, id := range []string{"run_a", "run_b", "run_c"} {
		require.NoError(t, j.RecordRun(testRun(id, base.Add(time.Duration(i)*time.Hour))))
	}

	runs, err := j.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run_c", runs[0].RunID)
	assert.Equal(t, "run_b", runs[1].RunID)

	all, err := j.ListRuns(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListValuationsByRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	want := []ValuationRecord{
		NewValuationRecord("run_1", "T2", "swap", market.AmountOf(market.USD, 1_000.125)),
		NewValuationRecord("run_1", "T2", "swap", market.AmountOf(market.EUR, -250)),
		NewValuationRecord("run_1", "T1", "cds", market.AmountOf(market.USD, 42)),
	}
	for _, v := range want {
		require.NoError(t, j.RecordValuation(v))
	}
	require.NoError(t, j.RecordValuation(NewValuationRecord("run_2", "T1", "cds", market.AmountOf(market.USD, 1))))

	got, err := j.ListValuationsByRun("run_1")
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].TradeID, got[i].TradeID)
		assert.Equal(t, want[i].Product, got[i].Product)
		assert.Equal(t, want[i].Currency, got[i].Currency)
		assert.True(t, want[i].Amount.Equal(got[i].Amount), "%s != %s", want[i].Amount, got[i].Amount)
	}
	assert.True(t, decimal.RequireFromString("1000.13").Equal(got[0].Amount))

	none, err := j.ListValuationsByRun("run_9")
	require.NoError(t, err)
	assert.Empty(t, none)
}
