package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	t.Parallel()

	ccy, err := ParseCurrency(" usd ")
	require.NoError(t, err)
	assert.Equal(t, USD, ccy)

	for _, bad := range []string{"", "US", "USDX", "U1D"} {
		_, err := ParseCurrency(bad)
		assert.ErrorIs(t, err, ErrInvalidArgument, bad)
	}
}

func TestCurrencyAmountRounded(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "USD 1234.57", AmountOf(USD, 1234.5678).String())
	assert.Equal(t, "JPY 1235", AmountOf(JPY, 1234.5678).String())
	assert.Equal(t, "-0.13", AmountOf(EUR, -0.125).Rounded().StringFixed(2))
}

func TestCurrencyAmountPlus(t *testing.T) {
	t.Parallel()

	sum, err := AmountOf(USD, 10).Plus(AmountOf(USD, 5))
	require.NoError(t, err)
	assert.Equal(t, AmountOf(USD, 15), sum)

	_, err = AmountOf(USD, 10).Plus(AmountOf(EUR, 5))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMultiCurrencyAmount(t *testing.T) {
	t.Parallel()

	var m MultiCurrencyAmount
	m2 := m.Plus(AmountOf(USD, 10)).Plus(AmountOf(EUR, 3)).Plus(AmountOf(USD, -4))

	assert.Equal(t, 0, m.Size())
	assert.Equal(t, []Currency{EUR, USD}, m2.Currencies())
	usd, ok := m2.Amount(USD)
	assert.True(t, ok)
	assert.Equal(t, 6.0, usd.Amount)
	assert.Equal(t, []CurrencyAmount{AmountOf(EUR, 3), AmountOf(USD, 6)}, m2.Amounts())
}

func TestParseCurrencyPair(t *testing.T) {
	t.Parallel()

	p, err := ParseCurrencyPair("eur_usd")
	require.NoError(t, err)
	assert.Equal(t, CurrencyPair{Base: EUR, Counter: USD}, p)
	assert.Equal(t, "USD/EUR", p.Inverse().String())

	_, err = ParseCurrencyPair("USD/USD")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewPayment(t *testing.T) {
	t.Parallel()

	when := time.Date(2025, 3, 20, 15, 4, 5, 0, time.FixedZone("X", 3600))
	p, err := NewPayment(AmountOf(USD, -100), when)
	require.NoError(t, err)
	assert.Equal(t, Date(2025, 3, 20), p.Date())
	assert.Equal(t, -100.0, p.Amount())
	assert.False(t, p.IsZero())

	_, err = NewPayment(AmountOf("", 1), when)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewPayment(AmountOf(USD, 1), time.Time{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseFrequency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Frequency
	}{
		{"3M", FreqQuarterly},
		{"P6M", FreqSemiAnnual},
		{"1Y", FreqAnnual},
		{"p1y", FreqAnnual},
		{"TERM", FreqTerm},
	}
	for _, tt := range tests {
		got, err := ParseFrequency(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "M", "0M", "3W", "xM"} {
		_, err := ParseFrequency(bad)
		assert.ErrorIs(t, err, ErrInvalidArgument, bad)
	}
	assert.Equal(t, "3M", FreqQuarterly.String())
	assert.Equal(t, "1Y", FreqAnnual.String())
}

func TestFrequencyNoLongerThan(t *testing.T) {
	t.Parallel()

	assert.True(t, FreqQuarterly.NoLongerThan(FreqSemiAnnual))
	assert.True(t, FreqQuarterly.NoLongerThan(FreqQuarterly))
	assert.False(t, FreqAnnual.NoLongerThan(FreqQuarterly))
	assert.True(t, FreqAnnual.NoLongerThan(FreqTerm))
	assert.False(t, FreqTerm.NoLongerThan(FreqAnnual))
	assert.False(t, Frequency(0).Valid())
}

func TestBusinessDayAdjustment(t *testing.T) {
	t.Parallel()

	adj, err := NewBusinessDayAdjustment(ModifiedFollowing, "USNY")
	require.NoError(t, err)
	assert.Equal(t, "MODIFIED_FOLLOWING using calendar USNY", adj.String())
	assert.NoError(t, NoAdjustment.Validate())
	assert.True(t, BusinessDayAdjustment{}.IsZero())

	_, err = NewBusinessDayAdjustment("SIDEWAYS", "USNY")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewBusinessDayAdjustment(Following, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDirections(t *testing.T) {
	t.Parallel()

	pr, err := ParsePayReceive("rec")
	require.NoError(t, err)
	assert.Equal(t, Receive, pr)
	assert.Equal(t, -1.0, Pay.Sign())
	assert.Equal(t, 1.0, Receive.Sign())

	bs, err := ParseBuySell("sell")
	require.NoError(t, err)
	assert.Equal(t, -1.0, bs.Sign())

	_, err = ParsePayReceive("maybe")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDates(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2024-02-28")
	require.NoError(t, err)
	assert.Equal(t, Date(2024, 2, 28), d)
	assert.Equal(t, 2, DaysBetween(d, Date(2024, 3, 1)))
	assert.Equal(t, "", FormatDate(time.Time{}))

	_, err = ParseDate("28/02/2024")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTradeInfo(t *testing.T) {
	t.Parallel()

	assert.True(t, EmptyTradeInfo().IsEmpty())
	info := TradeInfo{ID: "T1", TradeDate: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)}
	assert.False(t, info.IsEmpty())
	assert.Equal(t, Date(2024, 1, 2), info.Normalized().TradeDate)
}
