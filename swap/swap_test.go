package swap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhizzard/Strata/market"
)

var (
	d0 = market.Date(2025, 1, 15)
	d1 = market.Date(2025, 4, 15)
	d2 = market.Date(2025, 7, 15)
)

func usny(t *testing.T) market.BusinessDayAdjustment {
	t.Helper()
	adj, err := market.NewBusinessDayAdjustment(market.ModifiedFollowing, "USNY")
	require.NoError(t, err)
	return adj
}

func fixedPeriod(t *testing.T, notional, rate float64) FixedRatePaymentPeriod {
	t.Helper()
	p, err := FixedRatePaymentPeriodBuilder{
		PaymentDate:  d1,
		StartDate:    d0,
		EndDate:      d1,
		YearFraction: 0.25,
		Currency:     market.USD,
		Notional:     notional,
		Rate:         rate,
	}.Build()
	require.NoError(t, err)
	return p
}

func TestResetScheduleDefaultsToUnweighted(t *testing.T) {
	t.Parallel()

	for _, freq := range []market.Frequency{market.FreqMonthly, market.FreqQuarterly, market.FreqAnnual, market.FreqTerm} {
		for _, adj := range []market.BusinessDayAdjustment{market.NoAdjustment, usny(t)} {
			s, err := NewResetSchedule(freq, adj)
			require.NoError(t, err)
			assert.Equal(t, Unweighted, s.RateAveragingMethod())
			assert.Equal(t, freq, s.ResetFrequency())
			assert.Equal(t, adj, s.ResetBusinessDayAdjustment())
		}
	}
}

func TestResetScheduleMissingFields(t *testing.T) {
	t.Parallel()

	_, err := ResetScheduleBuilder{ResetBusinessDayAdjustment: market.NoAdjustment}.Build()
	assert.ErrorIs(t, err, market.ErrInvalidArgument)

	_, err = ResetScheduleBuilder{ResetFrequency: market.FreqQuarterly}.Build()
	assert.ErrorIs(t, err, market.ErrInvalidArgument)

	_, err = ResetScheduleBuilder{
		ResetFrequency:             market.FreqQuarterly,
		ResetBusinessDayAdjustment: market.NoAdjustment,
		RateAveragingMethod:        "GEOMETRIC",
	}.Build()
	assert.ErrorIs(t, err, market.ErrInvalidArgument)
}

func TestResetScheduleToBuilder(t *testing.T) {
	t.Parallel()

	s, err := ResetScheduleBuilder{
		ResetFrequency:             market.FreqMonthly,
		ResetBusinessDayAdjustment: usny(t),
		RateAveragingMethod:        Weighted,
	}.Build()
	require.NoError(t, err)

	same, err := s.ToBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, s, same)

	b := s.ToBuilder()
	b.RateAveragingMethod = Unweighted
	changed, err := b.Build()
	require.NoError(t, err)
	assert.NotEqual(t, s, changed)
	assert.Equal(t, Weighted, s.RateAveragingMethod())
}

func TestResetScheduleCheckAccrualFrequency(t *testing.T) {
	t.Parallel()

	s, err := NewResetSchedule(market.FreqQuarterly, market.NoAdjustment)
	require.NoError(t, err)

	assert.NoError(t, s.CheckAccrualFrequency(market.FreqSemiAnnual))
	assert.NoError(t, s.CheckAccrualFrequency(market.FreqQuarterly))
	assert.NoError(t, s.CheckAccrualFrequency(market.FreqTerm))
	assert.ErrorIs(t, s.CheckAccrualFrequency(market.FreqMonthly), market.ErrInvalidArgument)
	assert.ErrorIs(t, s.CheckAccrualFrequency(0), market.ErrInvalidArgument)
}

func TestRateAveragingMethodAverage(t *testing.T) {
	t.Parallel()

	rates := []float64{0.01, 0.03}
	weights := []float64{30, 10}

	avg, err := Unweighted.Average(rates, weights)
	require.NoError(t, err)
	assert.InDelta(t, 0.02, avg, 1e-15)

	avg, err = RateAveragingMethod("").Average(rates, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.02, avg, 1e-15)

	avg, err = Weighted.Average(rates, weights)
	require.NoError(t, err)
	assert.InDelta(t, (0.01*30+0.03*10)/40, avg, 1e-15)

	_, err = Weighted.Average(rates, []float64{1})
	assert.ErrorIs(t, err, market.ErrInvalidArgument)
	_, err = Unweighted.Average(nil, nil)
	assert.ErrorIs(t, err, market.ErrInvalidArgument)
}

func TestFixedRatePaymentPeriodBuild(t *testing.T) {
	t.Parallel()

	p := fixedPeriod(t, 1_000_000, 0.04)
	assert.Equal(t, d1, p.PaymentDate())
	assert.Equal(t, 0.04, p.Rate())

	same, err := p.ToBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, p, same)

	tests := []struct {
		name   string
		mutate func(b *FixedRatePaymentPeriodBuilder)
	}{
		{"missing payment date", func(b *FixedRatePaymentPeriodBuilder) { b.PaymentDate = time.Time{} }},
		{"missing start", func(b *FixedRatePaymentPeriodBuilder) { b.StartDate = time.Time{} }},
		{"missing end", func(b *FixedRatePaymentPeriodBuilder) { b.EndDate = time.Time{} }},
		{"end before start", func(b *FixedRatePaymentPeriodBuilder) { b.EndDate = d0.AddDate(0, 0, -1) }},
		{"negative year fraction", func(b *FixedRatePaymentPeriodBuilder) { b.YearFraction = -0.1 }},
		{"missing currency", func(b *FixedRatePaymentPeriodBuilder) { b.Currency = "" }},
	}
	for _, tt := range tests {
		b := p.ToBuilder()
		tt.mutate(&b)
		_, err := b.Build()
		assert.ErrorIs(t, err, market.ErrInvalidArgument, tt.name)
	}
}

func TestFloatingRatePaymentPeriodBuild(t *testing.T) {
	t.Parallel()

	b := FloatingRatePaymentPeriodBuilder{
		PaymentDate:  d2,
		StartDate:    d0,
		EndDate:      d2,
		YearFraction: 0.5,
		Currency:     market.USD,
		Notional:     1_000_000,
		Index:        market.USDSOFR,
		Resets: []RateReset{
			{FixingDate: d0, StartDate: d0, EndDate: d1, YearFraction: 0.25},
			{FixingDate: d1, StartDate: d1, EndDate: d2, YearFraction: 0.25},
		},
	}
	p, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Gearing())
	assert.Equal(t, Unweighted, p.AveragingMethod())
	assert.Equal(t, []float64{1, 1}, p.Weights())

	resets := p.Resets()
	resets[0].FixingDate = d2
	assert.Equal(t, d0, p.Resets()[0].FixingDate, "resets must be copied out")

	wb := p.ToBuilder()
	wb.AveragingMethod = Weighted
	weighted, err := wb.Build()
	require.NoError(t, err)
	assert.Equal(t, []float64{90, 91}, weighted.Weights())
	assert.False(t, p.Equal(weighted))

	same, err := p.ToBuilder().Build()
	require.NoError(t, err)
	assert.True(t, p.Equal(same))

	zero := 0.0
	spreadOnly := b
	spreadOnly.Gearing = &zero
	spreadOnly.Spread = 0.0025
	sp, err := spreadOnly.Build()
	require.NoError(t, err)
	assert.Equal(t, 0.0, sp.Gearing(), "explicit zero gearing is kept")
	assert.False(t, p.Equal(sp))
	rebuilt, err := sp.ToBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, 0.0, rebuilt.Gearing())

	noResets := b
	noResets.Resets = nil
	_, err = noResets.Build()
	assert.ErrorIs(t, err, market.ErrInvalidArgument)

	noIndex := b
	noIndex.Index = ""
	_, err = noIndex.Build()
	assert.ErrorIs(t, err, market.ErrInvalidArgument)

	badReset := b
	badReset.Resets = []RateReset{{StartDate: d0, EndDate: d1}}
	_, err = badReset.Build()
	assert.ErrorIs(t, err, market.ErrInvalidArgument)
}

func TestFxResetPaymentPeriodBuild(t *testing.T) {
	t.Parallel()

	b := FxResetPaymentPeriodBuilder{
		PaymentDate:       d1,
		StartDate:         d0,
		EndDate:           d1,
		YearFraction:      0.25,
		Currency:          market.USD,
		ReferenceNotional: market.AmountOf(market.EUR, 1_000_000),
		FxFixingDate:      d0,
		Rate:              0.03,
	}
	p, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, market.EUR, p.ReferenceNotional().Currency)

	same := b
	same.ReferenceNotional = market.AmountOf(market.USD, 1)
	_, err = same.Build()
	assert.ErrorIs(t, err, market.ErrInvalidArgument)

	noFixing := b
	noFixing.FxFixingDate = time.Time{}
	_, err = noFixing.Build()
	assert.ErrorIs(t, err, market.ErrInvalidArgument)
}

func TestEventsRequirePayment(t *testing.T) {
	t.Parallel()

	_, err := NewNotionalExchange(market.Payment{})
	assert.ErrorIs(t, err, market.ErrInvalidArgument)
	_, err = NewTerminationPayment(market.Payment{})
	assert.ErrorIs(t, err, market.ErrInvalidArgument)

	pay, err := market.NewPayment(market.AmountOf(market.USD, -200), d2)
	require.NoError(t, err)
	ev, err := NewTerminationPayment(pay)
	require.NoError(t, err)
	assert.Equal(t, d2, ev.PaymentDate())

	other, err := market.NewPayment(market.AmountOf(market.USD, 50), d2)
	require.NoError(t, err)
	changed, err := ev.WithPayment(other)
	require.NoError(t, err)
	assert.Equal(t, -200.0, ev.Amount().Amount)
	assert.Equal(t, 50.0, changed.Amount().Amount)
}

func TestKnownAmountPaymentPeriod(t *testing.T) {
	t.Parallel()

	pay, err := market.NewPayment(market.AmountOf(market.USD, 125), d1)
	require.NoError(t, err)
	p, err := NewKnownAmountPaymentPeriod(pay, d0, d1)
	require.NoError(t, err)
	assert.Equal(t, market.USD, p.Currency())

	_, err = NewKnownAmountPaymentPeriod(pay, d1, d0)
	assert.ErrorIs(t, err, market.ErrInvalidArgument)
}

func TestResolvedSwapLegBuild(t *testing.T) {
	t.Parallel()

	p1 := fixedPeriod(t, 1_000_000, 0.04)
	p2 := fixedPeriod(t, 1_000_000, 0.05)
	leg, err := ResolvedSwapLegBuilder{
		Type:           LegFixed,
		PayReceive:     market.Receive,
		PaymentPeriods: []PaymentPeriod{p1, p2},
	}.Build()
	require.NoError(t, err)
	assert.Equal(t, market.USD, leg.Currency())
	assert.Len(t, leg.PaymentPeriods(), 2)
	assert.Empty(t, leg.PaymentEvents())

	periods := leg.PaymentPeriods()
	periods[0] = p2
	assert.Equal(t, p1, leg.PaymentPeriods()[0], "periods must be copied out")

	same, err := leg.ToBuilder().Build()
	require.NoError(t, err)
	assert.True(t, leg.Equal(same))

	empty, err := ResolvedSwapLegBuilder{Type: LegOther, PayReceive: market.Pay, PaymentEvents: []PaymentEvent{}}.Build()
	require.NoError(t, err)
	assert.Equal(t, market.Currency(""), empty.Currency())
	assert.False(t, leg.Equal(empty))
}

func TestResolvedSwapLegRejectsBadInput(t *testing.T) {
	t.Parallel()

	eurPay, err := market.NewPayment(market.AmountOf(market.EUR, 10), d1)
	require.NoError(t, err)
	eurEvent, err := NewNotionalExchange(eurPay)
	require.NoError(t, err)

	tests := []struct {
		name string
		b    ResolvedSwapLegBuilder
	}{
		{"missing type", ResolvedSwapLegBuilder{PayReceive: market.Pay}},
		{"missing direction", ResolvedSwapLegBuilder{Type: LegFixed}},
		{"nil period", ResolvedSwapLegBuilder{Type: LegFixed, PayReceive: market.Pay, PaymentPeriods: []PaymentPeriod{nil}}},
		{"nil event", ResolvedSwapLegBuilder{Type: LegFixed, PayReceive: market.Pay, PaymentEvents: []PaymentEvent{nil}}},
		{"mixed currency", ResolvedSwapLegBuilder{
			Type:           LegFixed,
			PayReceive:     market.Pay,
			PaymentPeriods: []PaymentPeriod{fixedPeriod(t, 1, 0.01)},
			PaymentEvents:  []PaymentEvent{eurEvent},
		}},
	}
	for _, tt := range tests {
		_, err := tt.b.Build()
		assert.ErrorIs(t, err, market.ErrInvalidArgument, tt.name)
	}
}

func TestResolvedSwapTrade(t *testing.T) {
	t.Parallel()

	leg, err := ResolvedSwapLegBuilder{
		Type:           LegFixed,
		PayReceive:     market.Pay,
		PaymentPeriods: []PaymentPeriod{fixedPeriod(t, -1_000_000, 0.04)},
	}.Build()
	require.NoError(t, err)
	product, err := NewResolvedSwap(leg)
	require.NoError(t, err)
	assert.False(t, product.IsCrossCurrency())
	assert.Len(t, product.LegsOf(market.Pay), 1)
	assert.Empty(t, product.LegsOf(market.Receive))

	trade, err := ResolvedSwapTradeBuilder{Product: &product}.Build()
	require.NoError(t, err)
	assert.True(t, trade.Info().IsEmpty())

	same, err := trade.ToBuilder().Build()
	require.NoError(t, err)
	assert.True(t, trade.Equal(same))

	_, err = ResolvedSwapTradeBuilder{}.Build()
	assert.ErrorIs(t, err, market.ErrInvalidArgument)
	_, err = NewResolvedSwap()
	assert.ErrorIs(t, err, market.ErrInvalidArgument)
}

func TestParseLegType(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]LegType{"fixed": LegFixed, "Floating": LegFloating, "fx-reset": LegFxReset, " OTHER ": LegOther} {
		got, err := ParseLegType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseLegType("inflation")
	assert.ErrorIs(t, err, market.ErrInvalidArgument)
}
