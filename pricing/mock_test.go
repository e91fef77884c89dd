package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhizzard/Strata/credit"
	"github.com/jhizzard/Strata/curve"
	"github.com/jhizzard/Strata/market"
	"github.com/jhizzard/Strata/swap"
)

// --- Environment Mock ---

type mockEnvironment struct {
	mock.Mock
}

func (m *mockEnvironment) ValuationDate() time.Time {
	return m.Called().Get(0).(time.Time)
}

func (m *mockEnvironment) DiscountFactor(ccy market.Currency, date time.Time) (float64, error) {
	args := m.Called(ccy, date)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockEnvironment) IndexRate(obs RateObservation) (float64, error) {
	args := m.Called(obs)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockEnvironment) FxRate(base, counter market.Currency, fixingDate time.Time) (float64, error) {
	args := m.Called(base, counter, fixingDate)
	return args.Get(0).(float64), args.Error(1)
}

// newMockEnv returns a mock valued on valDate that discounts every USD flow
// with df.
func newMockEnv(valDate time.Time, df float64) *mockEnvironment {
	env := new(mockEnvironment)
	env.On("ValuationDate").Return(valDate).Maybe()
	env.On("DiscountFactor", market.USD, mock.Anything).Return(df, nil).Maybe()
	return env
}

// --- fixtures ---

var (
	valDate = market.Date(2025, 1, 2)
	start   = market.Date(2025, 3, 20)
	mid     = market.Date(2025, 6, 20)
	end     = market.Date(2025, 9, 22)
)

func fixed(t *testing.T, notional, rate, yf float64) swap.FixedRatePaymentPeriod {
	t.Helper()
	p, err := swap.FixedRatePaymentPeriodBuilder{
		PaymentDate:  mid,
		StartDate:    start,
		EndDate:      mid,
		YearFraction: yf,
		Currency:     market.USD,
		Notional:     notional,
		Rate:         rate,
	}.Build()
	require.NoError(t, err)
	return p
}

func termination(t *testing.T, amount float64, date time.Time) swap.TerminationPayment {
	t.Helper()
	pay, err := market.NewPayment(market.AmountOf(market.USD, amount), date)
	require.NoError(t, err)
	e, err := swap.NewTerminationPayment(pay)
	require.NoError(t, err)
	return e
}

func exchange(t *testing.T, ccy market.Currency, amount float64, date time.Time) swap.NotionalExchange {
	t.Helper()
	pay, err := market.NewPayment(market.AmountOf(ccy, amount), date)
	require.NoError(t, err)
	e, err := swap.NewNotionalExchange(pay)
	require.NoError(t, err)
	return e
}

func leg(t *testing.T, pr market.PayReceive, periods []swap.PaymentPeriod, events []swap.PaymentEvent) swap.ResolvedSwapLeg {
	t.Helper()
	l, err := swap.ResolvedSwapLegBuilder{
		Type:           swap.LegOther,
		PayReceive:     pr,
		PaymentPeriods: periods,
		PaymentEvents:  events,
	}.Build()
	require.NoError(t, err)
	return l
}

// marketEnv builds a MarketEnvironment with flat USD and EUR discounting, a
// SOFR forward curve, one historic SOFR fixing, EUR/USD at 1.10 and a flat
// hazard curve for ACME.
func marketEnv(t *testing.T) *MarketEnvironment {
	t.Helper()
	usd, err := curve.NewFlatCurve(valDate, 0.04)
	require.NoError(t, err)
	eur, err := curve.NewFlatCurve(valDate, 0.02)
	require.NoError(t, err)
	sofr, err := curve.NewFlatCurve(valDate, 0.045)
	require.NoError(t, err)
	acme, err := curve.NewFlatHazardCurve(valDate, 0.02)
	require.NoError(t, err)

	env, err := MarketEnvironmentBuilder{
		ValuationDate:  valDate,
		DiscountCurves: map[market.Currency]*curve.Curve{market.USD: usd, market.EUR: eur},
		IndexCurves:    map[market.RateIndex]*curve.Curve{market.USDSOFR: sofr},
		Fixings: map[market.RateIndex]map[time.Time]float64{
			market.USDSOFR: {market.Date(2024, 12, 20): 0.043},
		},
		FxSpots: map[market.CurrencyPair]float64{{Base: market.EUR, Counter: market.USD}: 1.10},
		FxFixings: map[market.CurrencyPair]map[time.Time]float64{
			{Base: market.EUR, Counter: market.USD}: {market.Date(2024, 12, 20): 1.05},
		},
		SurvivalCurves: map[string]*curve.Curve{"ACME": acme},
		RecoveryRates:  map[string]float64{"ACME": 0.4},
	}.Build()
	require.NoError(t, err)
	return env
}

func cdsTrade(t *testing.T, bs market.BuySell, fee *market.Payment) credit.ResolvedCdsTrade {
	t.Helper()
	var periods []credit.CreditCouponPaymentPeriod
	for s := market.Date(2024, 12, 20); s.Before(market.Date(2026, 12, 20)); s = s.AddDate(0, 3, 0) {
		e := s.AddDate(0, 3, 0)
		p, err := credit.CreditCouponPaymentPeriodBuilder{
			PaymentDate:   e,
			StartDate:     s,
			EndDate:       e,
			YearFraction:  float64(market.DaysBetween(s, e)) / 360,
			Currency:      market.USD,
			Notional:      10_000_000,
			FixedRate:     0.01,
			LegalEntityID: "ACME",
		}.Build()
		require.NoError(t, err)
		periods = append(periods, p)
	}
	product, err := credit.ResolvedCdsBuilder{
		BuySell:          bs,
		LegalEntityID:    "ACME",
		Currency:         market.USD,
		Notional:         10_000_000,
		FixedRate:        0.01,
		PaymentPeriods:   periods,
		PaymentOnDefault: true,
	}.Build()
	require.NoError(t, err)
	trade, err := credit.ResolvedCdsTradeBuilder{Product: &product, UpfrontFee: fee}.Build()
	require.NoError(t, err)
	return trade
}
