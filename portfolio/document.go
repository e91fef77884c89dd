package portfolio

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/jhizzard/Strata/credit"
	"github.com/jhizzard/Strata/market"
	"github.com/jhizzard/Strata/swap"
)

type document struct {
	Name   string      `yaml:"name"`
	Trades []tradeSpec `yaml:"trades"`
}

type tradeSpec struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"` // "swap" or "cds"
	Counterparty   string    `yaml:"counterparty"`
	TradeDate      time.Time `yaml:"trade_date"`
	SettlementDate time.Time `yaml:"settlement_date"`
	Legs           []legSpec `yaml:"legs"`
	Cds            *cdsSpec  `yaml:"cds"`
}

type legSpec struct {
	Type             string           `yaml:"type"`
	PayReceive       string           `yaml:"pay_receive"`
	Currency         market.Currency  `yaml:"currency"`
	AccrualFrequency market.Frequency `yaml:"accrual_frequency"`
	ResetSchedule    *resetSpec       `yaml:"reset_schedule"`
	Periods          []periodSpec     `yaml:"periods"`
	Events           []eventSpec      `yaml:"events"`
}

type resetSpec struct {
	Frequency  market.Frequency             `yaml:"frequency"`
	Adjustment market.BusinessDayAdjustment `yaml:"adjustment"`
	Averaging  swap.RateAveragingMethod     `yaml:"averaging"`
}

type periodSpec struct {
	Kind         string          `yaml:"kind"`
	PaymentDate  time.Time       `yaml:"payment_date"`
	Start        time.Time       `yaml:"start"`
	End          time.Time       `yaml:"end"`
	YearFraction float64         `yaml:"year_fraction"`
	Currency     market.Currency `yaml:"currency"`
	Notional     float64         `yaml:"notional"`
	Rate         float64         `yaml:"rate"`

	// floating
	Index      string                   `yaml:"index"`
	Spread     float64                  `yaml:"spread"`
	Gearing    *float64                 `yaml:"gearing"`
	FixingDate time.Time                `yaml:"fixing_date"`
	Resets     []rateResetSpec          `yaml:"resets"`
	Averaging  swap.RateAveragingMethod `yaml:"averaging"`

	// fx_reset
	ReferenceCurrency market.Currency `yaml:"reference_currency"`
	FxFixingDate      time.Time       `yaml:"fx_fixing_date"`

	// known_amount
	Amount float64 `yaml:"amount"`
}

type rateResetSpec struct {
	FixingDate   time.Time `yaml:"fixing_date"`
	Start        time.Time `yaml:"start"`
	End          time.Time `yaml:"end"`
	YearFraction float64   `yaml:"year_fraction"`
}

type eventSpec struct {
	Kind     string          `yaml:"kind"` // "notional_exchange" or "termination"
	Date     time.Time       `yaml:"date"`
	Currency market.Currency `yaml:"currency"`
	Amount   float64         `yaml:"amount"`
}

type cdsSpec struct {
	BuySell          string          `yaml:"buy_sell"`
	Entity           string          `yaml:"entity"`
	Currency         market.Currency `yaml:"currency"`
	Notional         float64         `yaml:"notional"`
	Coupon           float64         `yaml:"coupon"`
	RecoveryRate     *float64        `yaml:"recovery_rate"`
	ProtectionStart  time.Time       `yaml:"protection_start"`
	ProtectionEnd    time.Time       `yaml:"protection_end"`
	PaymentOnDefault bool            `yaml:"payment_on_default"`
	Periods          []couponSpec    `yaml:"periods"`
	UpfrontFee       *feeSpec        `yaml:"upfront_fee"`
}

type couponSpec struct {
	PaymentDate    time.Time `yaml:"payment_date"`
	Start          time.Time `yaml:"start"`
	End            time.Time `yaml:"end"`
	EffectiveStart time.Time `yaml:"effective_start"`
	EffectiveEnd   time.Time `yaml:"effective_end"`
	YearFraction   float64   `yaml:"year_fraction"`
}

type feeSpec struct {
	Currency market.Currency `yaml:"currency"`
	Amount   float64         `yaml:"amount"`
	Date     time.Time       `yaml:"date"`
}

func (ts tradeSpec) info() market.TradeInfo {
	return market.TradeInfo{
		ID:             ts.ID,
		Counterparty:   ts.Counterparty,
		TradeDate:      ts.TradeDate,
		SettlementDate: ts.SettlementDate,
	}
}

func (ts tradeSpec) resolve() (Trade, error) {
	switch strings.ToLower(ts.Type) {
	case ProductSwap:
		t, err := ts.swap()
		if err != nil {
			return Trade{}, err
		}
		return Trade{ID: ts.ID, Swap: &t}, nil
	case ProductCds:
		t, err := ts.cds()
		if err != nil {
			return Trade{}, err
		}
		return Trade{ID: ts.ID, Cds: &t}, nil
	}
	return Trade{}, market.Invalidf("type %q must be %q or %q", ts.Type, ProductSwap, ProductCds)
}

func (ts tradeSpec) swap() (swap.ResolvedSwapTrade, error) {
	if ts.Cds != nil {
		return swap.ResolvedSwapTrade{}, market.Invalidf("swap trade carries a cds section")
	}
	legs := make([]swap.ResolvedSwapLeg, 0, len(ts.Legs))
	for i, ls := range ts.Legs {
		leg, err := ls.resolve()
		if err != nil {
			return swap.ResolvedSwapTrade{}, eris.Wrapf(err, "leg %d", i)
		}
		legs = append(legs, leg)
	}
	product, err := swap.NewResolvedSwap(legs...)
	if err != nil {
		return swap.ResolvedSwapTrade{}, err
	}
	info := ts.info()
	return swap.ResolvedSwapTradeBuilder{Info: &info, Product: &product}.Build()
}

func (ls legSpec) resolve() (swap.ResolvedSwapLeg, error) {
	legType, err := swap.ParseLegType(ls.Type)
	if err != nil {
		return swap.ResolvedSwapLeg{}, err
	}
	pr, err := market.ParsePayReceive(ls.PayReceive)
	if err != nil {
		return swap.ResolvedSwapLeg{}, err
	}

	averaging := swap.RateAveragingMethod("")
	if ls.ResetSchedule != nil {
		rs, err := swap.ResetScheduleBuilder{
			ResetFrequency:             ls.ResetSchedule.Frequency,
			ResetBusinessDayAdjustment: ls.ResetSchedule.Adjustment,
			RateAveragingMethod:        ls.ResetSchedule.Averaging,
		}.Build()
		if err != nil {
			return swap.ResolvedSwapLeg{}, err
		}
		if ls.AccrualFrequency != 0 {
			if err := rs.CheckAccrualFrequency(ls.AccrualFrequency); err != nil {
				return swap.ResolvedSwapLeg{}, err
			}
		}
		averaging = rs.RateAveragingMethod()
	}

	periods := make([]swap.PaymentPeriod, 0, len(ls.Periods))
	for i, ps := range ls.Periods {
		if ps.Currency == "" {
			ps.Currency = ls.Currency
		}
		if ps.Averaging == "" {
			ps.Averaging = averaging
		}
		p, err := ps.resolve(pr.Sign())
		if err != nil {
			return swap.ResolvedSwapLeg{}, eris.Wrapf(err, "period %d", i)
		}
		periods = append(periods, p)
	}

	events := make([]swap.PaymentEvent, 0, len(ls.Events))
	for i, es := range ls.Events {
		if es.Currency == "" {
			es.Currency = ls.Currency
		}
		e, err := es.resolve()
		if err != nil {
			return swap.ResolvedSwapLeg{}, eris.Wrapf(err, "event %d", i)
		}
		events = append(events, e)
	}

	return swap.ResolvedSwapLegBuilder{
		Type:           legType,
		PayReceive:     pr,
		PaymentPeriods: periods,
		PaymentEvents:  events,
	}.Build()
}

func (ps periodSpec) resolve(sign float64) (swap.PaymentPeriod, error) {
	if ps.Notional < 0 || ps.Amount < 0 {
		return nil, market.Invalidf("notional and amount are unsigned; pay_receive gives the direction")
	}
	switch strings.ToLower(strings.ReplaceAll(ps.Kind, "-", "_")) {
	case "fixed":
		return swap.FixedRatePaymentPeriodBuilder{
			PaymentDate:  ps.PaymentDate,
			StartDate:    ps.Start,
			EndDate:      ps.End,
			YearFraction: ps.YearFraction,
			Currency:     ps.Currency,
			Notional:     sign * ps.Notional,
			Rate:         ps.Rate,
		}.Build()

	case "floating":
		index, err := market.ParseRateIndex(ps.Index)
		if err != nil {
			return nil, err
		}
		resets := make([]swap.RateReset, 0, len(ps.Resets))
		for _, r := range ps.Resets {
			resets = append(resets, swap.RateReset{
				FixingDate:   r.FixingDate,
				StartDate:    r.Start,
				EndDate:      r.End,
				YearFraction: r.YearFraction,
			})
		}
		if len(resets) == 0 {
			fixing := ps.FixingDate
			if fixing.IsZero() {
				fixing = ps.Start
			}
			resets = append(resets, swap.RateReset{
				FixingDate:   fixing,
				StartDate:    ps.Start,
				EndDate:      ps.End,
				YearFraction: ps.YearFraction,
			})
		}
		return swap.FloatingRatePaymentPeriodBuilder{
			PaymentDate:     ps.PaymentDate,
			StartDate:       ps.Start,
			EndDate:         ps.End,
			YearFraction:    ps.YearFraction,
			Currency:        ps.Currency,
			Notional:        sign * ps.Notional,
			Index:           index,
			Spread:          ps.Spread,
			Gearing:         ps.Gearing,
			Resets:          resets,
			AveragingMethod: ps.Averaging,
		}.Build()

	case "fx_reset":
		return swap.FxResetPaymentPeriodBuilder{
			PaymentDate:       ps.PaymentDate,
			StartDate:         ps.Start,
			EndDate:           ps.End,
			YearFraction:      ps.YearFraction,
			Currency:          ps.Currency,
			ReferenceNotional: market.AmountOf(ps.ReferenceCurrency, sign*ps.Notional),
			FxFixingDate:      ps.FxFixingDate,
			Rate:              ps.Rate,
		}.Build()

	case "known_amount":
		pay, err := market.NewPayment(market.AmountOf(ps.Currency, sign*ps.Amount), ps.PaymentDate)
		if err != nil {
			return nil, err
		}
		return swap.NewKnownAmountPaymentPeriod(pay, ps.Start, ps.End)
	}
	return nil, market.Invalidf("period kind %q is not recognised", ps.Kind)
}

func (es eventSpec) resolve() (swap.PaymentEvent, error) {
	pay, err := market.NewPayment(market.AmountOf(es.Currency, es.Amount), es.Date)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(strings.ReplaceAll(es.Kind, "-", "_")) {
	case "notional_exchange":
		return swap.NewNotionalExchange(pay)
	case "termination":
		return swap.NewTerminationPayment(pay)
	}
	return nil, market.Invalidf("event kind %q is not recognised", es.Kind)
}

func (ts tradeSpec) cds() (credit.ResolvedCdsTrade, error) {
	cs := ts.Cds
	if cs == nil {
		return credit.ResolvedCdsTrade{}, market.Invalidf("cds section is required")
	}
	if len(ts.Legs) > 0 {
		return credit.ResolvedCdsTrade{}, market.Invalidf("cds trade carries swap legs")
	}
	bs, err := market.ParseBuySell(cs.BuySell)
	if err != nil {
		return credit.ResolvedCdsTrade{}, err
	}

	coupons := make([]credit.CreditCouponPaymentPeriod, 0, len(cs.Periods))
	for i, c := range cs.Periods {
		p, err := credit.CreditCouponPaymentPeriodBuilder{
			PaymentDate:        c.PaymentDate,
			StartDate:          c.Start,
			EndDate:            c.End,
			EffectiveStartDate: c.EffectiveStart,
			EffectiveEndDate:   c.EffectiveEnd,
			YearFraction:       c.YearFraction,
			Currency:           cs.Currency,
			Notional:           cs.Notional,
			FixedRate:          cs.Coupon,
			LegalEntityID:      cs.Entity,
		}.Build()
		if err != nil {
			return credit.ResolvedCdsTrade{}, eris.Wrapf(err, "coupon %d", i)
		}
		coupons = append(coupons, p)
	}

	product, err := credit.ResolvedCdsBuilder{
		BuySell:             bs,
		LegalEntityID:       cs.Entity,
		Currency:            cs.Currency,
		Notional:            cs.Notional,
		FixedRate:           cs.Coupon,
		RecoveryRate:        cs.RecoveryRate,
		PaymentPeriods:      coupons,
		ProtectionStartDate: cs.ProtectionStart,
		ProtectionEndDate:   cs.ProtectionEnd,
		PaymentOnDefault:    cs.PaymentOnDefault,
	}.Build()
	if err != nil {
		return credit.ResolvedCdsTrade{}, err
	}

	info := ts.info()
	b := credit.ResolvedCdsTradeBuilder{Info: &info, Product: &product}
	if cs.UpfrontFee != nil {
		ccy := cs.UpfrontFee.Currency
		if ccy == "" {
			ccy = cs.Currency
		}
		fee, err := market.NewPayment(market.AmountOf(ccy, cs.UpfrontFee.Amount), cs.UpfrontFee.Date)
		if err != nil {
			return credit.ResolvedCdsTrade{}, eris.Wrap(err, "upfront fee")
		}
		b.UpfrontFee = &fee
	}
	return b.Build()
}
