// Package valuation values whole portfolios concurrently on top of the
// pricing package.
package valuation

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jhizzard/Strata/market"
	"github.com/jhizzard/Strata/portfolio"
	"github.com/jhizzard/Strata/pricing"
)

// Result is the value of one trade.
type Result struct {
	TradeID string
	Product string
	Value   market.MultiCurrencyAmount
	// Reporting is Value converted into the reporting currency. It is the
	// zero amount when the service has no reporting currency.
	Reporting market.CurrencyAmount
}

// TradeError attaches the failing trade to a pricing error.
type TradeError struct {
	TradeID string
	Err     error
}

func (e *TradeError) Error() string {
	return "trade " + e.TradeID + ": " + e.Err.Error()
}

func (e *TradeError) Unwrap() error { return e.Err }

// Service values trades through a single registry. It holds no per-call
// state and may be shared.
type Service struct {
	swaps          *pricing.SwapPricer
	cds            *pricing.CdsTradePricer
	maxConcurrency int
	reporting      market.Currency
	log            *zap.Logger
}

type Option func(*Service)

// WithMaxConcurrency bounds the number of trades valued at once. Zero or
// less means GOMAXPROCS.
func WithMaxConcurrency(n int) Option {
	return func(s *Service) { s.maxConcurrency = n }
}

// WithReportingCurrency converts every result into ccy at the valuation
// date FX rate.
func WithReportingCurrency(ccy market.Currency) Option {
	return func(s *Service) { s.reporting = ccy }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(registry *pricing.Registry, opts ...Option) (*Service, error) {
	if registry == nil {
		return nil, market.Invalidf("valuation: registry is required")
	}
	legs := registry.LegPricer()
	swaps, err := pricing.NewSwapPricer(legs)
	if err != nil {
		return nil, err
	}
	cds, err := pricing.NewCdsTradePricer(legs)
	if err != nil {
		return nil, err
	}

	s := &Service{swaps: swaps, cds: cds, log: zap.L()}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxConcurrency <= 0 {
		s.maxConcurrency = runtime.GOMAXPROCS(0)
	}
	s.log = s.log.Named("valuation")
	return s, nil
}

func (s *Service) ReportingCurrency() market.Currency { return s.reporting }

// ValueTrade values a single trade.
func (s *Service) ValueTrade(env pricing.Environment, t portfolio.Trade, kind pricing.ValueKind) (Result, error) {
	res := Result{TradeID: t.ID, Product: t.Product()}

	switch {
	case t.Cds != nil:
		v, err := s.cds.Value(env, *t.Cds, kind)
		if err != nil {
			return Result{}, err
		}
		res.Value = res.Value.Plus(v)
	case t.Swap != nil:
		v, err := s.swaps.ValueTrade(env, *t.Swap, kind)
		if err != nil {
			return Result{}, err
		}
		res.Value = v
	default:
		return Result{}, market.Invalidf("valuation: trade %q has no product", t.ID)
	}

	if s.reporting != "" {
		total, err := pricing.Convert(env, res.Value, s.reporting)
		if err != nil {
			return Result{}, err
		}
		res.Reporting = total
	}
	return res, nil
}

// ValuePortfolio values trades concurrently and returns the results in input
// order. The first failure cancels the trades not yet started and is
// returned as a *TradeError.
func (s *Service) ValuePortfolio(ctx context.Context, env pricing.Environment, trades []portfolio.Trade, kind pricing.ValueKind) ([]Result, error) {
	results := make([]Result, len(trades))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i, t := range trades {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := s.ValueTrade(env, t, kind)
			if err != nil {
				s.log.Debug("trade failed", zap.String("trade", t.ID), zap.Error(err))
				return &TradeError{TradeID: t.ID, Err: err}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
