// Package portfolio reads resolved swap and CDS trades from YAML.
//
// The file holds trades that are already resolved: every payment period,
// reset and coupon is spelled out with its dates and year fraction. Period
// notionals and known amounts are written as positive magnitudes and signed
// by the leg's pay_receive. Payment event amounts are taken as written, since
// an exchange of notionals flows both ways over the life of a leg.
package portfolio

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/jhizzard/Strata/credit"
	"github.com/jhizzard/Strata/market"
	"github.com/jhizzard/Strata/pkg/id"
	"github.com/jhizzard/Strata/swap"
)

// Product names used in journals and reports.
const (
	ProductSwap = "swap"
	ProductCds  = "cds"
)

// Trade is one resolved trade. Exactly one of Swap and Cds is set.
type Trade struct {
	ID   string
	Swap *swap.ResolvedSwapTrade
	Cds  *credit.ResolvedCdsTrade
}

func (t Trade) Product() string {
	if t.Cds != nil {
		return ProductCds
	}
	return ProductSwap
}

func (t Trade) Info() market.TradeInfo {
	if t.Cds != nil {
		return t.Cds.Info()
	}
	if t.Swap != nil {
		return t.Swap.Info()
	}
	return market.EmptyTradeInfo()
}

type Portfolio struct {
	Name   string
	Trades []Trade
}

// Load decodes the portfolio file at path.
func Load(path string) (*Portfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "portfolio: open")
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = path
	}
	return p, nil
}

// Decode reads a portfolio document. Unknown keys are rejected so typos do
// not silently drop data. Trades without an id get a generated one.
func Decode(r io.Reader) (*Portfolio, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return &Portfolio{}, nil
		}
		return nil, eris.Wrap(err, "portfolio: decode yaml")
	}

	p := &Portfolio{Name: doc.Name, Trades: make([]Trade, 0, len(doc.Trades))}
	seen := make(map[string]int, len(doc.Trades))
	for i, ts := range doc.Trades {
		if ts.ID == "" {
			ts.ID = id.Prefixed("trade")
		}
		if j, dup := seen[ts.ID]; dup {
			return nil, eris.Wrapf(market.ErrInvalidArgument, "portfolio: trades %d and %d share id %q", j, i, ts.ID)
		}
		seen[ts.ID] = i

		t, err := ts.resolve()
		if err != nil {
			return nil, eris.Wrapf(err, "portfolio: trade %q", ts.ID)
		}
		p.Trades = append(p.Trades, t)
	}
	return p, nil
}
