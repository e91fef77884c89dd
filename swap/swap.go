package swap

import (
	"slices"

	"github.com/jhizzard/Strata/market"
)

// ResolvedSwap is a swap with every leg fully expanded.
type ResolvedSwap struct {
	legs []ResolvedSwapLeg
}

func NewResolvedSwap(legs ...ResolvedSwapLeg) (ResolvedSwap, error) {
	if len(legs) == 0 {
		return ResolvedSwap{}, market.Invalidf("swap: at least one leg is required")
	}
	return ResolvedSwap{legs: slices.Clone(legs)}, nil
}

func (s ResolvedSwap) Legs() []ResolvedSwapLeg {
	return slices.Clone(s.legs)
}

// LegsOf returns the legs with the given direction.
func (s ResolvedSwap) LegsOf(pr market.PayReceive) []ResolvedSwapLeg {
	var out []ResolvedSwapLeg
	for _, l := range s.legs {
		if l.payReceive == pr {
			out = append(out, l)
		}
	}
	return out
}

// IsCrossCurrency reports whether the legs pay in more than one currency.
func (s ResolvedSwap) IsCrossCurrency() bool {
	var ccy market.Currency
	for _, l := range s.legs {
		c := l.Currency()
		if c == "" {
			continue
		}
		if ccy != "" && c != ccy {
			return true
		}
		ccy = c
	}
	return false
}

func (s ResolvedSwap) Equal(other ResolvedSwap) bool {
	return slices.EqualFunc(s.legs, other.legs, ResolvedSwapLeg.Equal)
}

// ResolvedSwapTrade is a swap trade resolved for pricing. It is bound to the
// reference data used to resolve it (holiday calendars and the like) and goes
// stale if that data changes, so it should not be cached across such changes.
type ResolvedSwapTrade struct {
	info    market.TradeInfo
	product ResolvedSwap
}

// ResolvedSwapTradeBuilder collects the fields of a trade. A nil Info means
// the empty trade info; a nil Product fails the build.
type ResolvedSwapTradeBuilder struct {
	Info    *market.TradeInfo
	Product *ResolvedSwap
}

func (b ResolvedSwapTradeBuilder) Build() (ResolvedSwapTrade, error) {
	info := market.EmptyTradeInfo()
	if b.Info != nil {
		info = b.Info.Normalized()
	}
	if b.Product == nil || len(b.Product.legs) == 0 {
		return ResolvedSwapTrade{}, market.Invalidf("swap trade: product is required")
	}
	return ResolvedSwapTrade{info: info, product: *b.Product}, nil
}

func (t ResolvedSwapTrade) Info() market.TradeInfo { return t.info }
func (t ResolvedSwapTrade) Product() ResolvedSwap  { return t.product }

func (t ResolvedSwapTrade) Equal(other ResolvedSwapTrade) bool {
	return t.info == other.info && t.product.Equal(other.product)
}

func (t ResolvedSwapTrade) ToBuilder() ResolvedSwapTradeBuilder {
	info := t.info
	product := t.product
	return ResolvedSwapTradeBuilder{Info: &info, Product: &product}
}
