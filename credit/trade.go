package credit

import (
	"github.com/jhizzard/Strata/market"
)

// ResolvedCdsTrade is a CDS trade resolved for pricing.
//
// The trade is bound to the reference data used to resolve it and should not
// be cached across changes to that data. The upfront fee is optional: absent
// means the trade was executed at par. Its currency must match the product
// currency; its sign is the caller's responsibility and must agree with the
// buy/sell direction (points upfront can be paid either way, so the sign is
// not checked here).
type ResolvedCdsTrade struct {
	info       market.TradeInfo
	product    ResolvedCds
	upfrontFee market.Payment
	hasFee     bool
}

// ResolvedCdsTradeBuilder collects the fields of a trade. A nil Info means
// the empty trade info; a nil UpfrontFee means no fee.
type ResolvedCdsTradeBuilder struct {
	Info       *market.TradeInfo
	Product    *ResolvedCds
	UpfrontFee *market.Payment
}

func (b ResolvedCdsTradeBuilder) Build() (ResolvedCdsTrade, error) {
	info := market.EmptyTradeInfo()
	if b.Info != nil {
		info = b.Info.Normalized()
	}
	if b.Product == nil || len(b.Product.periods) == 0 {
		return ResolvedCdsTrade{}, market.Invalidf("cds trade: product is required")
	}
	t := ResolvedCdsTrade{info: info, product: *b.Product}
	if b.UpfrontFee != nil {
		fee := *b.UpfrontFee
		if fee.IsZero() {
			return ResolvedCdsTrade{}, market.Invalidf("cds trade: upfront fee is empty; leave it nil for no fee")
		}
		if fee.Currency() != b.Product.currency {
			return ResolvedCdsTrade{}, market.Invalidf("cds trade: upfront fee currency %s differs from product currency %s",
				fee.Currency(), b.Product.currency)
		}
		t.upfrontFee, t.hasFee = fee, true
	}
	return t, nil
}

func (t ResolvedCdsTrade) Info() market.TradeInfo { return t.info }
func (t ResolvedCdsTrade) Product() ResolvedCds   { return t.product }

// UpfrontFee returns the fee and whether one was agreed.
func (t ResolvedCdsTrade) UpfrontFee() (market.Payment, bool) {
	return t.upfrontFee, t.hasFee
}

func (t ResolvedCdsTrade) Equal(other ResolvedCdsTrade) bool {
	return t.info == other.info &&
		t.product.Equal(other.product) &&
		t.hasFee == other.hasFee &&
		t.upfrontFee == other.upfrontFee
}

func (t ResolvedCdsTrade) ToBuilder() ResolvedCdsTradeBuilder {
	info := t.info
	product := t.product
	b := ResolvedCdsTradeBuilder{Info: &info, Product: &product}
	if t.hasFee {
		fee := t.upfrontFee
		b.UpfrontFee = &fee
	}
	return b
}
