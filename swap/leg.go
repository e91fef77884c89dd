package swap

import (
	"reflect"
	"slices"
	"strings"

	"github.com/jhizzard/Strata/market"
)

// LegType classifies a leg for display and audit.
type LegType string

const (
	LegFixed    LegType = "FIXED"
	LegFloating LegType = "FLOATING"
	LegFxReset  LegType = "FX_RESET"
	LegOther    LegType = "OTHER"
)

// ParseLegType accepts the type names in any case, with "-" or "_".
func ParseLegType(s string) (LegType, error) {
	t := LegType(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	switch t {
	case LegFixed, LegFloating, LegFxReset, LegOther:
		return t, nil
	}
	return "", market.Invalidf("leg type %q is not recognised", s)
}

// ResolvedSwapLeg is one side of a swap decomposed into payment periods and
// payment events. Both sequences are kept in insertion (chronological) order
// and are owned by the leg: accessors hand out copies.
type ResolvedSwapLeg struct {
	legType    LegType
	payReceive market.PayReceive
	periods    []PaymentPeriod
	events     []PaymentEvent
}

type ResolvedSwapLegBuilder struct {
	Type           LegType
	PayReceive     market.PayReceive
	PaymentPeriods []PaymentPeriod
	PaymentEvents  []PaymentEvent
}

func (b ResolvedSwapLegBuilder) Build() (ResolvedSwapLeg, error) {
	if b.Type == "" {
		return ResolvedSwapLeg{}, market.Invalidf("swap leg: type is required")
	}
	if !b.PayReceive.Valid() {
		return ResolvedSwapLeg{}, market.Invalidf("swap leg: payReceive is required")
	}
	var ccy market.Currency
	check := func(kind string, i int, c market.Currency) error {
		if ccy == "" {
			ccy = c
		}
		if c != ccy {
			return market.Invalidf("swap leg: %s %d currency %s differs from leg currency %s", kind, i, c, ccy)
		}
		return nil
	}
	for i, p := range b.PaymentPeriods {
		if p == nil {
			return ResolvedSwapLeg{}, market.Invalidf("swap leg: payment period %d is nil", i)
		}
		if err := check("payment period", i, p.Currency()); err != nil {
			return ResolvedSwapLeg{}, err
		}
	}
	for i, e := range b.PaymentEvents {
		if e == nil {
			return ResolvedSwapLeg{}, market.Invalidf("swap leg: payment event %d is nil", i)
		}
		if err := check("payment event", i, e.Currency()); err != nil {
			return ResolvedSwapLeg{}, err
		}
	}
	return ResolvedSwapLeg{
		legType:    b.Type,
		payReceive: b.PayReceive,
		periods:    compact(b.PaymentPeriods),
		events:     compact(b.PaymentEvents),
	}, nil
}

// compact copies s, mapping empty to nil so equality ignores the difference.
func compact[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}

func (l ResolvedSwapLeg) Type() LegType                 { return l.legType }
func (l ResolvedSwapLeg) PayReceive() market.PayReceive { return l.payReceive }

// PaymentPeriods returns a copy of the periods in chronological order.
func (l ResolvedSwapLeg) PaymentPeriods() []PaymentPeriod {
	return slices.Clone(l.periods)
}

// PaymentEvents returns a copy of the events in chronological order.
func (l ResolvedSwapLeg) PaymentEvents() []PaymentEvent {
	return slices.Clone(l.events)
}

// Currency is the currency shared by every component, or "" for a leg with
// no components.
func (l ResolvedSwapLeg) Currency() market.Currency {
	if len(l.periods) > 0 {
		return l.periods[0].Currency()
	}
	if len(l.events) > 0 {
		return l.events[0].Currency()
	}
	return ""
}

// Equal compares legs by value, component by component.
func (l ResolvedSwapLeg) Equal(other ResolvedSwapLeg) bool {
	return l.legType == other.legType &&
		l.payReceive == other.payReceive &&
		reflect.DeepEqual(l.periods, other.periods) &&
		reflect.DeepEqual(l.events, other.events)
}

func (l ResolvedSwapLeg) ToBuilder() ResolvedSwapLegBuilder {
	return ResolvedSwapLegBuilder{
		Type:           l.legType,
		PayReceive:     l.payReceive,
		PaymentPeriods: slices.Clone(l.periods),
		PaymentEvents:  slices.Clone(l.events),
	}
}
