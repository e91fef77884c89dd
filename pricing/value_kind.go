package pricing

import (
	"strings"

	"github.com/jhizzard/Strata/market"
)

// ValueKind selects between present value and future value.
type ValueKind int

const (
	PresentValue ValueKind = iota
	FutureValue
)

func ParseValueKind(s string) (ValueKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pv", "present", "present_value":
		return PresentValue, nil
	case "fv", "future", "future_value":
		return FutureValue, nil
	}
	return 0, market.Invalidf("value kind %q is not recognised", s)
}

func (k ValueKind) Valid() bool {
	return k == PresentValue || k == FutureValue
}

func (k ValueKind) String() string {
	switch k {
	case PresentValue:
		return "pv"
	case FutureValue:
		return "fv"
	}
	return "unknown"
}

func (k ValueKind) check() error {
	if !k.Valid() {
		return market.Invalidf("value kind %d is not recognised", int(k))
	}
	return nil
}
