package market

import "strings"

// RateIndex names a floating-rate benchmark, e.g. "USD-SOFR".
type RateIndex string

const (
	USDSOFR      RateIndex = "USD-SOFR"
	EURESTR      RateIndex = "EUR-ESTR"
	EUREURIBOR3M RateIndex = "EUR-EURIBOR-3M"
	EUREURIBOR6M RateIndex = "EUR-EURIBOR-6M"
	JPYTONAR     RateIndex = "JPY-TONAR"
	JPYTIBOR3M   RateIndex = "JPY-TIBOR-3M"
	KRWCD91D     RateIndex = "KRW-CD-91D"
)

func ParseRateIndex(s string) (RateIndex, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return "", Invalidf("rate index is required")
	}
	return RateIndex(name), nil
}

// IsOvernight reports whether the index is an overnight benchmark.
func (r RateIndex) IsOvernight() bool {
	switch r {
	case USDSOFR, EURESTR, JPYTONAR:
		return true
	default:
		return false
	}
}
