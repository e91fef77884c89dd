package swap

import (
	"strings"

	"github.com/jhizzard/Strata/market"
)

// RateAveragingMethod says how several fixings inside one accrual period are
// combined into a single rate. The empty value means "not specified" and
// resolves to Unweighted.
type RateAveragingMethod string

const (
	// Unweighted takes the simple mean of the fixings.
	Unweighted RateAveragingMethod = "UNWEIGHTED"
	// Weighted weights each fixing by the number of days its reset period covers.
	Weighted RateAveragingMethod = "WEIGHTED"
)

func ParseRateAveragingMethod(s string) (RateAveragingMethod, error) {
	switch RateAveragingMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case Unweighted:
		return Unweighted, nil
	case Weighted:
		return Weighted, nil
	}
	return "", market.Invalidf("rate averaging method %q is not recognised", s)
}

func (m RateAveragingMethod) OrDefault() RateAveragingMethod {
	if m == "" {
		return Unweighted
	}
	return m
}

func (m *RateAveragingMethod) UnmarshalText(text []byte) error {
	parsed, err := ParseRateAveragingMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Average combines rates using the method. Weights are ignored by Unweighted
// and must line up with rates for Weighted.
func (m RateAveragingMethod) Average(rates, weights []float64) (float64, error) {
	if len(rates) == 0 {
		return 0, market.Invalidf("average: at least one rate is required")
	}
	switch m.OrDefault() {
	case Unweighted:
		total := 0.0
		for _, r := range rates {
			total += r
		}
		return total / float64(len(rates)), nil
	case Weighted:
		if len(weights) != len(rates) {
			return 0, market.Invalidf("average: %d weights for %d rates", len(weights), len(rates))
		}
		var total, weightSum float64
		for i, r := range rates {
			total += r * weights[i]
			weightSum += weights[i]
		}
		if weightSum == 0 {
			return 0, market.Invalidf("average: weights sum to zero")
		}
		return total / weightSum, nil
	}
	return 0, market.Invalidf("average: rate averaging method %q is not recognised", string(m))
}
