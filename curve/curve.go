package curve

import (
	"math"
	"sort"
	"time"

	"github.com/jhizzard/Strata/market"
)

// Curve is an immutable term structure of factors starting at 1 on the base
// date: discount factors for a discount curve, survival probabilities for a
// credit curve. Values are interpolated log-linearly in time, which gives a
// piecewise flat forward rate (or hazard rate), and extrapolated past the
// last node with the last segment's forward.
//
// The time axis is ACT/365F from the base date regardless of currency.
type Curve struct {
	base   time.Time
	dates  []time.Time
	times  []float64
	logDFs []float64
}

// Node is one pillar of a curve.
type Node struct {
	Date  time.Time
	Value float64
}

// YearFraction is the ACT/365F time between two dates.
func YearFraction(start, end time.Time) float64 {
	return float64(market.DaysBetween(start, end)) / 365.0
}

// NewCurveFromDFs builds a curve through the given factors. Node dates must
// fall after base and every factor must be positive. A factor of 1 at base is
// implied.
func NewCurveFromDFs(base time.Time, dfs map[time.Time]float64) (*Curve, error) {
	if base.IsZero() {
		return nil, market.Invalidf("curve: base date is required")
	}
	if len(dfs) == 0 {
		return nil, market.Invalidf("curve: at least one node is required")
	}
	base = market.DateOnly(base)
	nodes := make([]Node, 0, len(dfs))
	for d, df := range dfs {
		d = market.DateOnly(d)
		if !d.After(base) {
			return nil, market.Invalidf("curve: node %s is not after base date %s", market.FormatDate(d), market.FormatDate(base))
		}
		if !(df > 0) || math.IsInf(df, 0) {
			return nil, market.Invalidf("curve: factor %v at %s must be positive", df, market.FormatDate(d))
		}
		nodes = append(nodes, Node{Date: d, Value: df})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Date.Before(nodes[j].Date) })
	for i := 1; i < len(nodes); i++ {
		if nodes[i].Date.Equal(nodes[i-1].Date) {
			return nil, market.Invalidf("curve: duplicate node %s", market.FormatDate(nodes[i].Date))
		}
	}

	c := &Curve{
		base:   base,
		dates:  make([]time.Time, len(nodes)),
		times:  make([]float64, len(nodes)),
		logDFs: make([]float64, len(nodes)),
	}
	for i, n := range nodes {
		c.dates[i] = n.Date
		c.times[i] = YearFraction(base, n.Date)
		c.logDFs[i] = math.Log(n.Value)
	}
	return c, nil
}

// NewCurveFromZeroRates builds a discount curve from continuously
// compounded zero rates.
func NewCurveFromZeroRates(base time.Time, zeros map[time.Time]float64) (*Curve, error) {
	dfs := make(map[time.Time]float64, len(zeros))
	for d, z := range zeros {
		dfs[d] = math.Exp(-z * YearFraction(base, d))
	}
	return NewCurveFromDFs(base, dfs)
}

// NewFlatCurve builds a discount curve with a constant continuously
// compounded zero rate.
func NewFlatCurve(base time.Time, rate float64) (*Curve, error) {
	return NewCurveFromZeroRates(base, map[time.Time]float64{base.AddDate(1, 0, 0): rate})
}

// NewSurvivalCurve builds a credit curve from survival probabilities.
// Probabilities must lie in (0, 1].
func NewSurvivalCurve(base time.Time, probabilities map[time.Time]float64) (*Curve, error) {
	for d, q := range probabilities {
		if q > 1 {
			return nil, market.Invalidf("curve: survival probability %v at %s exceeds 1", q, market.FormatDate(d))
		}
	}
	return NewCurveFromDFs(base, probabilities)
}

// NewFlatHazardCurve builds a credit curve with a constant hazard rate.
func NewFlatHazardCurve(base time.Time, hazard float64) (*Curve, error) {
	if hazard < 0 {
		return nil, market.Invalidf("curve: hazard rate %v must not be negative", hazard)
	}
	return NewFlatCurve(base, hazard)
}

func (c *Curve) Base() time.Time { return c.base }

// Nodes returns the pillars in date order.
func (c *Curve) Nodes() []Node {
	out := make([]Node, len(c.dates))
	for i := range c.dates {
		out[i] = Node{Date: c.dates[i], Value: math.Exp(c.logDFs[i])}
	}
	return out
}

// DF returns the factor at d. Dates on or before the base date return 1.
func (c *Curve) DF(d time.Time) float64 {
	t := YearFraction(c.base, d)
	if t <= 0 {
		return 1
	}
	return math.Exp(c.logDFAt(t))
}

// ZeroRate returns the continuously compounded zero rate to d.
func (c *Curve) ZeroRate(d time.Time) float64 {
	t := YearFraction(c.base, d)
	if t <= 0 {
		// instantaneous rate of the first segment
		return -c.logDFs[0] / c.times[0]
	}
	return -c.logDFAt(t) / t
}

// ForwardRate returns the simply compounded forward between two dates with
// the given accrual year fraction.
func (c *Curve) ForwardRate(start, end time.Time, yearFraction float64) (float64, error) {
	if yearFraction <= 0 {
		return 0, market.Invalidf("curve: forward rate needs a positive year fraction, got %v", yearFraction)
	}
	return (c.DF(start)/c.DF(end) - 1) / yearFraction, nil
}

func (c *Curve) logDFAt(t float64) float64 {
	// Binary search for first node time >= t
	idx := sort.SearchFloat64s(c.times, t)
	if idx < len(c.times) && c.times[idx] == t {
		return c.logDFs[idx]
	}

	var t1, t2, y1, y2 float64
	switch {
	case idx == 0:
		t1, y1 = 0, 0
		t2, y2 = c.times[0], c.logDFs[0]
	case idx >= len(c.times):
		if len(c.times) == 1 {
			t1, y1 = 0, 0
		} else {
			t1, y1 = c.times[len(c.times)-2], c.logDFs[len(c.times)-2]
		}
		t2, y2 = c.times[len(c.times)-1], c.logDFs[len(c.times)-1]
	default:
		t1, y1 = c.times[idx-1], c.logDFs[idx-1]
		t2, y2 = c.times[idx], c.logDFs[idx]
	}
	return y1 + (y2-y1)*(t-t1)/(t2-t1)
}
