package swap

import (
	"fmt"

	"github.com/jhizzard/Strata/market"
)

// ResetSchedule is the policy for locating fixings within an accrual period
// and combining them. It is data only: generating the reset dates belongs to
// the schedule resolver, not to this type.
type ResetSchedule struct {
	resetFrequency             market.Frequency
	resetBusinessDayAdjustment market.BusinessDayAdjustment
	rateAveragingMethod        RateAveragingMethod
}

// ResetScheduleBuilder collects the fields of a ResetSchedule. ResetFrequency
// and ResetBusinessDayAdjustment are mandatory; RateAveragingMethod defaults
// to Unweighted.
type ResetScheduleBuilder struct {
	ResetFrequency             market.Frequency
	ResetBusinessDayAdjustment market.BusinessDayAdjustment
	RateAveragingMethod        RateAveragingMethod
}

func (b ResetScheduleBuilder) Build() (ResetSchedule, error) {
	if b.ResetFrequency == 0 {
		return ResetSchedule{}, market.Invalidf("reset schedule: resetFrequency is required")
	}
	if !b.ResetFrequency.Valid() {
		return ResetSchedule{}, market.Invalidf("reset schedule: resetFrequency %s is not valid", b.ResetFrequency)
	}
	if b.ResetBusinessDayAdjustment.IsZero() {
		return ResetSchedule{}, market.Invalidf("reset schedule: resetBusinessDayAdjustment is required")
	}
	if err := b.ResetBusinessDayAdjustment.Validate(); err != nil {
		return ResetSchedule{}, err
	}
	method, err := ParseRateAveragingMethod(string(b.RateAveragingMethod))
	if err != nil {
		return ResetSchedule{}, err
	}
	return ResetSchedule{
		resetFrequency:             b.ResetFrequency,
		resetBusinessDayAdjustment: b.ResetBusinessDayAdjustment,
		rateAveragingMethod:        method.OrDefault(),
	}, nil
}

// NewResetSchedule builds a schedule with unweighted averaging.
func NewResetSchedule(freq market.Frequency, adj market.BusinessDayAdjustment) (ResetSchedule, error) {
	return ResetScheduleBuilder{ResetFrequency: freq, ResetBusinessDayAdjustment: adj}.Build()
}

func (s ResetSchedule) ResetFrequency() market.Frequency { return s.resetFrequency }

func (s ResetSchedule) ResetBusinessDayAdjustment() market.BusinessDayAdjustment {
	return s.resetBusinessDayAdjustment
}

func (s ResetSchedule) RateAveragingMethod() RateAveragingMethod { return s.rateAveragingMethod }

func (s ResetSchedule) ToBuilder() ResetScheduleBuilder {
	return ResetScheduleBuilder{
		ResetFrequency:             s.resetFrequency,
		ResetBusinessDayAdjustment: s.resetBusinessDayAdjustment,
		RateAveragingMethod:        s.rateAveragingMethod,
	}
}

// CheckAccrualFrequency fails when resets happen less often than the accrual
// periods they sit in.
func (s ResetSchedule) CheckAccrualFrequency(accrual market.Frequency) error {
	if !accrual.Valid() {
		return market.Invalidf("reset schedule: accrual frequency %s is not valid", accrual)
	}
	if !s.resetFrequency.NoLongerThan(accrual) {
		return market.Invalidf("reset schedule: reset frequency %s is longer than accrual frequency %s",
			s.resetFrequency, accrual)
	}
	return nil
}

func (s ResetSchedule) String() string {
	return fmt.Sprintf("ResetSchedule{%s, %s, %s}", s.resetFrequency, s.resetBusinessDayAdjustment, s.rateAveragingMethod)
}
