package market

import "strings"

// BusinessDayConvention names the rule that moves a non-business day onto a
// business day. Applying the rule is the job of a holiday calendar service;
// here it is data only.
type BusinessDayConvention string

const (
	NoAdjust          BusinessDayConvention = "NO_ADJUST"
	Following         BusinessDayConvention = "FOLLOWING"
	ModifiedFollowing BusinessDayConvention = "MODIFIED_FOLLOWING"
	Preceding         BusinessDayConvention = "PRECEDING"
	ModifiedPreceding BusinessDayConvention = "MODIFIED_PRECEDING"
)

func ParseBusinessDayConvention(s string) (BusinessDayConvention, error) {
	c := BusinessDayConvention(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_")))
	switch c {
	case NoAdjust, Following, ModifiedFollowing, Preceding, ModifiedPreceding:
		return c, nil
	}
	return "", Invalidf("business day convention %q is not recognised", s)
}

func (c *BusinessDayConvention) UnmarshalText(text []byte) error {
	parsed, err := ParseBusinessDayConvention(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// HolidayCalendarID identifies a holiday calendar, e.g. "USNY" or "EUTA".
type HolidayCalendarID string

const NoHolidays HolidayCalendarID = "NoHolidays"

// BusinessDayAdjustment pairs a convention with the calendar it runs against.
type BusinessDayAdjustment struct {
	Convention BusinessDayConvention `yaml:"convention"`
	Calendar   HolidayCalendarID     `yaml:"calendar"`
}

// NoAdjustment leaves every date unchanged.
var NoAdjustment = BusinessDayAdjustment{Convention: NoAdjust, Calendar: NoHolidays}

func NewBusinessDayAdjustment(conv BusinessDayConvention, cal HolidayCalendarID) (BusinessDayAdjustment, error) {
	adj := BusinessDayAdjustment{Convention: conv, Calendar: cal}
	if err := adj.Validate(); err != nil {
		return BusinessDayAdjustment{}, err
	}
	return adj, nil
}

// IsZero reports whether the adjustment was never specified.
func (a BusinessDayAdjustment) IsZero() bool {
	return a.Convention == "" && a.Calendar == ""
}

func (a BusinessDayAdjustment) Validate() error {
	if a.Convention == "" {
		return Invalidf("business day adjustment: convention is required")
	}
	if _, err := ParseBusinessDayConvention(string(a.Convention)); err != nil {
		return err
	}
	if a.Calendar == "" {
		return Invalidf("business day adjustment: calendar is required")
	}
	return nil
}

func (a BusinessDayAdjustment) String() string {
	if a.Convention == NoAdjust {
		return string(NoAdjust)
	}
	return string(a.Convention) + " using calendar " + string(a.Calendar)
}
