package market

import (
	"fmt"
	"strconv"
	"strings"
)

// Frequency is a periodic interval expressed in months. The zero value means
// "not specified" and never passes validation.
type Frequency int

const (
	FreqMonthly    Frequency = 1
	FreqQuarterly  Frequency = 3
	FreqSemiAnnual Frequency = 6
	FreqAnnual     Frequency = 12
	// FreqTerm is a single period spanning the whole term.
	FreqTerm Frequency = -1
)

func (f Frequency) Valid() bool {
	return f > 0 || f == FreqTerm
}

func (f Frequency) Months() int {
	return int(f)
}

// NoLongerThan reports whether f is at most as long as other. Every valid
// frequency is no longer than FreqTerm.
func (f Frequency) NoLongerThan(other Frequency) bool {
	switch {
	case other == FreqTerm:
		return true
	case f == FreqTerm:
		return false
	default:
		return f <= other
	}
}

func (f Frequency) String() string {
	switch {
	case f == FreqTerm:
		return "TERM"
	case f > 0 && f%12 == 0:
		return fmt.Sprintf("%dY", f/12)
	case f > 0:
		return fmt.Sprintf("%dM", f)
	default:
		return fmt.Sprintf("Frequency(%d)", int(f))
	}
}

// ParseFrequency accepts "3M", "P3M", "1Y", "P1Y", "12M" and "TERM".
func ParseFrequency(s string) (Frequency, error) {
	str := strings.ToUpper(strings.TrimSpace(s))
	if str == "TERM" || str == "T" {
		return FreqTerm, nil
	}
	str = strings.TrimPrefix(str, "P")
	if len(str) < 2 {
		return 0, Invalidf("frequency %q is not recognised", s)
	}
	n, err := strconv.Atoi(str[:len(str)-1])
	if err != nil || n <= 0 {
		return 0, Invalidf("frequency %q is not recognised", s)
	}
	switch str[len(str)-1] {
	case 'M':
		return Frequency(n), nil
	case 'Y':
		return Frequency(n * 12), nil
	default:
		return 0, Invalidf("frequency %q is not recognised", s)
	}
}

func (f Frequency) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Frequency) UnmarshalText(text []byte) error {
	parsed, err := ParseFrequency(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
