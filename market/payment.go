package market

import "time"

// Payment is a single known amount paid on a date. A negative amount is paid,
// a positive amount is received.
type Payment struct {
	value CurrencyAmount
	date  time.Time
}

func NewPayment(value CurrencyAmount, date time.Time) (Payment, error) {
	if value.Currency == "" {
		return Payment{}, Invalidf("payment: currency is required")
	}
	if date.IsZero() {
		return Payment{}, Invalidf("payment: date is required")
	}
	return Payment{value: value, date: DateOnly(date)}, nil
}

func (p Payment) Value() CurrencyAmount { return p.value }
func (p Payment) Currency() Currency    { return p.value.Currency }
func (p Payment) Amount() float64       { return p.value.Amount }
func (p Payment) Date() time.Time       { return p.date }

// IsZero reports whether p is the zero Payment, which never passes NewPayment.
func (p Payment) IsZero() bool {
	return p.value.Currency == "" && p.date.IsZero()
}

func (p Payment) String() string {
	return p.value.String() + " on " + FormatDate(p.date)
}
