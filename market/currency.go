package market

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO-4217 currency code such as "USD".
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	CHF Currency = "CHF"
	KRW Currency = "KRW"
)

type CurrencyMeta struct {
	Code       Currency
	Name       string
	MinorUnits int32
}

// Currencies lists the currencies with known minor units. Unknown but
// well-formed codes are accepted and rounded to two decimal places.
var Currencies = map[Currency]CurrencyMeta{
	USD: {Code: USD, Name: "US Dollar", MinorUnits: 2},
	EUR: {Code: EUR, Name: "Euro", MinorUnits: 2},
	GBP: {Code: GBP, Name: "Pound Sterling", MinorUnits: 2},
	JPY: {Code: JPY, Name: "Japanese Yen", MinorUnits: 0},
	CHF: {Code: CHF, Name: "Swiss Franc", MinorUnits: 2},
	KRW: {Code: KRW, Name: "Korean Won", MinorUnits: 0},
}

// ParseCurrency validates and normalizes a three letter currency code.
func ParseCurrency(s string) (Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if len(code) != 3 {
		return "", Invalidf("currency code %q must have three letters", s)
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return "", Invalidf("currency code %q must be alphabetic", s)
		}
	}
	return Currency(code), nil
}

func (c Currency) MinorUnits() int32 {
	if meta, ok := Currencies[c]; ok {
		return meta.MinorUnits
	}
	return 2
}

func (c Currency) String() string { return string(c) }

func (c *Currency) UnmarshalText(text []byte) error {
	parsed, err := ParseCurrency(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// CurrencyPair is a base/counter pair quoted as "EUR/USD": one unit of Base
// costs Rate units of Counter.
type CurrencyPair struct {
	Base    Currency
	Counter Currency
}

func ParseCurrencyPair(s string) (CurrencyPair, error) {
	parts := strings.Split(strings.ReplaceAll(s, "_", "/"), "/")
	if len(parts) != 2 {
		return CurrencyPair{}, Invalidf("currency pair %q must look like EUR/USD", s)
	}
	base, err := ParseCurrency(parts[0])
	if err != nil {
		return CurrencyPair{}, err
	}
	counter, err := ParseCurrency(parts[1])
	if err != nil {
		return CurrencyPair{}, err
	}
	if base == counter {
		return CurrencyPair{}, Invalidf("currency pair %q has identical currencies", s)
	}
	return CurrencyPair{Base: base, Counter: counter}, nil
}

func (p CurrencyPair) Inverse() CurrencyPair {
	return CurrencyPair{Base: p.Counter, Counter: p.Base}
}

func (p CurrencyPair) String() string {
	return string(p.Base) + "/" + string(p.Counter)
}

// CurrencyAmount is an amount of money in a single currency.
type CurrencyAmount struct {
	Currency Currency
	Amount   float64
}

func AmountOf(ccy Currency, amount float64) CurrencyAmount {
	return CurrencyAmount{Currency: ccy, Amount: amount}
}

func (a CurrencyAmount) Plus(b CurrencyAmount) (CurrencyAmount, error) {
	if a.Currency != b.Currency {
		return CurrencyAmount{}, Invalidf("cannot add %s to %s", b.Currency, a.Currency)
	}
	return CurrencyAmount{Currency: a.Currency, Amount: a.Amount + b.Amount}, nil
}

func (a CurrencyAmount) Negated() CurrencyAmount {
	return CurrencyAmount{Currency: a.Currency, Amount: -a.Amount}
}

func (a CurrencyAmount) MultipliedBy(factor float64) CurrencyAmount {
	return CurrencyAmount{Currency: a.Currency, Amount: a.Amount * factor}
}

// Rounded returns the amount rounded half-away-from-zero to the currency's
// minor units.
func (a CurrencyAmount) Rounded() decimal.Decimal {
	return decimal.NewFromFloat(a.Amount).Round(a.Currency.MinorUnits())
}

func (a CurrencyAmount) String() string {
	return fmt.Sprintf("%s %s", a.Currency, a.Rounded().StringFixed(a.Currency.MinorUnits()))
}

// MultiCurrencyAmount accumulates amounts per currency. The zero value is an
// empty amount; Plus never mutates the receiver.
type MultiCurrencyAmount struct {
	amounts map[Currency]float64
}

func (m MultiCurrencyAmount) Plus(a CurrencyAmount) MultiCurrencyAmount {
	out := make(map[Currency]float64, len(m.amounts)+1)
	for ccy, amt := range m.amounts {
		out[ccy] = amt
	}
	out[a.Currency] += a.Amount
	return MultiCurrencyAmount{amounts: out}
}

func (m MultiCurrencyAmount) Amount(ccy Currency) (CurrencyAmount, bool) {
	amt, ok := m.amounts[ccy]
	return CurrencyAmount{Currency: ccy, Amount: amt}, ok
}

func (m MultiCurrencyAmount) Currencies() []Currency {
	out := make([]Currency, 0, len(m.amounts))
	for ccy := range m.amounts {
		out = append(out, ccy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Amounts returns the amounts sorted by currency code.
func (m MultiCurrencyAmount) Amounts() []CurrencyAmount {
	ccys := m.Currencies()
	out := make([]CurrencyAmount, 0, len(ccys))
	for _, ccy := range ccys {
		out = append(out, CurrencyAmount{Currency: ccy, Amount: m.amounts[ccy]})
	}
	return out
}

func (m MultiCurrencyAmount) Size() int { return len(m.amounts) }
