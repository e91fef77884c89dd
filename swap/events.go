package swap

import (
	"time"

	"github.com/jhizzard/Strata/market"
)

// NotionalExchange is an exchange of notional, typically at the start and end
// of a cross-currency leg.
type NotionalExchange struct {
	payment market.Payment
}

func NewNotionalExchange(payment market.Payment) (NotionalExchange, error) {
	if payment.IsZero() {
		return NotionalExchange{}, market.Invalidf("notional exchange: payment is required")
	}
	return NotionalExchange{payment: payment}, nil
}

func (e NotionalExchange) Payment() market.Payment       { return e.payment }
func (e NotionalExchange) PaymentDate() time.Time        { return e.payment.Date() }
func (e NotionalExchange) Currency() market.Currency     { return e.payment.Currency() }
func (e NotionalExchange) Amount() market.CurrencyAmount { return e.payment.Value() }

func (e NotionalExchange) WithPayment(payment market.Payment) (NotionalExchange, error) {
	return NewNotionalExchange(payment)
}

// TerminationPayment is a one-off amount exchanged when a leg is terminated
// early.
type TerminationPayment struct {
	payment market.Payment
}

func NewTerminationPayment(payment market.Payment) (TerminationPayment, error) {
	if payment.IsZero() {
		return TerminationPayment{}, market.Invalidf("termination payment: payment is required")
	}
	return TerminationPayment{payment: payment}, nil
}

func (e TerminationPayment) Payment() market.Payment       { return e.payment }
func (e TerminationPayment) PaymentDate() time.Time        { return e.payment.Date() }
func (e TerminationPayment) Currency() market.Currency     { return e.payment.Currency() }
func (e TerminationPayment) Amount() market.CurrencyAmount { return e.payment.Value() }

func (e TerminationPayment) WithPayment(payment market.Payment) (TerminationPayment, error) {
	return NewTerminationPayment(payment)
}
