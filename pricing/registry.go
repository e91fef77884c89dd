package pricing

import (
	"reflect"
	"sort"
	"sync"

	"github.com/jhizzard/Strata/market"
	"github.com/jhizzard/Strata/swap"
)

// PeriodPricer values one concrete kind of payment period.
type PeriodPricer[P swap.PaymentPeriod] interface {
	PresentValue(env Environment, period P) (float64, error)
	FutureValue(env Environment, period P) (float64, error)
}

// EventPricer values one concrete kind of payment event.
type EventPricer[E swap.PaymentEvent] interface {
	PresentValue(env Environment, event E) (float64, error)
	FutureValue(env Environment, event E) (float64, error)
}

// PeriodPricerFuncs adapts a pair of functions to PeriodPricer. Both must be
// set.
type PeriodPricerFuncs[P swap.PaymentPeriod] struct {
	PV func(env Environment, period P) (float64, error)
	FV func(env Environment, period P) (float64, error)
}

func (f PeriodPricerFuncs[P]) PresentValue(env Environment, period P) (float64, error) {
	return f.PV(env, period)
}

func (f PeriodPricerFuncs[P]) FutureValue(env Environment, period P) (float64, error) {
	return f.FV(env, period)
}

func (f PeriodPricerFuncs[P]) validate() error {
	if f.PV == nil || f.FV == nil {
		return market.Invalidf("period pricer funcs: PV and FV are both required")
	}
	return nil
}

// EventPricerFuncs adapts a pair of functions to EventPricer. Both must be
// set.
type EventPricerFuncs[E swap.PaymentEvent] struct {
	PV func(env Environment, event E) (float64, error)
	FV func(env Environment, event E) (float64, error)
}

func (f EventPricerFuncs[E]) PresentValue(env Environment, event E) (float64, error) {
	return f.PV(env, event)
}

func (f EventPricerFuncs[E]) FutureValue(env Environment, event E) (float64, error) {
	return f.FV(env, event)
}

func (f EventPricerFuncs[E]) validate() error {
	if f.PV == nil || f.FV == nil {
		return market.Invalidf("event pricer funcs: PV and FV are both required")
	}
	return nil
}

type validator interface {
	validate() error
}

type valueFunc func(env Environment, component any, kind ValueKind) (float64, error)

// Registry maps concrete component types to their pricers. Adding a new kind
// of period or event only needs a RegisterPeriod or RegisterEvent call; the
// dispatchers and the leg aggregator stay unchanged.
//
// A Registry is safe for concurrent use. It is built explicitly and handed
// to whatever needs it; there is no package level instance.
type Registry struct {
	mu      sync.RWMutex
	periods map[reflect.Type]valueFunc
	events  map[reflect.Type]valueFunc
}

func NewRegistry() *Registry {
	return &Registry{
		periods: make(map[reflect.Type]valueFunc),
		events:  make(map[reflect.Type]valueFunc),
	}
}

// RegisterPeriod registers the pricer for period type P, replacing any
// earlier registration. P must be a concrete type.
func RegisterPeriod[P swap.PaymentPeriod](r *Registry, pricer PeriodPricer[P]) error {
	typ := reflect.TypeFor[P]()
	if err := checkRegistration(typ, pricer); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.periods[typ] = func(env Environment, c any, kind ValueKind) (float64, error) {
		if kind == FutureValue {
			return pricer.FutureValue(env, c.(P))
		}
		return pricer.PresentValue(env, c.(P))
	}
	return nil
}

// RegisterEvent registers the pricer for event type E, replacing any earlier
// registration. E must be a concrete type.
func RegisterEvent[E swap.PaymentEvent](r *Registry, pricer EventPricer[E]) error {
	typ := reflect.TypeFor[E]()
	if err := checkRegistration(typ, pricer); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[typ] = func(env Environment, c any, kind ValueKind) (float64, error) {
		if kind == FutureValue {
			return pricer.FutureValue(env, c.(E))
		}
		return pricer.PresentValue(env, c.(E))
	}
	return nil
}

func checkRegistration(typ reflect.Type, pricer any) error {
	if typ.Kind() == reflect.Interface {
		return market.Invalidf("registry: %v is an interface; register concrete types", typ)
	}
	if pricer == nil {
		return market.Invalidf("registry: pricer for %v is nil", typ)
	}
	if v, ok := pricer.(validator); ok {
		return v.validate()
	}
	return nil
}

// ValuePeriod values a period with the pricer registered for its concrete
// type.
func (r *Registry) ValuePeriod(env Environment, period swap.PaymentPeriod, kind ValueKind) (float64, error) {
	return r.value(env, r.periods, "period", period, kind)
}

// ValueEvent values an event with the pricer registered for its concrete
// type.
func (r *Registry) ValueEvent(env Environment, event swap.PaymentEvent, kind ValueKind) (float64, error) {
	return r.value(env, r.events, "event", event, kind)
}

// Value values any registered component, period or event.
func (r *Registry) Value(env Environment, component any, kind ValueKind) (float64, error) {
	switch c := component.(type) {
	case swap.PaymentPeriod:
		return r.ValuePeriod(env, c, kind)
	case swap.PaymentEvent:
		return r.ValueEvent(env, c, kind)
	}
	return 0, &UnsupportedComponentError{Family: "component", Type: reflect.TypeOf(component)}
}

func (r *Registry) value(env Environment, table map[reflect.Type]valueFunc, family string, c any, kind ValueKind) (float64, error) {
	if err := kind.check(); err != nil {
		return 0, err
	}
	typ := reflect.TypeOf(c)
	r.mu.RLock()
	fn, ok := table[typ]
	r.mu.RUnlock()
	if !ok {
		return 0, &UnsupportedComponentError{Family: family, Type: typ}
	}
	return fn(env, c, kind)
}

// PeriodTypes lists the registered period types by name.
func (r *Registry) PeriodTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return typeNames(r.periods)
}

// EventTypes lists the registered event types by name.
func (r *Registry) EventTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return typeNames(r.events)
}

func typeNames(table map[reflect.Type]valueFunc) []string {
	out := make([]string, 0, len(table))
	for typ := range table {
		out = append(out, typ.String())
	}
	sort.Strings(out)
	return out
}

// Periods returns a pricer for any registered period type.
func (r *Registry) Periods() PeriodDispatcher { return PeriodDispatcher{registry: r} }

// Events returns a pricer for any registered event type.
func (r *Registry) Events() EventDispatcher { return EventDispatcher{registry: r} }

// PeriodDispatcher routes each period to the pricer registered for its
// concrete type.
type PeriodDispatcher struct {
	registry *Registry
}

func (d PeriodDispatcher) PresentValue(env Environment, period swap.PaymentPeriod) (float64, error) {
	return d.registry.ValuePeriod(env, period, PresentValue)
}

func (d PeriodDispatcher) FutureValue(env Environment, period swap.PaymentPeriod) (float64, error) {
	return d.registry.ValuePeriod(env, period, FutureValue)
}

// EventDispatcher routes each event to the pricer registered for its
// concrete type.
type EventDispatcher struct {
	registry *Registry
}

func (d EventDispatcher) PresentValue(env Environment, event swap.PaymentEvent) (float64, error) {
	return d.registry.ValueEvent(env, event, PresentValue)
}

func (d EventDispatcher) FutureValue(env Environment, event swap.PaymentEvent) (float64, error) {
	return d.registry.ValueEvent(env, event, FutureValue)
}
