package pricing

import (
	"fmt"
	"reflect"
	"time"

	"github.com/rotisserie/eris"

	"github.com/jhizzard/Strata/market"
)

var (
	// ErrUnsupportedComponent is matched by errors raised when no pricer is
	// registered for a component's concrete type.
	ErrUnsupportedComponent = eris.New("unsupported component type")
	// ErrDataNotAvailable is matched by errors raised when an environment
	// cannot answer a query.
	ErrDataNotAvailable = eris.New("market data not available")
)

// UnsupportedComponentError names the component family ("period" or
// "event") and the concrete type that had no pricer.
type UnsupportedComponentError struct {
	Family string
	Type   reflect.Type
}

func (e *UnsupportedComponentError) Error() string {
	return fmt.Sprintf("%s: no %s pricer registered for %v", ErrUnsupportedComponent, e.Family, e.Type)
}

func (e *UnsupportedComponentError) Is(target error) bool {
	return target == ErrUnsupportedComponent
}

// DataKind is the kind of market data an environment query needed.
type DataKind string

const (
	DataDiscountCurve DataKind = "discount curve"
	DataIndexCurve    DataKind = "index curve"
	DataFixing        DataKind = "fixing"
	DataFxRate        DataKind = "fx rate"
	DataSurvivalCurve DataKind = "survival curve"
	DataRecoveryRate  DataKind = "recovery rate"
)

// DataError reports a missing piece of market data. Date is zero when the
// query was not date specific.
type DataError struct {
	Kind DataKind
	Key  string
	Date time.Time
}

func (e *DataError) Error() string {
	if e.Date.IsZero() {
		return fmt.Sprintf("%s: %s %s", ErrDataNotAvailable, e.Kind, e.Key)
	}
	return fmt.Sprintf("%s: %s %s on %s", ErrDataNotAvailable, e.Kind, e.Key, market.FormatDate(e.Date))
}

func (e *DataError) Is(target error) bool {
	return target == ErrDataNotAvailable
}
