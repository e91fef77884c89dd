package market

import "github.com/rotisserie/eris"

// ErrInvalidArgument is the root of every construction error raised when an
// immutable value is built with a missing or inconsistent field.
var ErrInvalidArgument = eris.New("invalid argument")

// Invalidf returns a construction error wrapping ErrInvalidArgument.
func Invalidf(format string, args ...any) error {
	return eris.Wrapf(ErrInvalidArgument, format, args...)
}
