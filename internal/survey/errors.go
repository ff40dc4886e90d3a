package survey

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldNotFound indicates a requested column is absent from the schema.
	ErrFieldNotFound = errors.New("field not found")
	// ErrInvalidArgument indicates malformed parameters (non-positive top-N,
	// non-monotonic boundaries, bad row shape).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidValue indicates a cell that cannot be read as the kind the
	// operation requires.
	ErrInvalidValue = errors.New("invalid value")
	// ErrUndefinedStatistic indicates a statistic requested over an empty or
	// degenerate subset. It is never reported as 0.
	ErrUndefinedStatistic = errors.New("undefined statistic")
)

// FieldError ties an error to a schema field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// ValueError reports an unreadable cell.
type ValueError struct {
	Field string
	Row   int
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("field %q row %d: %v: %q", e.Field, e.Row, e.Err, e.Value)
}

func (e *ValueError) Unwrap() error { return e.Err }

func invalidArg(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}

func undefined(field, reason string) error {
	return &FieldError{Field: field, Err: fmt.Errorf("%s: %w", reason, ErrUndefinedStatistic)}
}
