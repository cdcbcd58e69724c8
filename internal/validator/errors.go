package validator

import (
	"errors"
	"fmt"
)

// Kind identifies which validation rule rejected the input.
type Kind string

const (
	KindWrongCount    Kind = "WRONG_COUNT"
	KindNotANumber    Kind = "NOT_A_NUMBER"
	KindNegativeValue Kind = "NEGATIVE_VALUE"
	KindZeroValue     Kind = "ZERO_VALUE"
)

var (
	ErrWrongCount    = errors.New("wrong number of values")
	ErrNotANumber    = errors.New("value is not a number")
	ErrNegativeValue = errors.New("value is negative")
	ErrZeroValue     = errors.New("value is zero")
)

// ValidationError describes the first rule a raw input failed.
type ValidationError struct {
	Kind  Kind
	Want  int    // required count, set for KindWrongCount
	Got   int    // actual count, set for KindWrongCount
	Token string // offending piece, set for value failures
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindWrongCount:
		return fmt.Sprintf("%v: want %d, got %d", e.Unwrap(), e.Want, e.Got)
	default:
		return fmt.Sprintf("%v: %q", e.Unwrap(), e.Token)
	}
}

// Unwrap returns the sentinel error for the kind so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	switch e.Kind {
	case KindWrongCount:
		return ErrWrongCount
	case KindNotANumber:
		return ErrNotANumber
	case KindNegativeValue:
		return ErrNegativeValue
	case KindZeroValue:
		return ErrZeroValue
	}
	return nil
}

// Message is the text shown to the end user.
func (e *ValidationError) Message() string {
	switch e.Kind {
	case KindWrongCount:
		return fmt.Sprintf("Please enter exactly %d values separated by commas (you entered %d).", e.Want, e.Got)
	case KindNotANumber:
		return fmt.Sprintf("%q is not a number. Use values like 1.25, 2.00, 3.5.", e.Token)
	case KindNegativeValue:
		return "Multipliers cannot be negative."
	case KindZeroValue:
		return "Multipliers must be greater than zero."
	}
	return e.Error()
}
