package core

import (
	"errors"
	"strings"
)

var (
	// ErrBoardInit is returned when board bring-up fails. Nothing has been
	// written to the CCU8 or port registers at that point.
	ErrBoardInit = errors.New("board init failed")

	// ErrOutOfOrder is returned when a bring-up step runs before its precondition
	ErrOutOfOrder = errors.New("step out of order")

	// ErrInvalidConfig is the root of every validation failure
	ErrInvalidConfig = errors.New("invalid configuration")

	ErrUnknownVariant = errors.New("unknown variant")
)

// unknownVariantError names the variant that was asked for
type unknownVariantError struct {
	name string
}

func (e *unknownVariantError) Error() string {
	return ErrUnknownVariant.Error() + ": " + e.name
}

func (e *unknownVariantError) Unwrap() error { return ErrUnknownVariant }

// StepError reports a bring-up step that could not run
type StepError struct {
	Step  Step
	State SliceState
	Err   error
}

func (e *StepError) Error() string {
	return e.Step.String() + " (slice " + e.State.String() + "): " + e.Err.Error()
}

func (e *StepError) Unwrap() error { return e.Err }

// ConfigError names one violated configuration invariant
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Msg
}

// ValidationError aggregates every violation found in a plan.
type ValidationError struct {
	Errors []*ConfigError
}

// Error implements error
func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return ErrInvalidConfig.Error()
	}
	msg := make([]string, len(e.Errors))
	for n, err := range e.Errors {
		msg[n] = err.Error()
	}
	return ErrInvalidConfig.Error() + ": " + strings.Join(msg, "; ")
}

// Is makes errors.Is(err, ErrInvalidConfig) hold
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Add records a violation
func (e *ValidationError) Add(field, msg string) *ValidationError {
	e.Errors = append(e.Errors, &ConfigError{Field: field, Msg: msg})
	return e
}

// Has reports whether a violation was recorded for field
func (e *ValidationError) Has(field string) bool {
	for _, c := range e.Errors {
		if c.Field == field {
			return true
		}
	}
	return false
}

// Aggregate returns the error if any violation was recorded, nil otherwise
func (e *ValidationError) Aggregate() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}
