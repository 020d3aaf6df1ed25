package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidState      = errors.New("invalid state")
	ErrValidationFailed  = errors.New("validation failed")
	ErrAlreadyExists     = errors.New("object already exists")

	// ErrTransient marks persistence failures that are safe to retry as a whole operation.
	ErrTransient = errors.New("transient failure")
)

// ObjectNotFoundError reports that a referenced object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// Is reports whether target matches the cause, so callers can tell faults apart.
func (e *ObjectNotFoundError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// ValueIsInvalidError reports a value that fails a business rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

func (e *ValueIsInvalidError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

func (e *ValueIsOutOfRangeError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

func (e *ValueIsRequiredError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// TransitionIsInvalidError reports a lifecycle operation that is not legal from
// the current state. It unwraps to ErrInvalidTransition and to its cause.
type TransitionIsInvalidError struct {
	Operation string
	Cause     error
}

func NewTransitionIsInvalidError(operation string) *TransitionIsInvalidError {
	return &TransitionIsInvalidError{Operation: operation}
}

func NewTransitionIsInvalidErrorWithCause(operation string, cause error) *TransitionIsInvalidError {
	return &TransitionIsInvalidError{Operation: operation, Cause: cause}
}

func (e *TransitionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrInvalidTransition, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidTransition, e.Operation)
}

func (e *TransitionIsInvalidError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidTransition}
	}
	return []error{ErrInvalidTransition, e.Cause}
}

// StateIsInvalidError reports a mutation attempted on an object whose state forbids it.
// It unwraps to ErrInvalidState and to its cause.
type StateIsInvalidError struct {
	Operation string
	Cause     error
}

func NewStateIsInvalidError(operation string) *StateIsInvalidError {
	return &StateIsInvalidError{Operation: operation}
}

func NewStateIsInvalidErrorWithCause(operation string, cause error) *StateIsInvalidError {
	return &StateIsInvalidError{Operation: operation, Cause: cause}
}

func (e *StateIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrInvalidState, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidState, e.Operation)
}

func (e *StateIsInvalidError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidState}
	}
	return []error{ErrInvalidState, e.Cause}
}

// FieldError is a single field-level validation fault.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (f FieldError) Error() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// ValidationError carries every fault found by a validation pass.
// It unwraps to ErrValidationFailed and to the cause of each fault.
type ValidationError struct {
	Faults []FieldError
}

func NewValidationError(faults ...FieldError) *ValidationError {
	return &ValidationError{Faults: faults}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Faults))
	for _, f := range e.Faults {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() []error {
	unwrapped := make([]error, 0, len(e.Faults)+1)
	unwrapped = append(unwrapped, ErrValidationFailed)
	for _, f := range e.Faults {
		if f.Cause != nil {
			unwrapped = append(unwrapped, f.Cause)
		}
	}
	return unwrapped
}

// sanitize flattens values so that multi-line input cannot break log lines.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
