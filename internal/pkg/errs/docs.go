// Package errs provides standardized error types for the order management service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - TransitionIsInvalidError: For lifecycle operations that are not legal from the current state
//   - StateIsInvalidError: For mutations rejected because of the object's state
//   - ValidationError: The accumulated list of field-level faults of a validation pass
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// ErrTransient is attached by persistence adapters to failures that can be
// retried as a whole operation because nothing was committed.
package errs
