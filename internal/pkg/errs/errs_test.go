package errs_test

import (
	"errors"
	"testing"

	"foodorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("restaurantId", "123")

		assert.Equal(t, "restaurantId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("restaurantId", "123", cause)

		assert.Equal(t, "restaurantId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: restaurantId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, "email", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)

		assert.Equal(t, "age", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is age, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t, "score", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is score, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("username")

		assert.Equal(t, "username", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: username", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("username", cause)

		assert.Equal(t, "username", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: username (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrInvalidTransition)
		require.Error(t, errs.ErrInvalidState)
		require.Error(t, errs.ErrValidationFailed)
		require.Error(t, errs.ErrTransient)
		require.Error(t, errs.ErrAlreadyExists)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "invalid transition", errs.ErrInvalidTransition.Error())
		assert.Equal(t, "invalid state", errs.ErrInvalidState.Error())
		assert.Equal(t, "validation failed", errs.ErrValidationFailed.Error())
		assert.Equal(t, "object already exists", errs.ErrAlreadyExists.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("restaurantId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("email")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("username")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		transitionErr := errs.NewTransitionIsInvalidError("confirm")
		require.ErrorIs(t, transitionErr, errs.ErrInvalidTransition)

		stateErr := errs.NewStateIsInvalidError("destroy")
		require.ErrorIs(t, stateErr, errs.ErrInvalidState)
	})
}

func TestTransitionIsInvalidError(t *testing.T) {
	t.Run("NewTransitionIsInvalidError", func(t *testing.T) {
		err := errs.NewTransitionIsInvalidError("send")

		assert.Equal(t, "send", err.Operation)
		require.NoError(t, err.Cause)
		assert.Equal(t, "invalid transition: send", err.Error())
	})

	t.Run("unwraps to sentinel and cause", func(t *testing.T) {
		cause := errors.New("the order is not sent")
		err := errs.NewTransitionIsInvalidErrorWithCause("deliver", cause)

		assert.Equal(t, "invalid transition: deliver (cause: the order is not sent)", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		require.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestStateIsInvalidError(t *testing.T) {
	cause := errors.New("the order is not in pending state")
	err := errs.NewStateIsInvalidErrorWithCause("destroy", cause)

	assert.Equal(t, "invalid state: destroy (cause: the order is not in pending state)", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidState)
	require.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestValidationError(t *testing.T) {
	t.Run("lists every fault in the message", func(t *testing.T) {
		err := errs.NewValidationError(
			errs.FieldError{Field: "restaurantId", Message: "The restaurantId does not exist."},
			errs.FieldError{Field: "products", Message: "The product is not available."},
		)

		assert.Len(t, err.Faults, 2)
		assert.Equal(t,
			"validation failed: restaurantId: The restaurantId does not exist.; products: The product is not available.",
			err.Error())
		require.ErrorIs(t, err, errs.ErrValidationFailed)
	})

	t.Run("unwraps to fault causes", func(t *testing.T) {
		transition := errs.NewTransitionIsInvalidError("confirm")
		err := errs.NewValidationError(errs.FieldError{Field: "startedAt", Message: "started", Cause: transition})

		var target *errs.ValidationError
		require.ErrorAs(t, error(err), &target)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestErrorsMatchTheirCause(t *testing.T) {
	cause := errors.New("product is unavailable")
	other := errors.New("other")

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"object not found", errs.NewObjectNotFoundErrorWithCause("productId", "1", cause), errs.ErrObjectNotFound},
		{"value is invalid", errs.NewValueIsInvalidErrorWithCause("productId", cause), errs.ErrValueIsInvalid},
		{"value is out of range", errs.NewValueIsOutOfRangeErrorWithCause("quantity", 0, 1, 9, cause), errs.ErrValueIsOutOfRange},
		{"value is required", errs.NewValueIsRequiredErrorWithCause("productId", cause), errs.ErrValueIsRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.sentinel)
			require.ErrorIs(t, tt.err, cause)
			assert.NotErrorIs(t, tt.err, other)
		})
	}

	t.Run("cause inside a validation error", func(t *testing.T) {
		err := errs.NewValidationError(errs.FieldError{
			Field:   "productId",
			Message: "The product is not available.",
			Cause:   errs.NewValueIsInvalidErrorWithCause("productId", cause),
		})

		require.ErrorIs(t, err, cause)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("no cause matches only the sentinel", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("productId")

		assert.NotErrorIs(t, err, cause)
		assert.False(t, err.Is(cause))
	})
}
