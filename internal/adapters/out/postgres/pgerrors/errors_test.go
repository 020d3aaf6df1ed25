package pgerrors_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"foodorders/internal/adapters/out/postgres/pgerrors"
	"foodorders/internal/pkg/errs"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pgxLikeError struct{ code string }

func (e pgxLikeError) Error() string    { return "pgx error " + e.code }
func (e pgxLikeError) SQLState() string { return e.code }

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		class     pgerrors.ErrorClass
		retryable bool
	}{
		{"nil", nil, pgerrors.ErrorClassPermanent, false},
		{"no rows", sql.ErrNoRows, pgerrors.ErrorClassPermanent, false},
		{"plain error", errors.New("boom"), pgerrors.ErrorClassPermanent, false},
		{"serialization failure", &pq.Error{Code: "40001"}, pgerrors.ErrorClassSerialization, true},
		{"deadlock", &pq.Error{Code: "40P01"}, pgerrors.ErrorClassDeadlock, true},
		{"lock not available", &pq.Error{Code: "55P03"}, pgerrors.ErrorClassTransient, true},
		{"unique violation", &pq.Error{Code: "23505"}, pgerrors.ErrorClassUniqueViolation, false},
		{"foreign key violation", &pq.Error{Code: "23503"}, pgerrors.ErrorClassPermanent, false},
		{"wrapped pq error", fmt.Errorf("commit: %w", &pq.Error{Code: "40001"}), pgerrors.ErrorClassSerialization, true},
		{"pgx error", pgxLikeError{code: "40P01"}, pgerrors.ErrorClassDeadlock, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.class, pgerrors.ClassifyError(tt.err))
			assert.Equal(t, tt.retryable, pgerrors.IsRetryable(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("retryable errors become transient", func(t *testing.T) {
		original := &pq.Error{Code: "40001"}

		err := pgerrors.Wrap(original)

		require.ErrorIs(t, err, errs.ErrTransient)
		var pqErr *pq.Error
		require.ErrorAs(t, err, &pqErr)
		assert.Contains(t, err.Error(), "serialization")
	})

	t.Run("unique violations become already exists", func(t *testing.T) {
		original := &pq.Error{Code: "23505", Constraint: "orders_pkey"}

		err := pgerrors.Wrap(original)

		require.ErrorIs(t, err, errs.ErrAlreadyExists)
		require.NotErrorIs(t, err, errs.ErrTransient)
		var pqErr *pq.Error
		require.ErrorAs(t, err, &pqErr)
		assert.Equal(t, "orders_pkey", pqErr.Constraint)
	})

	t.Run("permanent errors are returned unchanged", func(t *testing.T) {
		original := &pq.Error{Code: "23503"}

		assert.Same(t, original, pgerrors.Wrap(original))
		assert.NoError(t, pgerrors.Wrap(nil))
	})
}
