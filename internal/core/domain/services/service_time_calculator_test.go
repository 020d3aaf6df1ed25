package services_test

import (
	"testing"
	"time"

	"foodorders/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestServiceTimeCalculator_AverageMinutes(t *testing.T) {
	calculator := services.NewServiceTimeCalculator()

	t.Run("should average durations", func(t *testing.T) {
		avg, ok := calculator.AverageMinutes([]time.Duration{20 * time.Minute, 40 * time.Minute, 45 * time.Minute})

		assert.True(t, ok)
		assert.InDelta(t, 35.0, avg, 1e-9)
	})

	t.Run("should keep fractional minutes", func(t *testing.T) {
		avg, ok := calculator.AverageMinutes([]time.Duration{90 * time.Second})

		assert.True(t, ok)
		assert.InDelta(t, 1.5, avg, 1e-9)
	})

	t.Run("should report empty input", func(t *testing.T) {
		_, ok := calculator.AverageMinutes(nil)

		assert.False(t, ok)
	})
}
