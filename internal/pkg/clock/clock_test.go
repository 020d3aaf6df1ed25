package clock_test

import (
	"testing"
	"time"

	"foodorders/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	c := clock.Fixed(at)

	assert.Equal(t, at, c.Now())
	assert.Equal(t, at, c.Now())
}

func TestSystem(t *testing.T) {
	loc := time.FixedZone("CET", 3600)

	now := clock.System(loc).Now()

	assert.Equal(t, loc, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)
}

func TestSystem_NilLocationUsesLocal(t *testing.T) {
	assert.Equal(t, time.Local, clock.System(nil).Now().Location())
}
