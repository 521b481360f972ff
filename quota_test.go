package gcra

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmissionInterval(t *testing.T) {
	q, err := NewQuota(10, 20*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, q.EmissionInterval())
	assert.Equal(t, uint32(10), q.ResourceLimit())
	assert.Equal(t, 20*time.Second, q.Period())
}

func TestEmissionIntervalTruncates(t *testing.T) {
	q, err := NewQuota(3, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 333333333*time.Nanosecond, q.EmissionInterval())

	q, err = NewQuota(3, 2*time.Nanosecond)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), q.EmissionInterval())
}

func TestNewQuotaRejectsInvalidConfig(t *testing.T) {
	_, err := NewQuota(0, time.Second)
	require.ErrorIs(t, err, ErrInvalidQuota)

	_, err = NewQuota(5, -time.Second)
	require.ErrorIs(t, err, ErrInvalidQuota)

	q, err := NewQuota(5, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), q.EmissionInterval())
}

func TestPerHelpers(t *testing.T) {
	assert.Equal(t, time.Second, PerSecond(2).Period())
	assert.Equal(t, time.Minute, PerMinute(2).Period())
	assert.Equal(t, time.Hour, PerHour(2).Period())
	assert.Equal(t, 24*time.Hour, PerDay(2).Period())
	assert.Equal(t, 500*time.Millisecond, PerSecond(2).EmissionInterval())

	assert.Panics(t, func() { PerSecond(0) })
	assert.Panics(t, func() { PerDay(0) })
}

func TestQuotaString(t *testing.T) {
	assert.Equal(t, "10 per 1s", PerSecond(10).String())
	assert.Equal(t, "60 per 1m0s", PerMinute(60).String())
}

func TestIncrementInterval(t *testing.T) {
	q := PerSecond(5)
	assert.Equal(t, time.Duration(0), q.IncrementInterval(0))
	assert.Equal(t, 200*time.Millisecond, q.IncrementInterval(1))
	assert.Equal(t, time.Second, q.IncrementInterval(5))
	assert.Equal(t, 1200*time.Millisecond, q.IncrementInterval(6))
}

func TestIncrementIntervalSaturates(t *testing.T) {
	q, err := NewQuota(1, time.Duration(1<<62))
	require.NoError(t, err)

	assert.Equal(t, time.Duration(math.MaxInt64), q.IncrementInterval(2))
	assert.Equal(t, time.Duration(math.MaxInt64), q.IncrementInterval(math.MaxUint32))

	var s State
	err = s.CheckAndModifyAt(q, time.Unix(0, 0), 4)
	var indefinitely *DeniedIndefinitelyError
	require.ErrorAs(t, err, &indefinitely)
	assert.Equal(t, uint32(4), indefinitely.Cost)
}
