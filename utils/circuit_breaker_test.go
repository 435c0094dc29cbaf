package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream down")

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", 3, time.Minute)

	fail := func() error { return errUpstream }
	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errUpstream)
	}

	calls := 0
	err := cb.Execute(func() error {
		calls++
		return nil
	})
	assert.ErrorIs(t, err, ErrBreakerOpen)
	assert.Equal(t, 0, calls)
}

func TestCircuitBreaker_SuccessResetsCount(t *testing.T) {
	cb := NewCircuitBreaker("test", 2, time.Minute)

	require.Error(t, cb.Execute(func() error { return errUpstream }))
	require.NoError(t, cb.Execute(func() error { return nil }))

	// The earlier failure no longer counts toward opening.
	require.Error(t, cb.Execute(func() error { return errUpstream }))
	require.NoError(t, cb.Execute(func() error { return nil }))
}

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)

	require.ErrorIs(t, cb.Execute(func() error { return errUpstream }), errUpstream)
	require.ErrorIs(t, cb.Execute(func() error { return nil }), ErrBreakerOpen)

	time.Sleep(15 * time.Millisecond)

	// One probe is allowed; success closes the breaker again.
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.NoError(t, cb.Execute(func() error { return nil }))
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)

	require.ErrorIs(t, cb.Execute(func() error { return errUpstream }), errUpstream)

	time.Sleep(15 * time.Millisecond)

	require.ErrorIs(t, cb.Execute(func() error { return errUpstream }), errUpstream)
	require.ErrorIs(t, cb.Execute(func() error { return nil }), ErrBreakerOpen)
}
