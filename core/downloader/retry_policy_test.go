package downloader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDelayGrowsMonotonically(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 5, BaseDelay: 2 * time.Second, MaxDelay: 30 * time.Second}

	var prev time.Duration
	for attempt := 1; attempt <= policy.MaxRetries; attempt++ {
		delay, ok := policy.NextDelay(attempt)
		require.True(t, ok, "attempt %d", attempt)
		assert.GreaterOrEqual(t, delay, prev, "attempt %d", attempt)
		prev = delay
	}
}

func TestNextDelaySequence(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 4, BaseDelay: 2 * time.Second, MaxDelay: 30 * time.Second}

	want := []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second}
	for i, expected := range want {
		delay, ok := policy.NextDelay(i + 1)
		require.True(t, ok)
		assert.Equal(t, expected, delay)
	}
}

func TestNextDelayCappedAtMax(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 10, BaseDelay: 2 * time.Second, MaxDelay: 10 * time.Second}

	delay, ok := policy.NextDelay(6)
	require.True(t, ok)
	assert.Equal(t, 10*time.Second, delay)
}

func TestNextDelayRefusesBeyondMaxRetries(t *testing.T) {
	policy := DefaultRetryPolicy()

	_, ok := policy.NextDelay(policy.MaxRetries)
	assert.True(t, ok)
	_, ok = policy.NextDelay(policy.MaxRetries + 1)
	assert.False(t, ok)
}

func TestNextDelayDefaultsZeroBase(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 2}

	delay, ok := policy.NextDelay(1)
	require.True(t, ok)
	assert.Equal(t, 500*time.Millisecond, delay)
}
