package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedBackoffIsFlat(t *testing.T) {
	b := FixedBackoff(5 * time.Second)
	for attempt := 1; attempt <= 10; attempt++ {
		assert.Equal(t, 5*time.Second, b.Next(attempt))
	}
}

func TestDefaultBackoffGrowsAndCaps(t *testing.T) {
	b := DefaultBackoff()
	b.Jitter = 0

	assert.Equal(t, time.Second, b.Next(1))
	assert.Equal(t, 2*time.Second, b.Next(2))
	assert.Equal(t, 4*time.Second, b.Next(3))
	assert.Equal(t, 30*time.Second, b.Next(20))
}

func TestBackoffJitterStaysBounded(t *testing.T) {
	b := Backoff{Min: time.Second, Max: time.Second, Factor: 1, Jitter: 0.5}
	for i := 0; i < 100; i++ {
		d := b.Next(1)
		assert.GreaterOrEqual(t, d, 500*time.Millisecond)
		assert.LessOrEqual(t, d, 1500*time.Millisecond)
	}
}

func TestReconnectPolicy(t *testing.T) {
	flat := reconnectPolicy(5 * time.Second)
	assert.Equal(t, FixedBackoff(5*time.Second), flat)

	// No configured delay falls back to the exponential default.
	assert.Equal(t, DefaultBackoff(), reconnectPolicy(0))
}

func TestBackoffZeroValueDefaults(t *testing.T) {
	var b Backoff
	assert.Equal(t, time.Second, b.Next(1))
	assert.Equal(t, time.Second, b.Next(0))
}
