package provider

import (
	"math/rand"
	"time"
)

// Backoff computes reconnect delays. The default policy is a flat delay
// between attempts; setting Factor above 1 enables exponential growth with
// a cap, and Jitter spreads attempts to avoid reconnect stampedes.
type Backoff struct {
	Min    time.Duration
	Max    time.Duration
	Factor float64
	Jitter float64
}

// FixedBackoff returns a policy that always waits d between attempts.
func FixedBackoff(d time.Duration) Backoff {
	return Backoff{Min: d, Max: d, Factor: 1}
}

// DefaultBackoff provides conservative exponential reconnect defaults.
func DefaultBackoff() Backoff {
	return Backoff{
		Min:    time.Second,
		Max:    30 * time.Second,
		Factor: 2.0,
		Jitter: 0.2,
	}
}

// reconnectPolicy picks the session backoff for a provider: a flat delay
// when one is configured, the exponential default otherwise.
func reconnectPolicy(d time.Duration) Backoff {
	if d > 0 {
		return FixedBackoff(d)
	}
	return DefaultBackoff()
}

// Next returns the delay before the given attempt (1-based).
func (b Backoff) Next(attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}
	min := b.Min
	if min <= 0 {
		min = time.Second
	}
	max := b.Max
	if max <= 0 {
		max = min
	}

	wait := min
	if b.Factor > 1 {
		for i := 1; i < attempt; i++ {
			next := time.Duration(float64(wait) * b.Factor)
			if next > max {
				wait = max
				break
			}
			wait = next
		}
	}

	if b.Jitter <= 0 {
		return wait
	}
	jitter := b.Jitter
	if jitter > 1 {
		jitter = 1
	}
	delta := float64(wait) * jitter
	return wait - time.Duration(delta) + time.Duration(rand.Float64()*2*delta)
}
