package timeutil

import (
	"math"
	"math/rand"
	"time"
)

// DurationPtr is a helper function to create a pointer to a time.Duration
func DurationPtr(d time.Duration) *time.Duration {
	return &d
}

// MaxDuration returns the largest duration in durations, or zero for an empty slice.
// It does not mutate its input.
func MaxDuration(durations []time.Duration) time.Duration {
	var max time.Duration
	for i, d := range durations {
		if i == 0 || d > max {
			max = d
		}
	}
	return max
}

// ComputeJitter returns a pseudo-random duration in [0, max) using rng.
// Non-positive max always returns zero.
func ComputeJitter(max time.Duration, rng rand.Rand) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rng.Int63n(int64(max)))
}

// ExponentialBackoffDelay computes initial*(multiplier^(backoffCount-1)), capped at
// backoffParam.MaxDuration(), plus jitter in [0, jitter). backoffCount <= 0 behaves as 1.
func ExponentialBackoffDelay(
	backoffCount int,
	jitter time.Duration,
	rng rand.Rand,
	backoffParam BackoffParam,
) time.Duration {
	if backoffCount < 1 {
		backoffCount = 1
	}

	exponent := float64(backoffCount - 1)
	delay := float64(backoffParam.InitialDuration()) * math.Pow(backoffParam.Multiplier(), exponent)
	if maxDuration := backoffParam.MaxDuration(); maxDuration > 0 && delay > float64(maxDuration) {
		delay = float64(maxDuration)
	}

	result := time.Duration(delay)
	if jitter > 0 {
		result += ComputeJitter(jitter, rng)
	}
	if result < 0 {
		result = 0
	}
	return result
}
