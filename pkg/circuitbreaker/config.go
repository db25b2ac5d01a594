package circuitbreaker

import "time"

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name identifies the circuit breaker in logs and metrics.
	Name string

	// Enabled determines whether the circuit breaker is active.
	// When false, New returns nil and calls pass through directly.
	Enabled bool

	// MaxRequests is the number of probe calls allowed while half-open.
	// Zero allows a single probe.
	MaxRequests uint

	// Interval is the cyclic period of the closed state after which failure
	// counts are cleared. Zero never clears them while closed.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing. Zero means 60s.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint

	// IsSuccessful decides which errors count as failures. Nil treats every
	// non-nil error as a failure.
	IsSuccessful func(err error) bool

	// OnStateChange is called on every transition with the old and new state names.
	OnStateChange func(name, from, to string)
}
