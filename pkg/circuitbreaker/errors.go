package circuitbreaker

import "errors"

var (
	// ErrCircuitOpen rejects a call without running it while the breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrTooManyRequests rejects a call once the half-open probe budget is spent.
	ErrTooManyRequests = errors.New("too many requests in half-open state")
)
