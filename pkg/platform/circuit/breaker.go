// Package circuit provides a minimal two-state circuit breaker for callers
// that poll a flaky dependency and need to distinguish "one bad request"
// from "the backend is down".
package circuit

import "sync"

// Breaker tracks consecutive outcomes. It opens after failureThreshold
// consecutive failures and closes again after successThreshold consecutive
// successes. Safe for concurrent use.
type Breaker struct {
	mu               sync.Mutex
	open             bool
	failures         int
	successes        int
	failureThreshold int
	successThreshold int
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithFailureThreshold sets consecutive failures needed to open. Default 5.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

// WithSuccessThreshold sets consecutive successes needed to close. Default 3.
func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.successThreshold = n
		}
	}
}

// New creates a closed breaker.
func New(opts ...Option) *Breaker {
	b := &Breaker{
		failureThreshold: 5,
		successThreshold: 3,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// IsOpen reports whether the breaker has tripped.
func (b *Breaker) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// Failure records a failed operation and reports whether this one tripped
// the breaker open.
func (b *Breaker) Failure() (opened bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.successes = 0
	if !b.open && b.failures >= b.failureThreshold {
		b.open = true
		return true
	}
	return false
}

// Success records a successful operation and reports whether this one closed
// the breaker.
func (b *Breaker) Success() (closed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open {
		b.successes++
		if b.successes >= b.successThreshold {
			b.open = false
			b.failures = 0
			b.successes = 0
			return true
		}
		return false
	}
	b.failures = 0
	return false
}
