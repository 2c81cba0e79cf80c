package clients

import (
	"sync"
	"time"
)

// State is the circuit breaker position.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen blocks requests until the cool-down has passed.
	StateOpen

	// StateHalfOpen lets a limited number of trial requests through.
	StateHalfOpen
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker behavior.
// A MaxFailures of zero or less disables the breaker.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures int

	// Timeout is the cool-down spent open before letting trial requests through.
	Timeout time.Duration

	// HalfOpenLimit is both the number of concurrent trial requests and the number of
	// consecutive trial successes needed to close the circuit.
	HalfOpenLimit int
}

// Snapshot is a point-in-time view of the breaker, used by health checks.
type Snapshot struct {
	State       State
	Failures    int
	LastFailure time.Time
}

// CircuitBreaker guards the upstream recharge site.
//
// Transitions:
//   - Closed → Open after MaxFailures consecutive failures
//   - Open → HalfOpen once Timeout has passed since the last failure
//   - HalfOpen → Closed after HalfOpenLimit consecutive successes
//   - HalfOpen → Open on any failure
type CircuitBreaker struct {
	mu          sync.RWMutex
	cfg         CircuitBreakerConfig
	state       State
	failures    int
	successes   int
	inFlight    int
	lastFailure time.Time

	onStateChange func(from, to State)
	now           func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.HalfOpenLimit <= 0 {
		cfg.HalfOpenLimit = 1
	}

	return &CircuitBreaker{
		cfg:   cfg,
		state: StateClosed,
		now:   time.Now,
	}
}

// OnStateChange registers a callback run (in its own goroutine) on every transition.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.onStateChange = fn
}

func (cb *CircuitBreaker) disabled() bool {
	return cb.cfg.MaxFailures <= 0
}

// Allow reports whether a request may proceed. It may move an open breaker
// to half-open, in which case the caller holds one of the trial slots.
func (cb *CircuitBreaker) Allow() bool {
	if cb.disabled() {
		return true
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true

	case StateOpen:
		if cb.now().Sub(cb.lastFailure) < cb.cfg.Timeout {
			return false
		}

		cb.transitionTo(StateHalfOpen)
		cb.inFlight = 1

		return true

	case StateHalfOpen:
		if cb.inFlight >= cb.cfg.HalfOpenLimit {
			return false
		}

		cb.inFlight++

		return true

	default:
		return false
	}
}

// RecordSuccess records a request that reached the upstream and got a
// non-5xx answer.
func (cb *CircuitBreaker) RecordSuccess() {
	if cb.disabled() {
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures = 0

	case StateHalfOpen:
		cb.inFlight--
		cb.successes++

		if cb.successes >= cb.cfg.HalfOpenLimit {
			cb.transitionTo(StateClosed)
		}

	case StateOpen:
	}
}

// RecordFailure records a transport failure or a 5xx answer.
func (cb *CircuitBreaker) RecordFailure() {
	if cb.disabled() {
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailure = cb.now()

	switch cb.state {
	case StateClosed:
		cb.failures++

		if cb.failures >= cb.cfg.MaxFailures {
			cb.transitionTo(StateOpen)
		}

	case StateHalfOpen:
		cb.inFlight--
		cb.transitionTo(StateOpen)

	case StateOpen:
	}
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return cb.state
}

// Snapshot returns the current state and failure bookkeeping.
func (cb *CircuitBreaker) Snapshot() Snapshot {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return Snapshot{State: cb.state, Failures: cb.failures, LastFailure: cb.lastFailure}
}

// transitionTo must be called with the lock held.
func (cb *CircuitBreaker) transitionTo(next State) {
	if cb.state == next {
		return
	}

	prev := cb.state
	cb.state = next
	cb.failures = 0
	cb.successes = 0

	if cb.onStateChange != nil {
		go cb.onStateChange(prev, next)
	}
}
