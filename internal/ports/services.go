// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Upstream failures are values (domain.UpstreamResult), not Go errors
//   - Keep interfaces small and focused
package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen/recharge-proxy/internal/domain"
)

// RechargeUpstream is the recharge site seen from the application layer.
//
// Every method returns a non-nil result. Transport, status and decode
// failures are folded into the result with Success=false; implementations
// never return them as Go errors and never panic on upstream input.
type RechargeUpstream interface {
	// AcquireSession fetches the landing page and extracts the session cookie.
	// The handle is empty whenever the result is not successful.
	AcquireSession(ctx context.Context) (domain.SessionHandle, *domain.UpstreamResult)

	// VerifyCode checks an activation code within a session.
	VerifyCode(ctx context.Context, session domain.SessionHandle, code domain.ActivationCode) *domain.UpstreamResult

	// ReuseRecord replays the recharge bound to the session's verified code.
	ReuseRecord(ctx context.Context, session domain.SessionHandle) *domain.UpstreamResult

	// SubmitRecharge submits an opaque account token for a fresh recharge.
	SubmitRecharge(ctx context.Context, session domain.SessionHandle, tokenJSON string) *domain.UpstreamResult

	// UpdateTokenAndRecharge replaces the token bound to code and recharges again.
	UpdateTokenAndRecharge(
		ctx context.Context, session domain.SessionHandle, code domain.ActivationCode, tokenJSON string,
	) *domain.UpstreamResult
}

// SessionStore keeps caller sessions between requests.
//
// Keys are opaque to callers. Server-side stores hand out random ids; the
// signed-cookie store returns the signed session itself as the key, so Set
// may return a different key for the same logical session.
type SessionStore interface {
	// Get returns the session for key.
	// Returns domain.ErrNotFound when the key is unknown, expired or tampered with.
	Get(ctx context.Context, key string) (*domain.CallerSession, error)

	// Set stores sess under key (a new key when key is empty) for ttl and
	// returns the key the caller must present next time.
	Set(ctx context.Context, key string, sess *domain.CallerSession, ttl time.Duration) (string, error)

	// Expire drops the session. Unknown keys are not an error.
	Expire(ctx context.Context, key string) error
}
