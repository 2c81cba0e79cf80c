// Package clients provides the instrumented HTTP transport for upstream calls.
package clients

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"syscall"
)

// Client errors represent failures in the HTTP client layer. They never carry
// upstream business meaning; the calling adapter normalizes them.
var (
	// ErrCircuitOpen is returned when the circuit breaker is blocking requests.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last error after every attempt failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// FailureKind classifies a transport failure.
type FailureKind string

const (
	// FailureTimeout means the request deadline elapsed.
	FailureTimeout FailureKind = "timeout"

	// FailureConnection covers DNS, dial, reset and TLS handshake failures.
	FailureConnection FailureKind = "connection"

	// FailureOther is any other transport failure, including an open breaker.
	FailureOther FailureKind = "other"
)

// TransportError is returned by Client.Do when no HTTP response was obtained.
type TransportError struct {
	Kind FailureKind
	Err  error
}

func (e *TransportError) Error() string {
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// KindOf reports the failure kind of err. Errors that are not transport
// errors are classified from their chain.
func KindOf(err error) FailureKind {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Kind
	}

	return classify(err)
}

func classify(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}

	if isConnectionError(err) {
		return FailureConnection
	}

	return FailureOther
}

func isConnectionError(err error) bool {
	var (
		dnsErr       *net.DNSError
		opErr        *net.OpError
		recordErr    tls.RecordHeaderError
		verifyErr    *tls.CertificateVerificationError
		authorityErr x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
	)

	switch {
	case errors.As(err, &dnsErr), errors.As(err, &opErr):
		return true
	case errors.As(err, &recordErr), errors.As(err, &verifyErr):
		return true
	case errors.As(err, &authorityErr), errors.As(err, &hostnameErr):
		return true
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return true
	}

	return false
}
