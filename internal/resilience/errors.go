// Package resilience provides the error taxonomy, retry, and breaker
// primitives used by the content fetch layer.
package resilience

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// BlockedError marks an active anti-bot denial (forbidden-style response
// or challenge page). Blocked failures drive strategy escalation and the
// session breaker; they are never retried within the same strategy.
type BlockedError struct {
	Err        error
	StatusCode int
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("blocked (status %d): %v", e.StatusCode, e.Err)
}

func (e *BlockedError) Unwrap() error { return e.Err }

// NewBlockedError wraps err as an active-denial failure.
func NewBlockedError(err error, statusCode int) *BlockedError {
	return &BlockedError{Err: err, StatusCode: statusCode}
}

// RateLimitError marks quota exhaustion on a collaborator. Fatal for the
// current batch; retrying only wastes quota.
type RateLimitError struct {
	Err error
}

func (e *RateLimitError) Error() string { return "rate limited: " + e.Err.Error() }

func (e *RateLimitError) Unwrap() error { return e.Err }

// NewRateLimitError wraps err as a quota-exhaustion failure.
func NewRateLimitError(err error) *RateLimitError {
	return &RateLimitError{Err: err}
}

// TransientError wraps an error that is safe to retry (5xx, timeout,
// connection reset).
type TransientError struct {
	Err        error
	StatusCode int
}

func (e *TransientError) Error() string { return e.Err.Error() }

func (e *TransientError) Unwrap() error { return e.Err }

// NewTransientError wraps an error as transient with an optional HTTP status code.
func NewTransientError(err error, statusCode int) *TransientError {
	return &TransientError{Err: err, StatusCode: statusCode}
}

// IsBlocked reports whether the error chain contains a BlockedError.
func IsBlocked(err error) bool {
	var be *BlockedError
	return errors.As(err, &be)
}

// IsRateLimited reports whether the error chain contains a RateLimitError.
func IsRateLimited(err error) bool {
	var re *RateLimitError
	return errors.As(err, &re)
}

// IsTransient returns true if the error (or any error in its chain) is a
// TransientError, or if it matches common transient network patterns
// (timeouts, connection resets, DNS failures).
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var te *TransientError
	if errors.As(err, &te) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	// String-based heuristics for wrapped errors from HTTP clients.
	msg := strings.ToLower(err.Error())
	transientPatterns := []string{
		"connection reset by peer",
		"broken pipe",
		"temporary failure in name resolution",
		"no such host",
		"tls handshake timeout",
		"i/o timeout",
		"server closed idle connection",
		"transport connection broken",
	}
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}

// blockedBodyMarkers are page fragments that indicate an active denial
// even when the transport succeeded.
var blockedBodyMarkers = []string{
	"access denied",
	"403 forbidden",
	"just a moment",
	"checking your browser",
	"attention required",
	"verify you are a human",
	"request blocked",
}

// ClassifyHTTP maps an HTTP status and response body onto the taxonomy.
// 401/403 and challenge-page bodies are blocked; 429 is rate-limited;
// 408/5xx are transient; anything else stays unclassified.
func ClassifyHTTP(err error, statusCode int, body string) error {
	switch {
	case statusCode == 401 || statusCode == 403:
		return NewBlockedError(err, statusCode)
	case statusCode == 429:
		return NewRateLimitError(err)
	case statusCode == 408 || (statusCode >= 500 && statusCode <= 599):
		return NewTransientError(err, statusCode)
	}

	lower := strings.ToLower(body)
	for _, m := range blockedBodyMarkers {
		if strings.Contains(lower, m) {
			return NewBlockedError(err, statusCode)
		}
	}

	return err
}
