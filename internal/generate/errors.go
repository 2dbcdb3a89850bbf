// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import "fmt"

// ErrorKind classifies a generation failure. The orchestrator retries only
// RateLimited and Timeout; every other kind aborts the run.
type ErrorKind string

const (
	KindRateLimited     ErrorKind = "rate_limited"
	KindTimeout         ErrorKind = "timeout"
	KindInvalidResponse ErrorKind = "invalid_response"
	KindAuthFailure     ErrorKind = "auth_failure"
	KindUnknown         ErrorKind = "unknown"
)

// Error is a typed generation failure. A shape mismatch in the model output
// surfaces as KindInvalidResponse, never as a silently empty payload.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("generate (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient.
func (e *Error) Retryable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindTimeout
}

// wrap builds a typed Error unless err already is one.
func wrap(kind ErrorKind, err error) *Error {
	if ge, ok := err.(*Error); ok {
		return ge
	}
	return &Error{Kind: kind, Err: err}
}
