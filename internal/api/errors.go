package api

import "fmt"

// The HR API failure taxonomy. Callers classify with errors.As; every failed
// call yields exactly one of these.

// TransportError wraps network-level failures (unreachable host, timeout).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// AuthError is an invalid or expired token (HTTP 401/403). During identity
// resolution it ends the session; elsewhere it surfaces as an error banner.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("authentication failed (status %d)", e.StatusCode)
}

// ValidationError is a server rejection of submitted fields, optionally with
// a per-field message map keyed by wire field name.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// DomainError is a well-formed response with a failure status and a
// human-readable message (e.g. "El nombre ya existe").
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "request rejected"
}
