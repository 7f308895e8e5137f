package client

import (
	"errors"
	"fmt"
)

// Error classes for observability.
const (
	// errClassTransport covers network failures and malformed envelopes.
	errClassTransport = "transport"

	// errClassDomain covers success=false envelopes with a server message.
	errClassDomain = "domain"
)

// ErrServiceUnavailable is the fixed failure of the disabled secondary
// gateway path.
var ErrServiceUnavailable = errors.New("service unavailable")

// APIError is a typed edge API failure. A nil Err means a domain
// failure (the server answered success=false); a non-nil Err wraps a
// transport or parse failure. Fallback reports whether the server
// explicitly permitted fallback resolution.
type APIError struct {
	Op       string
	Message  string
	Fallback bool
	Err      error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// fallbackAllowed reports whether the server explicitly flagged the
// failure as resolvable through a fallback path.
func fallbackAllowed(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Fallback
}

// classify maps an operation failure onto an error class. Domain
// failures are envelopes the server produced; everything else is
// transport.
func classify(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Err == nil {
		return errClassDomain
	}
	return errClassTransport
}
