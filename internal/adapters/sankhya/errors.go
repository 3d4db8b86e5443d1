package sankhya

import (
	"fmt"
	"strings"
)

// AuthError means the credential exchange failed or produced no usable
// bearer token. Never retried automatically.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sankhya auth failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("sankhya auth failed: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// ResponseFormatError means the gateway answered 200 with a body that
// is not the documented envelope. A contract violation, not transient.
type ResponseFormatError struct {
	Body string
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("sankhya response is not a service envelope: %s", strings.TrimSpace(e.Body))
}

// HTTPStatusError carries a non-2xx, non-auth gateway status. Never
// retried.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("sankhya request failed: %s", e.Status)
	}
	return fmt.Sprintf("sankhya request failed: %s: %s", e.Status, strings.TrimSpace(e.Body))
}

// RequestError is the terminal network-level failure after the retry
// budget is spent.
type RequestError struct {
	Attempts int
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("sankhya unreachable after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
