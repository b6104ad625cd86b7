package httpapi

import "fmt"

// StatusError is a non-2xx reply from a provider API.
type StatusError struct {
	Provider   string
	StatusCode int
	Code       string // Vendor error code or status, e.g. "INVALID_ARGUMENT".
	Message    string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: status %d (%s): %s", e.Provider, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
}

// BlockedError reports that the provider's safety filter refused the prompt
// or withheld the completion.
type BlockedError struct {
	Provider string
	Reason   string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s: content blocked (%s)", e.Provider, e.Reason)
}

// TransportError wraps a failure to reach the provider at all.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
