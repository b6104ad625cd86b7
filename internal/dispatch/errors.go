package dispatch

import (
	"context"
	"errors"
	"net"

	"github.com/forge-ai/textforge/internal/llm/httpapi"
)

// Kind is the closed set of failure classes a generation can end in.
// A Kind is itself an error so callers can test with errors.Is(err, ContentBlocked).
type Kind int

const (
	Provider Kind = iota // any other backend-reported failure
	InvalidInput
	InvalidProvider
	ContentBlocked
	UpstreamUnavailable
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case InvalidProvider:
		return "invalid_provider"
	case ContentBlocked:
		return "content_blocked"
	case UpstreamUnavailable:
		return "upstream_unavailable"
	default:
		return "provider_error"
	}
}

func (k Kind) Error() string { return k.String() }

// Error is the only error type returned across the dispatcher boundary.
// It deliberately does not unwrap to the backend error.
type Error struct {
	Kind     Kind
	Provider string // resolved provider id, empty when resolution failed
	Message  string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is reports whether target is e's Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// NewInvalidInput reports a malformed request.
func NewInvalidInput(msg string) *Error {
	return &Error{Kind: InvalidInput, Message: msg}
}

// KindOf classifies err. Errors that did not come from this package are
// treated as Provider failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return Provider
}

// translate maps a backend error onto the closed Kind set.
func translate(providerID string, err error) *Error {
	var (
		blocked   *httpapi.BlockedError
		status    *httpapi.StatusError
		transport *httpapi.TransportError
		netErr    net.Error
	)

	out := &Error{Kind: Provider, Provider: providerID, Message: err.Error()}
	switch {
	case errors.As(err, &blocked):
		out.Kind = ContentBlocked
		out.Message = blocked.Reason
	case errors.Is(err, context.Canceled):
		out.Message = "request canceled"
	case errors.As(err, &transport), errors.As(err, &netErr):
		out.Kind = UpstreamUnavailable
	case errors.As(err, &status):
		out.Message = status.Message
		switch status.StatusCode {
		case 400, 422:
			out.Kind = InvalidInput
		case 502, 503, 504, 529:
			out.Kind = UpstreamUnavailable
		}
	}
	return out
}
