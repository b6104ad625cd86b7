package api

import (
	"errors"
	"net/http"

	"github.com/forge-ai/textforge/internal/dispatch"
)

// StatusFor maps an error kind to the HTTP status every surface reports.
// Unclassified provider failures are a 500.
func StatusFor(err error) int {
	switch dispatch.KindOf(err) {
	case dispatch.InvalidInput, dispatch.InvalidProvider:
		return http.StatusBadRequest
	case dispatch.ContentBlocked:
		return http.StatusUnprocessableEntity
	case dispatch.UpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// MessageFor renders the client-facing error text for err.
func MessageFor(err error) string {
	var de *dispatch.Error
	if !errors.As(err, &de) {
		return "AI service error: " + err.Error()
	}

	switch de.Kind {
	case dispatch.ContentBlocked:
		return "Content blocked by safety filters"
	case dispatch.UpstreamUnavailable:
		return "Failed to connect to AI service"
	case dispatch.InvalidInput:
		// Set only when the provider rejected the request.
		if de.Provider != "" {
			return "Invalid value: " + de.Message
		}
		return de.Message
	case dispatch.InvalidProvider:
		return de.Message
	default:
		return "AI service error: " + de.Message
	}
}
