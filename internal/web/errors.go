package web

import (
	"context"
	"errors"
	"net"
	"net/http"

	"pinatatracks/internal/pinata"
)

// classifyError maps a failed Pinata call to the status and body returned
// to the player.
func classifyError(err error) (int, ErrorResponse) {
	var reqErr *pinata.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode, NewUpstreamErrorResponse(reqErr.Body)
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return http.StatusInternalServerError, NewErrorResponse(CodeUpstreamTimeout, "Pinata request timed out")
	case errors.Is(err, pinata.ErrTransport):
		return http.StatusInternalServerError, NewErrorResponse(CodeUpstreamUnreachable, "Pinata is unreachable: "+err.Error())
	case errors.Is(err, pinata.ErrDecode):
		return http.StatusInternalServerError, NewErrorResponse(CodeDecodeFailed, "Pinata returned an invalid response: "+err.Error())
	default:
		return http.StatusInternalServerError, NewErrorResponse(CodeInternal, err.Error())
	}
}
