package web

import (
	"pinatatracks/pkg/models"
)

// Stable machine-readable error codes.
const (
	CodeMissingCredential   = "missing_credential"
	CodeUpstreamFailed      = "upstream_failed"
	CodeUpstreamTimeout     = "upstream_timeout"
	CodeUpstreamUnreachable = "upstream_unreachable"
	CodeDecodeFailed        = "decode_failed"
	CodeMethodNotAllowed    = "method_not_allowed"
	CodeInternal            = "internal_error"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type TracksResponse struct {
	Tracks []models.Track `json:"tracks"`
}

// ErrorResponse is the body of every failed tracks request. Details is only
// set when Pinata itself rejected the call.
type ErrorResponse struct {
	Error   string  `json:"error"`
	Code    string  `json:"code"`
	Details *string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status               string `json:"status"`
	CredentialConfigured bool   `json:"credential_configured"`
}

func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: message,
		Code:  code,
	}
}

func NewUpstreamErrorResponse(details string) ErrorResponse {
	return ErrorResponse{
		Error:   "Pinata request failed",
		Code:    CodeUpstreamFailed,
		Details: &details,
	}
}
