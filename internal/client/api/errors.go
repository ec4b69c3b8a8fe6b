package api

import "errors"

// Kind is the machine-checkable classification of a pipeline failure.
type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindRateLimited  Kind = "rate_limited"
	KindServer       Kind = "server_error"
	KindTimeout      Kind = "timeout"
	KindNetwork      Kind = "network"
	KindMalformed    Kind = "malformed_response"
	KindValidation   Kind = "validation"
	KindRequest      Kind = "request_failed"
)

// Human messages surfaced for classified failures.
const (
	MsgUnauthorized = "Unauthorized. Please login again."
	MsgForbidden    = "You do not have permission to perform this action."
	MsgRateLimited  = "Too many requests. Please try again later."
	MsgServer       = "Server error. Please try again later."
	MsgTimeout      = "Request timeout. Please check your connection."
	MsgNetwork      = "Network error. Please check your connection."
)

// Error is a classified pipeline failure: a human-readable message plus the
// original HTTP status (0 when no response was received).
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewMalformed builds a MalformedResponse error for replies that arrived but
// are missing required fields.
func NewMalformed(msg string) *Error {
	return &Error{Kind: KindMalformed, Message: msg}
}

// NewValidation builds a local validation error; these never reach the network.
func NewValidation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// IsKind reports whether err is a pipeline error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
