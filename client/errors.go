package client

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrTransport indicates the request was not sent or no response arrived.
	ErrTransport = errors.New("transport error")

	// ErrService indicates the server responded with a non-success status.
	ErrService = errors.New("service error")

	// ErrInternal indicates a body could not be encoded or decoded.
	ErrInternal = errors.New("internal error")
)

// TransportError wraps a failure of the Client.
type TransportError struct {
	// Method is the HTTP method of the failed request
	Method string
	// Path is the path template of the failed request
	Path string
	// Cause is the error returned by the Client
	Cause error
}

// Error returns a human-readable error message.
func (e *TransportError) Error() string {
	msg := "transport error"
	if e.Method != "" || e.Path != "" {
		msg += fmt.Sprintf(" for %s %s", e.Method, e.Path)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// ServiceError is a non-success response. The body is not interpreted as the
// endpoint's return type; the Conjure error envelope fields are filled when
// the body holds one.
type ServiceError struct {
	// StatusCode is the HTTP status of the response
	StatusCode int
	// Body is the raw response body
	Body []byte
	// ErrorCode is the Conjure error code (e.g. "NOT_FOUND"), if present
	ErrorCode string
	// ErrorName is the Conjure error name (e.g. "Thing:NotFound"), if present
	ErrorName string
	// ErrorInstanceID identifies this occurrence of the error, if present
	ErrorInstanceID string
}

// Error returns a human-readable error message.
func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("service error: status %d", e.StatusCode)
	if e.ErrorName != "" {
		msg += ": " + e.ErrorName
		if e.ErrorCode != "" {
			msg += " (" + e.ErrorCode + ")"
		}
	}
	if e.ErrorInstanceID != "" {
		msg += " [" + e.ErrorInstanceID + "]"
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ServiceError) Is(target error) bool {
	return target == ErrService
}

// InternalError is a failure to encode a request body or decode a
// successful response body.
type InternalError struct {
	// Op describes what was being done
	Op string
	// Cause is the codec error
	Cause error
}

// Error returns a human-readable error message.
func (e *InternalError) Error() string {
	msg := "internal error"
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *InternalError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}
