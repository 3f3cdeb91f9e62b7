package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a specific error type for graph-engine requests.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeRateLimitExceeded indicates rate limit has been exceeded.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeStoreUnavailable indicates the interaction store cannot be reached.
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	// ErrCodeBuildFailed indicates graph construction failed mid-request.
	ErrCodeBuildFailed ErrorCode = "BUILD_FAILED"
	// ErrCodeContextCanceled indicates the operation was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
)

// RequestError represents a structured error for one engine request.
type RequestError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the code onto an HTTP response status.
func (e *RequestError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case ErrCodeContextCanceled:
		return http.StatusRequestTimeout
	case ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Convenience constructors for common error types.

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *RequestError {
	return &RequestError{Code: ErrCodeInvalidArgument, Message: msg}
}

// RateLimitExceeded creates a rate limit exceeded error.
func RateLimitExceeded(msg string) *RequestError {
	return &RequestError{Code: ErrCodeRateLimitExceeded, Message: msg}
}

// StoreUnavailable creates a store unavailable error.
func StoreUnavailable(cause error) *RequestError {
	return &RequestError{Code: ErrCodeStoreUnavailable, Message: "interaction store unavailable", Cause: cause}
}

// BuildFailed creates a graph construction failure.
func BuildFailed(cause error) *RequestError {
	return &RequestError{Code: ErrCodeBuildFailed, Message: "graph construction failed", Cause: cause}
}

// ContextCanceled creates a context canceled error.
func ContextCanceled(cause error) *RequestError {
	return &RequestError{Code: ErrCodeContextCanceled, Message: "operation canceled", Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if reqErr, ok := err.(*RequestError); ok {
		return reqErr.Code == code
	}
	return false
}
