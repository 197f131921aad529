package api

// errors.go defines transport-level error codes used by the registry API.
// Domain failures (issuance, verification, pinning) carry their own error
// types; error_response.go maps all of them onto API responses.

import "fmt"

// Error represents a structured transport-level error from the api package.
type Error struct {
	// code is the API error code
	code ErrorCode

	// message is a human-readable error message
	message string

	// wrapped is the optional underlying error
	wrapped error
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *Error) Code() ErrorCode { return e.code }
func (e *Error) Unwrap() error   { return e.wrapped }

// ErrorCode identifies the failure kind in API error responses.
type ErrorCode string

const (
	// Error codes forwarded from the issuance and verification services.
	ErrCodeInvalidRequest         ErrorCode = "invalid_request"
	ErrCodeContentStoreFailure    ErrorCode = "content_store_failure"
	ErrCodeDuplicateCertificateID ErrorCode = "duplicate_certificate_id"
	ErrCodeDuplicateFingerprint   ErrorCode = "duplicate_fingerprint"
	ErrCodePersistenceFailure     ErrorCode = "persistence_failure"
	ErrCodeVerificationFailure    ErrorCode = "verification_failure"

	// Transport-level error codes.
	ErrCodeMalformedRequest  ErrorCode = "malformed_request"
	ErrCodeNotFound          ErrorCode = "not_found"
	ErrCodeRateLimitExceeded ErrorCode = "rate_limit_exceeded"
	ErrCodeRequestTooLarge   ErrorCode = "request_too_large"
	ErrCodeInternalError     ErrorCode = "internal_error"
)

// NewMalformedRequestError creates an error for requests that cannot be
// parsed (bad multipart body, missing file part).
func NewMalformedRequestError(msg string) error {
	return &Error{code: ErrCodeMalformedRequest, message: msg}
}

// WrapMalformedRequestError wraps an existing error as a malformed request error.
func WrapMalformedRequestError(err error, msg string) error {
	return &Error{code: ErrCodeMalformedRequest, message: msg, wrapped: err}
}

// NewNotFoundError creates an error for lookups that matched nothing.
func NewNotFoundError(msg string) error {
	return &Error{code: ErrCodeNotFound, message: msg}
}

// NewRateLimitError creates a rate limit exceeded error.
// Use this when the client has exceeded the rate limit.
func NewRateLimitError(msg string) error {
	return &Error{code: ErrCodeRateLimitExceeded, message: msg}
}

// NewRequestTooLargeError creates a request too large error.
// Use this when the request body exceeds the maximum allowed size.
func NewRequestTooLargeError(msg string) error {
	return &Error{code: ErrCodeRequestTooLarge, message: msg}
}

// NewInternalError creates an internal error for unexpected failures.
func NewInternalError(msg string) error {
	return &Error{code: ErrCodeInternalError, message: msg}
}

// WrapInternalError wraps an existing error as an internal error.
func WrapInternalError(err error, msg string) error {
	return &Error{code: ErrCodeInternalError, message: msg, wrapped: err}
}
