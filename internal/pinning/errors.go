package pinning

import "fmt"

// PinError represents a structured error from the pinning package.
type PinError struct {
	// code classifies the failure
	code ErrorCode

	// message is a human-readable error message
	message string

	// wrapped is the optional underlying error
	wrapped error
}

func (e *PinError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *PinError) Code() ErrorCode { return e.code }
func (e *PinError) Unwrap() error   { return e.wrapped }

type ErrorCode string

const (
	// ErrCodeAuth is used when the pinning API rejects our credentials.
	ErrCodeAuth ErrorCode = "auth"

	// ErrCodeQuota is used when the store rejects the content for quota or
	// size-limit reasons. Retrying the same content will not help, so this
	// is fatal for the issuance attempt.
	ErrCodeQuota ErrorCode = "quota"

	// ErrCodeUnavailable is used for network errors and 5xx responses from
	// the pinning API. Retry policy is the caller's choice.
	ErrCodeUnavailable ErrorCode = "unavailable"

	// ErrCodeBadResponse is used when the pinning API responds with a body
	// we cannot interpret (missing content address, invalid JSON).
	ErrCodeBadResponse ErrorCode = "bad_response"
)

// NewAuthError creates an error for rejected pinning credentials.
func NewAuthError(msg string) error {
	return &PinError{code: ErrCodeAuth, message: msg}
}

// NewQuotaError creates an error for quota or size-limit rejections.
func NewQuotaError(msg string) error {
	return &PinError{code: ErrCodeQuota, message: msg}
}

// NewUnavailableError creates an error for an unreachable or failing store.
func NewUnavailableError(msg string) error {
	return &PinError{code: ErrCodeUnavailable, message: msg}
}

// WrapUnavailableError wraps an existing error as an unavailable-store error.
func WrapUnavailableError(err error, msg string) error {
	return &PinError{code: ErrCodeUnavailable, message: msg, wrapped: err}
}

// NewBadResponseError creates an error for an uninterpretable store response.
func NewBadResponseError(msg string) error {
	return &PinError{code: ErrCodeBadResponse, message: msg}
}

// WrapBadResponseError wraps an existing error as a bad-response error.
func WrapBadResponseError(err error, msg string) error {
	return &PinError{code: ErrCodeBadResponse, message: msg, wrapped: err}
}
