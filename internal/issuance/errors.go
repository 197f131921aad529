package issuance

// errors.go defines the failure taxonomy for certificate issuance. Every
// failure kind is surfaced distinctly so the API layer can render a specific
// message; nothing is retried or corrected here.

import "fmt"

// Error represents a structured error from the issuance package.
type Error struct {
	// code classifies the failure
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

type ErrorCode string

const (
	// ErrCodeInvalidRequest is used for missing or malformed input,
	// including an unreadable upload stream. Local, never retried.
	ErrCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrCodeContentStore is used when the external pin failed (network,
	// auth, quota). Retry policy is the caller's choice; no persistence has
	// happened when this is returned.
	ErrCodeContentStore ErrorCode = "content_store_failure"

	// ErrCodeDuplicateCertificateID is a business conflict: the issuer
	// reused a certificate id. Not a transient fault; must not be retried.
	ErrCodeDuplicateCertificateID ErrorCode = "duplicate_certificate_id"

	// ErrCodeDuplicateFingerprint is a business conflict: identical file
	// content is already registered under a different certificate id.
	ErrCodeDuplicateFingerprint ErrorCode = "duplicate_fingerprint"

	// ErrCodePersistence is used for transaction or connection errors that
	// are not business conflicts.
	ErrCodePersistence ErrorCode = "persistence_failure"
)

// NewInvalidRequestError creates an error for missing or malformed input.
func NewInvalidRequestError(msg string) error {
	return &Error{code: ErrCodeInvalidRequest, message: msg}
}

// WrapInvalidRequestError wraps an existing error as an invalid request error.
func WrapInvalidRequestError(err error, msg string) error {
	return &Error{code: ErrCodeInvalidRequest, message: msg, wrapped: err}
}

// WrapContentStoreError wraps a pinning failure.
func WrapContentStoreError(err error, msg string) error {
	return &Error{code: ErrCodeContentStore, message: msg, wrapped: err}
}

// WrapDuplicateCertificateIDError wraps a duplicate certificate id conflict.
func WrapDuplicateCertificateIDError(err error, msg string) error {
	return &Error{code: ErrCodeDuplicateCertificateID, message: msg, wrapped: err}
}

// WrapDuplicateFingerprintError wraps a duplicate fingerprint conflict.
func WrapDuplicateFingerprintError(err error, msg string) error {
	return &Error{code: ErrCodeDuplicateFingerprint, message: msg, wrapped: err}
}

// WrapPersistenceError wraps a non-conflict storage failure.
func WrapPersistenceError(err error, msg string) error {
	return &Error{code: ErrCodePersistence, message: msg, wrapped: err}
}
