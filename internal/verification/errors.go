package verification

import "fmt"

// Error represents a structured error from the verification package.
// A "not found" outcome is not an Error; it is reported via Result.Matched.
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
	// ErrCodeUnreadableFile is used when the presented byte stream cannot
	// be fully consumed (truncated upload, I/O error). This is a failed
	// verification attempt, never a non-match.
	ErrCodeUnreadableFile ErrorCode = "unreadable_file"

	// ErrCodeLookup is used for registry read-path failures. Operational,
	// distinct from the normal negative result.
	ErrCodeLookup ErrorCode = "lookup_failure"
)

// NewUnreadableFileError creates an error for an unusable presented file.
func NewUnreadableFileError(msg string) error {
	return &Error{code: ErrCodeUnreadableFile, message: msg}
}

// WrapUnreadableFileError wraps a read failure of the presented file.
func WrapUnreadableFileError(err error, msg string) error {
	return &Error{code: ErrCodeUnreadableFile, message: msg, wrapped: err}
}

// WrapLookupError wraps a registry read-path failure.
func WrapLookupError(err error, msg string) error {
	return &Error{code: ErrCodeLookup, message: msg, wrapped: err}
}
