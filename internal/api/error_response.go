package api

// error_response.go maps domain errors (issuance, verification, transport)
// to the registry API error response format returned to the client.

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/academic-credentials-network/certreg/internal/issuance"
	"github.com/academic-credentials-network/certreg/internal/logger"
	"github.com/academic-credentials-network/certreg/internal/verification"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrorResponse is the error payload returned by the registry API.
type ErrorResponse struct {

	// The HTTP status code returned
	StatusCode int `json:"status_code" example:"409"`

	// A stable machine-readable code identifying the failure kind
	ErrorCode ErrorCode `json:"error_code" example:"duplicate_certificate_id"`

	// A human-readable description of the failure
	Message string `json:"message" example:"certificate id already registered"`

	// A unique identifier for the HTTP request, for support correlation
	RequestID string `json:"request_id,omitempty"`

	// The DateTime corresponding to the error occurring
	ErrorDateTime string `json:"error_date_time" example:"2026-06-30T12:00:00Z"`
}

// MapErrorToResponse maps issuance.Error, verification.Error, api.Error, or
// generic errors to an API error response.
//
// The full error message is kept for the response body (this is a demo
// registry; messages contain no secrets), and the mapping establishes the
// HTTP status code for the failure kind.
func MapErrorToResponse(err error, r *http.Request) *ErrorResponse {
	requestID := middleware.GetReqID(r.Context())

	// Try the most specific error types first
	var issErr *issuance.Error
	if errors.As(err, &issErr) {
		return errorResponseFromIssuance(issErr, requestID)
	}

	var verErr *verification.Error
	if errors.As(err, &verErr) {
		return errorResponseFromVerification(verErr, requestID)
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return errorResponseFromAPI(apiErr, requestID)
	}

	// fallback - not expected; log the unmapped error and return an
	// internal error response
	reqLogger := logger.ContextRequestLogger(r.Context())
	reqLogger.Error("BUG: Unmapped error type in MapErrorToResponse",
		slog.String("error_type", fmt.Sprintf("%T", err)),
		slog.String("error", err.Error()),
		slog.String("request_id", requestID),
	)
	return newErrorResponse(http.StatusInternalServerError, ErrCodeInternalError, "An internal error occurred", requestID)
}

// errorResponseFromIssuance maps the issuance taxonomy to HTTP responses.
func errorResponseFromIssuance(err *issuance.Error, requestID string) *ErrorResponse {
	var statusCode int
	var errorCode ErrorCode

	switch err.Code() {
	case issuance.ErrCodeInvalidRequest:
		statusCode = http.StatusBadRequest
		errorCode = ErrCodeInvalidRequest
	case issuance.ErrCodeContentStore:
		statusCode = http.StatusBadGateway
		errorCode = ErrCodeContentStoreFailure
	case issuance.ErrCodeDuplicateCertificateID:
		statusCode = http.StatusConflict
		errorCode = ErrCodeDuplicateCertificateID
	case issuance.ErrCodeDuplicateFingerprint:
		statusCode = http.StatusConflict
		errorCode = ErrCodeDuplicateFingerprint
	case issuance.ErrCodePersistence:
		statusCode = http.StatusInternalServerError
		errorCode = ErrCodePersistenceFailure
	default:
		statusCode = http.StatusInternalServerError
		errorCode = ErrCodeInternalError
	}

	return newErrorResponse(statusCode, errorCode, err.Error(), requestID)
}

// errorResponseFromVerification maps verification failures to HTTP responses.
// A non-match is not an error and never reaches this mapping.
func errorResponseFromVerification(err *verification.Error, requestID string) *ErrorResponse {
	var statusCode int
	var errorCode ErrorCode

	switch err.Code() {
	case verification.ErrCodeUnreadableFile:
		statusCode = http.StatusBadRequest
		errorCode = ErrCodeInvalidRequest
	case verification.ErrCodeLookup:
		statusCode = http.StatusInternalServerError
		errorCode = ErrCodeVerificationFailure
	default:
		statusCode = http.StatusInternalServerError
		errorCode = ErrCodeInternalError
	}

	return newErrorResponse(statusCode, errorCode, err.Error(), requestID)
}

// errorResponseFromAPI maps transport-level errors to HTTP responses.
func errorResponseFromAPI(err *Error, requestID string) *ErrorResponse {
	var statusCode int

	switch err.Code() {
	case ErrCodeMalformedRequest:
		statusCode = http.StatusBadRequest
	case ErrCodeNotFound:
		statusCode = http.StatusNotFound
	case ErrCodeRateLimitExceeded:
		statusCode = http.StatusTooManyRequests
	case ErrCodeRequestTooLarge:
		statusCode = http.StatusRequestEntityTooLarge
	default:
		statusCode = http.StatusInternalServerError
	}

	return newErrorResponse(statusCode, err.Code(), err.Error(), requestID)
}

func newErrorResponse(statusCode int, errorCode ErrorCode, message, requestID string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode:    statusCode,
		ErrorCode:     errorCode,
		Message:       message,
		RequestID:     requestID,
		ErrorDateTime: time.Now().UTC().Format(time.RFC3339),
	}
}
