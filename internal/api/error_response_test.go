package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/academic-credentials-network/certreg/internal/issuance"
	"github.com/academic-credentials-network/certreg/internal/verification"
)

func TestMapErrorToResponse(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   ErrorCode
	}{
		{
			name:       "issuance invalid request",
			err:        issuance.NewInvalidRequestError("certificateId is required"),
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeInvalidRequest,
		},
		{
			name:       "issuance content store failure",
			err:        issuance.WrapContentStoreError(errors.New("connection refused"), "failed to pin certificate file"),
			wantStatus: http.StatusBadGateway,
			wantCode:   ErrCodeContentStoreFailure,
		},
		{
			name:       "issuance duplicate certificate id",
			err:        issuance.WrapDuplicateCertificateIDError(errors.New("unique violation"), "certificate id already registered"),
			wantStatus: http.StatusConflict,
			wantCode:   ErrCodeDuplicateCertificateID,
		},
		{
			name:       "issuance duplicate fingerprint",
			err:        issuance.WrapDuplicateFingerprintError(errors.New("unique violation"), "content already registered"),
			wantStatus: http.StatusConflict,
			wantCode:   ErrCodeDuplicateFingerprint,
		},
		{
			name:       "issuance persistence failure",
			err:        issuance.WrapPersistenceError(errors.New("tx aborted"), "failed to persist certificate"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodePersistenceFailure,
		},
		{
			name:       "verification unreadable file",
			err:        verification.NewUnreadableFileError("no file presented"),
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeInvalidRequest,
		},
		{
			name:       "verification lookup failure",
			err:        verification.WrapLookupError(errors.New("connection refused"), "registry lookup failed"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeVerificationFailure,
		},
		{
			name:       "malformed request",
			err:        NewMalformedRequestError("missing file part"),
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeMalformedRequest,
		},
		{
			name:       "not found",
			err:        NewNotFoundError("certificate not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   ErrCodeNotFound,
		},
		{
			name:       "rate limit",
			err:        NewRateLimitError("too many requests"),
			wantStatus: http.StatusTooManyRequests,
			wantCode:   ErrCodeRateLimitExceeded,
		},
		{
			name:       "request too large",
			err:        NewRequestTooLargeError("body too large"),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   ErrCodeRequestTooLarge,
		},
		{
			name:       "unmapped error falls back to internal",
			err:        errors.New("something unexpected"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/v1/certificates", nil)

			resp := MapErrorToResponse(tt.err, r)

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if resp.ErrorCode != tt.wantCode {
				t.Errorf("ErrorCode = %v, want %v", resp.ErrorCode, tt.wantCode)
			}
			if resp.ErrorDateTime == "" {
				t.Error("ErrorDateTime not set")
			}
		})
	}
}

func TestMapErrorToResponseKeepsDuplicatesDistinct(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/certificates", nil)

	dupID := MapErrorToResponse(issuance.WrapDuplicateCertificateIDError(errors.New("x"), "dup id"), r)
	dupFP := MapErrorToResponse(issuance.WrapDuplicateFingerprintError(errors.New("x"), "dup fp"), r)

	if dupID.ErrorCode == dupFP.ErrorCode {
		t.Error("duplicate id and duplicate fingerprint must map to distinct error codes")
	}
}
