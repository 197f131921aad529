package handlers

// verify.go implements the POST /api/v1/verifications endpoint.

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/academic-credentials-network/certreg/internal/api"
	"github.com/academic-credentials-network/certreg/internal/logger"
	"github.com/academic-credentials-network/certreg/internal/verification"
)

// Verifier checks a presented file against the registry. Implemented by
// *verification.Service.
type Verifier interface {
	Verify(ctx context.Context, file io.Reader) (*verification.Result, error)
}

// VerifyHandler handles POST /api/v1/verifications requests.
type VerifyHandler struct {
	verifier Verifier
}

// NewVerifyHandler creates a new handler for certificate verification.
func NewVerifyHandler(verifier Verifier) *VerifyHandler {
	return &VerifyHandler{verifier: verifier}
}

// HandleVerify godoc
//
//	@Summary		Verify a certificate file
//	@Description	Fingerprints the uploaded file and reports whether it matches a registered
//	@Description	certificate. Verification is exact: any modification to the file, however small,
//	@Description	produces a non-match.
//	@Description
//	@Description	A non-match is a normal 200 response with `matched: false`, not an error.
//
//	@Tags			Verifications
//	@Accept			mpfd
//	@Produce		json
//
//	@Param			file	formData	file	true	"file to verify"
//
//	@Success		200	{object}	api.VerificationResponse	"Verification outcome"
//	@Failure		400	{object}	api.ErrorResponse			"Missing or unreadable file"
//	@Failure		500	{object}	api.ErrorResponse			"Registry lookup failed"
//
//	@Router			/api/v1/verifications [post]
func (h *VerifyHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqLogger := logger.ContextRequestLogger(ctx)

	file, _, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			api.RespondWithErrorResponse(w, r, api.NewMalformedRequestError("file part is required"))
			return
		}
		reqLogger.Warn("Failed to parse multipart form", slog.String("error", err.Error()))
		api.RespondWithErrorResponse(w, r, api.WrapMalformedRequestError(err, "failed to parse multipart form"))
		return
	}
	defer file.Close()

	result, err := h.verifier.Verify(ctx, file)
	if err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	logger.ContextWithLogAttrs(ctx,
		slog.String("content_fingerprint", result.ContentFingerprint),
		slog.Bool("matched", result.Matched),
	)

	response := api.VerificationResponse{Matched: result.Matched}
	if result.Certificate != nil {
		cert := api.NewCertificateResponse(*result.Certificate)
		response.Certificate = &cert
	}

	api.RespondWithJSONPayload(w, http.StatusOK, response)
}
