package handlers

// issue.go implements the POST /api/v1/certificates endpoint.

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/academic-credentials-network/certreg/internal/api"
	"github.com/academic-credentials-network/certreg/internal/issuance"
	"github.com/academic-credentials-network/certreg/internal/logger"
)

// Issuer runs an issuance request end to end. Implemented by *issuance.Service.
type Issuer interface {
	Issue(ctx context.Context, req issuance.Request) (*issuance.Result, error)
}

// IssueHandler handles POST /api/v1/certificates requests.
type IssueHandler struct {
	issuer Issuer
}

// NewIssueHandler creates a new handler for certificate issuance.
func NewIssueHandler(issuer Issuer) *IssueHandler {
	return &IssueHandler{issuer: issuer}
}

// HandleIssue godoc
//
//	@Summary		Issue a certificate
//	@Description	Registers an academic certificate: the uploaded file is fingerprinted (SHA-256),
//	@Description	pinned to the content store, and recorded against the student in one transaction.
//	@Description
//	@Description	The `certificateId` must be unique, as must the file contents: re-submitting a file
//	@Description	that has already been registered is rejected with a 409.
//	@Description
//	@Description	`dateOfBirth` and `graduationDate` are optional and must be `YYYY-MM-DD` when supplied.
//
//	@Tags			Certificates
//	@Accept			mpfd
//	@Produce		json
//
//	@Param			file				formData	file	true	"certificate file"
//	@Param			certificateId		formData	string	true	"unique certificate identifier"
//	@Param			studentIdentifier	formData	string	true	"student natural key"
//	@Param			studentFullName		formData	string	true	"student full name"
//	@Param			gender				formData	string	false	"student gender"
//	@Param			dateOfBirth			formData	string	false	"student date of birth (YYYY-MM-DD)"
//	@Param			degreeName			formData	string	true	"degree name"
//	@Param			graduationDate		formData	string	false	"graduation date (YYYY-MM-DD)"
//	@Param			universityName		formData	string	true	"issuing university"
//
//	@Success		201	{object}	api.IssuanceResponse	"Certificate issued"
//	@Failure		400	{object}	api.ErrorResponse		"Invalid or malformed request"
//	@Failure		409	{object}	api.ErrorResponse		"Duplicate certificate id or file contents"
//	@Failure		502	{object}	api.ErrorResponse		"Content store unavailable"
//
//	@Router			/api/v1/certificates [post]
func (h *IssueHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
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

	req := issuance.Request{
		CertificateID:     r.FormValue("certificateId"),
		StudentIdentifier: r.FormValue("studentIdentifier"),
		StudentFullName:   r.FormValue("studentFullName"),
		Gender:            r.FormValue("gender"),
		DateOfBirth:       r.FormValue("dateOfBirth"),
		DegreeName:        r.FormValue("degreeName"),
		GraduationDate:    r.FormValue("graduationDate"),
		UniversityName:    r.FormValue("universityName"),
		File:              file,
	}

	result, err := h.issuer.Issue(ctx, req)
	if err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	logger.ContextWithLogAttrs(ctx,
		slog.String("certificate_id", result.CertificateID),
		slog.String("content_fingerprint", result.ContentFingerprint),
	)

	api.RespondWithJSONPayload(w, http.StatusCreated, api.IssuanceResponse{
		CertificateID:      result.CertificateID,
		ContentAddress:     result.ContentAddress,
		ContentFingerprint: result.ContentFingerprint,
		IssuedAt:           result.IssuedAt,
	})
}
