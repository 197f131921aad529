package handlers

// certificates.go implements the read path: fetch a certificate by id and
// list a student's certificates.

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/academic-credentials-network/certreg/internal/api"
	"github.com/academic-credentials-network/certreg/internal/registry"
)

// RegistryReader is the read-only registry surface used by the read path.
// Implemented by *registry.Store.
type RegistryReader interface {
	GetCertificate(ctx context.Context, certificateID string) (registry.Certificate, error)
	ListCertificatesByStudent(ctx context.Context, studentIdentifier string) ([]registry.Certificate, error)
}

// HandleGetCertificate godoc
//
//	@Summary		Get a certificate
//	@Description	Returns the registered certificate record for the given certificate id.
//	@Tags			Certificates
//	@Produce		json
//	@Param			certificateId	path		string	true	"certificate id"
//	@Success		200				{object}	api.CertificateResponse
//	@Failure		404				{object}	api.ErrorResponse	"Unknown certificate id"
//	@Router			/api/v1/certificates/{certificateId} [get]
func HandleGetCertificate(store RegistryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificateID := chi.URLParam(r, "certificateId")
		if certificateID == "" {
			api.RespondWithErrorResponse(w, r, api.NewMalformedRequestError("certificateId is required"))
			return
		}

		cert, err := store.GetCertificate(r.Context(), certificateID)
		if err != nil {
			if errors.Is(err, registry.ErrCertificateNotFound) {
				api.RespondWithErrorResponse(w, r, api.NewNotFoundError("certificate not found"))
				return
			}
			api.RespondWithErrorResponse(w, r, api.WrapInternalError(err, "failed to load certificate"))
			return
		}

		api.RespondWithJSONPayload(w, http.StatusOK, api.NewCertificateResponse(cert))
	}
}

// HandleListStudentCertificates godoc
//
//	@Summary		List a student's certificates
//	@Description	Returns every certificate registered against the given student identifier,
//	@Description	most recently issued first. An unknown student yields an empty list.
//	@Tags			Students
//	@Produce		json
//	@Param			studentIdentifier	path		string	true	"student identifier"
//	@Success		200					{object}	api.CertificateListResponse
//	@Router			/api/v1/students/{studentIdentifier}/certificates [get]
func HandleListStudentCertificates(store RegistryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentIdentifier := chi.URLParam(r, "studentIdentifier")
		if studentIdentifier == "" {
			api.RespondWithErrorResponse(w, r, api.NewMalformedRequestError("studentIdentifier is required"))
			return
		}

		certs, err := store.ListCertificatesByStudent(r.Context(), studentIdentifier)
		if err != nil {
			api.RespondWithErrorResponse(w, r, api.WrapInternalError(err, "failed to list certificates"))
			return
		}

		response := api.CertificateListResponse{
			StudentIdentifier: studentIdentifier,
			Certificates:      make([]api.CertificateResponse, 0, len(certs)),
		}
		for _, cert := range certs {
			response.Certificates = append(response.Certificates, api.NewCertificateResponse(cert))
		}

		api.RespondWithJSONPayload(w, http.StatusOK, response)
	}
}
