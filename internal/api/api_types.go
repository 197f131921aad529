package api

// api_types.go defines the request and response payloads for the registry API.

import (
	"time"

	"github.com/academic-credentials-network/certreg/internal/registry"
)

// dateLayout renders the optional date fields in responses.
const dateLayout = "2006-01-02"

// IssuanceResponse is returned when a certificate is successfully issued.
type IssuanceResponse struct {
	CertificateID      string    `json:"certificate_id" example:"cert-1"`
	ContentAddress     string    `json:"content_address" example:"QmS4ustL54uo8FzR9455qaxZwuMiUhyvMcX9Ba8nUH4uVv"`
	ContentFingerprint string    `json:"content_fingerprint" example:"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"`
	IssuedAt           time.Time `json:"issued_at" example:"2026-06-30T12:00:00Z"`
}

// CertificateResponse is the full certificate record as stored.
type CertificateResponse struct {
	CertificateID      string    `json:"certificate_id" example:"cert-1"`
	StudentIdentifier  string    `json:"student_identifier" example:"S1"`
	DegreeName         string    `json:"degree_name" example:"BSc Mathematics"`
	UniversityName     string    `json:"university_name" example:"University of Example"`
	GraduationDate     *string   `json:"graduation_date,omitempty" example:"2022-06-30"`
	ContentAddress     string    `json:"content_address" example:"QmS4ustL54uo8FzR9455qaxZwuMiUhyvMcX9Ba8nUH4uVv"`
	ContentFingerprint string    `json:"content_fingerprint" example:"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"`
	IssuedAt           time.Time `json:"issued_at" example:"2026-06-30T12:00:00Z"`
}

// VerificationResponse reports whether the presented file matches an issued
// certificate. Certificate is present only when Matched is true.
type VerificationResponse struct {
	Matched     bool                 `json:"matched" example:"true"`
	Certificate *CertificateResponse `json:"certificate,omitempty"`
}

// CertificateListResponse lists a student's certificates.
type CertificateListResponse struct {
	StudentIdentifier string                `json:"student_identifier" example:"S1"`
	Certificates      []CertificateResponse `json:"certificates"`
}

// NewCertificateResponse converts a registry row to its API representation.
func NewCertificateResponse(cert registry.Certificate) CertificateResponse {
	resp := CertificateResponse{
		CertificateID:      cert.CertificateID,
		StudentIdentifier:  cert.StudentIdentifier,
		DegreeName:         cert.DegreeName,
		UniversityName:     cert.UniversityName,
		ContentAddress:     cert.ContentAddress,
		ContentFingerprint: cert.ContentFingerprint,
		IssuedAt:           cert.IssuedAt,
	}
	if cert.GraduationDate != nil {
		formatted := cert.GraduationDate.Format(dateLayout)
		resp.GraduationDate = &formatted
	}
	return resp
}
