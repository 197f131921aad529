// Package issuance orchestrates certificate registration: fingerprint the
// uploaded file, pin it to the external content store, then persist the
// student and certificate rows as one transaction.
//
// The pin happens before the transaction on purpose. The external store has
// no compensating rollback, so a successful pin followed by a DB failure
// leaves only an orphaned blob (harmless in a content-addressed store),
// whereas committing the DB first could leave the registry referencing
// content that was never stored.
package issuance

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/academic-credentials-network/certreg/internal/fingerprint"
	"github.com/academic-credentials-network/certreg/internal/pinning"
	"github.com/academic-credentials-network/certreg/internal/registry"
)

// Recorder persists an issuance atomically (student upsert + certificate
// insert in one transaction). Implemented by *registry.Store.
type Recorder interface {
	RecordIssuance(ctx context.Context, student registry.StudentUpsert, cert registry.NewCertificate) (registry.Certificate, error)
}

// Result is returned to the caller on successful issuance.
type Result struct {
	CertificateID      string
	ContentAddress     string
	ContentFingerprint string
	IssuedAt           time.Time
}

// Service issues certificates. Construct with NewService; each instance
// carries its own injected dependencies, there is no ambient global state.
type Service struct {
	pinner pinning.Service
	store  Recorder
	logger *slog.Logger
}

// NewService creates an issuance service.
func NewService(pinner pinning.Service, store Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		pinner: pinner,
		store:  store,
		logger: logger,
	}
}

// Issue runs one issuance request: validate, fingerprint, pin, persist.
// The steps are strictly sequential; a failure at any step aborts the
// request and leaves no partial database state.
func (s *Service) Issue(ctx context.Context, req Request) (*Result, error) {
	dates, err := req.validate()
	if err != nil {
		return nil, err
	}

	// Fingerprint while buffering so the pinned bytes are exactly the bytes
	// that were hashed. The buffer is bounded by the transport's upload
	// size limit.
	var content bytes.Buffer
	digest, err := fingerprint.Compute(io.TeeReader(req.File, &content))
	if err != nil {
		return nil, WrapInvalidRequestError(err, "failed to read certificate file")
	}

	address, err := s.pinner.Pin(ctx, &content, req.CertificateID)
	if err != nil {
		return nil, WrapContentStoreError(err, "failed to pin certificate file")
	}

	s.logger.Debug("certificate file pinned",
		slog.String("certificate_id", req.CertificateID),
		slog.String("content_address", address),
		slog.String("content_fingerprint", digest),
	)

	cert, err := s.store.RecordIssuance(ctx,
		registry.StudentUpsert{
			StudentIdentifier: req.StudentIdentifier,
			FullName:          req.StudentFullName,
			Gender:            req.Gender,
			DateOfBirth:       dates.dateOfBirth,
		},
		registry.NewCertificate{
			CertificateID:      req.CertificateID,
			StudentIdentifier:  req.StudentIdentifier,
			DegreeName:         req.DegreeName,
			UniversityName:     req.UniversityName,
			GraduationDate:     dates.graduationDate,
			ContentAddress:     address,
			ContentFingerprint: digest,
		},
	)
	if err != nil {
		return nil, s.classifyRecordError(err)
	}

	s.logger.Info("certificate issued",
		slog.String("certificate_id", cert.CertificateID),
		slog.String("student_identifier", cert.StudentIdentifier),
		slog.String("content_address", cert.ContentAddress),
	)

	return &Result{
		CertificateID:      cert.CertificateID,
		ContentAddress:     cert.ContentAddress,
		ContentFingerprint: cert.ContentFingerprint,
		IssuedAt:           cert.IssuedAt,
	}, nil
}

// classifyRecordError maps registry failures onto the issuance taxonomy by
// the constraint that was violated. Both duplicate kinds are business
// conflicts: the losing side of a race gets one of these and must not retry.
func (s *Service) classifyRecordError(err error) error {
	switch {
	case errors.Is(err, registry.ErrDuplicateCertificateID):
		return WrapDuplicateCertificateIDError(err, "certificate id already registered")
	case errors.Is(err, registry.ErrDuplicateFingerprint):
		return WrapDuplicateFingerprintError(err, "certificate content already registered under another id")
	default:
		return WrapPersistenceError(err, "failed to persist certificate")
	}
}
