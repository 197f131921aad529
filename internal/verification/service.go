// Package verification answers "is this file the exact one originally
// issued" by fingerprinting the presented bytes and looking the digest up in
// the registry. Read-only and idempotent; exact equality only.
package verification

import (
	"context"
	"errors"
	"io"

	"github.com/academic-credentials-network/certreg/internal/fingerprint"
	"github.com/academic-credentials-network/certreg/internal/registry"
)

// Finder is the registry read path used for fingerprint lookups.
// Implemented by *registry.Store.
type Finder interface {
	FindByFingerprint(ctx context.Context, fp string) (registry.Certificate, error)
}

// Result reports the outcome of a verification. A non-match is a normal
// negative result, not an error: Matched is false and Certificate is nil.
type Result struct {
	Matched            bool
	ContentFingerprint string
	Certificate        *registry.Certificate
}

// Service verifies presented files against the registry.
type Service struct {
	store Finder
}

// NewService creates a verification service.
func NewService(store Finder) *Service {
	return &Service{store: store}
}

// Verify fingerprints the presented bytes and looks the digest up in the
// registry. A lookup-layer failure is returned as an error, distinct from
// the not-found result.
func (s *Service) Verify(ctx context.Context, file io.Reader) (*Result, error) {
	if file == nil {
		return nil, NewUnreadableFileError("no file presented for verification")
	}

	digest, err := fingerprint.Compute(file)
	if err != nil {
		return nil, WrapUnreadableFileError(err, "failed to read presented file")
	}

	cert, err := s.store.FindByFingerprint(ctx, digest)
	if err != nil {
		if errors.Is(err, registry.ErrCertificateNotFound) {
			return &Result{Matched: false, ContentFingerprint: digest}, nil
		}
		return nil, WrapLookupError(err, "registry lookup failed")
	}

	return &Result{
		Matched:            true,
		ContentFingerprint: digest,
		Certificate:        &cert,
	}, nil
}
