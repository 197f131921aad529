package registry

// errors.go classifies PostgreSQL constraint violations into the sentinel
// errors callers branch on with errors.Is. Duplicate certificate id and
// duplicate fingerprint are distinct business conflicts and must stay
// distinguishable all the way up to the API response.

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateCertificateID indicates a certificate with the same
	// certificate_id already exists (issuer reused an id).
	ErrDuplicateCertificateID = errors.New("certificate id already registered")

	// ErrDuplicateFingerprint indicates the same file content is already
	// registered under a different certificate id.
	ErrDuplicateFingerprint = errors.New("content fingerprint already registered")

	// ErrCertificateNotFound indicates no certificate matched the lookup.
	ErrCertificateNotFound = errors.New("certificate not found")

	// ErrStudentNotFound indicates no student row matched the lookup.
	ErrStudentNotFound = errors.New("student not found")
)

// postgres unique_violation
const uniqueViolationCode = "23505"

// constraint names assigned by the registry migration
const (
	certificatePKConstraint          = "certificates_pkey"
	certificateFingerprintConstraint = "certificates_content_fingerprint_key"
)

// classifyInsertError maps a certificate insert failure to the sentinel for
// the violated constraint. Non-constraint errors are returned wrapped.
func classifyInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch pgErr.ConstraintName {
		case certificatePKConstraint:
			return fmt.Errorf("%w: %s", ErrDuplicateCertificateID, pgErr.Detail)
		case certificateFingerprintConstraint:
			return fmt.Errorf("%w: %s", ErrDuplicateFingerprint, pgErr.Detail)
		}
	}
	return fmt.Errorf("failed to insert certificate: %w", err)
}
