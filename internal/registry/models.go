package registry

import (
	"time"

	"github.com/google/uuid"
)

// Student is a registry row keyed by the externally supplied identifier
// (national ID, wallet-derived ID, etc). Descriptive fields are
// last-write-wins across issuances.
type Student struct {
	ID                uuid.UUID
	StudentIdentifier string
	FullName          string
	Gender            string
	DateOfBirth       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// StudentUpsert carries the fields written by UpsertStudent. Empty strings
// and nil dates mean "not provided" and leave the stored value untouched.
type StudentUpsert struct {
	StudentIdentifier string
	FullName          string
	Gender            string
	DateOfBirth       *time.Time
}

// Certificate is an audit-style registry row: created exactly once at
// issuance and never mutated or deleted.
type Certificate struct {
	CertificateID     string
	StudentIdentifier string
	DegreeName        string
	UniversityName    string
	GraduationDate    *time.Time

	// ContentAddress is the external store's opaque handle for the pinned
	// file, stored verbatim.
	ContentAddress string

	// ContentFingerprint is the locally computed digest of the exact bytes
	// issued. Independent of ContentAddress; both are persisted.
	ContentFingerprint string

	IssuedAt time.Time
}

// NewCertificate carries the fields written by InsertCertificate.
// IssuedAt is assigned by the database.
type NewCertificate struct {
	CertificateID      string
	StudentIdentifier  string
	DegreeName         string
	UniversityName     string
	GraduationDate     *time.Time
	ContentAddress     string
	ContentFingerprint string
}
