// Package registry provides transactional persistence for the student and
// certificate tables. It is the only component that writes either table, and
// its uniqueness constraints are the sole arbiter when concurrent issuances
// race on the same certificate id or file content.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx, so every query method works
// both standalone and inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store executes registry queries against db. Use New for a pool-backed
// store; RecordIssuance runs its writes on a transaction-scoped copy.
type Store struct {
	db   DBTX
	pool *pgxpool.Pool
}

// New creates a Store backed by the connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{db: pool, pool: pool}
}

// withTx returns a copy of the store that runs queries on tx.
func (s *Store) withTx(tx pgx.Tx) *Store {
	return &Store{db: tx, pool: s.pool}
}

const upsertStudentSQL = `
INSERT INTO students (student_identifier, full_name, gender, date_of_birth)
VALUES ($1, $2, $3, $4)
ON CONFLICT (student_identifier) DO UPDATE SET
    full_name     = CASE WHEN EXCLUDED.full_name <> '' THEN EXCLUDED.full_name ELSE students.full_name END,
    gender        = CASE WHEN EXCLUDED.gender <> '' THEN EXCLUDED.gender ELSE students.gender END,
    date_of_birth = COALESCE(EXCLUDED.date_of_birth, students.date_of_birth),
    updated_at    = now()
RETURNING id, student_identifier, full_name, gender, date_of_birth, created_at, updated_at
`

// UpsertStudent inserts the student row or, if the identifier already exists,
// overwrites only the provided descriptive fields. The ON CONFLICT update
// takes a row lock, so concurrent upserts for the same identifier serialize
// with no lost update.
func (s *Store) UpsertStudent(ctx context.Context, arg StudentUpsert) (Student, error) {
	var student Student
	err := s.db.QueryRow(ctx, upsertStudentSQL,
		arg.StudentIdentifier,
		arg.FullName,
		arg.Gender,
		arg.DateOfBirth,
	).Scan(
		&student.ID,
		&student.StudentIdentifier,
		&student.FullName,
		&student.Gender,
		&student.DateOfBirth,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		return Student{}, fmt.Errorf("failed to upsert student: %w", err)
	}
	return student, nil
}

const insertCertificateSQL = `
INSERT INTO certificates (certificate_id, student_identifier, degree_name, university_name, graduation_date, content_address, content_fingerprint)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING certificate_id, student_identifier, degree_name, university_name, graduation_date, content_address, content_fingerprint, issued_at
`

// InsertCertificate inserts a new certificate row. It fails with
// ErrDuplicateCertificateID if the id exists, and ErrDuplicateFingerprint if
// the fingerprint exists on another row.
func (s *Store) InsertCertificate(ctx context.Context, arg NewCertificate) (Certificate, error) {
	var cert Certificate
	err := s.db.QueryRow(ctx, insertCertificateSQL,
		arg.CertificateID,
		arg.StudentIdentifier,
		arg.DegreeName,
		arg.UniversityName,
		arg.GraduationDate,
		arg.ContentAddress,
		arg.ContentFingerprint,
	).Scan(
		&cert.CertificateID,
		&cert.StudentIdentifier,
		&cert.DegreeName,
		&cert.UniversityName,
		&cert.GraduationDate,
		&cert.ContentAddress,
		&cert.ContentFingerprint,
		&cert.IssuedAt,
	)
	if err != nil {
		return Certificate{}, classifyInsertError(err)
	}
	return cert, nil
}

// RecordIssuance upserts the student and inserts the certificate as one
// atomic unit: either both rows are visible afterwards or neither is. A
// failed insert rolls back the student upsert from the same attempt.
func (s *Store) RecordIssuance(ctx context.Context, student StudentUpsert, cert NewCertificate) (Certificate, error) {
	if s.pool == nil {
		return Certificate{}, fmt.Errorf("store is not pool-backed")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Certificate{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	txStore := s.withTx(tx)

	if _, err := txStore.UpsertStudent(ctx, student); err != nil {
		return Certificate{}, err
	}

	inserted, err := txStore.InsertCertificate(ctx, cert)
	if err != nil {
		return Certificate{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Certificate{}, fmt.Errorf("failed to commit issuance: %w", err)
	}

	return inserted, nil
}

const certificateColumns = `certificate_id, student_identifier, degree_name, university_name, graduation_date, content_address, content_fingerprint, issued_at`

// FindByFingerprint does an equality lookup on the unique fingerprint index.
// Returns ErrCertificateNotFound when no row matches.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) (Certificate, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+certificateColumns+` FROM certificates WHERE content_fingerprint = $1`,
		fingerprint,
	)
	return scanCertificate(row)
}

// GetCertificate fetches a certificate by its id.
// Returns ErrCertificateNotFound when no row matches.
func (s *Store) GetCertificate(ctx context.Context, certificateID string) (Certificate, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+certificateColumns+` FROM certificates WHERE certificate_id = $1`,
		certificateID,
	)
	return scanCertificate(row)
}

// ListCertificatesByStudent returns all certificates owned by the student,
// newest first.
func (s *Store) ListCertificatesByStudent(ctx context.Context, studentIdentifier string) ([]Certificate, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+certificateColumns+` FROM certificates WHERE student_identifier = $1 ORDER BY issued_at DESC`,
		studentIdentifier,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	defer rows.Close()

	var certs []Certificate
	for rows.Next() {
		var cert Certificate
		if err := rows.Scan(
			&cert.CertificateID,
			&cert.StudentIdentifier,
			&cert.DegreeName,
			&cert.UniversityName,
			&cert.GraduationDate,
			&cert.ContentAddress,
			&cert.ContentFingerprint,
			&cert.IssuedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan certificate: %w", err)
		}
		certs = append(certs, cert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}

	return certs, nil
}

// GetStudent fetches a student row by the external identifier.
// Returns ErrStudentNotFound when no row matches.
func (s *Store) GetStudent(ctx context.Context, studentIdentifier string) (Student, error) {
	var student Student
	err := s.db.QueryRow(ctx,
		`SELECT id, student_identifier, full_name, gender, date_of_birth, created_at, updated_at
		 FROM students WHERE student_identifier = $1`,
		studentIdentifier,
	).Scan(
		&student.ID,
		&student.StudentIdentifier,
		&student.FullName,
		&student.Gender,
		&student.DateOfBirth,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Student{}, ErrStudentNotFound
		}
		return Student{}, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

func scanCertificate(row pgx.Row) (Certificate, error) {
	var cert Certificate
	err := row.Scan(
		&cert.CertificateID,
		&cert.StudentIdentifier,
		&cert.DegreeName,
		&cert.UniversityName,
		&cert.GraduationDate,
		&cert.ContentAddress,
		&cert.ContentFingerprint,
		&cert.IssuedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Certificate{}, ErrCertificateNotFound
		}
		return Certificate{}, fmt.Errorf("failed to get certificate: %w", err)
	}
	return cert, nil
}
