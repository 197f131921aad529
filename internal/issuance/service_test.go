package issuance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/academic-credentials-network/certreg/internal/pinning"
	"github.com/academic-credentials-network/certreg/internal/registry"
)

// fakeRecorder is an in-memory Recorder that enforces the same uniqueness
// rules as the registry store and rolls the student write back when the
// certificate insert fails, mimicking the real transaction.
type fakeRecorder struct {
	students     map[string]registry.StudentUpsert
	certificates map[string]registry.Certificate
	failWith     error
	calls        int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		students:     make(map[string]registry.StudentUpsert),
		certificates: make(map[string]registry.Certificate),
	}
}

func (f *fakeRecorder) RecordIssuance(ctx context.Context, student registry.StudentUpsert, cert registry.NewCertificate) (registry.Certificate, error) {
	f.calls++

	if f.failWith != nil {
		return registry.Certificate{}, f.failWith
	}

	if _, exists := f.certificates[cert.CertificateID]; exists {
		return registry.Certificate{}, fmt.Errorf("insert failed: %w", registry.ErrDuplicateCertificateID)
	}
	for _, existing := range f.certificates {
		if existing.ContentFingerprint == cert.ContentFingerprint {
			return registry.Certificate{}, fmt.Errorf("insert failed: %w", registry.ErrDuplicateFingerprint)
		}
	}

	// both writes commit together
	if existing, ok := f.students[student.StudentIdentifier]; ok {
		if student.FullName == "" {
			student.FullName = existing.FullName
		}
		if student.Gender == "" {
			student.Gender = existing.Gender
		}
		if student.DateOfBirth == nil {
			student.DateOfBirth = existing.DateOfBirth
		}
	}
	f.students[student.StudentIdentifier] = student

	stored := registry.Certificate{
		CertificateID:      cert.CertificateID,
		StudentIdentifier:  cert.StudentIdentifier,
		DegreeName:         cert.DegreeName,
		UniversityName:     cert.UniversityName,
		GraduationDate:     cert.GraduationDate,
		ContentAddress:     cert.ContentAddress,
		ContentFingerprint: cert.ContentFingerprint,
		IssuedAt:           time.Now().UTC(),
	}
	f.certificates[cert.CertificateID] = stored
	return stored, nil
}

// failingPinner always rejects the pin.
type failingPinner struct {
	err error
}

func (f failingPinner) Pin(ctx context.Context, r io.Reader, hint string) (string, error) {
	return "", f.err
}

func validRequest(file string) Request {
	return Request{
		CertificateID:     "cert-1",
		StudentIdentifier: "S1",
		StudentFullName:   "Ada Lovelace",
		Gender:            "female",
		DateOfBirth:       "2000-12-10",
		DegreeName:        "BSc Mathematics",
		GraduationDate:    "2022-06-30",
		UniversityName:    "University of Example",
		File:              strings.NewReader(file),
	}
}

func newTestService(t *testing.T) (*Service, *fakeRecorder, *pinning.MemoryStore) {
	t.Helper()
	recorder := newFakeRecorder()
	store := pinning.NewMemoryStore()
	return NewService(store, recorder, nil), recorder, store
}

func TestIssueSuccess(t *testing.T) {
	svc, recorder, store := newTestService(t)

	result, err := svc.Issue(context.Background(), validRequest("abc"))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if result.CertificateID != "cert-1" {
		t.Errorf("CertificateID = %v, want cert-1", result.CertificateID)
	}

	// fingerprint must be sha256 of the exact uploaded bytes
	wantFingerprint := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if result.ContentFingerprint != wantFingerprint {
		t.Errorf("ContentFingerprint = %v, want %v", result.ContentFingerprint, wantFingerprint)
	}

	// the pinned bytes are the bytes that were hashed
	pinned, ok := store.Get(result.ContentAddress)
	if !ok {
		t.Fatal("content address does not resolve in the store")
	}
	if string(pinned) != "abc" {
		t.Errorf("pinned content = %q, want abc", pinned)
	}

	cert, ok := recorder.certificates["cert-1"]
	if !ok {
		t.Fatal("certificate row not persisted")
	}
	if cert.ContentAddress != result.ContentAddress {
		t.Errorf("persisted address = %v, want %v", cert.ContentAddress, result.ContentAddress)
	}
	if cert.ContentFingerprint != wantFingerprint {
		t.Errorf("persisted fingerprint = %v, want %v", cert.ContentFingerprint, wantFingerprint)
	}
	if result.IssuedAt.IsZero() {
		t.Error("IssuedAt not assigned")
	}
}

func TestIssueValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing certificate id", func(r *Request) { r.CertificateID = "" }},
		{"missing student identifier", func(r *Request) { r.StudentIdentifier = "" }},
		{"missing student name", func(r *Request) { r.StudentFullName = "" }},
		{"missing degree", func(r *Request) { r.DegreeName = "" }},
		{"missing university", func(r *Request) { r.UniversityName = "" }},
		{"missing file", func(r *Request) { r.File = nil }},
		{"malformed date of birth", func(r *Request) { r.DateOfBirth = "12/10/2000" }},
		{"malformed graduation date", func(r *Request) { r.GraduationDate = "June 2022" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, recorder, _ := newTestService(t)

			req := validRequest("abc")
			tt.mutate(&req)

			_, err := svc.Issue(context.Background(), req)
			assertIssuanceCode(t, err, ErrCodeInvalidRequest)

			if recorder.calls != 0 {
				t.Error("validation failure must not reach the registry")
			}
		})
	}
}

func TestIssueOptionalFieldsMayBeEmpty(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validRequest("abc")
	req.Gender = ""
	req.DateOfBirth = ""
	req.GraduationDate = ""

	if _, err := svc.Issue(context.Background(), req); err != nil {
		t.Fatalf("Issue() error = %v, want success with optional fields empty", err)
	}
}

func TestIssuePinFailureAbortsBeforePersistence(t *testing.T) {
	recorder := newFakeRecorder()
	svc := NewService(failingPinner{err: pinning.NewQuotaError("plan limit reached")}, recorder, nil)

	_, err := svc.Issue(context.Background(), validRequest("abc"))
	assertIssuanceCode(t, err, ErrCodeContentStore)

	if recorder.calls != 0 {
		t.Error("pin failure must abort before any persistence occurs")
	}

	// the underlying pinning error stays inspectable through the chain
	var pinErr *pinning.PinError
	if !errors.As(err, &pinErr) {
		t.Fatalf("expected wrapped *pinning.PinError, got %T", err)
	}
	if pinErr.Code() != pinning.ErrCodeQuota {
		t.Errorf("pin error code = %v, want %v", pinErr.Code(), pinning.ErrCodeQuota)
	}
}

func TestIssueDuplicateCertificateID(t *testing.T) {
	svc, recorder, _ := newTestService(t)

	if _, err := svc.Issue(context.Background(), validRequest("abc")); err != nil {
		t.Fatalf("first Issue() error = %v", err)
	}

	// same id, different content
	req := validRequest("different content")
	_, err := svc.Issue(context.Background(), req)
	assertIssuanceCode(t, err, ErrCodeDuplicateCertificateID)

	// the first record is untouched
	first := recorder.certificates["cert-1"]
	wantFingerprint := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if first.ContentFingerprint != wantFingerprint {
		t.Errorf("original record changed: fingerprint = %v", first.ContentFingerprint)
	}
}

func TestIssueDuplicateFingerprint(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.Issue(context.Background(), validRequest("abc")); err != nil {
		t.Fatalf("first Issue() error = %v", err)
	}

	// same content, different id
	req := validRequest("abc")
	req.CertificateID = "cert-2"
	_, err := svc.Issue(context.Background(), req)
	assertIssuanceCode(t, err, ErrCodeDuplicateFingerprint)
}

func TestIssuePersistenceFailure(t *testing.T) {
	recorder := newFakeRecorder()
	recorder.failWith = errors.New("connection refused")
	svc := NewService(pinning.NewMemoryStore(), recorder, nil)

	_, err := svc.Issue(context.Background(), validRequest("abc"))
	assertIssuanceCode(t, err, ErrCodePersistence)
}

func TestIssueStudentUpsertLastWriteWins(t *testing.T) {
	svc, recorder, _ := newTestService(t)

	if _, err := svc.Issue(context.Background(), validRequest("abc")); err != nil {
		t.Fatalf("first Issue() error = %v", err)
	}

	req := validRequest("second file")
	req.CertificateID = "cert-2"
	req.StudentFullName = "Ada King-Noel"
	req.Gender = "" // not provided this time
	if _, err := svc.Issue(context.Background(), req); err != nil {
		t.Fatalf("second Issue() error = %v", err)
	}

	if len(recorder.students) != 1 {
		t.Fatalf("student rows = %d, want 1", len(recorder.students))
	}
	student := recorder.students["S1"]
	if student.FullName != "Ada King-Noel" {
		t.Errorf("FullName = %v, want latest value", student.FullName)
	}
	if student.Gender != "female" {
		t.Errorf("Gender = %v, want value preserved from first issuance", student.Gender)
	}
}

func TestIssueUnreadableFile(t *testing.T) {
	svc, recorder, _ := newTestService(t)

	req := validRequest("")
	req.File = io.MultiReader(strings.NewReader("partial"), failingReader{})

	_, err := svc.Issue(context.Background(), req)
	assertIssuanceCode(t, err, ErrCodeInvalidRequest)

	if recorder.calls != 0 {
		t.Error("unreadable file must abort before any persistence occurs")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func assertIssuanceCode(t *testing.T, err error, want ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var issErr *Error
	if !errors.As(err, &issErr) {
		t.Fatalf("error type = %T, want *issuance.Error", err)
	}
	if issErr.Code() != want {
		t.Errorf("error code = %v, want %v", issErr.Code(), want)
	}
}
