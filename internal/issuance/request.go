package issuance

// request.go is the boundary between the upload transport and the issuance
// service: the loosely-typed multipart fields are normalized into a Request
// and validated once, here, before any work happens.

import (
	"fmt"
	"io"
	"time"
)

// dateLayout is the wire format for dateOfBirth and graduationDate fields.
const dateLayout = "2006-01-02"

// Request is a fully parsed issuance request. File is consumed exactly once
// during Issue.
type Request struct {
	CertificateID     string
	StudentIdentifier string
	StudentFullName   string
	Gender            string
	DateOfBirth       string
	DegreeName        string
	GraduationDate    string
	UniversityName    string

	// File streams the certificate document bytes.
	File io.Reader
}

// parsedDates holds the optional date fields after validation.
type parsedDates struct {
	dateOfBirth    *time.Time
	graduationDate *time.Time
}

// validate checks required fields and parses the optional dates. All
// violations are reported as invalid request errors.
func (r *Request) validate() (parsedDates, error) {
	var dates parsedDates

	required := []struct {
		name  string
		value string
	}{
		{"certificateId", r.CertificateID},
		{"studentIdentifier", r.StudentIdentifier},
		{"studentFullName", r.StudentFullName},
		{"degreeName", r.DegreeName},
		{"universityName", r.UniversityName},
	}
	for _, field := range required {
		if field.value == "" {
			return dates, NewInvalidRequestError(fmt.Sprintf("%s is required", field.name))
		}
	}

	if r.File == nil {
		return dates, NewInvalidRequestError("certificate file is required")
	}

	var err error
	if dates.dateOfBirth, err = parseOptionalDate("dateOfBirth", r.DateOfBirth); err != nil {
		return dates, err
	}
	if dates.graduationDate, err = parseOptionalDate("graduationDate", r.GraduationDate); err != nil {
		return dates, err
	}

	return dates, nil
}

// parseOptionalDate parses a YYYY-MM-DD field; empty means not provided.
func parseOptionalDate(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, WrapInvalidRequestError(err, fmt.Sprintf("%s must be a YYYY-MM-DD date", name))
	}
	return &t, nil
}
