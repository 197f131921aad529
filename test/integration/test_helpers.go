//go:build integration

// functions that are useful in integration tests

package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
)

// issueForm holds the string fields for a POST /api/v1/certificates request.
type issueForm struct {
	certificateID     string
	studentIdentifier string
	studentFullName   string
	gender            string
	dateOfBirth       string
	degreeName        string
	graduationDate    string
	universityName    string
}

func defaultIssueForm(certificateID, studentIdentifier string) issueForm {
	return issueForm{
		certificateID:     certificateID,
		studentIdentifier: studentIdentifier,
		studentFullName:   "Ada Lovelace",
		gender:            "female",
		dateOfBirth:       "2000-01-02",
		degreeName:        "BSc Mathematics",
		graduationDate:    "2022-06-30",
		universityName:    "University of Example",
	}
}

// postMultipart sends a multipart POST with the given fields and file bytes
// (as the "file" part) and returns the response. Pass nil file to omit the
// file part.
func postMultipart(t *testing.T, url string, fields map[string]string, file []byte) *http.Response {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("Failed to write form field %s: %v", name, err)
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile("file", "certificate.pdf")
		if err != nil {
			t.Fatalf("Failed to create file part: %v", err)
		}
		if _, err := part.Write(file); err != nil {
			t.Fatalf("Failed to write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to finalize multipart body: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, &body)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request to %s failed: %v", url, err)
	}
	return resp
}

// issueCertificate issues a certificate via the API and fails the test on any
// non-201 response.
func issueCertificate(t *testing.T, env *testEnv, form issueForm, file []byte) issuanceResponse {
	t.Helper()

	resp := postMultipart(t, env.baseURL+"/api/v1/certificates", form.fields(), file)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		t.Fatalf("Issue failed: status %d, body: %s", resp.StatusCode, excerpt)
	}

	var issued issuanceResponse
	decodeJSON(t, resp.Body, &issued)
	return issued
}

func (f issueForm) fields() map[string]string {
	return map[string]string{
		"certificateId":     f.certificateID,
		"studentIdentifier": f.studentIdentifier,
		"studentFullName":   f.studentFullName,
		"gender":            f.gender,
		"dateOfBirth":       f.dateOfBirth,
		"degreeName":        f.degreeName,
		"graduationDate":    f.graduationDate,
		"universityName":    f.universityName,
	}
}

func decodeJSON(t *testing.T, r io.Reader, out any) {
	t.Helper()
	if err := json.NewDecoder(r).Decode(out); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// Response shapes used across the integration tests.

type issuanceResponse struct {
	CertificateID      string `json:"certificate_id"`
	ContentAddress     string `json:"content_address"`
	ContentFingerprint string `json:"content_fingerprint"`
	IssuedAt           string `json:"issued_at"`
}

type certificateResponse struct {
	CertificateID      string  `json:"certificate_id"`
	StudentIdentifier  string  `json:"student_identifier"`
	DegreeName         string  `json:"degree_name"`
	UniversityName     string  `json:"university_name"`
	GraduationDate     *string `json:"graduation_date"`
	ContentAddress     string  `json:"content_address"`
	ContentFingerprint string  `json:"content_fingerprint"`
}

type verificationResponse struct {
	Matched     bool                 `json:"matched"`
	Certificate *certificateResponse `json:"certificate"`
}

type errorResponse struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
}
