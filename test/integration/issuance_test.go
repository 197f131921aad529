//go:build integration

package integration

import (
	"context"
	"io"
	"net/http"
	"testing"
)

const abcFingerprint = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

// TestIssueAndVerifyRoundTrip issues a certificate and checks that the exact
// file verifies while a modified copy does not.
func TestIssueAndVerifyRoundTrip(t *testing.T) {
	env := startInProcessServer(t)
	defer env.shutdown()

	file := []byte("abc")
	issued := issueCertificate(t, env, defaultIssueForm("cert-1", "S1"), file)

	if issued.CertificateID != "cert-1" {
		t.Errorf("certificate_id = %q, want cert-1", issued.CertificateID)
	}
	if issued.ContentFingerprint != abcFingerprint {
		t.Errorf("content_fingerprint = %q, want %q", issued.ContentFingerprint, abcFingerprint)
	}

	// The pinned bytes must be exactly the bytes that were fingerprinted
	pinned, ok := env.pinStore.Get(issued.ContentAddress)
	if !ok {
		t.Fatalf("content address %q not found in pin store", issued.ContentAddress)
	}
	if string(pinned) != "abc" {
		t.Errorf("pinned bytes = %q, want abc", pinned)
	}

	// Exact copy verifies
	resp := postMultipart(t, env.baseURL+"/api/v1/verifications", nil, file)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Verify failed: status %d", resp.StatusCode)
	}

	var verified verificationResponse
	decodeJSON(t, resp.Body, &verified)

	if !verified.Matched {
		t.Fatal("expected the issued file to verify")
	}
	if verified.Certificate == nil || verified.Certificate.CertificateID != "cert-1" {
		t.Errorf("expected certificate cert-1 in verification response, got %+v", verified.Certificate)
	}

	// A single changed byte must not verify
	tampered := postMultipart(t, env.baseURL+"/api/v1/verifications", nil, []byte("abd"))
	defer tampered.Body.Close()

	if tampered.StatusCode != http.StatusOK {
		t.Fatalf("Verify of tampered file failed: status %d", tampered.StatusCode)
	}

	var tamperedResult verificationResponse
	decodeJSON(t, tampered.Body, &tamperedResult)

	if tamperedResult.Matched {
		t.Error("tampered file must not verify")
	}
	if tamperedResult.Certificate != nil {
		t.Error("non-match must not include a certificate")
	}
}

func TestIssueDuplicateCertificateID(t *testing.T) {
	env := startInProcessServer(t)
	defer env.shutdown()

	issueCertificate(t, env, defaultIssueForm("cert-1", "S1"), []byte("first file"))

	// same certificate id, different file
	resp := postMultipart(t, env.baseURL+"/api/v1/certificates",
		defaultIssueForm("cert-1", "S1").fields(), []byte("second file"))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	var apiErr errorResponse
	decodeJSON(t, resp.Body, &apiErr)
	if apiErr.ErrorCode != "duplicate_certificate_id" {
		t.Errorf("error_code = %q, want duplicate_certificate_id", apiErr.ErrorCode)
	}
}

func TestIssueDuplicateFingerprint(t *testing.T) {
	env := startInProcessServer(t)
	defer env.shutdown()

	file := []byte("the one true file")
	issueCertificate(t, env, defaultIssueForm("cert-1", "S1"), file)

	// different certificate id, byte-identical file
	resp := postMultipart(t, env.baseURL+"/api/v1/certificates",
		defaultIssueForm("cert-2", "S2").fields(), file)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	var apiErr errorResponse
	decodeJSON(t, resp.Body, &apiErr)
	if apiErr.ErrorCode != "duplicate_fingerprint" {
		t.Errorf("error_code = %q, want duplicate_fingerprint", apiErr.ErrorCode)
	}
}

func TestIssueMissingRequiredFields(t *testing.T) {
	env := startInProcessServer(t)
	defer env.shutdown()

	form := defaultIssueForm("cert-1", "S1")
	form.degreeName = ""

	resp := postMultipart(t, env.baseURL+"/api/v1/certificates", form.fields(), []byte("abc"))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	// nothing must have been persisted
	ctx := context.Background()
	_, err := env.store.GetCertificate(ctx, "cert-1")
	if err == nil {
		t.Error("certificate must not be persisted when validation fails")
	}
}

func TestIssueMissingFilePart(t *testing.T) {
	env := startInProcessServer(t)
	defer env.shutdown()

	resp := postMultipart(t, env.baseURL+"/api/v1/certificates",
		defaultIssueForm("cert-1", "S1").fields(), nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestCertificateReadPath(t *testing.T) {
	env := startInProcessServer(t)
	defer env.shutdown()

	issueCertificate(t, env, defaultIssueForm("cert-1", "S1"), []byte("file one"))
	issueCertificate(t, env, defaultIssueForm("cert-2", "S1"), []byte("file two"))

	t.Run("get by id", func(t *testing.T) {
		resp, err := http.Get(env.baseURL + "/api/v1/certificates/cert-1")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var cert certificateResponse
		decodeJSON(t, resp.Body, &cert)
		if cert.CertificateID != "cert-1" || cert.StudentIdentifier != "S1" {
			t.Errorf("unexpected certificate: %+v", cert)
		}
		if cert.GraduationDate == nil || *cert.GraduationDate != "2022-06-30" {
			t.Errorf("graduation_date = %v, want 2022-06-30", cert.GraduationDate)
		}
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		resp, err := http.Get(env.baseURL + "/api/v1/certificates/cert-unknown")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
		}
	})

	t.Run("list by student", func(t *testing.T) {
		resp, err := http.Get(env.baseURL + "/api/v1/students/S1/certificates")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var list struct {
			StudentIdentifier string                `json:"student_identifier"`
			Certificates      []certificateResponse `json:"certificates"`
		}
		decodeJSON(t, resp.Body, &list)

		if len(list.Certificates) != 2 {
			t.Errorf("got %d certificates, want 2", len(list.Certificates))
		}
	})

	t.Run("unknown student lists empty", func(t *testing.T) {
		resp, err := http.Get(env.baseURL + "/api/v1/students/S-unknown/certificates")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var list struct {
			Certificates []certificateResponse `json:"certificates"`
		}
		decodeJSON(t, resp.Body, &list)
		if len(list.Certificates) != 0 {
			t.Errorf("got %d certificates, want 0", len(list.Certificates))
		}
	})
}

func TestReadinessEndpoint(t *testing.T) {
	env := startInProcessServer(t)
	defer env.shutdown()

	resp, err := http.Get(env.baseURL + "/ready")
	if err != nil {
		t.Fatalf("GET /ready failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want %d, body: %s", resp.StatusCode, http.StatusOK, body)
	}
}
