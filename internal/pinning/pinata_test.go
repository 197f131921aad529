package pinning

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPinataClientPin(t *testing.T) {
	var gotAuth string
	var gotFilename string
	var gotContent []byte
	var gotMetadata string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pinning/pinFileToIPFS" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart form: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer file.Close()
		gotFilename = header.Filename
		gotContent, _ = io.ReadAll(file)
		gotMetadata = r.FormValue("pinataMetadata")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"IpfsHash":"QmTestHash123","PinSize":11,"Timestamp":"2026-01-01T00:00:00Z"}`))
	}))
	defer server.Close()

	client := NewPinataClient(server.URL, "test-jwt", server.Client())

	address, err := client.Pin(context.Background(), strings.NewReader("hello world"), "cert-1")
	if err != nil {
		t.Fatalf("Pin() error = %v", err)
	}
	if address != "QmTestHash123" {
		t.Errorf("Pin() = %v, want QmTestHash123", address)
	}
	if gotAuth != "Bearer test-jwt" {
		t.Errorf("Authorization header = %q, want bearer token", gotAuth)
	}
	if gotFilename != "cert-1" {
		t.Errorf("filename = %q, want cert-1", gotFilename)
	}
	if string(gotContent) != "hello world" {
		t.Errorf("uploaded content = %q, want hello world", gotContent)
	}
	if !strings.Contains(gotMetadata, `"name":"cert-1"`) {
		t.Errorf("pinataMetadata = %q, want name cert-1", gotMetadata)
	}
}

func TestPinataClientErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantCode   ErrorCode
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"invalid jwt"}`, ErrCodeAuth},
		{"forbidden", http.StatusForbidden, `{"error":"scope"}`, ErrCodeAuth},
		{"quota exceeded", http.StatusPaymentRequired, `{"error":"plan limit"}`, ErrCodeQuota},
		{"file too large", http.StatusRequestEntityTooLarge, `{"error":"too big"}`, ErrCodeQuota},
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, ErrCodeUnavailable},
		{"rate limited", http.StatusTooManyRequests, `{"error":"slow down"}`, ErrCodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewPinataClient(server.URL, "test-jwt", server.Client())

			_, err := client.Pin(context.Background(), strings.NewReader("data"), "")
			if err == nil {
				t.Fatal("Pin() expected error, got nil")
			}

			var pinErr *PinError
			if !errors.As(err, &pinErr) {
				t.Fatalf("Pin() error type = %T, want *PinError", err)
			}
			if pinErr.Code() != tt.wantCode {
				t.Errorf("Pin() error code = %v, want %v", pinErr.Code(), tt.wantCode)
			}
		})
	}
}

func TestPinataClientBadResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `not json`},
		{"missing hash", `{"PinSize":5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewPinataClient(server.URL, "test-jwt", server.Client())

			_, err := client.Pin(context.Background(), strings.NewReader("data"), "")
			if err == nil {
				t.Fatal("Pin() expected error, got nil")
			}

			var pinErr *PinError
			if !errors.As(err, &pinErr) {
				t.Fatalf("Pin() error type = %T, want *PinError", err)
			}
			if pinErr.Code() != ErrCodeBadResponse {
				t.Errorf("Pin() error code = %v, want %v", pinErr.Code(), ErrCodeBadResponse)
			}
		})
	}
}

func TestPinataClientUnreachable(t *testing.T) {
	client := NewPinataClient("http://127.0.0.1:1", "test-jwt", &http.Client{})

	_, err := client.Pin(context.Background(), strings.NewReader("data"), "")
	if err == nil {
		t.Fatal("Pin() expected error, got nil")
	}

	var pinErr *PinError
	if !errors.As(err, &pinErr) {
		t.Fatalf("Pin() error type = %T, want *PinError", err)
	}
	if pinErr.Code() != ErrCodeUnavailable {
		t.Errorf("Pin() error code = %v, want %v", pinErr.Code(), ErrCodeUnavailable)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	addr1, err := store.Pin(context.Background(), strings.NewReader("abc"), "cert-1")
	if err != nil {
		t.Fatalf("Pin() error = %v", err)
	}

	data, ok := store.Get(addr1)
	if !ok {
		t.Fatal("pinned content not retrievable")
	}
	if string(data) != "abc" {
		t.Errorf("Get() = %q, want abc", data)
	}

	// content addressing: identical bytes yield the same address
	addr2, err := store.Pin(context.Background(), strings.NewReader("abc"), "cert-2")
	if err != nil {
		t.Fatalf("Pin() error = %v", err)
	}
	if addr1 != addr2 {
		t.Errorf("identical content got different addresses: %v vs %v", addr1, addr2)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}

	addr3, err := store.Pin(context.Background(), strings.NewReader("abcd"), "cert-3")
	if err != nil {
		t.Fatalf("Pin() error = %v", err)
	}
	if addr3 == addr1 {
		t.Error("different content got the same address")
	}
}
