package cli

// client.go builds the multipart requests the issue and verify commands send
// to a running certreg server.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const clientTimeout = 60 * time.Second

// postFile sends a multipart POST with the given form fields and the file at
// path as the "file" part, and decodes the JSON response into out.
//
// Non-2xx responses are returned as errors carrying the server's error body.
func postFile(ctx context.Context, endpoint, path string, fields map[string]string, out any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: clientTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode server response: %w", err)
	}
	return nil
}

// serverError extracts the error_code and message from an API error body.
func serverError(resp *http.Response) error {
	var apiErr struct {
		ErrorCode string `json:"error_code"`
		Message   string `json:"message"`
	}
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(excerpt, &apiErr); err == nil && apiErr.ErrorCode != "" {
		return fmt.Errorf("server returned %d (%s): %s", resp.StatusCode, apiErr.ErrorCode, apiErr.Message)
	}
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(excerpt))
}
