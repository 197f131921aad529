package pinning

// pinata.go implements the pinning Service against a Pinata-compatible HTTP
// API (POST /pinning/pinFileToIPFS with a bearer token). The returned IpfsHash
// is used verbatim as the content address.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// PinataClient pins files via the Pinata pinFileToIPFS endpoint.
//
//	POST {baseURL}/pinning/pinFileToIPFS
//	Authorization: Bearer {jwt}
//	multipart body: "file" part + optional "pinataMetadata" JSON part
//	Response: {"IpfsHash": "...", "PinSize": n, "Timestamp": "..."}
type PinataClient struct {
	baseURL    string
	jwt        string
	httpClient *http.Client
}

// NewPinataClient creates a client for a Pinata-compatible pinning API.
func NewPinataClient(baseURL, jwt string, httpClient *http.Client) *PinataClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &PinataClient{
		baseURL:    baseURL,
		jwt:        jwt,
		httpClient: httpClient,
	}
}

// pinataMetadata is the optional metadata part sent with the pin request.
// The name is a display label in the pinning dashboard and nothing more.
type pinataMetadata struct {
	Name string `json:"name,omitempty"`
}

// pinataResponse is the success response from pinFileToIPFS.
type pinataResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// Pin uploads the content and returns the content address reported by the
// store. See Service for the error contract.
func (c *PinataClient) Pin(ctx context.Context, r io.Reader, hint string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	filename := hint
	if filename == "" {
		filename = "file"
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", WrapUnavailableError(err, "failed to build pin request")
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", WrapUnavailableError(err, "failed to read content for pinning")
	}

	if hint != "" {
		metadata, err := json.Marshal(pinataMetadata{Name: hint})
		if err != nil {
			return "", WrapUnavailableError(err, "failed to encode pin metadata")
		}
		if err := writer.WriteField("pinataMetadata", string(metadata)); err != nil {
			return "", WrapUnavailableError(err, "failed to build pin request")
		}
	}

	if err := writer.Close(); err != nil {
		return "", WrapUnavailableError(err, "failed to build pin request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pinning/pinFileToIPFS", body)
	if err != nil {
		return "", WrapUnavailableError(err, "failed to create pin request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.jwt)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", WrapUnavailableError(err, "failed to call pinning service")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.classifyStatus(resp)
	}

	var pinResp pinataResponse
	if err := json.NewDecoder(resp.Body).Decode(&pinResp); err != nil {
		return "", WrapBadResponseError(err, "failed to decode pinning response")
	}

	if pinResp.IpfsHash == "" {
		return "", NewBadResponseError("pinning response missing content address")
	}

	return pinResp.IpfsHash, nil
}

// classifyStatus maps non-200 responses to the pinning error taxonomy.
func (c *PinataClient) classifyStatus(resp *http.Response) error {
	// keep a short excerpt of the body for the server-side log
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return NewAuthError(fmt.Sprintf("pinning service rejected credentials (status %d)", resp.StatusCode))
	case http.StatusPaymentRequired, http.StatusRequestEntityTooLarge:
		return NewQuotaError(fmt.Sprintf("pinning service rejected content (status %d): %s", resp.StatusCode, string(excerpt)))
	default:
		return NewUnavailableError(fmt.Sprintf("pinning service returned status %d: %s", resp.StatusCode, string(excerpt)))
	}
}
