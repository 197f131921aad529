// Package pinning integrates the external content-addressed store used to
// retain issued credential files.
//
// The registry only depends on the Service contract: submit bytes, get back a
// stable opaque content address. Implementations are selected via
// configuration so dev and tests can run without the external pinning API.
//
// To add support for a new pinning provider:
//  1. Create a new type that implements the Service interface
//  2. Add a case for it in NewService() based on the service name
package pinning

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/academic-credentials-network/certreg/internal/config"
)

// Service submits content to an external content-addressed store.
type Service interface {
	// Pin durably stores the content read from r and returns the store's
	// content address for it. hint is a display name only; it is never used
	// for addressing or deduplication.
	//
	// Pin performs no internal retries: transient failures are reported to
	// the caller, whose policy decides whether to retry.
	Pin(ctx context.Context, r io.Reader, hint string) (contentAddress string, err error)
}

// NewService creates a pinning Service based on the configuration.
func NewService(cfg *config.ServerEnvironment) (Service, error) {
	switch cfg.PinService {
	case "pinata":
		if cfg.PinataJWT == "" {
			return nil, fmt.Errorf("PINATA_JWT is required when PIN_SERVICE=pinata")
		}
		return &PinataClient{
			baseURL:    cfg.PinataBaseURL,
			jwt:        cfg.PinataJWT,
			httpClient: &http.Client{Timeout: cfg.PinTimeout},
		}, nil

	case "memory":
		// in-process store for dev and tests
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unsupported pin service: %s", cfg.PinService)
	}
}
