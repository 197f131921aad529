// Package server provides the HTTP server for the certificate registry.
//
// the server is configured through environment variables
// (see internal/config/config.go for details)
//
// Routes:
//   - the registry API under /api/v1 (issue, verify, read path)
//   - common infrastructure handlers (health, ready, version)
//
// middleware is in internal/server/middleware
package server
