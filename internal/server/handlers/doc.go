// Package handlers provides the HTTP handlers for the certificate registry
// API (issue, verify, read path) plus general infrastructure handlers
// (health, readiness, version).
package handlers
