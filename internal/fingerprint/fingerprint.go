// Package fingerprint computes content fingerprints for issued credential
// files.
//
// A fingerprint is the SHA-256 digest of the file's exact bytes rendered as
// lowercase hex. It is deterministic and is the lookup key used by the
// verification path, so it must always be computed over the bytes as uploaded
// (never re-derived from the content store's address).
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// HexLength is the length of a rendered fingerprint (SHA-256, hex encoded).
const HexLength = 64

// Compute streams r into a SHA-256 digest and returns the lowercase hex
// fingerprint. The whole stream is consumed; a read error is returned as-is
// wrapped, and callers must treat it as a failed operation rather than a
// non-match.
func Compute(r io.Reader) (string, error) {
	hasher := sha256.New()

	if _, err := io.Copy(hasher, r); err != nil {
		return "", fmt.Errorf("failed to read content for fingerprinting: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// ComputeBytes returns the fingerprint of data already held in memory.
func ComputeBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ComputeFile returns the fingerprint of a file on disk.
// The file handle is released on every exit path.
func ComputeFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Compute(file)
}

// Matches reports whether the content read from r has the expected
// fingerprint. A read error is an operational failure, not a mismatch.
func Matches(r io.Reader, expected string) (bool, error) {
	got, err := Compute(r)
	if err != nil {
		return false, err
	}
	return got == expected, nil
}

// Valid reports whether s looks like a fingerprint produced by this package
// (64 lowercase hex characters).
func Valid(s string) bool {
	if len(s) != HexLength {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}
