// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// Access scopes
const (
	ScopeExport  = "export"
	ScopeRefresh = "refresh"
)

var (
	ErrInvalidAccessKey = errors.New("invalid access key")
	ErrMissingSecret    = errors.New("access secret not configured")
)

// GenerateAccessKey derives the key for a scope from the access secret.
// Rotating the secret invalidates every key derived from it.
func GenerateAccessKey(scope, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(scope))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAccessKey checks if the provided key is valid for the scope
func ValidateAccessKey(scope, key, secret string) error {
	if secret == "" {
		return ErrMissingSecret
	}
	expected := GenerateAccessKey(scope, secret)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidAccessKey
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
