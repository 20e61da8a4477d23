// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth gates CSV exports and feed refreshes behind access keys.

# Access Keys

Keys are HMAC-SHA256 digests of a scope under the ACCESS_SECRET:

	key := auth.GenerateAccessKey(auth.ScopeExport, secret)
	err := auth.ValidateAccessKey(auth.ScopeExport, key, secret)

Keys are URL-safe base64 without padding. The secret never leaves the
server's configuration; operators hand out scoped keys instead, and rotating
the secret revokes every key at once. cmd/rollreport -print-key prints the
key for a scope.

Scopes:

  - export: download detail CSVs
  - refresh: reload the voter roll on demand

# IP Hashing

Export audit rows store a hashed client address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
