// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// # Random Tokens

const (
	// LinkCodeLength is the byte length of a partner link code before encoding.
	LinkCodeLength = 16

	// AnonymousIDLength is the hex character count of a derived anonymous id.
	// Truncation is a deliberate collision-risk-for-privacy tradeoff, not a
	// security boundary.
	AnonymousIDLength = 16
)

// GenerateSecureToken returns a URL-safe random string of byteLength entropy bytes.
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buffer), nil
}

// GenerateLinkCode returns a unique, URL-safe partner link code.
//
// The code is bound 1:1 to a user at registration and handed to a partner
// out-of-band to initiate a mutual link.
func GenerateLinkCode() (string, error) {
	return GenerateSecureToken(LinkCodeLength)
}

// # Derived Identifiers

// AnonymousID derives a stable, non-reversible-in-practice identifier from a
// user id. It is used to attribute social-feed content without exposing the
// real account identifier.
//
// The function is pure: repeated calls for the same id return identical output.
func AnonymousID(userID string) string {
	digest := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(digest[:])[:AnonymousIDLength]
}
