// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a random hex string of length*2 characters,
// sourced from crypto/rand. Used for single-use password-reset tokens.
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("sec: invalid token length %d", length)
	}

	randomBytes := make([]byte, length)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("sec: failed to read entropy: %w", err)
	}

	return hex.EncodeToString(randomBytes), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// Volatile stores keep only the digest so that a leaked store dump cannot
// be replayed as live tokens.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
