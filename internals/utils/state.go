package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateStateToken returns a random anti-CSRF nonce for the OAuth flow.
func GenerateStateToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating state token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
