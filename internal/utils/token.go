package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const verificationTokenBytes = 32

// GenerateVerificationToken returns a URL-safe random token backed by 32 bytes
// of entropy from the operating system CSPRNG.
func GenerateVerificationToken() (string, error) {
	buf := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
