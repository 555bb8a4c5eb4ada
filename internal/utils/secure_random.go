package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// GenerateSecureRandomString generates a cryptographically secure random string of the specified byte length,
// then hex encodes it. For example, lengthInBytes=32 will result in a 64-character hex string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateReference builds a human-readable reference such as
// "TXN-20260105-9F2C41AB" from a prefix, the given day and 4 random bytes.
func GenerateReference(prefix string, at time.Time) (string, error) {
	suffix, err := GenerateSecureRandomString(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%s", prefix, at.UTC().Format("20060102"), strings.ToUpper(suffix)), nil
}
