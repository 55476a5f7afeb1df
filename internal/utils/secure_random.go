package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// RandomHex returns n random bytes hex encoded, so the result is 2n characters long.
// Used for the development JWT secret when JWT_SECRET is unset.
func RandomHex(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("random: byte count must be positive")
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("random: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
