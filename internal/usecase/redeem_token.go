package usecase

import (
	"crypto/rand"
	"encoding/base64"
	"io"
)

// tokenBytes gives 64 bits of entropy, enough that collisions are negligible
// and brute-forcing a live code is impractical.
const tokenBytes = 8

// generateRedeemToken creates a secure, random, URL-safe redeem token
// (~11 characters).
func generateRedeemToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
