package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 100_000
	pbkdf2KeyLen     = 32
	saltBytes        = 8
)

// HashPassword derives a salted PBKDF2-HMAC-SHA256 hash stored as
// "salt$hash" with both halves hex encoded.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)
	key := pbkdf2.Key([]byte(password), []byte(saltHex), pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return saltHex + "$" + hex.EncodeToString(key), nil
}

// VerifyPassword checks a provided password against a stored "salt$hash"
// blob. Plaintext is never stored or compared directly.
func VerifyPassword(stored, provided string) bool {
	parts := strings.SplitN(stored, "$", 2)
	if len(parts) != 2 {
		return false
	}
	saltHex, wantHex := parts[0], parts[1]
	want, err := hex.DecodeString(wantHex)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(provided), []byte(saltHex), pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
