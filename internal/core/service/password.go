package service

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
	pbkdf2Iterations = 100000
	pbkdf2KeyLen     = 32
	saltBytes        = 16
)

// HashPassword derives a PBKDF2-SHA256 digest under a fresh random salt and
// returns the stored form "salt:hexdigest". The hex-encoded salt string is
// the KDF salt input, so the stored form alone is enough to re-derive.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)
	digest := pbkdf2.Key([]byte(password), []byte(saltHex), pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return saltHex + ":" + hex.EncodeToString(digest), nil
}

// VerifyPassword reports whether candidate matches the stored form produced
// by HashPassword. Malformed stored input yields false, never an error.
func VerifyPassword(stored, candidate string) bool {
	salt, digestHex, ok := strings.Cut(stored, ":")
	if !ok || salt == "" {
		return false
	}
	want, err := hex.DecodeString(digestHex)
	if err != nil || len(want) == 0 {
		return false
	}
	got := pbkdf2.Key([]byte(candidate), []byte(salt), pbkdf2Iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
