package service

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters. These match the hashes already in the userauth table,
// so they must not change without a migration path.
const (
	minIterations = 1000
	hashKeyLen    = 64
	saltLen       = 16
)

var (
	errEmptyPassword = errors.New("password is empty")
	errShortSalt     = errors.New("salt is too short")
)

// Hasher derives and verifies salted password hashes with PBKDF2-SHA512.
type Hasher struct {
	iterations int
}

// NewHasher returns a Hasher with the given iteration count, clamped to
// the minimum. Pass 0 for the default.
func NewHasher(iterations int) *Hasher {
	if iterations < minIterations {
		iterations = minIterations
	}
	return &Hasher{iterations: iterations}
}

// NewSalt returns a fresh cryptographically random salt. Generated once
// per account at registration and again on every password change.
func NewSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// Derive computes the hex-encoded derived key for password+salt.
// Deterministic: same inputs always yield the same output.
func (h *Hasher) Derive(password string, salt []byte) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errEmptyPassword
	}
	if len(salt) < saltLen {
		return "", errShortSalt
	}
	key := pbkdf2.Key([]byte(password), salt, h.iterations, hashKeyLen, sha512.New)
	return hex.EncodeToString(key), nil
}

// Verify recomputes the derived key and compares it to the stored hex in
// constant time. Malformed inputs verify as false, never as an error the
// caller could confuse with "wrong password".
func (h *Hasher) Verify(password string, salt []byte, expectedHex string) bool {
	derived, err := h.Derive(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(derived), []byte(expectedHex)) == 1
}
