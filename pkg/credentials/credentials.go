// Package credentials derives salted password digests for resident
// registration.
package credentials

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// GenerateSalt returns a fresh random 128-bit salt, hex encoded.
func GenerateSalt() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// Hash returns the hex-encoded SHA-256 digest of password concatenated
// with salt. The same (password, salt) pair always yields the same
// digest.
func Hash(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// HashWithNewSalt generates a salt and returns the digest together with
// the salt used.
func HashWithNewSalt(password string) (digest, salt string) {
	salt = GenerateSalt()
	return Hash(password, salt), salt
}

// VerificationCode returns a 6-character uppercase onboarding token.
func VerificationCode() string {
	return strings.ToUpper(GenerateSalt()[:6])
}
