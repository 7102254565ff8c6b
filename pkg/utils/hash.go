package utils

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares plain password with hashed password.
func CheckPassword(plain, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}

// IsBcryptHash reports whether s looks like a bcrypt digest.
func IsBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// MatchSecret compares plain against a configured secret, which may be
// stored either verbatim or as a bcrypt hash.
func MatchSecret(plain, configured string) bool {
	if IsBcryptHash(configured) {
		return CheckPassword(plain, configured)
	}
	return subtle.ConstantTimeCompare([]byte(plain), []byte(configured)) == 1
}
