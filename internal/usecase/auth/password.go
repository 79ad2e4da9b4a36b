package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordScheme selects how registration digests passwords.
type PasswordScheme string

const (
	// SchemeSHA256 stores an unsalted SHA-256 hex digest. Equal passwords
	// produce identical hashes, which keeps login a single combined
	// email+hash lookup. Retained for compatibility with existing rows.
	SchemeSHA256 PasswordScheme = "sha256"
	// SchemeBcrypt stores a salted bcrypt hash. Login switches to a
	// find-by-email plus compare flow.
	SchemeBcrypt PasswordScheme = "bcrypt"
)

// HashPassword returns the lowercase hex SHA-256 digest of the password's
// UTF-8 bytes.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// isBcryptHash reports whether a stored hash uses the bcrypt format, so rows
// written under SchemeBcrypt stay verifiable regardless of the active scheme.
func isBcryptHash(stored string) bool {
	return strings.HasPrefix(stored, "$2")
}

func verifyAgainstHash(stored, password string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return stored == HashPassword(password)
}
