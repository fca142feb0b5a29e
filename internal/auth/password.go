// Package auth implements the credential primitives for the admin API:
// scrypt password hashing, password strength policy, and signed identity
// tokens. Everything here is pure computation; persistence lives in store.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters. N=32768 (2^15) with r=8, p=1 keeps a single derivation
// in the tens of milliseconds while making offline brute force expensive.
const (
	saltLength = 32
	keyLength  = 64
	scryptN    = 32768
	scryptR    = 8
	scryptP    = 1
)

// commonPasswords is a small deny list of passwords that satisfy every
// character-class rule but are still trivially guessable. Compared
// case-insensitively.
var commonPasswords = map[string]struct{}{
	"password123!":   {},
	"p@ssword1234":   {},
	"qwerty123456!":  {},
	"admin1234567!":  {},
	"welcome12345!":  {},
	"letmein12345!":  {},
	"changeme1234!":  {},
	"iloveyou1234!":  {},
	"sunshine1234!":  {},
	"password1234!":  {},
	"qwertyuiop123!": {},
}

// HashPassword derives a salted scrypt hash of the plaintext password and
// returns it as "hex(salt):hex(key)". The salt is freshly random on every
// call, so hashing the same password twice yields different strings.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword checks a plaintext password against a stored
// "hex(salt):hex(key)" hash. Malformed hashes (missing separator, non-hex
// fields, wrong lengths) and mismatches both return false; this function
// never errors so callers cannot leak parse details to clients.
func VerifyPassword(password, storedHash string) bool {
	saltHex, keyHex, ok := strings.Cut(storedHash, ":")
	if !ok || saltHex == "" || keyHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	storedKey, err := hex.DecodeString(keyHex)
	if err != nil {
		return false
	}
	if len(storedKey) != keyLength {
		return false
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(storedKey, key) == 1
}

// CheckStrength validates a candidate password against the admin password
// policy. It returns an empty string when the password is acceptable, or a
// human-readable message naming the first rule the password fails.
func CheckStrength(password string) string {
	if len(password) < 12 {
		return "Password must be at least 12 characters long"
	}
	if len(password) > 128 {
		return "Password must be less than 128 characters"
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasLower {
		return "Password must contain at least one lowercase letter"
	}
	if !hasUpper {
		return "Password must contain at least one uppercase letter"
	}
	if !hasDigit {
		return "Password must contain at least one number"
	}
	if !hasSpecial {
		return "Password must contain at least one special character"
	}

	if _, found := commonPasswords[strings.ToLower(password)]; found {
		return "Password is too common, please choose another"
	}

	return ""
}
