package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the login email is unknown so both paths cost one bcrypt round.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("credence-dummy-password"), bcrypt.DefaultCost)

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
// An empty hash never matches.
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
