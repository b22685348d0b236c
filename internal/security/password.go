package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest admin password bcrypt can hash without
// truncation.
const MaxPasswordBytes = 72

const adminHashCost = 12

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword derives the stored form of the admin credential.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), adminHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored admin credential.
// A corrupt stored value matches nothing.
func CheckPassword(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
