package credentials

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooShort is returned before any hashing work happens.
var ErrPasswordTooShort = errors.New("password must be at least 6 characters")

const (
	HashVersionBcrypt = "bcrypt"

	minPasswordLength = 6
)

// HashPassword hashes a plaintext password with bcrypt. The version
// tag is stored alongside the hash so the scheme can be migrated
// later without guessing from the hash format.
func HashPassword(password string) (hash string, version string, err error) {
	if len(password) < minPasswordLength {
		return "", "", ErrPasswordTooShort
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return string(bytes), HashVersionBcrypt, nil
}

// VerifyPassword compares a plaintext password with a stored hash.
func VerifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
