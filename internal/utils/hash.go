package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Registration and the admin seed both create accounts, so the work factor
// lives here rather than in either caller.
const BcryptCost = 12

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// IsHash reports whether value already looks like a bcrypt hash. Update paths
// use it to avoid re-hashing an already hashed value on re-save.
func IsHash(value string) bool {
	return strings.HasPrefix(value, "$2")
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
