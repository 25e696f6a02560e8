package utils

import (
	"crypto/rand"
	"regexp"
)

const (
	codeAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	SignupCodeLength = 8
)

var codeFormat = regexp.MustCompile(`^[A-Z0-9]{6,20}$`)

// GenerateSignupCode returns a random code drawn from the A-Z0-9 alphabet.
// Uniqueness against the ledger is the caller's job.
func GenerateSignupCode(length int) (string, error) {
	if length <= 0 {
		length = SignupCodeLength
	}
	buffer := make([]byte, length)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}
	for i, b := range buffer {
		buffer[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buffer), nil
}

func IsValidCodeFormat(code string) bool {
	return codeFormat.MatchString(code)
}
