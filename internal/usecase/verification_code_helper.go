package usecase

import (
	"crypto/rand"
	"io"
)

// generateVerificationCode creates the 6-digit code sent during signup.
// Uniform over 000000..999999, leading zeros kept.
func generateVerificationCode() (string, error) {
	const digits = "0123456789"
	const codeLength = 6

	buffer := make([]byte, codeLength)
	if _, err := io.ReadFull(rand.Reader, buffer); err != nil {
		return "", err
	}

	for i := 0; i < codeLength; i++ {
		buffer[i] = digits[int(buffer[i])%len(digits)]
	}
	return string(buffer), nil
}
