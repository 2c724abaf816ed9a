package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/obrafacil/obrafacil-api/internal/constants"
)

const specialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// ValidatePassword checks the password complexity rule: at least 6
// characters including one upper-case letter, one lower-case letter and one
// special character.
func ValidatePassword(password string) bool {
	if len(password) < constants.MinPasswordLength {
		return false
	}

	var hasUpper, hasLower, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasSpecial
}

// PasswordRequirements describes the complexity rule for error messages.
const PasswordRequirements = "Password must have at least 6 characters, including one upper-case letter, one lower-case letter and one special character"

// GenerateTempPassword generates a random temporary password for users
// provisioned through add-to-company. The suffix guarantees the complexity
// rule is satisfied.
func GenerateTempPassword() (string, error) {
	bytes := make([]byte, constants.TempPasswordBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return "Ob!" + base64.RawURLEncoding.EncodeToString(bytes), nil
}
