package utils

import (
	"strings"
)

// ParseInputString trims surrounding whitespace from user input.
func ParseInputString(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
