// Package validation holds the format checks used when registering clients.
package validation

import (
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValidName reports whether name is a usable person name: non-blank, at
// most 50 characters, letters with optional spaces, hyphens or apostrophes.
func IsValidName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || len(trimmed) > 50 {
		return false
	}
	for _, r := range trimmed {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '\'' {
			return false
		}
	}
	return true
}

// IsValidEmail reports whether email looks like a well-formed address.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPassword reports whether password meets the minimum length of 6
// characters.
func IsValidPassword(password string) bool {
	return len(password) >= 6
}
