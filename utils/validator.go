// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}

// CountWords returns the whitespace-delimited word count of a body. The
// publishing-rule gate compares this against the category's bounds.
func CountWords(body string) int {
	return len(strings.Fields(body))
}

// CountTags counts the non-empty entries of a comma-separated tag list.
func CountTags(tags string) int {
	if strings.TrimSpace(tags) == "" {
		return 0
	}
	count := 0
	for _, t := range strings.Split(tags, ",") {
		if strings.TrimSpace(t) != "" {
			count++
		}
	}
	return count
}
