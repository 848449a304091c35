package auth

import "strings"

// normalizeEmail lowercases and trims an email address
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeUsername trims surrounding whitespace
func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}
