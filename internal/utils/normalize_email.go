package utils

import "strings"

// NormalizeEmail brings an email address to the canonical stored form:
// surrounding whitespace removed, lower case.
func NormalizeEmail(raw string) string {
	normalized := strings.TrimSpace(raw)
	normalized = strings.ToLower(normalized)
	return normalized
}
