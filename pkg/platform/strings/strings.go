// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice, trimming
// whitespace from each element. First occurrence wins; order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  Luna ", "Bella", "Luna", "", "  "})
//	// Returns: []string{"Luna", "Bella"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// NormalizeName lowercases and trims a display name for case-insensitive
// comparison (stable name uniqueness, custom role matching).
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
