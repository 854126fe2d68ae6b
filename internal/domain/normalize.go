package domain

import "strings"

// Normalize prepares raw user text for intent matching: lowercase,
// surrounding whitespace trimmed, every run of question marks removed.
// Pure and total; applying it twice gives the same result.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if strings.Contains(s, "?") {
		s = strings.ReplaceAll(s, "?", "")
		s = strings.TrimSpace(s)
	}
	return s
}
