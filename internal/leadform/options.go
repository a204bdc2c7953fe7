package leadform

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	keyPattern    = regexp.MustCompile(`^[a-z0-9_]+$`)
)

// NormalizeKey lowercases a field key and collapses whitespace runs to "_".
// "Applicant Email" becomes "applicant_email".
func NormalizeKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	return whitespaceRun.ReplaceAllString(key, "_")
}

// ValidKey reports whether key is a canonical field key.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// ParseOptions splits a comma separated option list, trimming entries and
// dropping empty ones.
func ParseOptions(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinOptions is the edit-mode representation of an option list.
func JoinOptions(options []string) string {
	return strings.Join(options, ", ")
}
