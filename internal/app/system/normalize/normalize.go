// internal/app/system/normalize/normalize.go

// Package normalize canonicalizes user-supplied identifiers and enumeration
// values before they are compared or used as query filters.
package normalize

import (
	"strconv"
	"strings"
)

// Email lower-cases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Enum canonicalizes a value drawn from a fixed enumeration such as a news
// status or a person category: trimmed, lower-case, with spaces and hyphens
// folded to underscores ("Team Member" → "team_member").
func Enum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// SortOrder returns "asc" for any spelling of ascending and "desc" otherwise.
func SortOrder(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "1":
		return "asc"
	}
	return "desc"
}

// Bool parses a query-string flag. The second result is false when s is
// blank or not a recognizable boolean.
func Bool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on":
		return true, true
	case "no", "off":
		return false, true
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, false
	}
	return b, true
}

// EmailList splits a comma-separated allowlist into normalized addresses,
// dropping blanks.
func EmailList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if e := Email(part); e != "" {
			out = append(out, e)
		}
	}
	return out
}
