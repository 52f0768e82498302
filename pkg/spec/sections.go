package spec

import (
	"strings"
	"unicode"
)

// SectionIndex scans a document body for heading lines and returns the set
// of canonical section keys. The index answers presence checks only; it
// carries no ordering or nesting information.
func SectionIndex(body string) map[string]bool {
	sections := make(map[string]bool)
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") {
			continue
		}
		heading := strings.TrimLeft(trimmed, "#")
		if heading == trimmed || !strings.HasPrefix(heading, " ") {
			continue
		}
		if key := NormalizeHeading(heading); key != "" {
			sections[key] = true
		}
	}
	return sections
}

// NormalizeHeading folds a heading to its canonical key: lower-cased,
// `&` mapped to "and", punctuation and runs of whitespace collapsed to
// single spaces.
func NormalizeHeading(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", " and ")

	var sb strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
