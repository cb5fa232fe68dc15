package mapper

import "strings"

// Normalize canonicalizes a field-name-like string for comparison: lower
// case, whitespace, underscores and hyphens removed. Idempotent.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch r {
		case ' ', '\t', '\n', '\r', '_', '-':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
