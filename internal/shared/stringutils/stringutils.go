package stringutils

import "regexp"

var reTag = regexp.MustCompile(`</?[A-Za-z][A-Za-z0-9_-]*>`)

// Truncate shortens a string to at most n characters, adding "..." if it was truncated.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// StripTags removes `<x>`/`</x>` markers, leaving the inner text. Used when
// rendering tagged spans in human-readable summaries.
func StripTags(s string) string {
	return reTag.ReplaceAllString(s, "")
}

// OrDefault returns s if it is not empty, or def otherwise.
func OrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
