// Package extract pulls tagged snippets and technical references out of raw
// message text. All functions are pure; they never touch shared state.
package extract

import "regexp"

// reTag matches a balanced open/close tag pair whose inner content contains
// no `<`. Go's regexp has no backreferences, so open and close names are
// captured separately and compared in code. Nested same-name tags are not
// specially handled: matching is first-match, non-greedy, and the inner
// `[^<]*` stops the outer open tag from spanning an inner one.
var reTag = regexp.MustCompile(`<([A-Za-z][A-Za-z0-9_-]*)>([^<]*)</([A-Za-z][A-Za-z0-9_-]*)>`)

// rePath matches a POSIX-style path: two or more slash-separated segments of
// word, dot and hyphen characters, with an optional leading slash.
var rePath = regexp.MustCompile(`/?[\w.-]+(?:/[\w.-]+)+`)

// reCode matches an inline code span delimited by a single backtick pair.
// The span is kept with its backticks.
var reCode = regexp.MustCompile("`[^`\n]+`")

// Result holds the two deduplicated extraction sets, each in first-seen
// order.
type Result struct {
	Patterns         []string
	TechnicalDetails []string
}

// Patterns returns all tagged spans `<X>...</X>` found in text, deduplicated
// by exact string equality, in first-seen order.
func Patterns(text string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, m := range reTag.FindAllStringSubmatch(text, -1) {
		if m[1] != m[3] {
			continue
		}
		if _, ok := seen[m[0]]; ok {
			continue
		}
		seen[m[0]] = struct{}{}
		out = append(out, m[0])
	}
	return out
}

// TechnicalDetails returns all path references and inline code spans found
// in text, deduplicated, in first-seen order. Code spans come after paths
// because the two scans run independently; ordering within each scan is
// positional.
func TechnicalDetails(text string) []string {
	var out []string
	seen := map[string]struct{}{}
	add := func(matches []string) {
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	add(rePath.FindAllString(text, -1))
	add(reCode.FindAllString(text, -1))
	return out
}

// All runs both extraction passes over text.
func All(text string) Result {
	return Result{
		Patterns:         Patterns(text),
		TechnicalDetails: TechnicalDetails(text),
	}
}
