package memory

import (
	"fmt"
	"strings"

	"github.com/contextkeeper/contextkeeper/internal/shared/stringutils"
)

// Summary renders a fixed-format digest of the current context: scope and
// stage, technical language/framework, the top three patterns, progress
// counts, and the memory system's enabled flag and mode. Purely derived.
func (s *Store) Summary() string {
	mem := s.mem

	var b strings.Builder
	b.WriteString("Current Context:\n")
	fmt.Fprintf(&b, "- Task: %s (stage: %s)\n",
		stringutils.Truncate(stringutils.OrDefault(mem.Task.Scope, "none"), 80),
		stringutils.OrDefault(mem.Task.Stage, "none"))
	fmt.Fprintf(&b, "- Tech: %s / %s\n",
		stringutils.OrDefault(mem.Technical.Language, "unknown"),
		stringutils.OrDefault(mem.Technical.Framework, "unknown"))

	top := mem.User.History.CommonPatterns
	if len(top) > 3 {
		top = top[:3]
	}
	names := make([]string, 0, len(top))
	for _, p := range top {
		names = append(names, stringutils.Truncate(stringutils.StripTags(p.Pattern), 40))
	}
	fmt.Fprintf(&b, "- Key Patterns: %s\n", stringutils.OrDefault(strings.Join(names, ", "), "none"))
	fmt.Fprintf(&b, "- Progress: %d completed, %d pending\n",
		len(mem.Task.Progress.Completed), len(mem.Task.Progress.Pending))

	state := "disabled"
	if s.settings.Enabled {
		state = "enabled"
	}
	fmt.Fprintf(&b, "- Memory: %s (mode: %s)", state, s.settings.Mode)
	return b.String()
}

// PromptContext wraps Summary under a heading for system-prompt injection,
// or returns "" when there is nothing worth injecting yet.
func (s *Store) PromptContext() string {
	if s.mem.Task.ID == "" && len(s.mem.User.History.CommonPatterns) == 0 {
		return ""
	}
	return "## Context Memory\n\n" + s.Summary()
}
