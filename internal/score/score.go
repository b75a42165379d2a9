// Package score assigns heuristic importance to individual conversation
// messages. Scoring is shallow and textual: fixed markers with fixed weights,
// no language understanding.
package score

import (
	"strings"

	"github.com/contextkeeper/contextkeeper/internal/schema"
)

// Result is the ephemeral outcome of scoring one message. It is recomputed
// per selection pass and never persisted.
type Result struct {
	Score   int
	Reasons []string
}

// Reason joins the matched-signal descriptions for display.
func (r Result) Reason() string {
	return strings.Join(r.Reasons, ", ")
}

// signal is one additive scoring rule. Markers are matched case-insensitively
// as substrings of the flattened message text; role restricts the rule to one
// side of the conversation ("" means both).
type signal struct {
	markers []string
	weight  int
	role    string
	reason  string
}

// The signal table. Weights are summed independently; a message can match
// several rows and the total has no upper bound.
var signals = []signal{
	{markers: []string{"<task>"}, weight: 10, reason: "contains task definition"},
	{markers: []string{"<environment_details>"}, weight: 8, reason: "contains environment details"},
	{markers: []string{"<thinking>"}, weight: 5, reason: "contains reasoning"},
	{markers: []string{"<tool_use>"}, weight: 6, role: schema.RoleAssistant, reason: "contains tool invocation"},
	{markers: []string{"<feedback>"}, weight: 7, role: schema.RoleUser, reason: "contains user feedback"},
	{markers: []string{"<error>", "error:"}, weight: 4, reason: "mentions an error"},
}

// Message scores one message. Pure: it depends on nothing but the message
// itself.
func Message(m schema.Message) Result {
	text := strings.ToLower(m.Flatten())

	var res Result
	for _, sig := range signals {
		if sig.role != "" && sig.role != m.Role {
			continue
		}
		for _, marker := range sig.markers {
			if strings.Contains(text, marker) {
				res.Score += sig.weight
				res.Reasons = append(res.Reasons, sig.reason)
				break
			}
		}
	}
	return res
}
