// Package validate checks a context-memory snapshot against completeness and
// freshness rules. Validators are stateless: they read a snapshot, never
// mutate it, and never fail — a bad state is a result, not an error.
package validate

import (
	"fmt"
	"time"

	"github.com/contextkeeper/contextkeeper/internal/schema"
)

// StaleAfter is how old the last task update may be before validators warn
// about freshness.
const StaleAfter = 30 * time.Minute

// ForToolUse checks the snapshot before a tool invocation. Tool use needs a
// fully identified task and a known project root; a drained pending list or
// a stale task only warrants warnings.
func ForToolUse(mem schema.ContextMemory) schema.ValidationResult {
	res := newResult()

	requireField(&res, mem.Task.ID != "", "task.id")
	requireField(&res, mem.Task.Scope != "", "task.scope")
	requireField(&res, mem.Task.Stage != "", "task.stage")
	requireField(&res, mem.Technical.ProjectStructure.Root != "", "technical.projectStructure.root")

	if len(mem.Task.Progress.Pending) == 0 {
		res.Warnings = append(res.Warnings, "no pending steps defined")
	}
	if stale(mem.Task.LastUpdateTime) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("task context not updated in over %s", StaleAfter))
	}

	res.IsValid = len(res.MissingFields) == 0
	return res
}

// ForCompletion checks the snapshot before declaring the task complete.
// Outstanding pending steps and an empty completed list are suspicious but
// not blocking.
func ForCompletion(mem schema.ContextMemory) schema.ValidationResult {
	res := newResult()

	requireField(&res, mem.Task.ID != "", "task.id")
	requireField(&res, mem.Task.Scope != "", "task.scope")

	if len(mem.Task.Progress.Pending) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d pending steps remain", len(mem.Task.Progress.Pending)))
	}
	if len(mem.Task.Progress.Completed) == 0 {
		res.Warnings = append(res.Warnings, "no steps marked completed")
	}

	res.IsValid = len(res.MissingFields) == 0
	return res
}

type severity int

const (
	severityError severity = iota
	severityWarning
)

// rule is one named completeness check. check returns whether the rule holds
// and the message reported when it does not.
type rule struct {
	name     string
	severity severity
	check    func(mem schema.ContextMemory) (bool, string)
}

var completenessRules = []rule{
	{
		name:     "task identity",
		severity: severityError,
		check: func(mem schema.ContextMemory) (bool, string) {
			if mem.Task.ID == "" || mem.Task.Scope == "" {
				return false, "task.id and task.scope"
			}
			return true, ""
		},
	},
	{
		name:     "task progress",
		severity: severityError,
		check: func(mem schema.ContextMemory) (bool, string) {
			if len(mem.Task.Progress.Completed) == 0 && len(mem.Task.Progress.Pending) == 0 {
				return false, "task.progress"
			}
			return true, ""
		},
	},
	{
		name:     "project root",
		severity: severityError,
		check: func(mem schema.ContextMemory) (bool, string) {
			if mem.Technical.ProjectStructure.Root == "" {
				return false, "technical.projectStructure.root"
			}
			return true, ""
		},
	},
	{
		name:     "freshness",
		severity: severityWarning,
		check: func(mem schema.ContextMemory) (bool, string) {
			if stale(mem.Task.LastUpdateTime) {
				return false, fmt.Sprintf("task context not updated in over %s", StaleAfter)
			}
			return true, ""
		},
	},
}

// Completeness runs the fixed rule table over the snapshot. Failed error
// rules become missing fields; failed warning rules become warnings.
func Completeness(mem schema.ContextMemory) schema.ValidationResult {
	res := newResult()
	for _, r := range completenessRules {
		ok, msg := r.check(mem)
		if ok {
			continue
		}
		switch r.severity {
		case severityError:
			res.MissingFields = append(res.MissingFields, msg)
		case severityWarning:
			res.Warnings = append(res.Warnings, msg)
		}
	}
	res.IsValid = len(res.MissingFields) == 0
	return res
}

func newResult() schema.ValidationResult {
	return schema.ValidationResult{
		IsValid:       true,
		MissingFields: []string{},
		Warnings:      []string{},
	}
}

func requireField(res *schema.ValidationResult, ok bool, field string) {
	if !ok {
		res.MissingFields = append(res.MissingFields, field)
	}
}

func stale(last time.Time) bool {
	return last.IsZero() || time.Since(last) > StaleAfter
}
