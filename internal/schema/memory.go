package schema

import "time"

// TaskProgress tracks the completed and pending steps of the active task.
type TaskProgress struct {
	Completed []string `json:"completed"`
	Pending   []string `json:"pending"`
}

// TaskContext describes the task currently being worked on. There is one
// live instance per active task; re-initialization replaces it wholesale.
type TaskContext struct {
	ID             string       `json:"id"`
	Scope          string       `json:"scope"`
	Stage          string       `json:"stage"`
	Progress       TaskProgress `json:"progress"`
	StartTime      time.Time    `json:"startTime"`
	LastUpdateTime time.Time    `json:"lastUpdateTime"`
}

// ProjectStructure describes the shape of the project under work.
type ProjectStructure struct {
	Root         string   `json:"root"`
	MainFiles    []string `json:"mainFiles"`
	Dependencies []string `json:"dependencies"`
}

// TechnicalContext holds what has been learned about the codebase. Updates
// are shallow merges: provided fields overwrite, omitted fields survive.
type TechnicalContext struct {
	Framework         string           `json:"framework,omitempty"`
	Language          string           `json:"language,omitempty"`
	Patterns          []string         `json:"patterns"`
	ProjectStructure  ProjectStructure `json:"projectStructure"`
	LastAnalyzedFiles []string         `json:"lastAnalyzedFiles"`
}

// CommandEntry is one remembered command invocation, newest first.
type CommandEntry struct {
	Command   string    `json:"command"`
	Timestamp time.Time `json:"timestamp"`
}

// PatternEntry counts occurrences of one extracted pattern. The pattern
// list is kept sorted by occurrences descending.
type PatternEntry struct {
	Pattern     string `json:"pattern"`
	Occurrences int    `json:"occurrences"`
}

// MistakeEntry is one recorded mistake, newest first.
type MistakeEntry struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// UserHistory holds the three independently bounded history lists.
type UserHistory struct {
	RecentCommands []CommandEntry `json:"recentCommands"`
	CommonPatterns []PatternEntry `json:"commonPatterns"`
	Mistakes       []MistakeEntry `json:"mistakes"`
}

// UserContext holds per-user preferences and learned history.
type UserContext struct {
	Preferences map[string]any `json:"preferences"`
	History     UserHistory    `json:"history"`
}

// ContextMemory is the unit of in-memory state: one instance per memory
// store, exclusively owned by it. Readers get a deep copy (Clone), never a
// reference into live state.
type ContextMemory struct {
	Task      TaskContext      `json:"task"`
	Technical TechnicalContext `json:"technical"`
	User      UserContext      `json:"user"`
}

// NewContextMemory returns an empty memory with all lists non-nil so that
// serialized output is stable ([] rather than null).
func NewContextMemory() ContextMemory {
	return ContextMemory{
		Task: TaskContext{
			Progress: TaskProgress{Completed: []string{}, Pending: []string{}},
		},
		Technical: TechnicalContext{
			Patterns: []string{},
			ProjectStructure: ProjectStructure{
				MainFiles:    []string{},
				Dependencies: []string{},
			},
			LastAnalyzedFiles: []string{},
		},
		User: UserContext{
			Preferences: map[string]any{},
			History: UserHistory{
				RecentCommands: []CommandEntry{},
				CommonPatterns: []PatternEntry{},
				Mistakes:       []MistakeEntry{},
			},
		},
	}
}

// Clone returns a structural copy sharing no mutable references with the
// receiver. Preference values are copied by assignment; callers storing
// mutable values under preferences own their aliasing.
func (cm ContextMemory) Clone() ContextMemory {
	out := cm
	out.Task.Progress.Completed = append([]string(nil), cm.Task.Progress.Completed...)
	out.Task.Progress.Pending = append([]string(nil), cm.Task.Progress.Pending...)
	out.Technical.Patterns = append([]string(nil), cm.Technical.Patterns...)
	out.Technical.ProjectStructure.MainFiles = append([]string(nil), cm.Technical.ProjectStructure.MainFiles...)
	out.Technical.ProjectStructure.Dependencies = append([]string(nil), cm.Technical.ProjectStructure.Dependencies...)
	out.Technical.LastAnalyzedFiles = append([]string(nil), cm.Technical.LastAnalyzedFiles...)
	out.User.Preferences = make(map[string]any, len(cm.User.Preferences))
	for k, v := range cm.User.Preferences {
		out.User.Preferences[k] = v
	}
	out.User.History.RecentCommands = append([]CommandEntry(nil), cm.User.History.RecentCommands...)
	out.User.History.CommonPatterns = append([]PatternEntry(nil), cm.User.History.CommonPatterns...)
	out.User.History.Mistakes = append([]MistakeEntry(nil), cm.User.History.Mistakes...)
	return out
}
