package memory

// Bounds are the capacity limits applied to the three history lists. Every
// bound is at least 1; config validation enforces that before the core sees
// a value.
type Bounds struct {
	MaxHistoryItems int `json:"maxHistoryItems"`
	MaxPatterns     int `json:"maxPatterns"`
	MaxMistakes     int `json:"maxMistakes"`
}

// Settings is an immutable snapshot of the memory system's configuration.
// Updates never mutate a snapshot in place; Apply builds a new one. This
// keeps resolution order explicit: defaults, then the mode table, then
// per-call overrides.
type Settings struct {
	Enabled      bool              `json:"enabled"`
	Mode         string            `json:"mode"`
	Fallback     Bounds            `json:"fallback"`
	ModeSettings map[string]Bounds `json:"modeSettings"`
}

// Operating modes shipped by default. Arbitrary mode names are allowed; an
// unknown mode resolves to the fallback bounds.
const (
	ModeCode = "code"
	ModePlan = "plan"
	ModeAsk  = "ask"
)

// DefaultSettings returns the enabled, code-mode configuration.
func DefaultSettings() Settings {
	return Settings{
		Enabled:  true,
		Mode:     ModeCode,
		Fallback: Bounds{MaxHistoryItems: 20, MaxPatterns: 10, MaxMistakes: 10},
		ModeSettings: map[string]Bounds{
			ModeCode: {MaxHistoryItems: 20, MaxPatterns: 10, MaxMistakes: 10},
			ModePlan: {MaxHistoryItems: 15, MaxPatterns: 8, MaxMistakes: 5},
			ModeAsk:  {MaxHistoryItems: 10, MaxPatterns: 5, MaxMistakes: 5},
		},
	}
}

// Bounds resolves the capacity limits for the active mode, falling back to
// the flat bounds when the mode has no entry.
func (s Settings) Bounds() Bounds {
	if b, ok := s.ModeSettings[s.Mode]; ok {
		return b
	}
	return s.Fallback
}

// clone returns a snapshot sharing no map with the receiver.
func (s Settings) clone() Settings {
	out := s
	out.ModeSettings = make(map[string]Bounds, len(s.ModeSettings))
	for k, v := range s.ModeSettings {
		out.ModeSettings[k] = v
	}
	return out
}

// SettingsUpdate is a partial settings change. Nil fields preserve the
// current value; ModeSettings entries merge into the existing table.
type SettingsUpdate struct {
	Enabled      *bool
	Mode         *string
	Fallback     *Bounds
	ModeSettings map[string]Bounds
}

// Apply builds a new snapshot with u layered on top of s.
func (s Settings) Apply(u SettingsUpdate) Settings {
	out := s.clone()
	if u.Enabled != nil {
		out.Enabled = *u.Enabled
	}
	if u.Mode != nil {
		out.Mode = *u.Mode
	}
	if u.Fallback != nil {
		out.Fallback = *u.Fallback
	}
	for k, v := range u.ModeSettings {
		out.ModeSettings[k] = v
	}
	return out
}
