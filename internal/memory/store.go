// Package memory accumulates task, technical and user context across
// conversation turns inside hard capacity bounds, and writes every change
// through to a persistent key-value store.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/contextkeeper/contextkeeper/internal/kv"
	"github.com/contextkeeper/contextkeeper/internal/schema"
)

// Store owns one ContextMemory instance and mediates every change to it.
// A Store is single-owner: it is not safe for concurrent use, matching the
// cooperative, one-conversation-at-a-time model it serves. Readers get
// defensive copies and can never corrupt internal state.
//
// Every mutating operation applies the change in memory first, then writes
// the affected sub-object through to the backing store. A failed write is
// returned unmodified and is not rolled back: in-memory and persisted state
// may diverge after an error, and reconciliation is the caller's call.
type Store struct {
	store    kv.Store
	settings Settings
	mem      schema.ContextMemory
	now      func() time.Time
}

// New creates a Store with empty context memory. Nothing is read back from
// the backing store; call Rehydrate to load previously persisted state.
func New(store kv.Store, settings Settings) *Store {
	return &Store{
		store:    store,
		settings: settings.clone(),
		mem:      schema.NewContextMemory(),
		now:      time.Now,
	}
}

func (s *Store) persist(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

// InitializeTaskContext replaces the task context wholesale. Any in-progress
// task is overwritten: callers must treat this as a task boundary, not a
// task update. An empty id gets a generated UUID.
func (s *Store) InitializeTaskContext(ctx context.Context, id, scope string) error {
	if id == "" {
		id = uuid.NewString()
	}
	now := s.now()
	s.mem.Task = schema.TaskContext{
		ID:             id,
		Scope:          scope,
		Stage:          "initializing",
		Progress:       schema.TaskProgress{Completed: []string{}, Pending: []string{}},
		StartTime:      now,
		LastUpdateTime: now,
	}
	return s.persist(ctx, kv.KeyTaskContext, s.mem.Task)
}

// UpdateTaskProgress sets the stage unconditionally and replaces the
// completed/pending lists only when provided (nil preserves the prior
// value). The update timestamp always advances.
func (s *Store) UpdateTaskProgress(ctx context.Context, stage string, completed, pending []string) error {
	s.mem.Task.Stage = stage
	if completed != nil {
		s.mem.Task.Progress.Completed = append([]string(nil), completed...)
	}
	if pending != nil {
		s.mem.Task.Progress.Pending = append([]string(nil), pending...)
	}
	s.mem.Task.LastUpdateTime = s.now()
	return s.persist(ctx, kv.KeyTaskContext, s.mem.Task)
}

// TechnicalUpdate is a partial technical-context change. Nil fields are
// preserved; ProjectStructure, when present, is replaced wholesale rather
// than deep-merged.
type TechnicalUpdate struct {
	Framework         *string
	Language          *string
	Patterns          []string
	ProjectStructure  *schema.ProjectStructure
	LastAnalyzedFiles []string
}

// UpdateTechnicalContext shallow-merges u into the technical context.
func (s *Store) UpdateTechnicalContext(ctx context.Context, u TechnicalUpdate) error {
	if u.Framework != nil {
		s.mem.Technical.Framework = *u.Framework
	}
	if u.Language != nil {
		s.mem.Technical.Language = *u.Language
	}
	if u.Patterns != nil {
		s.mem.Technical.Patterns = append([]string(nil), u.Patterns...)
	}
	if u.ProjectStructure != nil {
		ps := *u.ProjectStructure
		ps.MainFiles = append([]string(nil), u.ProjectStructure.MainFiles...)
		ps.Dependencies = append([]string(nil), u.ProjectStructure.Dependencies...)
		s.mem.Technical.ProjectStructure = ps
	}
	if u.LastAnalyzedFiles != nil {
		s.mem.Technical.LastAnalyzedFiles = append([]string(nil), u.LastAnalyzedFiles...)
	}
	return s.persist(ctx, kv.KeyTechnicalContext, s.mem.Technical)
}

// UpdateUserPreferences shallow-merges prefs into the preference map.
func (s *Store) UpdateUserPreferences(ctx context.Context, prefs map[string]any) error {
	for k, v := range prefs {
		s.mem.User.Preferences[k] = v
	}
	return s.persist(ctx, kv.KeyUserPreferences, s.mem.User.Preferences)
}

// AddCommandToHistory prepends a command entry and drops the oldest entry
// once the mode's history bound is exceeded. No-op while disabled.
func (s *Store) AddCommandToHistory(ctx context.Context, command string) error {
	if !s.settings.Enabled {
		return nil
	}
	entry := schema.CommandEntry{Command: command, Timestamp: s.now()}
	cmds := append([]schema.CommandEntry{entry}, s.mem.User.History.RecentCommands...)
	if max := s.settings.Bounds().MaxHistoryItems; len(cmds) > max {
		cmds = cmds[:max]
	}
	s.mem.User.History.RecentCommands = cmds
	return s.persist(ctx, kv.KeyCommandHistory, cmds)
}

// RecordPattern counts one occurrence of pattern. The list stays sorted by
// occurrences descending (stable, so equal counts keep insertion order) and
// the lowest-occurrence tail entry is evicted past the mode's pattern bound.
// Frequency beats recency here: a pattern seen once can lose its slot to one
// seen many times, however old. No-op while disabled.
func (s *Store) RecordPattern(ctx context.Context, pattern string) error {
	if !s.settings.Enabled {
		return nil
	}
	patterns := s.mem.User.History.CommonPatterns
	found := false
	for i := range patterns {
		if patterns[i].Pattern == pattern {
			patterns[i].Occurrences++
			found = true
			break
		}
	}
	if !found {
		patterns = append(patterns, schema.PatternEntry{Pattern: pattern, Occurrences: 1})
	}
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Occurrences > patterns[j].Occurrences
	})
	if max := s.settings.Bounds().MaxPatterns; len(patterns) > max {
		patterns = patterns[:max]
	}
	s.mem.User.History.CommonPatterns = patterns
	return s.persist(ctx, kv.KeyPatternHistory, patterns)
}

// RecordMistake prepends a mistake entry, FIFO-capped like commands. No-op
// while disabled.
func (s *Store) RecordMistake(ctx context.Context, mistakeType, description string) error {
	if !s.settings.Enabled {
		return nil
	}
	entry := schema.MistakeEntry{Type: mistakeType, Description: description, Timestamp: s.now()}
	mistakes := append([]schema.MistakeEntry{entry}, s.mem.User.History.Mistakes...)
	if max := s.settings.Bounds().MaxMistakes; len(mistakes) > max {
		mistakes = mistakes[:max]
	}
	s.mem.User.History.Mistakes = mistakes
	return s.persist(ctx, kv.KeyMistakeHistory, mistakes)
}

// Context returns a structural copy of the current memory.
func (s *Store) Context() schema.ContextMemory {
	return s.mem.Clone()
}

// Settings returns a copy of the active settings snapshot.
func (s *Store) Settings() Settings {
	return s.settings.clone()
}

// SetMode switches the active mode, rebuilding the settings snapshot and
// persisting the combined settings record.
func (s *Store) SetMode(ctx context.Context, mode string) error {
	s.settings = s.settings.Apply(SettingsUpdate{Mode: &mode})
	return s.persist(ctx, kv.KeyContextSettings, s.settings)
}

// UpdateSettings layers u onto the current settings snapshot and persists
// the combined record.
func (s *Store) UpdateSettings(ctx context.Context, u SettingsUpdate) error {
	s.settings = s.settings.Apply(u)
	return s.persist(ctx, kv.KeyContextSettings, s.settings)
}

// Rehydrate loads previously persisted state back into the store. Absent
// keys leave the corresponding sub-object untouched; construction stays
// empty-on-construct and hydration is this explicit opt-in call. Fetches
// run concurrently; decoding and assignment happen on the calling
// goroutine after all fetches complete.
func (s *Store) Rehydrate(ctx context.Context) error {
	values := make(map[string][]byte, len(kv.Keys))
	g, gctx := errgroup.WithContext(ctx)
	results := make([][]byte, len(kv.Keys))
	for i, key := range kv.Keys {
		i, key := i, key
		g.Go(func() error {
			data, ok, err := s.store.Get(gctx, key)
			if err != nil {
				return err
			}
			if ok {
				results[i] = data
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("rehydrate: %w", err)
	}
	for i, key := range kv.Keys {
		if results[i] != nil {
			values[key] = results[i]
		}
	}

	decode := func(key string, dst any) error {
		data, ok := values[key]
		if !ok {
			return nil
		}
		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("rehydrate %s: %w", key, err)
		}
		return nil
	}

	if err := decode(kv.KeyTaskContext, &s.mem.Task); err != nil {
		return err
	}
	if err := decode(kv.KeyTechnicalContext, &s.mem.Technical); err != nil {
		return err
	}
	if err := decode(kv.KeyUserPreferences, &s.mem.User.Preferences); err != nil {
		return err
	}
	if err := decode(kv.KeyCommandHistory, &s.mem.User.History.RecentCommands); err != nil {
		return err
	}
	if err := decode(kv.KeyPatternHistory, &s.mem.User.History.CommonPatterns); err != nil {
		return err
	}
	if err := decode(kv.KeyMistakeHistory, &s.mem.User.History.Mistakes); err != nil {
		return err
	}
	var loaded Settings
	if data, ok := values[kv.KeyContextSettings]; ok {
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("rehydrate %s: %w", kv.KeyContextSettings, err)
		}
		if loaded.ModeSettings == nil {
			loaded.ModeSettings = map[string]Bounds{}
		}
		s.settings = loaded
	}
	return nil
}
