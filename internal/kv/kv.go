// Package kv abstracts the persistent key-value store the memory system
// writes through to. The core only needs get/set by key over a fixed, closed
// key set; backends decide where the bytes live.
package kv

import "context"

// Keys under which the memory store persists its sub-objects.
const (
	KeyTaskContext      = "taskContext"
	KeyTechnicalContext = "technicalContext"
	KeyUserPreferences  = "userPreferences"
	KeyCommandHistory   = "commandHistory"
	KeyPatternHistory   = "patternHistory"
	KeyMistakeHistory   = "mistakeHistory"
	KeyContextSettings  = "contextSettings"
)

// Keys lists every persistence key, in a stable order. Used by rehydration.
var Keys = []string{
	KeyTaskContext,
	KeyTechnicalContext,
	KeyUserPreferences,
	KeyCommandHistory,
	KeyPatternHistory,
	KeyMistakeHistory,
	KeyContextSettings,
}

// Store is a durable string-keyed byte map. Get reports absence via the
// second return value rather than an error; Set replaces any prior value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
