package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Memory.Mode != def.Memory.Mode {
		t.Errorf("expected default mode %q, got %q", def.Memory.Mode, cfg.Memory.Mode)
	}
}

func TestLoad_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	data, err := json.Marshal(map[string]any{
		"memory": map[string]any{
			"enabled": true,
			"mode":    "plan",
			"fallback": map[string]any{
				"maxHistoryItems": 7, "maxPatterns": 7, "maxMistakes": 7,
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	path := writeConfig(t, dir, "config.json", data)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Memory.Mode != "plan" {
		t.Errorf("expected mode plan, got %q", cfg.Memory.Mode)
	}
	if cfg.Memory.Fallback.MaxHistoryItems != 7 {
		t.Errorf("expected fallback 7, got %d", cfg.Memory.Fallback.MaxHistoryItems)
	}
	// Omitted sections keep their defaults.
	if cfg.Storage.Backend != "file" {
		t.Errorf("expected default backend file, got %q", cfg.Storage.Backend)
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.yaml", []byte("memory:\n  enabled: true\n  mode: ask\n"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Memory.Mode != "ask" {
		t.Errorf("expected mode ask from yaml, got %q", cfg.Memory.Mode)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.json", []byte("{not valid json"))
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoad_ValidationFailureSurfaces(t *testing.T) {
	dir := t.TempDir()
	data, _ := json.Marshal(map[string]any{
		"memory": map[string]any{
			"fallback": map[string]any{"maxHistoryItems": 0, "maxPatterns": 1, "maxMistakes": 1},
		},
	})
	path := writeConfig(t, dir, "config.json", data)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for zero bound")
	}
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected structured ValidationErrors, got %T: %v", err, err)
	}
	if len(verrs) == 0 || verrs[0].Field != "memory.fallback.maxHistoryItems" {
		t.Errorf("unexpected violations: %v", verrs)
	}
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Backend = "carrier-pigeon"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected backend validation error")
	}
}

func TestValidate_ModeBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Memory.ModeSettings["broken"] = BoundsConfig{MaxHistoryItems: 1, MaxPatterns: 0, MaxMistakes: 1}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected per-mode bound validation error")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	original := DefaultConfig()
	original.Memory.Mode = "plan"
	original.Watch.Enabled = true
	original.Watch.IntervalMinutes = 10

	if err := Save(&original, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Memory.Mode != "plan" {
		t.Errorf("mode mismatch: got %q", loaded.Memory.Mode)
	}
	if !loaded.Watch.Enabled || loaded.Watch.IntervalMinutes != 10 {
		t.Errorf("watch config mismatch: %+v", loaded.Watch)
	}
}
