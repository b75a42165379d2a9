package dependency

import (
	"context"
	"testing"

	"github.com/contextkeeper/contextkeeper/internal/config"
)

func memoryBackedConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Storage.Backend = "memory"
	return &cfg
}

func TestNew_WiresCoreServices(t *testing.T) {
	c, err := New(context.Background(), memoryBackedConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.KV() == nil || c.Memory() == nil || c.Truncator() == nil || c.Watcher() == nil {
		t.Error("container left a service unwired")
	}
}

func TestNew_FileBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.Dir = t.TempDir()
	c, err := New(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("New with file backend: %v", err)
	}
	if err := c.Memory().InitializeTaskContext(context.Background(), "t1", "wired"); err != nil {
		t.Fatalf("store not usable: %v", err)
	}
}

func TestSettingsFromConfig(t *testing.T) {
	cfg := memoryBackedConfig()
	cfg.Memory.Mode = "plan"
	s := settingsFromConfig(cfg.Memory)
	if s.Mode != "plan" || !s.Enabled {
		t.Errorf("conversion lost fields: %+v", s)
	}
	if got := s.Bounds(); got.MaxHistoryItems != 15 {
		t.Errorf("plan bounds not carried over: %+v", got)
	}
}

func TestNew_RehydratesWhenConfigured(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.Backend = "file"
	cfg.Storage.Dir = t.TempDir()

	first, err := New(context.Background(), &cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Memory().InitializeTaskContext(context.Background(), "t1", "persisted"); err != nil {
		t.Fatal(err)
	}

	second, err := New(context.Background(), &cfg)
	if err != nil {
		t.Fatal(err)
	}
	if second.Memory().Context().Task.Scope != "persisted" {
		t.Error("second container should have rehydrated the task context")
	}
}
