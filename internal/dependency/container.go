// Package dependency wires the contextkeeper core services using
// go.uber.org/dig.
package dependency

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/dig"

	"github.com/contextkeeper/contextkeeper/internal/config"
	"github.com/contextkeeper/contextkeeper/internal/kv"
	"github.com/contextkeeper/contextkeeper/internal/memory"
	"github.com/contextkeeper/contextkeeper/internal/truncate"
	"github.com/contextkeeper/contextkeeper/internal/watch"
)

// Container holds the resolved core service singletons. Callers use the
// typed getter methods; they never need to import dig directly.
type Container struct {
	store     kv.Store
	mem       *memory.Store
	truncator *truncate.Engine
	watcher   *watch.Watcher
}

func (c *Container) KV() kv.Store                 { return c.store }
func (c *Container) Memory() *memory.Store        { return c.mem }
func (c *Container) Truncator() *truncate.Engine  { return c.truncator }
func (c *Container) Watcher() *watch.Watcher      { return c.watcher }

// New builds and wires all core services from cfg. ctx bounds backend
// connection attempts and the optional rehydration pass.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(func() context.Context { return ctx }); err != nil {
		return nil, err
	}
	if err := d.Provide(newKVStore); err != nil {
		return nil, err
	}
	if err := d.Provide(newMemoryStore); err != nil {
		return nil, err
	}
	if err := d.Provide(newTruncator); err != nil {
		return nil, err
	}
	if err := d.Provide(newWatcher); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		store kv.Store,
		mem *memory.Store,
		truncator *truncate.Engine,
		watcher *watch.Watcher,
	) {
		result = &Container{
			store:     store,
			mem:       mem,
			truncator: truncator,
			watcher:   watcher,
		}
	})
	return result, err
}

func newKVStore(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	switch cfg.Storage.Backend {
	case "file":
		return kv.NewFileStore(cfg.Storage.Dir)
	case "memory":
		return kv.NewMemStore(), nil
	case "redis":
		r := cfg.Storage.Redis
		return kv.NewRedisStore(ctx, r.Addr, r.Password, r.DB, r.Prefix)
	default:
		// Validate catches this before wiring; kept for direct callers.
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// settingsFromConfig converts the validated config section into the memory
// package's immutable settings snapshot.
func settingsFromConfig(mc config.MemoryConfig) memory.Settings {
	s := memory.Settings{
		Enabled: mc.Enabled,
		Mode:    mc.Mode,
		Fallback: memory.Bounds{
			MaxHistoryItems: mc.Fallback.MaxHistoryItems,
			MaxPatterns:     mc.Fallback.MaxPatterns,
			MaxMistakes:     mc.Fallback.MaxMistakes,
		},
		ModeSettings: make(map[string]memory.Bounds, len(mc.ModeSettings)),
	}
	for mode, b := range mc.ModeSettings {
		s.ModeSettings[mode] = memory.Bounds{
			MaxHistoryItems: b.MaxHistoryItems,
			MaxPatterns:     b.MaxPatterns,
			MaxMistakes:     b.MaxMistakes,
		}
	}
	return s
}

func newMemoryStore(ctx context.Context, cfg *config.Config, store kv.Store) (*memory.Store, error) {
	mem := memory.New(store, settingsFromConfig(cfg.Memory))
	if cfg.Storage.Rehydrate {
		if err := mem.Rehydrate(ctx); err != nil {
			return nil, err
		}
	}
	return mem, nil
}

func newTruncator(mem *memory.Store) *truncate.Engine {
	return truncate.NewEngine(mem)
}

func newWatcher(cfg *config.Config, mem *memory.Store) *watch.Watcher {
	return watch.New(mem, time.Duration(cfg.Watch.IntervalMinutes)*time.Minute)
}
