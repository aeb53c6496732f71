// Package settings owns the GUI configuration lifecycle: one-time migration
// from the legacy config.json file, load with defaults fallback, in-memory
// partial updates and debounced persistence.
package settings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/log"

	"github.com/moyoez/configd/presentation"
	"github.com/moyoez/configd/tool"
	"github.com/moyoez/configd/types"
)

const DefaultDebounce = 10 * time.Millisecond

// PersistentStore is a synchronous string key-value store.
// Get reports ok=false for an absent key.
type PersistentStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// LegacyReader reads the pre-migration config.json contents.
type LegacyReader interface {
	ReadLegacyConfig(ctx context.Context) (string, error)
}

// Options tunes a Store. Zero values select the defaults.
type Options struct {
	Delay     time.Duration
	Presenter presentation.Presenter
	Logger    *log.Logger
}

// Store holds the current config snapshot and keeps it in sync with the
// persistent store.
type Store struct {
	kv        PersistentStore
	legacy    LegacyReader
	presenter presentation.Presenter
	logger    *log.Logger
	delay     time.Duration

	mu       sync.Mutex
	snapshot *types.Config
	loading  bool
	pending  *time.Timer
	armed    uint64 // generation of the pending timer
	closed   bool
	subs     map[uint64]func(*types.Config)
	nextSub  uint64

	// effectMu orders snapshot swaps with their presentation effects, so
	// concurrent updates reach the presenter in snapshot order.
	effectMu sync.Mutex
	// writeMu is held for a whole write, from claiming the pending timer to
	// the Set returning. Lock order: effectMu, writeMu, mu.
	writeMu sync.Mutex
}

// New creates a store over kv. legacy may be nil when there is nothing to migrate.
func New(kv PersistentStore, legacy LegacyReader, opts Options) *Store {
	s := &Store{
		kv:        kv,
		legacy:    legacy,
		presenter: opts.Presenter,
		logger:    opts.Logger,
		delay:     opts.Delay,
		subs:      make(map[uint64]func(*types.Config)),
	}
	if s.presenter == nil {
		s.presenter = presentation.Nop{}
	}
	if s.logger == nil {
		s.logger = tool.DefaultLogger
	}
	if s.delay <= 0 {
		s.delay = DefaultDebounce
	}
	return s
}

// Snapshot returns a copy of the current config, or nil when unset.
func (s *Store) Snapshot() *types.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneConfig(s.snapshot)
}

// Loading reports whether a Load is in progress.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Subscribe registers fn to receive every published snapshot (nil when cleared).
// fn runs on the publishing goroutine and must not call back into Update.
func (s *Store) Subscribe(fn func(*types.Config)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Load migrates legacy data once, reads the stored config over the defaults
// and publishes it. On any failure it logs, resets the store to defaults and
// returns nil; it never leaves the store without a usable config.
func (s *Store) Load(ctx context.Context) *types.Config {
	s.setLoading(true)
	defer s.setLoading(false)

	cfg, err := s.load(ctx)
	if err != nil {
		s.logger.Errorf("Failed to load config, falling back to defaults: %v", err)
		s.Update(types.FullPatch(DefaultConfig()))
		return nil
	}

	s.effectMu.Lock()
	s.publish(func(*types.Config) *types.Config { return &cfg })
	s.presenter.SetTheme(cfg.Theme)
	s.presenter.SetFontSize(presentation.FontSize(cfg.TextSize))
	s.presenter.SetFontFamily(presentation.FontFamily(cfg.Fonts))
	s.effectMu.Unlock()
	s.logger.Debugf("Config loaded: theme=%s lang=%s", cfg.Theme, cfg.Lang)
	return cloneConfig(&cfg)
}

func (s *Store) load(ctx context.Context) (types.Config, error) {
	migrated, _, err := s.kv.Get(MigratedKey)
	if err != nil {
		return types.Config{}, fmt.Errorf("%w: read %s: %w", ErrPersist, MigratedKey, err)
	}
	if migrated == "" {
		if err := s.migrate(ctx); err != nil {
			return types.Config{}, err
		}
	}

	raw, ok, err := s.kv.Get(ConfigKey)
	if err != nil {
		return types.Config{}, fmt.Errorf("%w: read %s: %w", ErrPersist, ConfigKey, err)
	}
	if !ok || raw == "" {
		return types.Config{}, ErrMissingConfig
	}

	cfg, err := decodeOverDefaults(raw)
	if err != nil {
		return types.Config{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return cfg, nil
}

// migrate copies the legacy config.json verbatim into the store and sets the
// marker, whether or not legacy data was found.
func (s *Store) migrate(ctx context.Context) error {
	if s.legacy != nil {
		old, err := s.legacy.ReadLegacyConfig(ctx)
		switch {
		case err != nil:
			s.logger.Debugf("No legacy config to migrate: %v", err)
		case old != "":
			if err := s.kv.Set(ConfigKey, old); err != nil {
				return fmt.Errorf("%w: write %s: %w", ErrPersist, ConfigKey, err)
			}
			s.logger.Infof("Migrated legacy config.json (%d bytes)", len(old))
		}
	}
	if err := s.kv.Set(MigratedKey, "true"); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrPersist, MigratedKey, err)
	}
	return nil
}

// Update merges patch into the current snapshot, applies presentation effects
// for the keys it carries and schedules a debounced write. An empty patch
// clears the snapshot and skips the effects.
func (s *Store) Update(patch types.ConfigPatch) {
	s.effectMu.Lock()
	merged := s.publish(func(prev *types.Config) *types.Config {
		if patch.IsEmpty() {
			return nil
		}
		base := DefaultConfig()
		if prev != nil {
			base = *prev
		}
		cfg := patch.ApplyTo(base)
		return &cfg
	})

	if merged != nil {
		if patch.Theme != nil {
			s.presenter.SetTheme(*patch.Theme)
		}
		if patch.Fonts != nil {
			s.presenter.SetFontFamily(presentation.FontFamily(patch.Fonts))
		}
		if patch.TextSize != nil {
			s.presenter.SetFontSize(presentation.FontSize(*patch.TextSize))
		}
	}
	s.effectMu.Unlock()

	s.schedulePersist()
}

// Flush writes the latest snapshot now if a debounced write is pending, and
// waits for a debounced write that is already running.
func (s *Store) Flush() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	t := s.pending
	s.pending = nil
	s.armed++
	s.mu.Unlock()
	if t == nil {
		return
	}
	t.Stop()
	s.writeLocked()
}

// Close flushes any pending write. Later updates are written through
// immediately instead of arming a timer.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.Flush()
}

func (s *Store) schedulePersist() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.persist()
		return
	}
	if s.pending == nil {
		s.armed++
		gen := s.armed
		s.pending = time.AfterFunc(s.delay, func() { s.firePersist(gen) })
	}
	s.mu.Unlock()
}

func (s *Store) firePersist(gen uint64) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.armed != gen {
		// flushed meanwhile
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.mu.Unlock()
	s.writeLocked()
}

func (s *Store) persist() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.writeLocked()
}

// writeLocked writes whatever the snapshot is at call time. Failures are
// logged and dropped; the in-memory snapshot stays authoritative.
// s.writeMu must be held.
func (s *Store) writeLocked() {
	s.mu.Lock()
	cfg := cloneConfig(s.snapshot)
	s.mu.Unlock()

	data, err := sonic.MarshalString(cfg)
	if err != nil {
		s.logger.Warnf("Failed to encode config: %v", err)
		return
	}
	if err := s.kv.Set(ConfigKey, data); err != nil {
		s.logger.Warnf("Failed to persist config: %v", fmt.Errorf("%w: %w", ErrPersist, err))
		return
	}
	s.logger.Debugf("Persisted config (%d bytes)", len(data))
}

// publish swaps the snapshot for next(prev) under the lock, then notifies
// subscribers outside it.
func (s *Store) publish(next func(prev *types.Config) *types.Config) *types.Config {
	s.mu.Lock()
	cfg := next(s.snapshot)
	s.snapshot = cloneConfig(cfg)
	subs := make([]func(*types.Config), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(cloneConfig(cfg))
	}
	return cfg
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func cloneConfig(cfg *types.Config) *types.Config {
	if cfg == nil {
		return nil
	}
	out := cfg.Clone()
	return &out
}
