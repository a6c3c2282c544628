// Package theme keeps the light/dark display preference.
package theme

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yndnr/medqueue-go/internal/storage"
	"github.com/yndnr/medqueue-go/internal/telemetry/logger"
)

// Key is the durable slot holding the preference.
const Key = "theme"

// Theme is a display theme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Default is used when nothing valid is stored.
const Default = Light

// ErrInvalidTheme is returned for values other than light and dark.
var ErrInvalidTheme = errors.New("theme: must be light or dark")

// Parse validates s as a Theme.
func Parse(s string) (Theme, error) {
	switch t := Theme(s); t {
	case Light, Dark:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

// Icon is the toggle glyph: a sun offers the way out of dark mode, a
// moon the way into it.
func (t Theme) Icon() string {
	if t == Dark {
		return "☀️"
	}
	return "🌙"
}

// Manager holds the active theme for one page context and persists it.
type Manager struct {
	kv     storage.KV
	logger logger.Logger

	mu      sync.RWMutex
	current Theme
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(l logger.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a Manager over the durable tier. Call Init to load
// the stored preference.
func NewManager(kv storage.KV, opts ...ManagerOption) *Manager {
	m := &Manager{kv: kv, logger: logger.Discard(), current: Default}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init applies the stored preference, or Default when nothing usable is
// stored, and writes it back. An unreadable slot (e.g. sealed under a
// different key) counts as nothing stored; only a failed write is an error.
func (m *Manager) Init(ctx context.Context) (Theme, error) {
	t := Default
	v, err := m.kv.Get(ctx, Key)
	switch {
	case err == nil:
		if parsed, perr := Parse(string(v)); perr == nil {
			t = parsed
		}
	case !errors.Is(err, storage.ErrKeyNotFound):
		m.logger.Warn("theme read failed, using default", "error", err, "theme", Default)
	}
	return t, m.Set(ctx, t)
}

// Set applies and persists t.
func (m *Manager) Set(ctx context.Context, t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.kv.Set(ctx, Key, []byte(t)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	m.current = t
	return nil
}

// Toggle switches between dark and light and returns the new theme.
func (m *Manager) Toggle(ctx context.Context) (Theme, error) {
	next := Dark
	if m.Current() == Dark {
		next = Light
	}
	if err := m.Set(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// Current returns the active theme.
func (m *Manager) Current() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Icon returns the toggle glyph for the active theme.
func (m *Manager) Icon() string {
	return m.Current().Icon()
}
