package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veldtlabs/breadboard"
	"github.com/veldtlabs/breadboard/internal/logging"
)

// ErrNotFound is returned when no live session has the given ID.
var ErrNotFound = errors.New("session not found")

// ErrLimitReached is returned by Create when the session cap is hit.
var ErrLimitReached = errors.New("session limit reached")

// Factory builds a fresh editor for a new session. The session ID is passed
// so implementations can name the document after it.
type Factory func(id uuid.UUID) (*breadboard.Editor, error)

// entry owns one live editor and the mutex serializing access to it.
type entry struct {
	mu      sync.Mutex
	editor  *breadboard.Editor
	created time.Time
	closed  bool
}

// Info describes one live session for listing surfaces.
type Info struct {
	ID       uuid.UUID `json:"id"`
	Document string    `json:"document"`
	Created  time.Time `json:"created"`
}

// Manager orchestrates live editor sessions, ensuring each editor is only
// ever touched by one goroutine at a time.
type Manager struct {
	factory  Factory
	logger   *slog.Logger
	max      int
	onCreate func()
	onClose  func()

	mu      sync.Mutex // guards the map, never held during editor work
	entries map[uuid.UUID]*entry
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMaxSessions caps the number of live sessions. Zero means unlimited.
func WithMaxSessions(max int) Option {
	return func(m *Manager) {
		m.max = max
	}
}

// WithLifecycle registers callbacks fired after a session is created and
// after one is closed, typically to keep an active-session gauge current.
// Either may be nil.
func WithLifecycle(onCreate, onClose func()) Option {
	return func(m *Manager) {
		m.onCreate = onCreate
		m.onClose = onClose
	}
}

// NewManager creates a session manager that builds editors via the factory.
func NewManager(factory Factory, opts ...Option) *Manager {
	m := &Manager{
		factory: factory,
		logger:  logging.NewNop(),
		entries: make(map[uuid.UUID]*entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create builds a new editor session and returns its ID.
func (m *Manager) Create(ctx context.Context) (uuid.UUID, error) {
	id := uuid.New()

	editor, err := m.factory(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}

	m.mu.Lock()
	if m.max > 0 && len(m.entries) >= m.max {
		m.mu.Unlock()
		return uuid.Nil, fmt.Errorf("failed to create session: %w", ErrLimitReached)
	}
	m.entries[id] = &entry{editor: editor, created: time.Now()}
	active := len(m.entries)
	m.mu.Unlock()

	if m.onCreate != nil {
		m.onCreate()
	}
	m.logger.Info("session created", "session", id, "active", active)
	return id, nil
}

// With executes fn while holding the session's lock, giving it exclusive
// access to the editor. Returns ErrNotFound for unknown or closed sessions.
func (m *Manager) With(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, ed *breadboard.Editor) error) error {
	m.mu.Lock()
	e, ok := m.entries[id]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return fn(ctx, e.editor)
}

// Close tears a session down, rolling back any pending placement. Waits for
// in-flight work on the session to finish first.
func (m *Manager) Close(id uuid.UUID) error {
	m.mu.Lock()
	e, ok := m.entries[id]
	delete(m.entries, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true

	if m.onClose != nil {
		m.onClose()
	}
	m.logger.Info("session closed", "session", id)
	return e.editor.Close()
}

// List returns the live sessions sorted by creation time then ID.
func (m *Manager) List() []Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Info, 0, len(m.entries))
	for id, e := range m.entries {
		out = append(out, Info{ID: id, Document: e.editor.Name(), Created: e.created})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.Before(out[j].Created)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
