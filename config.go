// File: config.go
package config

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ChangeListener is invoked with exactly the keys and values changed by
// one completed alteration.
type ChangeListener func(changes map[string]string)

// listenerEntry pairs a listener with its registration id so removal
// works without comparing funcs.
type listenerEntry struct {
	id int
	fn ChangeListener
}

// Manager is the facade over the active configuration source, the
// listener registry, and the worker pool that runs asynchronous
// alterations. Construct one with New or Builder and thread it through
// the program; all methods are safe for concurrent use.
type Manager struct {
	logger       zerolog.Logger
	props        *Properties
	pool         *workerPool
	drainTimeout time.Duration

	mu             sync.RWMutex // guards source and listeners
	source         Source
	listeners      []listenerEntry
	nextListenerID int

	down atomic.Bool
}

// New creates a manager with an empty static source, a fresh property
// store, and a no-op logger. Use Builder for anything non-default.
func New() *Manager {
	m, _ := NewBuilder().Build()
	return m
}

// Logger returns the manager's logger.
func (m *Manager) Logger() zerolog.Logger {
	return m.logger
}

// Properties returns the property store the manager reads as a merge
// layer and writes applied changes into.
func (m *Manager) Properties() *Properties {
	return m.props
}

// ConfigurationMap returns the effective configuration: the active
// source's base layer merged with properties and environment. The merge
// is recomputed on every call; reads are expected to dominate writes but
// not so heavily that a cached view is worth its invalidation.
func (m *Manager) ConfigurationMap() map[string]string {
	return m.currentSource().Merge()
}

// Snapshot returns an immutable-by-copy snapshot of the effective
// configuration.
func (m *Manager) Snapshot() map[string]string {
	return m.ConfigurationMap()
}

// Value returns the effective value for key and whether it exists.
func (m *Manager) Value(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	v, ok := m.ConfigurationMap()[key]
	return v, ok
}

// StringValue returns the effective value for key, or def when the key
// is empty or absent.
func (m *Manager) StringValue(key, def string) string {
	v, ok := m.Value(key)
	if !ok {
		return def
	}
	return v
}

// HasValue reports whether key exists in the effective configuration.
func (m *Manager) HasValue(key string) bool {
	_, ok := m.Value(key)
	return ok
}

// Size returns the number of keys in the effective configuration.
func (m *Manager) Size() int {
	return len(m.ConfigurationMap())
}

// IntValue returns the effective value for key parsed as an int, or def
// when the key is absent or the value does not parse. Parse failures are
// logged, never returned.
func (m *Manager) IntValue(key string, def int) int {
	v, ok := m.Value(key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		m.warnCoercion(key, v, "int")
		return def
	}
	return i
}

// Int64Value returns the effective value for key parsed as an int64, or
// def on absence or parse failure.
func (m *Manager) Int64Value(key string, def int64) int64 {
	v, ok := m.Value(key)
	if !ok {
		return def
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		m.warnCoercion(key, v, "int64")
		return def
	}
	return i
}

// Float64Value returns the effective value for key parsed as a float64,
// or def on absence or parse failure.
func (m *Manager) Float64Value(key string, def float64) float64 {
	v, ok := m.Value(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		m.warnCoercion(key, v, "float64")
		return def
	}
	return f
}

// BoolValue returns the effective value for key parsed as a bool, or def
// on absence or parse failure.
func (m *Manager) BoolValue(key string, def bool) bool {
	v, ok := m.Value(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		m.warnCoercion(key, v, "bool")
		return def
	}
	return b
}

func (m *Manager) warnCoercion(key, value, kind string) {
	m.logger.Warn().
		Str("key", key).
		Str("value", value).
		Str("type", kind).
		Msg("failed to coerce config value, returning default")
}

// AlterConfiguration starts a new staged batch of writes bound to the
// current source's base layer, the shared worker pool, and a snapshot of
// the registered listeners. It fails once the manager is shut down.
func (m *Manager) AlterConfiguration() (*Alteration, error) {
	if m.down.Load() {
		return nil, ErrShutdown
	}

	m.mu.RLock()
	target := m.source.Store()
	listeners := make([]listenerEntry, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.RUnlock()

	return &Alteration{
		id:        uuid.NewString(),
		target:    target,
		props:     m.props,
		pool:      m.pool,
		listeners: listeners,
		logger:    m.logger,
		pending:   make(map[string]string),
	}, nil
}

// AlterValueAsync stages and applies a single write. An empty key
// short-circuits with an already-failed future; no work is scheduled.
func (m *Manager) AlterValueAsync(key, value string) *Future {
	if key == "" {
		return failedFuture(ErrEmptyKey)
	}

	alt, err := m.AlterConfiguration()
	if err != nil {
		return failedFuture(err)
	}
	return alt.SetValue(key, value).Apply()
}

// AlterMapAsync stages and applies a batch of writes. A nil or empty map
// short-circuits with an already-resolved future; no work is scheduled.
func (m *Manager) AlterMapAsync(changes map[string]string) *Future {
	if m.down.Load() {
		return failedFuture(ErrShutdown)
	}
	if len(changes) == 0 {
		return resolvedFuture()
	}

	alt, err := m.AlterConfiguration()
	if err != nil {
		return failedFuture(err)
	}
	for k, v := range changes {
		alt.SetValue(k, v)
	}
	return alt.Apply()
}

// SetConfiguration replaces the active source.
func (m *Manager) SetConfiguration(source Source) error {
	if source == nil {
		return ErrNilConfiguration
	}

	m.mu.Lock()
	m.source = source
	m.mu.Unlock()

	m.logger.Info().Msg("configuration source replaced")
	return nil
}

// CurrentConfiguration returns the active source.
func (m *Manager) CurrentConfiguration() Source {
	return m.currentSource()
}

func (m *Manager) currentSource() Source {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.source
}

// Refresh clears and rebuilds the active source's base layer from its
// descriptors. Static sources have nothing to rebuild; the call is a
// no-op that logs a warning and returns ErrStaticRefresh.
func (m *Manager) Refresh() error {
	if err := m.currentSource().Refresh(); err != nil {
		m.logger.Warn().Err(err).Msg("configuration refresh skipped")
		return err
	}

	m.logger.Info().Msg("configuration refreshed")
	return nil
}

// CreateStaticSource creates a static source bound to the manager's
// property store.
func (m *Manager) CreateStaticSource(initial map[string]string) *StaticSource {
	return NewStaticSource(initial, m.props)
}

// CreateAnnotatedSource creates a descriptor-backed source bound to the
// manager's property store.
func (m *Manager) CreateAnnotatedSource(descriptors ...Descriptor) (*AnnotatedSource, error) {
	return NewAnnotatedSource(m.props, descriptors...)
}

// CreateAnnotatedSourceWithValues creates a descriptor-backed source with
// pre-seeded values, bound to the manager's property store.
func (m *Manager) CreateAnnotatedSourceWithValues(initial map[string]string, descriptors ...Descriptor) (*AnnotatedSource, error) {
	return NewAnnotatedSourceWithValues(initial, m.props, descriptors...)
}

// AddChangeListener registers a listener and returns its id for removal.
// Listeners are notified in registration order with the changes of each
// completed alteration. A nil listener is ignored and returns -1.
func (m *Manager) AddChangeListener(fn ChangeListener) int {
	if fn == nil {
		return -1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextListenerID
	m.nextListenerID++
	m.listeners = append(m.listeners, listenerEntry{id: id, fn: fn})
	return id
}

// RemoveChangeListener unregisters the listener with the given id.
// Alterations already holding a snapshot keep notifying it.
func (m *Manager) RemoveChangeListener(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, entry := range m.listeners {
		if entry.id == id {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			return
		}
	}
}

// ClearChangeListeners unregisters all listeners.
func (m *Manager) ClearChangeListeners() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = nil
}

// ListenerCount returns the number of registered listeners.
func (m *Manager) ListenerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.listeners)
}

// Shutdown stops accepting new alterations and drains in-flight ones
// with a bounded wait, force-cancelling whatever exceeds it. Calling
// Shutdown more than once is a no-op.
func (m *Manager) Shutdown() {
	if !m.down.CompareAndSwap(false, true) {
		return
	}

	m.logger.Info().Msg("shutting down configuration manager")
	if !m.pool.shutdown(m.drainTimeout, ForceCancelTimeout) {
		m.logger.Warn().
			Dur("drain_timeout", m.drainTimeout).
			Msg("alterations did not drain in time, forcing cancellation")
	}
	m.logger.Info().Msg("configuration manager shutdown complete")
}

// IsShutdown reports whether Shutdown has been called.
func (m *Manager) IsShutdown() bool {
	return m.down.Load()
}
