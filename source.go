// File: source.go
package config

import (
	"os"
	"strings"
	"sync"
)

// Store is the live, mutable base layer of a configuration source. The
// alteration engine writes through it; merges read a snapshot of it.
// Entries are independently settable with last-write-wins semantics per
// key; no cross-key atomicity is promised.
type Store struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewStore creates a store seeded with a copy of initial. A nil initial
// map yields an empty store.
func NewStore(initial map[string]string) *Store {
	entries := make(map[string]string, len(initial))
	for k, v := range initial {
		entries[k] = v
	}
	return &Store{entries: entries}
}

// Set writes a single entry.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
}

// SetAll writes every entry of values.
func (s *Store) SetAll(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.entries[k] = v
	}
}

// Value returns the entry for key and whether it exists.
func (s *Store) Value(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.entries[key]
	return v, ok
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.Value(key)
	return ok
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Snapshot returns a copy of all entries.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]string, len(s.entries))
	for k, v := range s.entries {
		snapshot[k] = v
	}
	return snapshot
}

// Replace swaps the contents for a copy of values.
func (s *Store) Replace(values map[string]string) {
	entries := make(map[string]string, len(values))
	for k, v := range values {
		entries[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
}

// Source is one generation of configuration. It owns a mutable base
// layer and merges the read-only properties and environment overlays on
// top of it.
type Source interface {
	// Merge returns the effective configuration: a fresh copy of the
	// base layer, overlaid with process properties, overlaid with
	// environment variables. Merge never mutates the base layer.
	Merge() map[string]string

	// Store returns the live base layer. Alterations write through it;
	// properties and environment overlays are never written.
	Store() *Store

	// Refresh rebuilds the base layer from descriptors. Sources without
	// descriptors return ErrStaticRefresh.
	Refresh() error
}

// StaticSource holds caller-supplied values with no descriptor backing.
type StaticSource struct {
	store *Store
	props *Properties
}

// NewStaticSource creates a source seeded from initial. props may be nil
// when no property overlay is wanted.
func NewStaticSource(initial map[string]string, props *Properties) *StaticSource {
	return &StaticSource{
		store: NewStore(initial),
		props: props,
	}
}

// NewStaticSourceFromFile creates a static source seeded from a TOML,
// JSON, or YAML file. A missing file yields ErrConfigNotFound.
func NewStaticSourceFromFile(path string, props *Properties) (*StaticSource, error) {
	values, err := LoadFileValues(path)
	if err != nil {
		return nil, err
	}
	return NewStaticSource(values, props), nil
}

func (s *StaticSource) Merge() map[string]string {
	return mergeLayers(s.store, s.props)
}

func (s *StaticSource) Store() *Store {
	return s.store
}

func (s *StaticSource) Refresh() error {
	return ErrStaticRefresh
}

// AnnotatedSource derives its base layer from descriptors. Values
// pre-seeded at construction block scanned defaults for the same key.
type AnnotatedSource struct {
	store       *Store
	props       *Properties
	descriptors []Descriptor
}

// NewAnnotatedSource creates a descriptor-backed source.
func NewAnnotatedSource(props *Properties, descriptors ...Descriptor) (*AnnotatedSource, error) {
	return NewAnnotatedSourceWithValues(nil, props, descriptors...)
}

// NewAnnotatedSourceWithValues creates a descriptor-backed source with
// pre-seeded values that take precedence over scanned defaults.
func NewAnnotatedSourceWithValues(initial map[string]string, props *Properties, descriptors ...Descriptor) (*AnnotatedSource, error) {
	if len(descriptors) == 0 {
		return nil, ErrNoDescriptors
	}

	s := &AnnotatedSource{
		store:       NewStore(initial),
		props:       props,
		descriptors: descriptors,
	}
	s.scan()
	return s, nil
}

// scan writes scanned defaults into the store, honoring first-writer-wins
// against whatever the store already holds.
func (s *AnnotatedSource) scan() {
	for _, e := range scanDefaults(s.descriptors, s.store.Snapshot()) {
		s.store.Set(e.Key, e.Value)
	}
}

func (s *AnnotatedSource) Merge() map[string]string {
	return mergeLayers(s.store, s.props)
}

func (s *AnnotatedSource) Store() *Store {
	return s.store
}

// Refresh clears the base layer and rebuilds it from the descriptors.
// Values written by alterations or pre-seeded at construction are
// discarded.
func (s *AnnotatedSource) Refresh() error {
	s.store.Replace(nil)
	s.scan()
	return nil
}

// mergeLayers builds the effective configuration with fixed precedence,
// low to high: base defaults, process properties, environment variables.
// Overlays are applied per key, so keys present only in a lower layer
// survive, and an empty overlay value still shadows a non-empty default.
func mergeLayers(store *Store, props *Properties) map[string]string {
	merged := store.Snapshot()

	if props != nil {
		overlay(merged, props.Snapshot())
	}
	overlay(merged, environMap())

	return merged
}

func overlay(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}

// environMap returns every environment variable visible to the process,
// keyed by its exact name.
func environMap() map[string]string {
	environ := os.Environ()
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i > 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	return env
}
