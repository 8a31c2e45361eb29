// File: properties.go
package config

import "sync"

// Properties is a process-wide, settable key-value store, distinct from
// the environment. Sources overlay it between base defaults and
// environment variables during a merge, and applied alterations mirror
// their writes into it so that consumers reading the store directly stay
// consistent with the managed configuration.
//
// All methods are safe for concurrent use.
type Properties struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewProperties creates an empty property store.
func NewProperties() *Properties {
	return &Properties{
		values: make(map[string]string),
	}
}

// Set stores a property value. An empty key is ignored.
func (p *Properties) Set(key, value string) {
	if key == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
}

// Value returns the property value for key and whether it exists.
func (p *Properties) Value(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.values[key]
	return v, ok
}

// Delete removes a property.
func (p *Properties) Delete(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.values, key)
}

// Snapshot returns a copy of all properties.
func (p *Properties) Snapshot() map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snapshot := make(map[string]string, len(p.values))
	for k, v := range p.values {
		snapshot[k] = v
	}
	return snapshot
}

// Len returns the number of stored properties.
func (p *Properties) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.values)
}

// Clear removes all properties.
func (p *Properties) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = make(map[string]string)
}
