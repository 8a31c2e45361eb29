// File: builder.go
package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Builder provides a fluent interface for constructing a Manager.
type Builder struct {
	logger       *zerolog.Logger
	props        *Properties
	source       Source
	drainTimeout time.Duration
	err          error
}

// NewBuilder creates a builder with library defaults: a no-op logger, a
// fresh property store, an empty static source, and the standard drain
// timeout.
func NewBuilder() *Builder {
	return &Builder{
		drainTimeout: DefaultDrainTimeout,
	}
}

// WithLogger sets the logger used for lifecycle events, coercion
// warnings, and listener failures.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = &logger
	return b
}

// WithProperties sets the property store the manager overlays during
// merges and mirrors applied changes into. Sources created through the
// manager's Create helpers are bound to the same store.
func (b *Builder) WithProperties(props *Properties) *Builder {
	b.props = props
	return b
}

// WithSource sets the initial active source.
func (b *Builder) WithSource(source Source) *Builder {
	if source == nil {
		b.err = ErrNilConfiguration
		return b
	}
	b.source = source
	return b
}

// WithDrainTimeout sets how long Shutdown waits for in-flight
// alterations before cancelling them.
func (b *Builder) WithDrainTimeout(d time.Duration) *Builder {
	if d > 0 {
		b.drainTimeout = d
	}
	return b
}

// Build creates the Manager with all specified options.
func (b *Builder) Build() (*Manager, error) {
	if b.err != nil {
		return nil, b.err
	}

	logger := zerolog.Nop()
	if b.logger != nil {
		logger = *b.logger
	}

	props := b.props
	if props == nil {
		props = NewProperties()
	}

	source := b.source
	if source == nil {
		source = NewStaticSource(nil, props)
	}

	return &Manager{
		logger:       logger,
		props:        props,
		pool:         newWorkerPool(),
		drainTimeout: b.drainTimeout,
		source:       source,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Manager {
	m, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config manager build failed: %v", err))
	}
	return m
}
