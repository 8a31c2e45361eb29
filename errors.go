// File: errors.go
package config

import "errors"

// Sentinel errors returned by the package. Callers should test with
// errors.Is; most errors are returned wrapped with additional context.
var (
	// ErrEmptyKey indicates a configuration key that is empty.
	ErrEmptyKey = errors.New("config key cannot be empty")

	// ErrNilValue indicates a staged value that was nil. It is never
	// returned synchronously from staging; it surfaces through the
	// Future returned by Apply.
	ErrNilValue = errors.New("config value cannot be nil")

	// ErrNoDescriptors indicates an annotated source constructed with an
	// empty descriptor set.
	ErrNoDescriptors = errors.New("at least one descriptor must be provided")

	// ErrNilConfiguration indicates a nil source passed to SetConfiguration.
	ErrNilConfiguration = errors.New("configuration source cannot be nil")

	// ErrShutdown indicates an operation attempted after Shutdown.
	ErrShutdown = errors.New("manager has been shut down")

	// ErrStaticRefresh indicates Refresh on a static source, which has no
	// descriptors to rescan.
	ErrStaticRefresh = errors.New("refresh is only supported for annotated sources")

	// ErrApplyFailed wraps any failure inside an asynchronous apply. It is
	// delivered only through the Future, never on the calling goroutine.
	ErrApplyFailed = errors.New("failed to apply configuration changes")

	// ErrConfigNotFound indicates a missing seed file. Not fatal for
	// callers that can proceed on defaults and environment.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrUnknownFormat indicates a seed file whose format could not be
	// determined from its extension or content.
	ErrUnknownFormat = errors.New("unable to determine config file format")
)
