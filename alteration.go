// File: alteration.go
package config

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Future is the completion handle for an asynchronous apply. It is
// resolved at most once; Err is meaningful only after Done is closed.
type Future struct {
	done chan struct{}
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func resolvedFuture() *Future {
	f := newFuture()
	f.complete(nil)
	return f
}

func failedFuture(err error) *Future {
	f := newFuture()
	f.complete(err)
	return f
}

func (f *Future) complete(err error) {
	f.err = err
	close(f.done)
}

// Done returns a channel closed when the apply has finished, whether it
// succeeded or failed.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Err returns the apply outcome. It returns nil while the apply is still
// in flight; wait on Done or use Wait for a settled answer.
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

// Wait blocks until the apply finishes or ctx is cancelled.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Alteration is a staged batch of configuration writes. Values
// accumulate through the fluent SetValue/SetAny calls and are applied
// atomically and asynchronously by Apply, which also mirrors every
// written key into the property store and notifies the listener snapshot
// the alteration was created with.
//
// An alteration is single-use: treat Apply as finalizing the batch.
type Alteration struct {
	id        string
	target    *Store
	props     *Properties
	pool      *workerPool
	listeners []listenerEntry
	logger    zerolog.Logger

	mu       sync.Mutex
	pending  map[string]string
	argErr   error
	deferred error
	applied  bool
}

// SetValue stages a single write. Setting the same key twice keeps the
// last value. An empty key invalidates the alteration: the error is
// observable immediately through Err and Apply fails fast without
// scheduling any work.
func (a *Alteration) SetValue(key, value string) *Alteration {
	a.mu.Lock()
	defer a.mu.Unlock()

	if key == "" {
		if a.argErr == nil {
			a.argErr = ErrEmptyKey
		}
		return a
	}

	a.pending[key] = value
	return a
}

// SetAny stages a write of any value, formatted with fmt.Sprint. A nil
// value does not fail synchronously; it surfaces as an ErrNilValue
// failure through the Future returned by Apply.
func (a *Alteration) SetAny(key string, value any) *Alteration {
	if value == nil {
		a.mu.Lock()
		defer a.mu.Unlock()

		if key == "" && a.argErr == nil {
			a.argErr = ErrEmptyKey
		}
		if a.deferred == nil {
			a.deferred = fmt.Errorf("%w: key %q", ErrNilValue, key)
		}
		return a
	}

	return a.SetValue(key, fmt.Sprint(value))
}

// Err returns the first staging error, if any. Staging errors also fail
// the Apply future.
func (a *Alteration) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.argErr
}

// PendingChanges returns a defensive copy of the staged writes. It is
// safe to call while the batch is still building.
func (a *Alteration) PendingChanges() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()

	pending := make(map[string]string, len(a.pending))
	for k, v := range a.pending {
		pending[k] = v
	}
	return pending
}

// Clear discards the staged batch entirely: all pending writes and any
// staging errors recorded with them. It has no effect once Apply has
// been called.
func (a *Alteration) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.applied {
		return
	}
	a.pending = make(map[string]string)
	a.argErr = nil
	a.deferred = nil
}

// Apply snapshots the staged writes and schedules one asynchronous unit
// of work that commits them to the target store, mirrors them into the
// property store, and notifies listeners in registration order with the
// snapshot of just-applied changes. The returned Future completes once
// all steps finish; any failure is wrapped in ErrApplyFailed and
// delivered only through the Future, never to listeners or the calling
// goroutine.
func (a *Alteration) Apply() *Future {
	a.mu.Lock()
	if a.argErr != nil {
		err := a.argErr
		a.mu.Unlock()
		return failedFuture(err)
	}

	a.applied = true
	deferred := a.deferred
	snapshot := make(map[string]string, len(a.pending))
	for k, v := range a.pending {
		snapshot[k] = v
	}
	a.mu.Unlock()

	future := newFuture()
	accepted := a.pool.run(func(ctx context.Context) {
		future.complete(a.commit(ctx, snapshot, deferred))
	})
	if !accepted {
		future.complete(fmt.Errorf("%w: %w", ErrApplyFailed, ErrShutdown))
	}
	return future
}

// commit runs on the worker pool. It performs the write, mirror, and
// notify steps, checking for pool cancellation between them.
func (a *Alteration) commit(ctx context.Context, changes map[string]string, deferred error) error {
	if deferred != nil {
		return fmt.Errorf("%w: %w", ErrApplyFailed, deferred)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrApplyFailed, ErrShutdown)
	}

	a.target.SetAll(changes)

	for k, v := range changes {
		a.props.Set(k, v)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrApplyFailed, ErrShutdown)
	}

	a.notify(changes)

	a.logger.Debug().
		Str("alteration_id", a.id).
		Int("keys", len(changes)).
		Msg("configuration changes applied")
	return nil
}

// notify invokes each listener from the registration-order snapshot with
// the applied changes. A listener panic is recovered and logged; it
// neither prevents the remaining listeners from running nor fails the
// apply.
func (a *Alteration) notify(changes map[string]string) {
	for _, entry := range a.listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					a.logger.Error().
						Str("alteration_id", a.id).
						Int("listener_id", entry.id).
						Interface("panic", r).
						Msg("configuration change listener panicked")
				}
			}()
			entry.fn(changes)
		}()
	}
}
