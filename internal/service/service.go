// Package service implements the inventory mutation procedures.
//
// Every state-changing operation lives here: the storage layer below
// knows nothing about inventory semantics, and the API layer above only
// validates input shapes. Each procedure takes structured arguments,
// performs its writes through the storage.Store (multi-collection writes
// in a single transaction), and reports the view paths it made stale.
//
// Missing targets surface as storage.ErrNotFound rather than being
// silently swallowed, so callers can tell "acted on nothing" from
// "succeeded".
package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/stockroom/internal/metrics"
	"github.com/mmynk/stockroom/internal/seed"
	"github.com/mmynk/stockroom/internal/storage"
	"github.com/mmynk/stockroom/internal/views"
)

// DuplicateNameError is returned by CreateItem (and UpdateItem on rename)
// when the requested item name is already taken, case-insensitively. The
// message is shown to the user verbatim.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("an item named %q already exists", e.Name)
}

// Service owns the mutation procedures for all three collections.
type Service struct {
	store    storage.Store
	defaults *seed.Provider
	views    views.Refresher

	now   func() time.Time
	newID func() string
}

// Option customizes a Service. Used by tests to pin the clock and ID
// generation.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides entity ID generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// New creates a Service over the given store. The seed provider backs the
// read-only fallback when storage is unreachable; the refresher receives
// stale view paths after every mutation.
func New(store storage.Store, defaults *seed.Provider, refresher views.Refresher, opts ...Option) *Service {
	s := &Service{
		store:    store,
		defaults: defaults,
		views:    refresher,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// observe records the outcome of a mutation in the Prometheus counters.
// Meant to be deferred with a named error return.
func (s *Service) observe(operation string, err *error) {
	if *err != nil {
		metrics.MutationErrors.WithLabelValues(operation).Inc()
		return
	}
	metrics.Mutations.WithLabelValues(operation).Inc()
}
