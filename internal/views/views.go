// Package views defines the view-invalidation contract.
//
// Every mutation declares which logical view paths are stale once it
// completes; the consuming view layer is responsible for re-fetching
// them. The core only reports paths, it never renders anything.
package views

import (
	"log/slog"
	"sync"
)

// Refresher receives the set of view paths a mutation made stale.
type Refresher interface {
	Refresh(paths ...string)
}

// Path constructors for the logical views.

func ItemList() string                  { return "/" }
func ItemDetail(itemID string) string   { return "/item/" + itemID }
func BillList() string                  { return "/bills" }
func BillDetail(number string) string   { return "/bills/" + number }
func UserList() string                  { return "/users" }
func UserDetail(personID string) string { return "/users/" + personID }

// LogRefresher logs stale paths. This is the production default until a
// push channel to the view layer exists.
type LogRefresher struct{}

func (LogRefresher) Refresh(paths ...string) {
	slog.Debug("Views invalidated", "paths", paths)
}

// Recorder collects every refreshed path. Intended for tests.
type Recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *Recorder) Refresh(paths ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, paths...)
}

// Paths returns a copy of everything refreshed so far.
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// Reset clears the recorded paths.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = nil
}
