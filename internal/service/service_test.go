package service

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/stockroom/internal/storage/sqlite"
	"github.com/mmynk/stockroom/internal/views"
)

// fixedNow pins the clock so generated timestamps are assertable.
var fixedNow = time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)

// newTestService builds a Service over a fresh temp-dir SQLite store with
// a deterministic clock and sequential IDs (id-1, id-2, ...).
func newTestService(t *testing.T) (*Service, *sqlite.SQLiteStore, *views.Recorder) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "svc.db"), nil)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	rec := &views.Recorder{}
	n := 0
	svc := New(store, nil, rec,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	return svc, store, rec
}

// testClock is a settable time source for tests where time has to move
// between calls.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

// newTestServiceAt is newTestService with a caller-controlled clock.
func newTestServiceAt(t *testing.T, clock *testClock) (*Service, *sqlite.SQLiteStore) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "svc.db"), nil)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	n := 0
	svc := New(store, nil, &views.Recorder{},
		WithClock(clock.Now),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	return svc, store
}

func containsPath(paths []string, want string) bool {
	for _, p := range paths {
		if p == want {
			return true
		}
	}
	return false
}
