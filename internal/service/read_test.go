package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mmynk/stockroom/internal/seed"
	"github.com/mmynk/stockroom/internal/storage/sqlite"
	"github.com/mmynk/stockroom/internal/views"
)

func TestLoad(t *testing.T) {
	defaults := seed.NewProviderAt(fixedNow)
	store, err := sqlite.New(filepath.Join(t.TempDir(), "read.db"), defaults)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	svc := New(store, defaults, &views.Recorder{})
	ctx := context.Background()

	snap, degraded, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if degraded {
		t.Error("healthy store reported as degraded")
	}
	want := defaults.Snapshot()
	if len(snap.Items) != len(want.Items) {
		t.Errorf("expected %d items, got %d", len(want.Items), len(snap.Items))
	}

	t.Run("falls back to seed data when storage is gone", func(t *testing.T) {
		store.Close()

		snap, degraded, err := svc.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !degraded {
			t.Error("expected degraded snapshot")
		}
		if len(snap.Items) != len(want.Items) || len(snap.Bills) != len(want.Bills) || len(snap.Users) != len(want.Users) {
			t.Errorf("fallback snapshot mismatch: %d/%d/%d", len(snap.Items), len(snap.Bills), len(snap.Users))
		}
	})
}

func TestLoad_NoFallbackWithoutDefaults(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "read.db"), nil)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	store.Close()

	svc := New(store, nil, &views.Recorder{})
	_, _, err = svc.Load(context.Background())
	if err == nil {
		t.Error("expected an error with no seed provider")
	}
}
