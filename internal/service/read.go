package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/stockroom/internal/metrics"
	"github.com/mmynk/stockroom/internal/models"
	"github.com/mmynk/stockroom/internal/storage"
)

// Load returns the full snapshot of all three collections.
//
// When the store reports storage.ErrUnavailable the seed dataset is
// served from memory instead and degraded is true. That fallback is
// strictly read-only: nothing is persisted, and callers must not assume
// a subsequent write will succeed.
func (s *Service) Load(ctx context.Context) (snap models.Snapshot, degraded bool, err error) {
	snap, err = s.store.Load(ctx)
	if err == nil {
		return snap, false, nil
	}
	if errors.Is(err, storage.ErrUnavailable) && s.defaults != nil {
		slog.Warn("Storage unavailable, serving seed dataset", "error", err)
		metrics.SeedFallbacks.Inc()
		return s.defaults.Snapshot(), true, nil
	}
	return models.Snapshot{}, false, err
}
