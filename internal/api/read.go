package api

import (
	"net/http"

	"github.com/mmynk/stockroom/internal/models"
	"github.com/mmynk/stockroom/internal/stats"
)

// snapshotResponse is the read contract: the full dataset plus a flag
// telling the view layer it is looking at the read-only seed fallback.
type snapshotResponse struct {
	models.Snapshot
	Degraded bool `json:"degraded,omitempty"`
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	snap, degraded, err := h.svc.Load(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snapshotResponse{Snapshot: snap, Degraded: degraded})
}

type statsResponse struct {
	Counts stats.Counts       `json:"counts"`
	Items  []stats.ItemCounts `json:"items"`
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	snap, _, err := h.svc.Load(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, statsResponse{
		Counts: stats.Count(snap.Items),
		Items:  stats.PerItem(snap.Items),
	})
}
