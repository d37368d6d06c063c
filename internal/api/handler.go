// Package api exposes the inventory service over HTTP.
//
// The handlers translate JSON requests into service calls and map the
// service error taxonomy onto status codes. Input validation (phone
// shape, quantities, URLs) happens here, at the boundary; the service
// layer trusts its callers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"regexp"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/stockroom/internal/middleware"
	"github.com/mmynk/stockroom/internal/service"
	"github.com/mmynk/stockroom/internal/storage"
)

// phoneRe matches the only accepted phone shape: exactly 10 digits.
var phoneRe = regexp.MustCompile(`^[0-9]{10}$`)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	svc *service.Service
}

// New constructs a Handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", h.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/snapshot", h.snapshot)
	r.Get("/stats", h.stats)

	r.Route("/items", func(r chi.Router) {
		r.Post("/", h.createItem)
		r.Patch("/{id}", h.updateItem)
		r.Delete("/{id}", h.deleteItem)
		r.Post("/{id}/units", h.addUnits)
		r.Put("/{id}/units/{unitID}", h.updateSubItem)
		r.Delete("/{id}/units/{unitID}", h.deleteSubItem)
		r.Post("/{id}/bills/{billNumber}", h.addItemToBill)
		r.Delete("/{id}/bills/{billNumber}", h.removeItemFromBill)
	})

	r.Route("/units/{unitID}", func(r chi.Router) {
		r.Post("/allot", h.allot)
		r.Post("/unallot", h.unallot)
		r.Post("/discard", h.discard)
		r.Post("/undiscard", h.undiscard)
	})

	r.Put("/bills/{billNumber}", h.updateBill)
	r.Put("/users/{personID}", h.updateUser)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the service error taxonomy to status codes.
func respondServiceError(w http.ResponseWriter, err error) {
	var dup *service.DuplicateNameError
	switch {
	case errors.As(err, &dup):
		respondError(w, http.StatusConflict, dup.Error())
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func validPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

func validImageURL(raw string) bool {
	if raw == "" {
		return true
	}
	u, err := url.ParseRequestURI(raw)
	return err == nil && u.Host != ""
}
