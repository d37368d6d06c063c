package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/stockroom/internal/models"
)

type allotRequest struct {
	PersonID       string    `json:"personId"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Department     string    `json:"department"`
	Project        string    `json:"project"`
	AssignmentDate time.Time `json:"assignmentDate"`
}

func (h *Handler) allot(w http.ResponseWriter, r *http.Request) {
	var req allotRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PersonID == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, "personId and name are required")
		return
	}
	if !validPhone(req.Phone) {
		respondError(w, http.StatusBadRequest, "phone must be exactly 10 digits")
		return
	}

	err := h.svc.Allot(r.Context(), chi.URLParam(r, "unitID"), models.Assignment{
		PersonID:       req.PersonID,
		Name:           req.Name,
		Phone:          req.Phone,
		Department:     req.Department,
		Project:        req.Project,
		AssignmentDate: req.AssignmentDate,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) unallot(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Unallot(r.Context(), chi.URLParam(r, "unitID")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) discard(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Discard(r.Context(), chi.URLParam(r, "unitID")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) undiscard(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Undiscard(r.Context(), chi.URLParam(r, "unitID")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
