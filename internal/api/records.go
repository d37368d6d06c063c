package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/stockroom/internal/models"
)

type updateBillRequest struct {
	BillNumber string    `json:"billNumber"`
	BillDate   time.Time `json:"billDate"`
	Company    string    `json:"company"`
}

func (h *Handler) updateBill(w http.ResponseWriter, r *http.Request) {
	var req updateBillRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.BillNumber == "" {
		respondError(w, http.StatusBadRequest, "billNumber is required")
		return
	}

	err := h.svc.UpdateBill(r.Context(), chi.URLParam(r, "billNumber"), models.Bill{
		BillNumber: req.BillNumber,
		BillDate:   req.BillDate,
		Company:    req.Company,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type updateUserRequest struct {
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Department  string    `json:"department"`
	JoiningDate time.Time `json:"joiningDate"`
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !validPhone(req.Phone) {
		respondError(w, http.StatusBadRequest, "phone must be exactly 10 digits")
		return
	}

	err := h.svc.UpdateUser(r.Context(), models.User{
		PersonID:    chi.URLParam(r, "personID"),
		Name:        req.Name,
		Phone:       req.Phone,
		Department:  req.Department,
		JoiningDate: req.JoiningDate,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
