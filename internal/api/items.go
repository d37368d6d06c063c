package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/stockroom/internal/models"
	"github.com/mmynk/stockroom/internal/service"
)

type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !validImageURL(req.ImageURL) {
		respondError(w, http.StatusBadRequest, "imageUrl is not a valid URL")
		return
	}

	item, err := h.svc.CreateItem(r.Context(), service.NewItemData{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

type updateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name != nil && *req.Name == "" {
		respondError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}
	if req.ImageURL != nil && !validImageURL(*req.ImageURL) {
		respondError(w, http.StatusBadRequest, "imageUrl is not a valid URL")
		return
	}

	err := h.svc.UpdateItem(r.Context(), chi.URLParam(r, "id"), service.ItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type addUnitsRequest struct {
	Quantity   int       `json:"quantity"`
	BillNumber string    `json:"billNumber"`
	BillDate   time.Time `json:"billDate"`
	Company    string    `json:"company"`
}

func (h *Handler) addUnits(w http.ResponseWriter, r *http.Request) {
	var req addUnitsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}
	if req.BillNumber == "" {
		respondError(w, http.StatusBadRequest, "billNumber is required")
		return
	}

	err := h.svc.AddUnits(r.Context(), service.AddUnitsData{
		ItemID:     chi.URLParam(r, "id"),
		Quantity:   req.Quantity,
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

func (h *Handler) updateSubItem(w http.ResponseWriter, r *http.Request) {
	var sub models.SubItem
	if !decodeBody(w, r, &sub) {
		return
	}
	sub.ID = chi.URLParam(r, "unitID")
	if !sub.Status.Valid() {
		respondError(w, http.StatusBadRequest, "unknown availability status")
		return
	}

	if err := h.svc.UpdateSubItem(r.Context(), chi.URLParam(r, "id"), sub); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) deleteSubItem(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteSubItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "unitID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type addItemToBillRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) addItemToBill(w http.ResponseWriter, r *http.Request) {
	var req addItemToBillRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}

	err := h.svc.AddItemToBill(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "billNumber"), req.Quantity)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) removeItemFromBill(w http.ResponseWriter, r *http.Request) {
	err := h.svc.RemoveItemFromBill(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "billNumber"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
