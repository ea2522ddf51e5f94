package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/giovanniklein/inn-b2b-varejista/internal/cart"
	"github.com/giovanniklein/inn-b2b-varejista/internal/identity"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	carts *cart.Service
}

func NewCartHandler(carts *cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	retailerID := identity.RetailerID(r.Context())

	view, err := h.carts.GetCart(r.Context(), retailerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *CartHandler) UpsertItem(w http.ResponseWriter, r *http.Request) {
	retailerID := identity.RetailerID(r.Context())

	var req cart.UpsertItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" || req.SellerID == "" || req.Unit == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "product_id, seller_id and unit are required")
		return
	}

	view, err := h.carts.UpsertItem(r.Context(), retailerID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	retailerID := identity.RetailerID(r.Context())
	productID := chi.URLParam(r, "product_id")

	var req cart.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	view, err := h.carts.UpdateItem(r.Context(), retailerID, productID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	retailerID := identity.RetailerID(r.Context())
	productID := chi.URLParam(r, "product_id")

	view, err := h.carts.RemoveItem(r.Context(), retailerID, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	retailerID := identity.RetailerID(r.Context())

	if err := h.carts.Clear(r.Context(), retailerID); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
