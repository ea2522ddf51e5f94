package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/giovanniklein/inn-b2b-varejista/internal/address"
	"github.com/giovanniklein/inn-b2b-varejista/internal/identity"
	"github.com/go-chi/chi/v5"
)

type AddressHandler struct {
	addresses *address.Service
}

func NewAddressHandler(addresses *address.Service) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	retailerID := identity.RetailerID(r.Context())

	list, err := h.addresses.List(r.Context(), retailerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	retailerID := identity.RetailerID(r.Context())

	var req address.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Street == "" || req.City == "" || req.State == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "street, city and state are required")
		return
	}

	created, err := h.addresses.Create(r.Context(), retailerID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	retailerID := identity.RetailerID(r.Context())
	addressID := chi.URLParam(r, "address_id")

	var req address.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	updated, err := h.addresses.Update(r.Context(), retailerID, addressID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	retailerID := identity.RetailerID(r.Context())
	addressID := chi.URLParam(r, "address_id")

	if err := h.addresses.Delete(r.Context(), retailerID, addressID); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *AddressHandler) SetPrincipal(w http.ResponseWriter, r *http.Request) {
	retailerID := identity.RetailerID(r.Context())
	addressID := chi.URLParam(r, "address_id")

	updated, err := h.addresses.SetPrincipal(r.Context(), retailerID, addressID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
