package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/giovanniklein/inn-b2b-varejista/internal/checkout"
	"github.com/giovanniklein/inn-b2b-varejista/internal/identity"
)

type CheckoutHandler struct {
	checkout *checkout.Service
}

func NewCheckoutHandler(svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc}
}

type CheckoutRequestDTO struct {
	// Deliveries is keyed by seller id; one entry per seller in the cart.
	Deliveries map[string]checkout.Delivery `json:"deliveries"`
}

type CheckoutResponseDTO struct {
	Orders []checkout.CreatedOrder `json:"orders"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	retailerID := identity.RetailerID(r.Context())

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	orders, err := h.checkout.Checkout(r.Context(), retailerID, req.Deliveries)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{Orders: orders})
}
