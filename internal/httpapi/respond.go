// Package httpapi is the HTTP surface of the retailer backend. Handlers stay
// thin: decode, call a service, map the error, encode. The tenant id always
// comes from the identity middleware, never from the request body.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/giovanniklein/inn-b2b-varejista/internal/address"
	"github.com/giovanniklein/inn-b2b-varejista/internal/cart"
	"github.com/giovanniklein/inn-b2b-varejista/internal/checkout"
	"github.com/giovanniklein/inn-b2b-varejista/internal/pricing"
	"github.com/giovanniklein/inn-b2b-varejista/internal/registry"
	"github.com/giovanniklein/inn-b2b-varejista/internal/repository"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// handleServiceError maps domain errors to HTTP statuses. The minimum order
// failure carries a structured details payload so clients can show the
// shortfall without parsing the message.
func handleServiceError(w http.ResponseWriter, err error) {
	var minOrder *checkout.MinimumOrderError
	if errors.As(err, &minOrder) {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   minOrder.Error(),
			Code:    "minimum_order_not_met",
			Details: minOrder,
		})
		return
	}

	var missingAddr *checkout.MissingAddressError
	if errors.As(err, &missingAddr) {
		respondError(w, http.StatusBadRequest, "missing_delivery_address", missingAddr.Error())
		return
	}

	var invalidTerm *checkout.InvalidPaymentTermError
	if errors.As(err, &invalidTerm) {
		respondError(w, http.StatusBadRequest, "invalid_payment_term", invalidTerm.Error())
		return
	}

	var addrNotFound *checkout.AddressNotFoundError
	if errors.As(err, &addrNotFound) {
		respondError(w, http.StatusBadRequest, "address_not_found", addrNotFound.Error())
		return
	}

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, cart.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, cart.ErrProductSellerMismatch):
		respondError(w, http.StatusBadRequest, "product_seller_mismatch", err.Error())
	case errors.Is(err, pricing.ErrUnitNotAvailable):
		respondError(w, http.StatusBadRequest, "unit_not_available", err.Error())
	case errors.Is(err, registry.ErrInvalidCNPJ):
		respondError(w, http.StatusBadRequest, "invalid_cnpj", err.Error())
	case errors.Is(err, cart.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "item_not_found", err.Error())
	case errors.Is(err, address.ErrAddressNotFound):
		respondError(w, http.StatusNotFound, "address_not_found", err.Error())
	case errors.Is(err, registry.ErrCNPJNotFound):
		respondError(w, http.StatusNotFound, "cnpj_not_found", err.Error())
	case errors.Is(err, repository.ErrCartNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrSellerNotFound),
		errors.Is(err, repository.ErrRetailerNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, registry.ErrRegistryUnavailable):
		respondError(w, http.StatusServiceUnavailable, "registry_unavailable", err.Error())
	default:
		slog.Error("unhandled service error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
