package httpapi

import (
	"net/http"
	"strconv"

	"github.com/giovanniklein/inn-b2b-varejista/internal/cart"
	"github.com/giovanniklein/inn-b2b-varejista/internal/identity"
	"github.com/giovanniklein/inn-b2b-varejista/internal/order"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orders *order.Service
	carts  *cart.Service
}

func NewOrderHandler(orders *order.Service, carts *cart.Service) *OrderHandler {
	return &OrderHandler{orders: orders, carts: carts}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	retailerID := identity.RetailerID(r.Context())
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)

	resp, err := h.orders.List(r.Context(), retailerID, page, pageSize)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	retailerID := identity.RetailerID(r.Context())
	orderID := chi.URLParam(r, "order_id")

	detail, err := h.orders.Get(r.Context(), retailerID, orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// Duplicate copies a past order's sellable lines into the current cart at
// today's prices and returns the updated cart view.
func (h *OrderHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	retailerID := identity.RetailerID(r.Context())
	orderID := chi.URLParam(r, "order_id")

	view, err := h.carts.DuplicateOrder(r.Context(), retailerID, orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return defaultValue
	}
	return v
}
