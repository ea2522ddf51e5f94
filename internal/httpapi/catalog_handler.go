package httpapi

import (
	"net/http"

	"github.com/giovanniklein/inn-b2b-varejista/internal/catalog"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalog *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	sellerID := r.URL.Query().Get("seller_id")
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)

	resp, err := h.catalog.List(r.Context(), query, sellerID, page, pageSize)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	view, err := h.catalog.Get(r.Context(), productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
