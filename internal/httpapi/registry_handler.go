package httpapi

import (
	"net/http"

	"github.com/giovanniklein/inn-b2b-varejista/internal/registry"
	"github.com/go-chi/chi/v5"
)

type RegistryHandler struct {
	registry *registry.Client
}

func NewRegistryHandler(client *registry.Client) *RegistryHandler {
	return &RegistryHandler{registry: client}
}

// Lookup proxies the public CNPJ registry so the signup form can prefill
// company data.
func (h *RegistryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	cnpj := chi.URLParam(r, "cnpj")

	info, err := h.registry.Lookup(r.Context(), cnpj)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}
