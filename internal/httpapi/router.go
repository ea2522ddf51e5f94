package httpapi

import (
	"net/http"
	"time"

	"github.com/giovanniklein/inn-b2b-varejista/internal/identity"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterDeps struct {
	Auth     *identity.Authenticator
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrderHandler
	Address  *AddressHandler
	Catalog  *CatalogHandler
	Registry *RegistryHandler

	RequestTimeout time.Duration
}

func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// The registry lookup backs the signup form, so it runs
		// before authentication.
		r.Get("/cnpj/{cnpj}", deps.Registry.Lookup)

		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.Middleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", deps.Cart.GetCart)
				r.Delete("/", deps.Cart.ClearCart)
				r.Post("/items", deps.Cart.UpsertItem)
				r.Put("/items/{product_id}", deps.Cart.UpdateItem)
				r.Delete("/items/{product_id}", deps.Cart.RemoveItem)
				r.Post("/checkout", deps.Checkout.Checkout)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", deps.Orders.List)
				r.Get("/{order_id}", deps.Orders.Get)
				r.Post("/{order_id}/duplicate", deps.Orders.Duplicate)
			})

			r.Route("/addresses", func(r chi.Router) {
				r.Get("/", deps.Address.List)
				r.Post("/", deps.Address.Create)
				r.Put("/{address_id}", deps.Address.Update)
				r.Delete("/{address_id}", deps.Address.Delete)
				r.Post("/{address_id}/principal", deps.Address.SetPrincipal)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", deps.Catalog.List)
				r.Get("/{product_id}", deps.Catalog.Get)
			})
		})
	})

	return r
}
