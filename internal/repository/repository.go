// Package repository holds the MongoDB data access layer. Retailer-owned
// collections (carts, orders, retailer profiles) are only reachable through
// tenant-scoped methods: the retailer id is the first parameter everywhere
// and the tenant filter is built in a single place, so no code path can
// issue a tenant-less query against them.
package repository

import (
	"context"
	"errors"

	"github.com/giovanniklein/inn-b2b-varejista/internal/domain"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrSellerNotFound   = errors.New("seller not found")
	ErrRetailerNotFound = errors.New("retailer not found")
)

// CartRepository persists the single cart per retailer as a full snapshot.
type CartRepository interface {
	Get(ctx context.Context, retailerID string) (*domain.Cart, error)
	Upsert(ctx context.Context, retailerID string, cart *domain.Cart) error
	// Delete removes the cart document. Deleting an absent cart is not an
	// error: absence already means the empty cart.
	Delete(ctx context.Context, retailerID string) error
}

// OrderRepository is append-only from this service's perspective; status
// transitions belong to the seller-side system.
type OrderRepository interface {
	Insert(ctx context.Context, retailerID string, order *domain.Order) (string, error)
	FindByID(ctx context.Context, retailerID, orderID string) (*domain.Order, error)
	FindPage(ctx context.Context, retailerID string, skip, limit int) ([]*domain.Order, error)
	Count(ctx context.Context, retailerID string) (int64, error)
}

// ProductFilter narrows catalog searches.
type ProductFilter struct {
	Query     string   // partial, case-insensitive match on the description
	SellerIDs []string // restrict to these sellers; empty matches nothing
	Skip      int
	Limit     int
}

// ProductReader is the read-only catalog view. The retailer sees products of
// every seller, so there is no tenant filter at this level.
type ProductReader interface {
	FindByID(ctx context.Context, productID string) (*domain.Product, error)
	FindByIDs(ctx context.Context, productIDs []string) ([]*domain.Product, error)
	Search(ctx context.Context, filter ProductFilter) ([]*domain.Product, int64, error)
}

// SellerReader provides seller metadata for cart enrichment and checkout.
type SellerReader interface {
	FindByID(ctx context.Context, sellerID string) (*domain.Seller, error)
	FindByIDs(ctx context.Context, sellerIDs []string) ([]*domain.Seller, error)
	ActiveIDs(ctx context.Context) ([]string, error)
}

// RetailerRepository owns the retailer profile, including the embedded
// address list, which is rewritten as one unit per mutation.
type RetailerRepository interface {
	FindByID(ctx context.Context, retailerID string) (*domain.Retailer, error)
	UpdateAddresses(ctx context.Context, retailerID string, addresses []domain.Address) error
}
