package cart

import (
	"context"
	"errors"
	"time"

	"github.com/giovanniklein/inn-b2b-varejista/internal/domain"
)

// View is the cart as the retailer sees it: lines enriched with seller
// display names and the full price table of each product, plus the
// normalized payment terms offered by every seller present in the cart.
type View struct {
	Items                []ItemView          `json:"items"`
	PaymentTermsBySeller map[string][]string `json:"payment_terms_by_seller"`
	TotalValue           float64             `json:"total_value"`
	UpdatedAt            *time.Time          `json:"updated_at"`
}

type ItemView struct {
	ProductID          string                `json:"product_id"`
	ProductDescription string                `json:"product_description"`
	SellerID           string                `json:"seller_id"`
	SellerName         string                `json:"seller_name,omitempty"`
	Quantity           int                   `json:"quantity"`
	Unit               domain.SaleUnit       `json:"unit"`
	UnitPrice          float64               `json:"unit_price"`
	Subtotal           float64               `json:"subtotal"`
	Prices             []domain.ProductPrice `json:"prices"`
}

func emptyView() *View {
	return &View{
		Items:                []ItemView{},
		PaymentTermsBySeller: map[string][]string{},
		TotalValue:           0,
	}
}

// ViewCache caches the assembled view per retailer. Mutations invalidate it;
// checkout never reads it.
type ViewCache interface {
	Get(ctx context.Context, retailerID string) (*View, error)
	Set(ctx context.Context, retailerID string, view *View) error
	Delete(ctx context.Context, retailerID string) error
}

var ErrCacheMiss = errors.New("cache miss")
