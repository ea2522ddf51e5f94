package domain

import "time"

// Cart is the single multi-seller shopping cart of a retailer. At most one
// cart document exists per retailer; the absence of a document means an
// empty cart.
type Cart struct {
	ID         string     `bson:"_id,omitempty" json:"-"`
	RetailerID string     `bson:"retailer_id" json:"retailer_id"`
	Items      []CartItem `bson:"items" json:"items"`
	TotalValue float64    `bson:"total_value" json:"total_value"`
	UpdatedAt  time.Time  `bson:"updated_at" json:"updated_at"`
}

// CartItem is one (product, seller) line of the cart. UnitPrice and Subtotal
// are always resolved server-side, never taken from the client.
type CartItem struct {
	ProductID          string   `bson:"product_id" json:"product_id"`
	ProductDescription string   `bson:"product_description" json:"product_description"`
	SellerID           string   `bson:"seller_id" json:"seller_id"`
	Quantity           int      `bson:"quantity" json:"quantity"`
	Unit               SaleUnit `bson:"unit" json:"unit"`
	UnitPrice          float64  `bson:"unit_price" json:"unit_price"`
	Subtotal           float64  `bson:"subtotal" json:"subtotal"`
}

// FindItem returns the index of the line keyed by (product, seller), or -1.
func (c *Cart) FindItem(productID, sellerID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.SellerID == sellerID {
			return i
		}
	}
	return -1
}

// SellerIDs returns the distinct sellers present in the cart, in
// first-appearance order of the line list.
func (c *Cart) SellerIDs() []string {
	seen := make(map[string]struct{}, len(c.Items))
	var ids []string
	for _, item := range c.Items {
		if _, ok := seen[item.SellerID]; ok {
			continue
		}
		seen[item.SellerID] = struct{}{}
		ids = append(ids, item.SellerID)
	}
	return ids
}
