package domain

import "time"

// OrderStatus is shared with the seller-side system, which owns every
// transition past "pendente". This service only ever writes "pendente".
type OrderStatus string

const (
	StatusPending   OrderStatus = "pendente"
	StatusAccepted  OrderStatus = "aceito"
	StatusRejected  OrderStatus = "recusado"
	StatusDelivered OrderStatus = "entregue"
)

// Order is one seller-scoped order produced by a checkout split. Immutable
// once created from this service's perspective: the delivery address and
// every item are snapshotted by value.
type Order struct {
	ID              string      `bson:"_id,omitempty" json:"id"`
	RetailerID      string      `bson:"retailer_id" json:"retailer_id"`
	SellerID        string      `bson:"seller_id" json:"seller_id"`
	PaymentTerm     string      `bson:"payment_term" json:"payment_term"`
	DeliveryAddress Address     `bson:"delivery_address" json:"delivery_address"`
	Items           []OrderItem `bson:"items" json:"items"`
	TotalValue      float64     `bson:"total_value" json:"total_value"`
	Status          OrderStatus `bson:"status" json:"status"`
	CreatedAt       time.Time   `bson:"created_at" json:"created_at"`
}

type OrderItem struct {
	ProductID          string   `bson:"product_id" json:"product_id"`
	ProductDescription string   `bson:"product_description" json:"product_description"`
	Unit               SaleUnit `bson:"unit" json:"unit"`
	Quantity           int      `bson:"quantity" json:"quantity"`
	UnitPrice          float64  `bson:"unit_price" json:"unit_price"`
	LineTotal          float64  `bson:"line_total" json:"line_total"`
}
