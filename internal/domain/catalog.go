package domain

// SaleUnit is the granularity a product is priced and sold in.
type SaleUnit string

const (
	UnitSingle SaleUnit = "unidade"
	UnitCase   SaleUnit = "caixa"
	UnitPallet SaleUnit = "palete"
)

// PaymentTermCash is the canonical pay-on-delivery term. Every seller offers
// it, even when its configured term list omits it.
const PaymentTermCash = "A VISTA"

// DefaultMinimumOrder applies when a seller has no configured threshold.
const DefaultMinimumOrder = 150.0

// ProductPrice is one entry of a product's explicit price table.
type ProductPrice struct {
	Unit         SaleUnit `bson:"unit" json:"unit"`
	Price        float64  `bson:"price" json:"price"`
	UnitsPerPack int      `bson:"units_per_pack" json:"units_per_pack"`
}

// Product is a read-only catalog record shared by all sellers. Besides the
// explicit price table, three legacy single-value price fields may be set.
type Product struct {
	ID          string         `bson:"_id,omitempty" json:"id"`
	Code        string         `bson:"code" json:"code"`
	Description string         `bson:"description" json:"description"`
	SellerID    string         `bson:"seller_id" json:"seller_id"`
	Stock       int            `bson:"stock" json:"stock"`
	Prices      []ProductPrice `bson:"prices,omitempty" json:"prices"`
	UnitPrice   *float64       `bson:"unit_price,omitempty" json:"unit_price,omitempty"`
	CasePrice   *float64       `bson:"case_price,omitempty" json:"case_price,omitempty"`
	PalletPrice *float64       `bson:"pallet_price,omitempty" json:"pallet_price,omitempty"`
}

// Seller is a wholesaler record, read-only from this service's perspective.
type Seller struct {
	ID           string   `bson:"_id,omitempty" json:"id"`
	TradeName    string   `bson:"trade_name" json:"trade_name"`
	LegalName    string   `bson:"legal_name" json:"legal_name"`
	Active       bool     `bson:"active" json:"active"`
	MinimumOrder *float64 `bson:"minimum_order,omitempty" json:"minimum_order,omitempty"`
	PaymentTerms []string `bson:"payment_terms,omitempty" json:"payment_terms"`
}

// DisplayName prefers the trade name, then the legal name, then the id.
func (s *Seller) DisplayName() string {
	if s.TradeName != "" {
		return s.TradeName
	}
	if s.LegalName != "" {
		return s.LegalName
	}
	return s.ID
}

// MinimumOrderValue returns the configured threshold or the default.
func (s *Seller) MinimumOrderValue() float64 {
	if s.MinimumOrder != nil {
		return *s.MinimumOrder
	}
	return DefaultMinimumOrder
}
