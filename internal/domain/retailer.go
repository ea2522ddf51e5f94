package domain

// Address is a delivery address embedded in the retailer profile. Exactly one
// address carries the Principal flag while the list is non-empty.
type Address struct {
	ID         string `bson:"id" json:"id"`
	Label      string `bson:"label" json:"label"`
	Street     string `bson:"street" json:"street"`
	Number     string `bson:"number" json:"number"`
	District   string `bson:"district" json:"district"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postal_code" json:"postal_code"`
	Complement string `bson:"complement,omitempty" json:"complement,omitempty"`
	Principal  bool   `bson:"principal" json:"principal"`
}

// Retailer is the buyer-side account, the tenant every cart, address and
// order read is scoped to.
type Retailer struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CNPJ      string    `bson:"cnpj" json:"cnpj"`
	LegalName string    `bson:"legal_name" json:"legal_name"`
	TradeName string    `bson:"trade_name" json:"trade_name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Addresses []Address `bson:"addresses" json:"addresses"`
}

// AddressByID returns the embedded address with the given id, or nil.
func (r *Retailer) AddressByID(id string) *Address {
	for i := range r.Addresses {
		if r.Addresses[i].ID == id {
			return &r.Addresses[i]
		}
	}
	return nil
}
