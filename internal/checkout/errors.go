package checkout

import (
	"errors"
	"fmt"
)

// ErrEmptyCart gates the whole checkout: no order is ever produced from an
// absent or empty cart.
var ErrEmptyCart = errors.New("cart is empty, nothing to check out")

// MissingAddressError names the seller the caller supplied no delivery
// address for. It is raised before any order is written.
type MissingAddressError struct {
	SellerID string
}

func (e *MissingAddressError) Error() string {
	return fmt.Sprintf("no delivery address given for seller %s", e.SellerID)
}

// InvalidPaymentTermError means the requested term is not in the seller's
// normalized offered set.
type InvalidPaymentTermError struct {
	SellerID   string
	SellerName string
	Term       string
}

func (e *InvalidPaymentTermError) Error() string {
	return fmt.Sprintf("payment term %q not offered by seller %s", e.Term, e.SellerName)
}

// AddressNotFoundError means the chosen address id does not exist in the
// retailer's address list.
type AddressNotFoundError struct {
	SellerID  string
	AddressID string
}

func (e *AddressNotFoundError) Error() string {
	return fmt.Sprintf("delivery address %s not found for seller %s", e.AddressID, e.SellerID)
}

// MinimumOrderError carries the structured shortfall the UI renders as a
// progress-to-minimum indicator, not just a message.
type MinimumOrderError struct {
	SellerID     string  `json:"seller_id"`
	SellerName   string  `json:"seller_name"`
	CurrentTotal float64 `json:"current_total"`
	MinimumOrder float64 `json:"minimum_order"`
	Shortfall    float64 `json:"shortfall"`
}

func (e *MinimumOrderError) Error() string {
	return fmt.Sprintf(
		"minimum order for seller %s not reached: %.2f/%.2f",
		e.SellerName, e.CurrentTotal, e.MinimumOrder,
	)
}
