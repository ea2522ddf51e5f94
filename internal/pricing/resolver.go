// Package pricing resolves authoritative unit prices from product records.
// Prices are never trusted from the client: every cart mutation and every
// checkout snapshot goes through this package.
package pricing

import (
	"errors"
	"math"

	"github.com/giovanniklein/inn-b2b-varejista/internal/domain"
)

// ErrUnitNotAvailable means the product carries no price for the requested
// sale unit. The enclosing mutation must abort.
var ErrUnitNotAvailable = errors.New("sale unit not available for this product")

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// UnitPrice returns the authoritative price of one sale unit. The explicit
// price table wins; the legacy single-value fields are the fallback.
func UnitPrice(p *domain.Product, unit domain.SaleUnit) (float64, error) {
	for _, entry := range p.Prices {
		if entry.Unit == unit {
			return entry.Price, nil
		}
	}

	var fallback *float64
	switch unit {
	case domain.UnitSingle:
		fallback = p.UnitPrice
	case domain.UnitCase:
		fallback = p.CasePrice
	case domain.UnitPallet:
		fallback = p.PalletPrice
	}
	if fallback == nil {
		return 0, ErrUnitNotAvailable
	}
	return *fallback, nil
}

// PriceTable expands a product's price table for display. Units-per-pack is
// clamped to at least 1; when the explicit table is empty, entries are
// synthesized from the legacy fields so the UI always sees the available
// unit alternatives.
func PriceTable(p *domain.Product) []domain.ProductPrice {
	table := make([]domain.ProductPrice, 0, len(p.Prices))
	for _, entry := range p.Prices {
		if entry.Unit == "" {
			continue
		}
		perPack := entry.UnitsPerPack
		if perPack < 1 {
			perPack = 1
		}
		table = append(table, domain.ProductPrice{
			Unit:         entry.Unit,
			Price:        entry.Price,
			UnitsPerPack: perPack,
		})
	}
	if len(table) > 0 {
		return table
	}

	if p.UnitPrice != nil {
		table = append(table, domain.ProductPrice{Unit: domain.UnitSingle, Price: *p.UnitPrice, UnitsPerPack: 1})
	}
	if p.CasePrice != nil {
		table = append(table, domain.ProductPrice{Unit: domain.UnitCase, Price: *p.CasePrice, UnitsPerPack: 1})
	}
	if p.PalletPrice != nil {
		table = append(table, domain.ProductPrice{Unit: domain.UnitPallet, Price: *p.PalletPrice, UnitsPerPack: 1})
	}
	return table
}
