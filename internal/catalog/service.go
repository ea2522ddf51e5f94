// Package catalog is the retailer-facing read model of the shared product
// catalog. Only products of active sellers are visible; there is no tenant
// filter here because the catalog is shared by design.
package catalog

import (
	"context"
	"errors"

	"github.com/giovanniklein/inn-b2b-varejista/internal/domain"
	"github.com/giovanniklein/inn-b2b-varejista/internal/pricing"
	"github.com/giovanniklein/inn-b2b-varejista/internal/repository"
)

// ProductView is a catalog entry with the expanded price table and the
// seller's display name.
type ProductView struct {
	ID          string                `json:"id"`
	Code        string                `json:"code"`
	Description string                `json:"description"`
	Stock       int                   `json:"stock"`
	Prices      []domain.ProductPrice `json:"prices"`
	SellerID    string                `json:"seller_id"`
	SellerName  string                `json:"seller_name,omitempty"`
}

type ListResponse struct {
	Items      []ProductView `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

type Service struct {
	products repository.ProductReader
	sellers  repository.SellerReader
}

func NewService(products repository.ProductReader, sellers repository.SellerReader) *Service {
	return &Service{products: products, sellers: sellers}
}

// List pages through products of active sellers, optionally narrowed by a
// description search and a single seller.
func (s *Service) List(ctx context.Context, query, sellerID string, page, pageSize int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	empty := &ListResponse{
		Items:      []ProductView{},
		Total:      0,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: 1,
	}

	activeIDs, err := s.sellers.ActiveIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(activeIDs) == 0 {
		return empty, nil
	}

	sellerIDs := activeIDs
	if sellerID != "" {
		if !contains(activeIDs, sellerID) {
			return empty, nil
		}
		sellerIDs = []string{sellerID}
	}

	products, total, err := s.products.Search(ctx, repository.ProductFilter{
		Query:     query,
		SellerIDs: sellerIDs,
		Skip:      (page - 1) * pageSize,
		Limit:     pageSize,
	})
	if err != nil {
		return nil, err
	}

	names, err := s.sellerNames(ctx, products)
	if err != nil {
		return nil, err
	}

	items := make([]ProductView, 0, len(products))
	for _, product := range products {
		items = append(items, toView(product, names[product.SellerID]))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	return &ListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get returns a product of an active seller. Products of inactive sellers
// are reported as not found rather than leaked.
func (s *Service) Get(ctx context.Context, productID string) (*ProductView, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	seller, err := s.sellers.FindByID(ctx, product.SellerID)
	if err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			return nil, repository.ErrProductNotFound
		}
		return nil, err
	}
	if !seller.Active {
		return nil, repository.ErrProductNotFound
	}

	view := toView(product, seller.DisplayName())
	return &view, nil
}

func (s *Service) sellerNames(ctx context.Context, products []*domain.Product) (map[string]string, error) {
	ids := make([]string, 0, len(products))
	seen := make(map[string]struct{}, len(products))
	for _, product := range products {
		if _, ok := seen[product.SellerID]; ok {
			continue
		}
		seen[product.SellerID] = struct{}{}
		ids = append(ids, product.SellerID)
	}

	sellers, err := s.sellers.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(sellers))
	for _, seller := range sellers {
		names[seller.ID] = seller.DisplayName()
	}
	return names, nil
}

func toView(product *domain.Product, sellerName string) ProductView {
	return ProductView{
		ID:          product.ID,
		Code:        product.Code,
		Description: product.Description,
		Stock:       product.Stock,
		Prices:      pricing.PriceTable(product),
		SellerID:    product.SellerID,
		SellerName:  sellerName,
	}
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
