// Package order exposes the retailer-side read model of orders. Orders are
// written only by the checkout split; everything here is tenant-scoped
// reading.
package order

import (
	"context"
	"errors"

	"github.com/giovanniklein/inn-b2b-varejista/internal/domain"
	"github.com/giovanniklein/inn-b2b-varejista/internal/repository"
)

// ListItem is one row of the order history, enriched with the seller's
// display name for the list screen.
type ListItem struct {
	ID              string             `json:"id"`
	SellerID        string             `json:"seller_id"`
	SellerName      string             `json:"seller_name,omitempty"`
	PaymentTerm     string             `json:"payment_term"`
	TotalValue      float64            `json:"total_value"`
	Status          domain.OrderStatus `json:"status"`
	CreatedAt       string             `json:"created_at"`
	DeliveryAddress domain.Address     `json:"delivery_address"`
}

type ListResponse struct {
	Items      []ListItem `json:"items"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// Detail is the full order body, seller name included.
type Detail struct {
	domain.Order
	SellerName string `json:"seller_name,omitempty"`
}

type Service struct {
	orders  repository.OrderRepository
	sellers repository.SellerReader
}

func NewService(orders repository.OrderRepository, sellers repository.SellerReader) *Service {
	return &Service{orders: orders, sellers: sellers}
}

// List returns one page of the retailer's orders, newest first, with seller
// names resolved in a single batched lookup.
func (s *Service) List(ctx context.Context, retailerID string, page, pageSize int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	orders, err := s.orders.FindPage(ctx, retailerID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.Count(ctx, retailerID)
	if err != nil {
		return nil, err
	}

	names, err := s.sellerNames(ctx, orders)
	if err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(orders))
	for _, o := range orders {
		items = append(items, ListItem{
			ID:              o.ID,
			SellerID:        o.SellerID,
			SellerName:      names[o.SellerID],
			PaymentTerm:     o.PaymentTerm,
			TotalValue:      o.TotalValue,
			Status:          o.Status,
			CreatedAt:       o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			DeliveryAddress: o.DeliveryAddress,
		})
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

// Get returns the full order body for the detail screen.
func (s *Service) Get(ctx context.Context, retailerID, orderID string) (*Detail, error) {
	o, err := s.orders.FindByID(ctx, retailerID, orderID)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Order: *o}
	seller, err := s.sellers.FindByID(ctx, o.SellerID)
	if err == nil {
		detail.SellerName = seller.DisplayName()
	} else if !errors.Is(err, repository.ErrSellerNotFound) {
		return nil, err
	}
	return detail, nil
}

func (s *Service) sellerNames(ctx context.Context, orders []*domain.Order) (map[string]string, error) {
	ids := make([]string, 0, len(orders))
	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.SellerID]; ok {
			continue
		}
		seen[o.SellerID] = struct{}{}
		ids = append(ids, o.SellerID)
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
