// Package cart owns the single multi-seller cart of each retailer: line
// merging, server-side price resolution and total recomputation on every
// mutation, plus the replay of historical orders back into the live cart.
package cart

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/giovanniklein/inn-b2b-varejista/internal/domain"
	"github.com/giovanniklein/inn-b2b-varejista/internal/pricing"
	"github.com/giovanniklein/inn-b2b-varejista/internal/repository"
	"golang.org/x/sync/singleflight"
)

var (
	ErrItemNotFound          = errors.New("item not found in cart")
	ErrProductSellerMismatch = errors.New("product does not belong to the given seller")
	ErrInvalidQuantity       = errors.New("quantity out of range")
)

type Service struct {
	carts    repository.CartRepository
	orders   repository.OrderRepository
	products repository.ProductReader
	sellers  repository.SellerReader
	cache    ViewCache
	log      *slog.Logger
	sfg      singleflight.Group // prevents cache stampede on view reads
}

func NewService(
	carts repository.CartRepository,
	orders repository.OrderRepository,
	products repository.ProductReader,
	sellers repository.SellerReader,
	cache ViewCache,
	log *slog.Logger,
) *Service {
	return &Service{
		carts:    carts,
		orders:   orders,
		products: products,
		sellers:  sellers,
		cache:    cache,
		log:      log,
	}
}

// UpsertItemRequest adds or replaces the line keyed by (product, seller).
// The client never supplies a price.
type UpsertItemRequest struct {
	ProductID string          `json:"product_id"`
	SellerID  string          `json:"seller_id"`
	Quantity  int             `json:"quantity"`
	Unit      domain.SaleUnit `json:"unit"`
}

// UpdateItemRequest mutates the line of a product already in the cart.
// Quantity zero removes the line; an empty Unit keeps the current one.
type UpdateItemRequest struct {
	Quantity int             `json:"quantity"`
	Unit     domain.SaleUnit `json:"unit,omitempty"`
}

// GetCart returns the enriched view, reading through the cache.
func (s *Service) GetCart(ctx context.Context, retailerID string) (*View, error) {
	v, err, _ := s.sfg.Do(retailerID, func() (interface{}, error) {
		view, err := s.cache.Get(ctx, retailerID)
		if err == nil {
			return view, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.log.Warn("cart view cache get failed", "error", err)
		}

		view, err = s.assembleView(ctx, retailerID)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.cache.Set(context.Background(), retailerID, view); err != nil {
				s.log.Warn("cart view cache set failed", "error", err)
			}
		}()

		return view, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*View), nil
}

// UpsertItem adds a new line or replaces quantity/unit/price of the existing
// (product, seller) line.
func (s *Service) UpsertItem(ctx context.Context, retailerID string, req UpsertItemRequest) (*View, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != req.SellerID {
		return nil, ErrProductSellerMismatch
	}

	unitPrice, err := pricing.UnitPrice(product, req.Unit)
	if err != nil {
		return nil, err
	}

	cart, err := s.loadOrNewCart(ctx, retailerID)
	if err != nil {
		return nil, err
	}

	item := domain.CartItem{
		ProductID:          req.ProductID,
		ProductDescription: product.Description,
		SellerID:           req.SellerID,
		Quantity:           req.Quantity,
		Unit:               req.Unit,
		UnitPrice:          unitPrice,
	}
	if i := cart.FindItem(req.ProductID, req.SellerID); i >= 0 {
		cart.Items[i] = item
	} else {
		cart.Items = append(cart.Items, item)
	}

	return s.persistAndView(ctx, retailerID, cart)
}

// UpdateItem changes quantity and optionally the unit of the line holding
// the given product. Quantity zero deletes the line.
func (s *Service) UpdateItem(ctx context.Context, retailerID, productID string, req UpdateItemRequest) (*View, error) {
	if req.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.carts.Get(ctx, retailerID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, item := range cart.Items {
		if item.ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	if req.Quantity == 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		if len(cart.Items) == 0 {
			return s.deleteAndEmptyView(ctx, retailerID)
		}
		return s.persistAndView(ctx, retailerID, cart)
	}

	unit := req.Unit
	if unit == "" {
		unit = cart.Items[idx].Unit
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	unitPrice, err := pricing.UnitPrice(product, unit)
	if err != nil {
		return nil, err
	}

	cart.Items[idx].Quantity = req.Quantity
	cart.Items[idx].Unit = unit
	cart.Items[idx].UnitPrice = unitPrice
	cart.Items[idx].ProductDescription = product.Description

	return s.persistAndView(ctx, retailerID, cart)
}

// RemoveItem drops every line holding the given product. Emptying the cart
// deletes the cart record itself.
func (s *Service) RemoveItem(ctx context.Context, retailerID, productID string) (*View, error) {
	cart, err := s.carts.Get(ctx, retailerID)
	if err != nil {
		return nil, err
	}

	kept := make([]domain.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(cart.Items) {
		return nil, ErrItemNotFound
	}
	cart.Items = kept

	if len(cart.Items) == 0 {
		return s.deleteAndEmptyView(ctx, retailerID)
	}
	return s.persistAndView(ctx, retailerID, cart)
}

// Clear deletes the cart record unconditionally. Idempotent.
func (s *Service) Clear(ctx context.Context, retailerID string) error {
	if err := s.carts.Delete(ctx, retailerID); err != nil {
		return err
	}
	s.invalidate(retailerID)
	return nil
}

// DuplicateOrder replays a historical order's lines into the live cart at
// current catalog prices. Replay is best effort: lines whose product, unit
// or price no longer resolve are skipped, and quantities are summed when a
// (product, seller, unit) line already exists.
func (s *Service) DuplicateOrder(ctx context.Context, retailerID, orderID string) (*View, error) {
	order, err := s.orders.FindByID(ctx, retailerID, orderID)
	if err != nil {
		return nil, err
	}

	cart, err := s.loadOrNewCart(ctx, retailerID)
	if err != nil {
		return nil, err
	}

	for _, line := range order.Items {
		if line.ProductID == "" || line.Unit == "" || line.Quantity <= 0 {
			continue
		}

		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				continue
			}
			return nil, err
		}

		unitPrice, err := pricing.UnitPrice(product, line.Unit)
		if err != nil {
			if errors.Is(err, pricing.ErrUnitNotAvailable) {
				continue
			}
			return nil, err
		}

		merged := false
		for i := range cart.Items {
			item := &cart.Items[i]
			if item.ProductID == line.ProductID && item.SellerID == order.SellerID && item.Unit == line.Unit {
				item.Quantity += line.Quantity
				item.UnitPrice = unitPrice
				item.ProductDescription = product.Description
				merged = true
				break
			}
		}
		if !merged {
			cart.Items = append(cart.Items, domain.CartItem{
				ProductID:          line.ProductID,
				ProductDescription: product.Description,
				SellerID:           order.SellerID,
				Quantity:           line.Quantity,
				Unit:               line.Unit,
				UnitPrice:          unitPrice,
			})
		}
	}

	return s.persistAndView(ctx, retailerID, cart)
}

func (s *Service) loadOrNewCart(ctx context.Context, retailerID string) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, retailerID)
	if err == nil {
		return cart, nil
	}
	if errors.Is(err, repository.ErrCartNotFound) {
		return &domain.Cart{RetailerID: retailerID}, nil
	}
	return nil, err
}

// recompute derives every subtotal and the grand total from scratch; they
// are never carried over from a previous snapshot.
func recompute(cart *domain.Cart) {
	total := 0.0
	for i := range cart.Items {
		item := &cart.Items[i]
		item.Subtotal = pricing.Round2(item.UnitPrice * float64(item.Quantity))
		total += item.Subtotal
	}
	cart.TotalValue = pricing.Round2(total)
	cart.UpdatedAt = time.Now().UTC()
}

func (s *Service) persistAndView(ctx context.Context, retailerID string, cart *domain.Cart) (*View, error) {
	recompute(cart)
	if err := s.carts.Upsert(ctx, retailerID, cart); err != nil {
		return nil, err
	}
	s.invalidate(retailerID)
	return s.assembleView(ctx, retailerID)
}

func (s *Service) deleteAndEmptyView(ctx context.Context, retailerID string) (*View, error) {
	if err := s.carts.Delete(ctx, retailerID); err != nil {
		return nil, err
	}
	s.invalidate(retailerID)
	return emptyView(), nil
}

func (s *Service) invalidate(retailerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, retailerID); err != nil {
		s.log.Warn("cart view cache invalidate failed", "error", err)
	}
}

// assembleView loads the cart and joins seller names, normalized payment
// terms and per-line price tables, using one batched lookup per collection.
func (s *Service) assembleView(ctx context.Context, retailerID string) (*View, error) {
	cart, err := s.carts.Get(ctx, retailerID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return emptyView(), nil
		}
		return nil, err
	}

	sellers, err := s.sellers.FindByIDs(ctx, cart.SellerIDs())
	if err != nil {
		return nil, err
	}
	sellerByID := make(map[string]*domain.Seller, len(sellers))
	termsBySeller := make(map[string][]string, len(sellers))
	for _, seller := range sellers {
		sellerByID[seller.ID] = seller
		termsBySeller[seller.ID] = domain.NormalizePaymentTerms(seller.PaymentTerms)
	}

	productIDs := make([]string, 0, len(cart.Items))
	seen := make(map[string]struct{}, len(cart.Items))
	for _, item := range cart.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	pricesByProduct := make(map[string][]domain.ProductPrice, len(products))
	for _, product := range products {
		pricesByProduct[product.ID] = pricing.PriceTable(product)
	}

	view := &View{
		Items:                make([]ItemView, 0, len(cart.Items)),
		PaymentTermsBySeller: termsBySeller,
		TotalValue:           cart.TotalValue,
	}
	if !cart.UpdatedAt.IsZero() {
		updatedAt := cart.UpdatedAt
		view.UpdatedAt = &updatedAt
	}

	for _, item := range cart.Items {
		itemView := ItemView{
			ProductID:          item.ProductID,
			ProductDescription: item.ProductDescription,
			SellerID:           item.SellerID,
			Quantity:           item.Quantity,
			Unit:               item.Unit,
			UnitPrice:          item.UnitPrice,
			Subtotal:           item.Subtotal,
			Prices:             pricesByProduct[item.ProductID],
		}
		if seller, ok := sellerByID[item.SellerID]; ok {
			itemView.SellerName = seller.DisplayName()
		}
		view.Items = append(view.Items, itemView)
	}

	return view, nil
}
