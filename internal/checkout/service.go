// Package checkout splits the multi-seller cart into one pending order per
// seller, enforcing each seller's business rules along the way.
//
// Per-seller validation happens before that seller's order is written, but
// there is no transaction spanning sellers: when a later partition fails,
// orders already written for earlier sellers remain. This mirrors the
// behavior of the upstream order store and is pinned by tests.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/giovanniklein/inn-b2b-varejista/internal/domain"
	"github.com/giovanniklein/inn-b2b-varejista/internal/pricing"
	"github.com/giovanniklein/inn-b2b-varejista/internal/repository"
)

// Delivery is the caller's choice of address and payment term for one
// seller. An empty PaymentTerm defaults to the cash term.
type Delivery struct {
	AddressID   string `json:"address_id"`
	PaymentTerm string `json:"payment_term,omitempty"`
}

// CreatedOrder is the light per-order summary returned to the caller; full
// order bodies are fetched separately.
type CreatedOrder struct {
	OrderID    string  `json:"order_id"`
	SellerID   string  `json:"seller_id"`
	TotalValue float64 `json:"total_value"`
}

// ViewInvalidator drops the cached cart view after the cart is cleared.
type ViewInvalidator interface {
	Delete(ctx context.Context, retailerID string) error
}

const orderCreatedEventType = "order.created"

type orderCreatedEvent struct {
	OrderID     string             `json:"order_id"`
	RetailerID  string             `json:"retailer_id"`
	SellerID    string             `json:"seller_id"`
	PaymentTerm string             `json:"payment_term"`
	TotalValue  float64            `json:"total_value"`
	CreatedAt   time.Time          `json:"created_at"`
	Items       []domain.OrderItem `json:"items"`
}

type Service struct {
	carts     repository.CartRepository
	orders    repository.OrderRepository
	products  repository.ProductReader
	sellers   repository.SellerReader
	retailers repository.RetailerRepository
	outbox    repository.OutboxRepository
	cache     ViewInvalidator
	log       *slog.Logger
}

func NewService(
	carts repository.CartRepository,
	orders repository.OrderRepository,
	products repository.ProductReader,
	sellers repository.SellerReader,
	retailers repository.RetailerRepository,
	outbox repository.OutboxRepository,
	cache ViewInvalidator,
	log *slog.Logger,
) *Service {
	return &Service{
		carts:     carts,
		orders:    orders,
		products:  products,
		sellers:   sellers,
		retailers: retailers,
		outbox:    outbox,
		cache:     cache,
		log:       log,
	}
}

// Checkout turns the cart into one pending order per seller and clears the
// cart. deliveries maps seller id to the chosen address and payment term;
// every seller present in the cart must have an entry.
func (s *Service) Checkout(ctx context.Context, retailerID string, deliveries map[string]Delivery) ([]CreatedOrder, error) {
	cart, err := s.carts.Get(ctx, retailerID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// Seller order is the first-appearance order of the line list, so runs
	// over the same cart are deterministic.
	sellerIDs := cart.SellerIDs()
	for _, sellerID := range sellerIDs {
		if _, ok := deliveries[sellerID]; !ok {
			return nil, &MissingAddressError{SellerID: sellerID}
		}
	}

	// Address resolution always reads the profile fresh; address edits made
	// since the last request must be visible here.
	retailer, err := s.retailers.FindByID(ctx, retailerID)
	if err != nil {
		return nil, err
	}

	itemsBySeller := make(map[string][]domain.CartItem, len(sellerIDs))
	for _, item := range cart.Items {
		itemsBySeller[item.SellerID] = append(itemsBySeller[item.SellerID], item)
	}

	var created []CreatedOrder
	for _, sellerID := range sellerIDs {
		order, err := s.createSellerOrder(ctx, retailer, sellerID, itemsBySeller[sellerID], deliveries[sellerID])
		if err != nil {
			// Orders already written for earlier sellers stay in place.
			return nil, err
		}
		created = append(created, CreatedOrder{
			OrderID:    order.ID,
			SellerID:   order.SellerID,
			TotalValue: order.TotalValue,
		})
	}

	if err := s.carts.Delete(ctx, retailerID); err != nil {
		return nil, err
	}
	s.invalidate(retailerID)

	return created, nil
}

func (s *Service) createSellerOrder(
	ctx context.Context,
	retailer *domain.Retailer,
	sellerID string,
	items []domain.CartItem,
	delivery Delivery,
) (*domain.Order, error) {
	seller, err := s.sellers.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	offered := domain.NormalizePaymentTerms(seller.PaymentTerms)
	term := strings.TrimSpace(delivery.PaymentTerm)
	if term == "" {
		term = domain.PaymentTermCash
	}
	if !containsTerm(offered, term) {
		return nil, &InvalidPaymentTermError{
			SellerID:   sellerID,
			SellerName: seller.DisplayName(),
			Term:       term,
		}
	}

	total := 0.0
	for _, item := range items {
		total += item.Subtotal
	}
	total = pricing.Round2(total)

	minimum := seller.MinimumOrderValue()
	if total < minimum {
		return nil, &MinimumOrderError{
			SellerID:     sellerID,
			SellerName:   seller.DisplayName(),
			CurrentTotal: total,
			MinimumOrder: minimum,
			Shortfall:    pricing.Round2(minimum - total),
		}
	}

	address := retailer.AddressByID(delivery.AddressID)
	if address == nil {
		return nil, &AddressNotFoundError{SellerID: sellerID, AddressID: delivery.AddressID}
	}

	descriptions, err := s.freshDescriptions(ctx, items)
	if err != nil {
		return nil, err
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, domain.OrderItem{
			ProductID:          item.ProductID,
			ProductDescription: descriptions[item.ProductID],
			Unit:               item.Unit,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			LineTotal:          item.Subtotal,
		})
	}

	order := &domain.Order{
		RetailerID:      retailer.ID,
		SellerID:        sellerID,
		PaymentTerm:     term,
		DeliveryAddress: *address, // snapshot by value, later edits must not leak in
		Items:           orderItems,
		TotalValue:      total,
		Status:          domain.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}

	orderID, err := s.orders.Insert(ctx, retailer.ID, order)
	if err != nil {
		return nil, err
	}
	order.ID = orderID

	s.enqueueOrderCreated(ctx, order)
	return order, nil
}

// freshDescriptions re-fetches the product descriptions in one batch. A
// product missing from the catalog yields an empty description rather than
// failing the checkout: the cached cart description may simply be stale.
func (s *Service) freshDescriptions(ctx context.Context, items []domain.CartItem) (map[string]string, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	descriptions := make(map[string]string, len(ids))
	for _, product := range products {
		descriptions[product.ID] = product.Description
	}
	return descriptions, nil
}

// enqueueOrderCreated writes the integration event to the outbox. The order
// itself is already committed; a failed enqueue is logged, not propagated.
func (s *Service) enqueueOrderCreated(ctx context.Context, order *domain.Order) {
	payload, err := json.Marshal(orderCreatedEvent{
		OrderID:     order.ID,
		RetailerID:  order.RetailerID,
		SellerID:    order.SellerID,
		PaymentTerm: order.PaymentTerm,
		TotalValue:  order.TotalValue,
		CreatedAt:   order.CreatedAt,
		Items:       order.Items,
	})
	if err != nil {
		s.log.Error("failed to marshal order event", "order_id", order.ID, "error", err)
		return
	}

	err = s.outbox.Insert(ctx, &repository.OutboxEvent{
		EventType:   orderCreatedEventType,
		AggregateID: order.ID,
		Payload:     payload,
	})
	if err != nil {
		s.log.Error("failed to enqueue order event", "order_id", order.ID, "error", err)
	}
}

func (s *Service) invalidate(retailerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, retailerID); err != nil {
		s.log.Warn("cart view cache invalidate failed", "error", err)
	}
}

func containsTerm(offered []string, term string) bool {
	for _, t := range offered {
		if t == term {
			return true
		}
	}
	return false
}
