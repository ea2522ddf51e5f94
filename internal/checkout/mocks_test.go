package checkout

import (
	"context"
	"sync"

	"github.com/giovanniklein/inn-b2b-varejista/internal/domain"
	"github.com/giovanniklein/inn-b2b-varejista/internal/repository"
)

type mockCartRepo struct {
	m    sync.RWMutex
	cart *domain.Cart
}

func (m *mockCartRepo) Get(_ context.Context, retailerID string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.cart == nil || m.cart.RetailerID != retailerID {
		return nil, repository.ErrCartNotFound
	}
	copied := *m.cart
	copied.Items = append([]domain.CartItem(nil), m.cart.Items...)
	return &copied, nil
}

func (m *mockCartRepo) Upsert(_ context.Context, retailerID string, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	cart.RetailerID = retailerID
	m.cart = cart
	return nil
}

func (m *mockCartRepo) Delete(_ context.Context, retailerID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.cart != nil && m.cart.RetailerID == retailerID {
		m.cart = nil
	}
	return nil
}

func (m *mockCartRepo) deleted() bool {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.cart == nil
}

// mockOrderRepo can be told to fail on the nth insert to exercise partial
// checkout runs.
type mockOrderRepo struct {
	m          sync.RWMutex
	orders     []*domain.Order
	failOnCall int
	failErr    error
	calls      int
}

func (m *mockOrderRepo) Insert(_ context.Context, retailerID string, order *domain.Order) (string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.failErr != nil && m.calls == m.failOnCall {
		return "", m.failErr
	}
	order.RetailerID = retailerID
	id := repository.NewID()
	order.ID = id
	m.orders = append(m.orders, order)
	return id, nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, retailerID, orderID string) (*domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	for _, o := range m.orders {
		if o.ID == orderID && o.RetailerID == retailerID {
			return o, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockOrderRepo) FindPage(_ context.Context, retailerID string, _, _ int) ([]*domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	var out []*domain.Order
	for _, o := range m.orders {
		if o.RetailerID == retailerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) Count(_ context.Context, retailerID string) (int64, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	var n int64
	for _, o := range m.orders {
		if o.RetailerID == retailerID {
			n++
		}
	}
	return n, nil
}

func (m *mockOrderRepo) stored() []*domain.Order {
	m.m.RLock()
	defer m.m.RUnlock()
	return append([]*domain.Order(nil), m.orders...)
}

type mockProductReader struct {
	m        sync.RWMutex
	products map[string]*domain.Product
}

func (m *mockProductReader) FindByID(_ context.Context, productID string) (*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	p, ok := m.products[productID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (m *mockProductReader) FindByIDs(_ context.Context, productIDs []string) ([]*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	out := make([]*domain.Product, 0, len(productIDs))
	for _, id := range productIDs {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductReader) Search(_ context.Context, _ repository.ProductFilter) ([]*domain.Product, int64, error) {
	return nil, 0, nil
}

type mockSellerReader struct {
	m       sync.RWMutex
	sellers map[string]*domain.Seller
}

func (m *mockSellerReader) FindByID(_ context.Context, sellerID string) (*domain.Seller, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	s, ok := m.sellers[sellerID]
	if !ok {
		return nil, repository.ErrSellerNotFound
	}
	return s, nil
}

func (m *mockSellerReader) FindByIDs(_ context.Context, sellerIDs []string) ([]*domain.Seller, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	out := make([]*domain.Seller, 0, len(sellerIDs))
	for _, id := range sellerIDs {
		if s, ok := m.sellers[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSellerReader) ActiveIDs(_ context.Context) ([]string, error) {
	return nil, nil
}

type mockRetailerRepo struct {
	m        sync.RWMutex
	retailer *domain.Retailer
}

func (m *mockRetailerRepo) FindByID(_ context.Context, retailerID string) (*domain.Retailer, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.retailer == nil || m.retailer.ID != retailerID {
		return nil, repository.ErrRetailerNotFound
	}
	return m.retailer, nil
}

func (m *mockRetailerRepo) UpdateAddresses(_ context.Context, retailerID string, addresses []domain.Address) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.retailer == nil || m.retailer.ID != retailerID {
		return repository.ErrRetailerNotFound
	}
	m.retailer.Addresses = addresses
	return nil
}

type mockOutboxRepo struct {
	m      sync.RWMutex
	events []*repository.OutboxEvent
}

func (m *mockOutboxRepo) Insert(_ context.Context, event *repository.OutboxEvent) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockOutboxRepo) Unprocessed(_ context.Context, _ int) ([]*repository.OutboxEvent, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	return append([]*repository.OutboxEvent(nil), m.events...), nil
}

func (m *mockOutboxRepo) MarkProcessed(_ context.Context, _ string) error {
	return nil
}

func (m *mockOutboxRepo) count() int {
	m.m.RLock()
	defer m.m.RUnlock()
	return len(m.events)
}

type mockInvalidator struct {
	m       sync.Mutex
	deletes int
}

func (m *mockInvalidator) Delete(_ context.Context, _ string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.deletes++
	return nil
}
