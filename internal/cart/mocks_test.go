package cart

import (
	"context"
	"sync"

	"github.com/giovanniklein/inn-b2b-varejista/internal/domain"
	"github.com/giovanniklein/inn-b2b-varejista/internal/repository"
)

type mockCartRepo struct {
	m     sync.RWMutex
	carts map[string]*domain.Cart
	err   error
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[string]*domain.Cart)}
}

func (m *mockCartRepo) Get(_ context.Context, retailerID string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	cart, ok := m.carts[retailerID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (m *mockCartRepo) Upsert(_ context.Context, retailerID string, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	copied := *cart
	copied.RetailerID = retailerID
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	m.carts[retailerID] = &copied
	return nil
}

func (m *mockCartRepo) Delete(_ context.Context, retailerID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.carts, retailerID)
	return nil
}

type mockOrderRepo struct {
	m      sync.RWMutex
	orders map[string]*domain.Order
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*domain.Order)}
}

func (m *mockOrderRepo) Insert(_ context.Context, retailerID string, order *domain.Order) (string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if order.ID == "" {
		order.ID = "order-" + order.SellerID
	}
	order.RetailerID = retailerID
	m.orders[order.ID] = order
	return order.ID, nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, retailerID, orderID string) (*domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	order, ok := m.orders[orderID]
	if !ok || order.RetailerID != retailerID {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (m *mockOrderRepo) FindPage(_ context.Context, retailerID string, _, _ int) ([]*domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	var out []*domain.Order
	for _, order := range m.orders {
		if order.RetailerID == retailerID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) Count(_ context.Context, retailerID string) (int64, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	var n int64
	for _, order := range m.orders {
		if order.RetailerID == retailerID {
			n++
		}
	}
	return n, nil
}

type mockProductReader struct {
	m        sync.RWMutex
	products map[string]*domain.Product
}

func newMockProductReader(products ...*domain.Product) *mockProductReader {
	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &mockProductReader{products: byID}
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

func newMockSellerReader(sellers ...*domain.Seller) *mockSellerReader {
	byID := make(map[string]*domain.Seller, len(sellers))
	for _, s := range sellers {
		byID[s.ID] = s
	}
	return &mockSellerReader{sellers: byID}
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
	m.m.RLock()
	defer m.m.RUnlock()
	var out []string
	for id, s := range m.sellers {
		if s.Active {
			out = append(out, id)
		}
	}
	return out, nil
}

type mockViewCache struct {
	m       sync.RWMutex
	views   map[string]*View
	sets    int
	deletes int
}

func newMockViewCache() *mockViewCache {
	return &mockViewCache{views: make(map[string]*View)}
}

func (m *mockViewCache) Get(_ context.Context, retailerID string) (*View, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	view, ok := m.views[retailerID]
	if !ok {
		return nil, ErrCacheMiss
	}
	return view, nil
}

func (m *mockViewCache) Set(_ context.Context, retailerID string, view *View) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.views[retailerID] = view
	m.sets++
	return nil
}

func (m *mockViewCache) Delete(_ context.Context, retailerID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.views, retailerID)
	m.deletes++
	return nil
}

func (m *mockViewCache) setCount() int {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.sets
}
