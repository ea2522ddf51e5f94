package cart

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/giovanniklein/inn-b2b-varejista/internal/domain"
	"github.com/giovanniklein/inn-b2b-varejista/internal/pricing"
	"github.com/giovanniklein/inn-b2b-varejista/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSeller() *domain.Seller {
	return &domain.Seller{
		ID:           "seller-1",
		TradeName:    "Atacado Central",
		Active:       true,
		PaymentTerms: []string{"30 DIAS"},
	}
}

func testProduct() *domain.Product {
	return &domain.Product{
		ID:          "prod-1",
		Code:        "SKU-1",
		Description: "Arroz 5kg",
		SellerID:    "seller-1",
		Stock:       100,
		Prices: []domain.ProductPrice{
			{Unit: domain.UnitSingle, Price: 25.50, UnitsPerPack: 1},
			{Unit: domain.UnitCase, Price: 240.00, UnitsPerPack: 10},
		},
	}
}

type testEnv struct {
	svc      *Service
	carts    *mockCartRepo
	orders   *mockOrderRepo
	products *mockProductReader
	sellers  *mockSellerReader
	cache    *mockViewCache
}

func newTestEnv(products []*domain.Product, sellers []*domain.Seller) *testEnv {
	env := &testEnv{
		carts:    newMockCartRepo(),
		orders:   newMockOrderRepo(),
		products: newMockProductReader(products...),
		sellers:  newMockSellerReader(sellers...),
		cache:    newMockViewCache(),
	}
	env.svc = NewService(env.carts, env.orders, env.products, env.sellers, env.cache, discardLogger())
	return env
}

func TestUpsertItem_AddsLineAndComputesTotals(t *testing.T) {
	env := newTestEnv([]*domain.Product{testProduct()}, []*domain.Seller{testSeller()})
	ctx := context.Background()

	view, err := env.svc.UpsertItem(ctx, "ret-1", UpsertItemRequest{
		ProductID: "prod-1",
		SellerID:  "seller-1",
		Quantity:  3,
		Unit:      domain.UnitSingle,
	})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)

	item := view.Items[0]
	assert.Equal(t, 25.50, item.UnitPrice)
	assert.Equal(t, 76.50, item.Subtotal)
	assert.Equal(t, 76.50, view.TotalValue)
	assert.Equal(t, "Atacado Central", item.SellerName)
	assert.Equal(t, []string{domain.PaymentTermCash, "30 DIAS"}, view.PaymentTermsBySeller["seller-1"])
}

func TestUpsertItem_ReplacesExistingLine(t *testing.T) {
	env := newTestEnv([]*domain.Product{testProduct()}, []*domain.Seller{testSeller()})
	ctx := context.Background()

	_, err := env.svc.UpsertItem(ctx, "ret-1", UpsertItemRequest{
		ProductID: "prod-1", SellerID: "seller-1", Quantity: 3, Unit: domain.UnitSingle,
	})
	require.NoError(t, err)

	view, err := env.svc.UpsertItem(ctx, "ret-1", UpsertItemRequest{
		ProductID: "prod-1", SellerID: "seller-1", Quantity: 2, Unit: domain.UnitCase,
	})
	require.NoError(t, err)

	// Same (product, seller) key: the line is replaced, never duplicated.
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, domain.UnitCase, view.Items[0].Unit)
	assert.Equal(t, 480.00, view.TotalValue)
}

func TestUpsertItem_InvalidQuantity(t *testing.T) {
	env := newTestEnv([]*domain.Product{testProduct()}, []*domain.Seller{testSeller()})

	_, err := env.svc.UpsertItem(context.Background(), "ret-1", UpsertItemRequest{
		ProductID: "prod-1", SellerID: "seller-1", Quantity: 0, Unit: domain.UnitSingle,
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestUpsertItem_SellerMismatch(t *testing.T) {
	env := newTestEnv([]*domain.Product{testProduct()}, []*domain.Seller{testSeller()})

	_, err := env.svc.UpsertItem(context.Background(), "ret-1", UpsertItemRequest{
		ProductID: "prod-1", SellerID: "other-seller", Quantity: 1, Unit: domain.UnitSingle,
	})
	assert.ErrorIs(t, err, ErrProductSellerMismatch)
}

func TestUpsertItem_UnitNotAvailable(t *testing.T) {
	env := newTestEnv([]*domain.Product{testProduct()}, []*domain.Seller{testSeller()})

	_, err := env.svc.UpsertItem(context.Background(), "ret-1", UpsertItemRequest{
		ProductID: "prod-1", SellerID: "seller-1", Quantity: 1, Unit: domain.UnitPallet,
	})
	assert.ErrorIs(t, err, pricing.ErrUnitNotAvailable)
}

func TestUpdateItem_QuantityZeroRemovesLineAndCartRecord(t *testing.T) {
	env := newTestEnv([]*domain.Product{testProduct()}, []*domain.Seller{testSeller()})
	ctx := context.Background()

	_, err := env.svc.UpsertItem(ctx, "ret-1", UpsertItemRequest{
		ProductID: "prod-1", SellerID: "seller-1", Quantity: 3, Unit: domain.UnitSingle,
	})
	require.NoError(t, err)

	view, err := env.svc.UpdateItem(ctx, "ret-1", "prod-1", UpdateItemRequest{Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0.0, view.TotalValue)

	_, err = env.carts.Get(ctx, "ret-1")
	assert.ErrorIs(t, err, repository.ErrCartNotFound)
}

func TestUpdateItem_EmptyUnitKeepsCurrent(t *testing.T) {
	env := newTestEnv([]*domain.Product{testProduct()}, []*domain.Seller{testSeller()})
	ctx := context.Background()

	_, err := env.svc.UpsertItem(ctx, "ret-1", UpsertItemRequest{
		ProductID: "prod-1", SellerID: "seller-1", Quantity: 3, Unit: domain.UnitCase,
	})
	require.NoError(t, err)

	view, err := env.svc.UpdateItem(ctx, "ret-1", "prod-1", UpdateItemRequest{Quantity: 5})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, domain.UnitCase, view.Items[0].Unit)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.Equal(t, 1200.00, view.TotalValue)
}

func TestUpdateItem_NotFound(t *testing.T) {
	env := newTestEnv([]*domain.Product{testProduct()}, []*domain.Seller{testSeller()})
	ctx := context.Background()

	_, err := env.svc.UpsertItem(ctx, "ret-1", UpsertItemRequest{
		ProductID: "prod-1", SellerID: "seller-1", Quantity: 1, Unit: domain.UnitSingle,
	})
	require.NoError(t, err)

	_, err = env.svc.UpdateItem(ctx, "ret-1", "missing", UpdateItemRequest{Quantity: 2})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem_NotFound(t *testing.T) {
	env := newTestEnv([]*domain.Product{testProduct()}, []*domain.Seller{testSeller()})
	ctx := context.Background()

	_, err := env.svc.UpsertItem(ctx, "ret-1", UpsertItemRequest{
		ProductID: "prod-1", SellerID: "seller-1", Quantity: 1, Unit: domain.UnitSingle,
	})
	require.NoError(t, err)

	_, err = env.svc.RemoveItem(ctx, "ret-1", "missing")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestClear_Idempotent(t *testing.T) {
	env := newTestEnv(nil, nil)
	ctx := context.Background()

	require.NoError(t, env.svc.Clear(ctx, "ret-1"))
	require.NoError(t, env.svc.Clear(ctx, "ret-1"))
}

func TestGetCart_EmptyCartIsNotAnError(t *testing.T) {
	env := newTestEnv(nil, nil)

	view, err := env.svc.GetCart(context.Background(), "ret-1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0.0, view.TotalValue)
	assert.Nil(t, view.UpdatedAt)
}

func TestGetCart_PopulatesCacheAfterMiss(t *testing.T) {
	env := newTestEnv([]*domain.Product{testProduct()}, []*domain.Seller{testSeller()})
	ctx := context.Background()

	_, err := env.svc.UpsertItem(ctx, "ret-1", UpsertItemRequest{
		ProductID: "prod-1", SellerID: "seller-1", Quantity: 2, Unit: domain.UnitSingle,
	})
	require.NoError(t, err)

	_, err = env.svc.GetCart(ctx, "ret-1")
	require.NoError(t, err)

	// The cache write happens off the request path.
	require.Eventually(t, func() bool {
		return env.cache.setCount() > 0
	}, time.Second, 10*time.Millisecond)
}

func TestGetCart_ServesCachedView(t *testing.T) {
	env := newTestEnv(nil, nil)
	ctx := context.Background()

	cached := &View{Items: []ItemView{{ProductID: "cached"}}, TotalValue: 42}
	require.NoError(t, env.cache.Set(ctx, "ret-1", cached))

	view, err := env.svc.GetCart(ctx, "ret-1")
	require.NoError(t, err)
	assert.Equal(t, 42.0, view.TotalValue)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "cached", view.Items[0].ProductID)
}

func TestDuplicateOrder_RepricesAtCurrentPrices(t *testing.T) {
	product := testProduct()
	env := newTestEnv([]*domain.Product{product}, []*domain.Seller{testSeller()})
	ctx := context.Background()

	order := &domain.Order{
		ID:       "order-1",
		SellerID: "seller-1",
		Items: []domain.OrderItem{
			{ProductID: "prod-1", Unit: domain.UnitSingle, Quantity: 2, UnitPrice: 10.00},
		},
	}
	_, err := env.orders.Insert(ctx, "ret-1", order)
	require.NoError(t, err)

	view, err := env.svc.DuplicateOrder(ctx, "ret-1", "order-1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)

	// Historical price 10.00 is ignored; today's catalog price applies.
	assert.Equal(t, 25.50, view.Items[0].UnitPrice)
	assert.Equal(t, 51.00, view.TotalValue)
}

func TestDuplicateOrder_MergesIntoExistingLine(t *testing.T) {
	env := newTestEnv([]*domain.Product{testProduct()}, []*domain.Seller{testSeller()})
	ctx := context.Background()

	_, err := env.svc.UpsertItem(ctx, "ret-1", UpsertItemRequest{
		ProductID: "prod-1", SellerID: "seller-1", Quantity: 3, Unit: domain.UnitSingle,
	})
	require.NoError(t, err)

	order := &domain.Order{
		ID:       "order-1",
		SellerID: "seller-1",
		Items: []domain.OrderItem{
			{ProductID: "prod-1", Unit: domain.UnitSingle, Quantity: 2, UnitPrice: 20.00},
		},
	}
	_, err = env.orders.Insert(ctx, "ret-1", order)
	require.NoError(t, err)

	view, err := env.svc.DuplicateOrder(ctx, "ret-1", "order-1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
}

func TestDuplicateOrder_SkipsUnsellableLines(t *testing.T) {
	env := newTestEnv([]*domain.Product{testProduct()}, []*domain.Seller{testSeller()})
	ctx := context.Background()

	order := &domain.Order{
		ID:       "order-1",
		SellerID: "seller-1",
		Items: []domain.OrderItem{
			{ProductID: "gone", Unit: domain.UnitSingle, Quantity: 1},
			{ProductID: "prod-1", Unit: domain.UnitPallet, Quantity: 1},
			{ProductID: "prod-1", Unit: domain.UnitSingle, Quantity: 4},
		},
	}
	_, err := env.orders.Insert(ctx, "ret-1", order)
	require.NoError(t, err)

	view, err := env.svc.DuplicateOrder(ctx, "ret-1", "order-1")
	require.NoError(t, err)

	// Removed product and unavailable unit are skipped; the sellable line
	// still lands in the cart.
	require.Len(t, view.Items, 1)
	assert.Equal(t, "prod-1", view.Items[0].ProductID)
	assert.Equal(t, 4, view.Items[0].Quantity)
}

func TestDuplicateOrder_OrderNotFound(t *testing.T) {
	env := newTestEnv(nil, nil)

	_, err := env.svc.DuplicateOrder(context.Background(), "ret-1", "missing")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}
