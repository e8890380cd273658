package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisanmarket/marketplace-api/internal/domain/entity"
	repo "github.com/artisanmarket/marketplace-api/internal/domain/repository"
)

type orderFixture struct {
	users    *fakeUserRepo
	shops    *fakeShopRepo
	products *fakeProductRepo
	orders   *fakeOrderRepo
	svc      *OrderService
	prodSvc  *ProductService
	shopSvc  *ShopService
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	users := newFakeUserRepo()
	shops := newFakeShopRepo()
	products := newFakeProductRepo(shops)
	orders := newFakeOrderRepo()
	return &orderFixture{
		users:    users,
		shops:    shops,
		products: products,
		orders:   orders,
		svc:      NewOrderService(orders, products, shops, users, nil, nil),
		prodSvc:  NewProductService(products, shops, nil, "", nil, "", nil),
		shopSvc:  NewShopService(shops, nil, nil),
	}
}

func (f *orderFixture) seedProduct(t *testing.T, sellerID, name string, price int64) *entity.Product {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, &entity.User{ID: sellerID, Email: sellerID + "@example.com"}))
	_, err := f.shopSvc.CreateShop(ctx, sellerID, CreateShopInput{Name: name + " shop"})
	require.NoError(t, err)
	p, err := f.prodSvc.CreateProduct(ctx, sellerID, CreateProductInput{
		Name:  name,
		Price: decimal.NewFromInt(price),
	})
	require.NoError(t, err)
	return p
}

func (f *orderFixture) seedBuyer(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, f.users.Create(context.Background(), &entity.User{ID: id, Email: id + "@example.com"}))
}

func shippingInput(productID string, qty int) CreateOrderInput {
	return CreateOrderInput{
		ProductID:           productID,
		Quantity:            qty,
		ShippingFirstName:   "Jan",
		ShippingLastName:    "Kowalski",
		ShippingStreet:      "Piotrkowska",
		ShippingHouseNumber: "12a",
		ShippingPostalCode:  "90-001",
		ShippingCity:        "Łódź",
	}
}

func TestCreateOrderSnapshotsProduct(t *testing.T) {
	f := newOrderFixture(t)
	p := f.seedProduct(t, "seller-1", "Mug", 10)
	f.seedBuyer(t, "buyer-1")
	ctx := context.Background()

	o, err := f.svc.CreateOrder(ctx, "buyer-1", shippingInput(p.ID, 3))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSubmitted, o.StatusID)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Mug", o.Items[0].ProductName)
	assert.True(t, o.Total().Equal(decimal.NewFromInt(30)))

	// Renaming and repricing the product must not touch the order.
	_, err = f.prodSvc.UpdateProduct(ctx, "seller-1", p.ID, UpdateProductInput{
		Name:  "Fancy Mug",
		Price: decimal.NewFromInt(99),
	})
	require.NoError(t, err)

	got, err := f.svc.GetOrder(ctx, "buyer-1", o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mug", got.Items[0].ProductName)
	assert.True(t, got.Total().Equal(decimal.NewFromInt(30)))
}

func TestCreateOrderRejectsBadQuantity(t *testing.T) {
	f := newOrderFixture(t)
	p := f.seedProduct(t, "seller-1", "Mug", 10)
	f.seedBuyer(t, "buyer-1")

	_, err := f.svc.CreateOrder(context.Background(), "buyer-1", shippingInput(p.ID, 0))
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCreateOrderRejectsInactiveProduct(t *testing.T) {
	f := newOrderFixture(t)
	p := f.seedProduct(t, "seller-1", "Mug", 10)
	f.seedBuyer(t, "buyer-1")
	ctx := context.Background()

	inactive := false
	_, err := f.prodSvc.UpdateProduct(ctx, "seller-1", p.ID, UpdateProductInput{IsActive: &inactive})
	require.NoError(t, err)

	_, err = f.svc.CreateOrder(ctx, "buyer-1", shippingInput(p.ID, 1))
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestCreateOrderRejectsDeletedShop(t *testing.T) {
	f := newOrderFixture(t)
	p := f.seedProduct(t, "seller-1", "Mug", 10)
	f.seedBuyer(t, "buyer-1")
	ctx := context.Background()

	require.NoError(t, f.shopSvc.DeleteShop(ctx, "seller-1"))

	_, err := f.svc.CreateOrder(ctx, "buyer-1", shippingInput(p.ID, 1))
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestGetOrderVisibility(t *testing.T) {
	f := newOrderFixture(t)
	p := f.seedProduct(t, "seller-1", "Mug", 10)
	f.seedBuyer(t, "buyer-1")
	f.seedBuyer(t, "stranger")
	ctx := context.Background()

	o, err := f.svc.CreateOrder(ctx, "buyer-1", shippingInput(p.ID, 1))
	require.NoError(t, err)

	_, err = f.svc.GetOrder(ctx, "buyer-1", o.ID)
	assert.NoError(t, err)

	_, err = f.svc.GetOrder(ctx, "seller-1", o.ID)
	assert.NoError(t, err)

	_, err = f.svc.GetOrder(ctx, "stranger", o.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestOrderStatusTransitions(t *testing.T) {
	f := newOrderFixture(t)
	p := f.seedProduct(t, "seller-1", "Mug", 10)
	f.seedBuyer(t, "buyer-1")
	ctx := context.Background()

	o, err := f.svc.CreateOrder(ctx, "buyer-1", shippingInput(p.ID, 1))
	require.NoError(t, err)

	// Shipping before confirming is not allowed.
	_, err = f.svc.ShipOrder(ctx, "seller-1", o.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	got, err := f.svc.ConfirmOrder(ctx, "seller-1", o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusConfirmed, got.StatusID)

	// Confirming twice is not allowed.
	_, err = f.svc.ConfirmOrder(ctx, "seller-1", o.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	got, err = f.svc.ShipOrder(ctx, "seller-1", o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusShipped, got.StatusID)

	// Shipped is terminal.
	_, err = f.svc.ConfirmOrder(ctx, "seller-1", o.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestOrderTransitionsSellerOnly(t *testing.T) {
	f := newOrderFixture(t)
	p := f.seedProduct(t, "seller-1", "Mug", 10)
	f.seedBuyer(t, "buyer-1")
	ctx := context.Background()

	o, err := f.svc.CreateOrder(ctx, "buyer-1", shippingInput(p.ID, 1))
	require.NoError(t, err)

	// The buyer cannot confirm their own order.
	_, err = f.svc.ConfirmOrder(ctx, "buyer-1", o.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestSellerKeepsAccessAfterProductDeleted(t *testing.T) {
	f := newOrderFixture(t)
	p := f.seedProduct(t, "seller-1", "Mug", 10)
	f.seedBuyer(t, "buyer-1")
	ctx := context.Background()

	o, err := f.svc.CreateOrder(ctx, "buyer-1", shippingInput(p.ID, 1))
	require.NoError(t, err)

	require.NoError(t, f.prodSvc.DeleteProduct(ctx, "seller-1", p.ID))

	_, err = f.svc.ConfirmOrder(ctx, "seller-1", o.ID)
	assert.NoError(t, err)
}

func TestListUserOrders(t *testing.T) {
	f := newOrderFixture(t)
	p := f.seedProduct(t, "seller-1", "Mug", 10)
	f.seedBuyer(t, "buyer-1")
	f.seedBuyer(t, "buyer-2")
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, "buyer-1", shippingInput(p.ID, 1))
	require.NoError(t, err)
	_, err = f.svc.CreateOrder(ctx, "buyer-1", shippingInput(p.ID, 2))
	require.NoError(t, err)
	_, err = f.svc.CreateOrder(ctx, "buyer-2", shippingInput(p.ID, 1))
	require.NoError(t, err)

	got, err := f.svc.ListUserOrders(ctx, "buyer-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
