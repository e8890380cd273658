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

type productFixture struct {
	shops    *fakeShopRepo
	products *fakeProductRepo
	svc      *ProductService
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	shops := newFakeShopRepo()
	products := newFakeProductRepo(shops)
	return &productFixture{
		shops:    shops,
		products: products,
		svc:      NewProductService(products, shops, nil, "", nil, "", nil),
	}
}

func (f *productFixture) withShop(t *testing.T, ownerID, name string) *entity.Shop {
	t.Helper()
	shopSvc := NewShopService(f.shops, nil, nil)
	shop, err := shopSvc.CreateShop(context.Background(), ownerID, CreateShopInput{Name: name})
	require.NoError(t, err)
	return shop
}

func TestCreateProduct(t *testing.T) {
	f := newProductFixture(t)
	shop := f.withShop(t, "owner-1", "Pottery")
	ctx := context.Background()

	p, err := f.svc.CreateProduct(ctx, "owner-1", CreateProductInput{
		Name:  "Mug",
		Price: decimal.RequireFromString("19.90"),
	})
	require.NoError(t, err)
	assert.Equal(t, shop.ID, p.ShopID)
	assert.True(t, p.IsActive)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("19.90")))
}

func TestCreateProductWithoutShop(t *testing.T) {
	f := newProductFixture(t)
	_, err := f.svc.CreateProduct(context.Background(), "owner-1", CreateProductInput{
		Name:  "Mug",
		Price: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, ErrOwnerHasNoShop)
}

func TestCreateProductNonPositivePrice(t *testing.T) {
	f := newProductFixture(t)
	f.withShop(t, "owner-1", "Pottery")
	ctx := context.Background()

	_, err := f.svc.CreateProduct(ctx, "owner-1", CreateProductInput{Name: "Mug"})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = f.svc.CreateProduct(ctx, "owner-1", CreateProductInput{
		Name:  "Mug",
		Price: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestUpdateProductOtherOwnersProductHidden(t *testing.T) {
	f := newProductFixture(t)
	f.withShop(t, "owner-1", "Pottery")
	f.withShop(t, "owner-2", "Weaving")
	ctx := context.Background()

	p, err := f.svc.CreateProduct(ctx, "owner-1", CreateProductInput{
		Name:  "Mug",
		Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateProduct(ctx, "owner-2", p.ID, UpdateProductInput{Name: "Stolen"})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestUpdateProductPartial(t *testing.T) {
	f := newProductFixture(t)
	f.withShop(t, "owner-1", "Pottery")
	ctx := context.Background()

	p, err := f.svc.CreateProduct(ctx, "owner-1", CreateProductInput{
		Name:        "Mug",
		Description: "Hand made",
		Price:       decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	inactive := false
	got, err := f.svc.UpdateProduct(ctx, "owner-1", p.ID, UpdateProductInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Mug", got.Name)
	assert.Equal(t, "Hand made", got.Description)
	assert.False(t, got.IsActive)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(10)))
}

func TestDeleteProductKeepsOrderSnapshots(t *testing.T) {
	f := newProductFixture(t)
	f.withShop(t, "owner-1", "Pottery")
	ctx := context.Background()

	p, err := f.svc.CreateProduct(ctx, "owner-1", CreateProductInput{
		Name:  "Mug",
		Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteProduct(ctx, "owner-1", p.ID))

	_, err = f.products.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	// Seller attribution must survive the soft delete.
	shopID, err := f.products.ShopIDOf(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ShopID, shopID)
}

func TestListOwnerProductsIncludesInactive(t *testing.T) {
	f := newProductFixture(t)
	f.withShop(t, "owner-1", "Pottery")
	ctx := context.Background()

	a, err := f.svc.CreateProduct(ctx, "owner-1", CreateProductInput{Name: "Bowl", Price: decimal.NewFromInt(5)})
	require.NoError(t, err)
	_, err = f.svc.CreateProduct(ctx, "owner-1", CreateProductInput{Name: "Mug", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)

	inactive := false
	_, err = f.svc.UpdateProduct(ctx, "owner-1", a.ID, UpdateProductInput{IsActive: &inactive})
	require.NoError(t, err)

	got, err := f.svc.ListOwnerProducts(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bowl", got[0].Name)
	assert.Equal(t, "Mug", got[1].Name)
}
