package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "github.com/artisanmarket/marketplace-api/internal/domain/repository"
)

type catalogFixture struct {
	shops    *fakeShopRepo
	products *fakeProductRepo
	svc      *CatalogService
	shopSvc  *ShopService
	prodSvc  *ProductService
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	shops := newFakeShopRepo()
	products := newFakeProductRepo(shops)
	return &catalogFixture{
		shops:    shops,
		products: products,
		svc:      NewCatalogService(shops, products, nil, nil, "", nil),
		shopSvc:  NewShopService(shops, nil, nil),
		prodSvc:  NewProductService(products, shops, nil, "", nil, "", nil),
	}
}

func TestListShopsSortedAndFiltered(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	_, err := f.shopSvc.CreateShop(ctx, "owner-1", CreateShopInput{Name: "Zebra Crafts"})
	require.NoError(t, err)
	_, err = f.shopSvc.CreateShop(ctx, "owner-2", CreateShopInput{Name: "Alpaca Wool"})
	require.NoError(t, err)
	_, err = f.shopSvc.CreateShop(ctx, "owner-3", CreateShopInput{Name: "Gone Shop"})
	require.NoError(t, err)
	require.NoError(t, f.shopSvc.DeleteShop(ctx, "owner-3"))

	got, err := f.svc.ListShops(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alpaca Wool", got[0].Name)
	assert.Equal(t, "Zebra Crafts", got[1].Name)
}

func TestGetShopBySlug(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	created, err := f.shopSvc.CreateShop(ctx, "owner-1", CreateShopInput{Name: "Sklep Łódź"})
	require.NoError(t, err)

	got, err := f.svc.GetShopBySlug(ctx, "sklep-lodz")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Matching is exact and case-sensitive.
	_, err = f.svc.GetShopBySlug(ctx, "Sklep-Lodz")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestListShopProducts(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	_, err := f.shopSvc.CreateShop(ctx, "owner-1", CreateShopInput{Name: "Pottery"})
	require.NoError(t, err)

	active, err := f.prodSvc.CreateProduct(ctx, "owner-1", CreateProductInput{
		Name:  "Mug",
		Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	hidden, err := f.prodSvc.CreateProduct(ctx, "owner-1", CreateProductInput{
		Name:  "Bowl",
		Price: decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	inactive := false
	_, err = f.prodSvc.UpdateProduct(ctx, "owner-1", hidden.ID, UpdateProductInput{IsActive: &inactive})
	require.NoError(t, err)

	got, err := f.svc.ListShopProducts(ctx, "pottery")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, active.ID, got[0].ID)
}

func TestListShopProductsUnknownSlugEmpty(t *testing.T) {
	f := newCatalogFixture(t)
	got, err := f.svc.ListShopProducts(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchProductsWithoutIndexConfigured(t *testing.T) {
	f := newCatalogFixture(t)
	got, err := f.svc.SearchProducts(context.Background(), "mug", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
