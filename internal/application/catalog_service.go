package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/artisanmarket/marketplace-api/internal/domain/entity"
	repo "github.com/artisanmarket/marketplace-api/internal/domain/repository"
	"github.com/artisanmarket/marketplace-api/pkg/helpers"
)

const (
	shopsCacheKey = "catalog:shops"
	shopsCacheTTL = time.Minute
)

// CatalogService serves the public, read-only projections: shop listings,
// shop details by slug, and product listings. Soft-deleted rows are never
// visible here.
type CatalogService struct {
	Shops           repo.ShopRepository
	Products        repo.ProductRepository
	Redis           *redis.Client
	ES              *elasticsearch.Client
	ESProductsIndex string
	Logger          *logrus.Logger
}

func NewCatalogService(shops repo.ShopRepository, products repo.ProductRepository, rdb *redis.Client, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		Shops:           shops,
		Products:        products,
		Redis:           rdb,
		ES:              es,
		ESProductsIndex: esIndex,
		Logger:          logger,
	}
}

// ListShops returns all non-deleted shops ordered by name ascending, cached
// in Redis for a short window. Cache failures degrade to the store.
func (s *CatalogService) ListShops(ctx context.Context) ([]entity.Shop, error) {
	if s.Redis != nil {
		var cached []entity.Shop
		hit, err := helpers.RedisGetJSON(ctx, s.Redis, shopsCacheKey, &cached)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("shop cache read failed")
		}
		if hit {
			return cached, nil
		}
	}

	shops, err := s.Shops.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, shopsCacheKey, shops, shopsCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("shop cache write failed")
		}
	}
	return shops, nil
}

// GetShopBySlug returns the non-deleted shop with exactly this slug,
// repo.ErrNotFound when absent. Matching is case-sensitive.
func (s *CatalogService) GetShopBySlug(ctx context.Context, slug string) (*entity.Shop, error) {
	return s.Shops.GetBySlug(ctx, slug)
}

// ListShopProducts returns the active, non-deleted products of the
// non-deleted shop matching slug. An unknown slug or a shop without active
// products both yield an empty slice, never an error.
func (s *CatalogService) ListShopProducts(ctx context.Context, slug string) ([]entity.Product, error) {
	return s.Products.ListActiveByShopSlug(ctx, slug)
}

// ProductHit is a search projection from the product index.
type ProductHit struct {
	ID          string          `json:"id"`
	ShopID      string          `json:"shop_id"`
	ShopSlug    string          `json:"shop_slug"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// SearchProducts performs a multi_match query over product names and
// descriptions, restricted to active documents. Returns empty results when
// search is not configured.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, size int) ([]ProductHit, error) {
	if s.ES == nil || s.ESProductsIndex == "" {
		return []ProductHit{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"name^2", "description"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"is_active": true},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESProductsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source ProductHit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]ProductHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
