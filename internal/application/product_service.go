package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/artisanmarket/marketplace-api/internal/domain/entity"
	repo "github.com/artisanmarket/marketplace-api/internal/domain/repository"
	"github.com/artisanmarket/marketplace-api/pkg/helpers"
)

var ErrInvalidPrice = errors.New("price must be positive")

type ProductService struct {
	Products        repo.ProductRepository
	Shops           repo.ShopRepository
	GCS             *storage.Client
	GCSBucket       string
	ES              *elasticsearch.Client
	ESProductsIndex string
	Logger          *logrus.Logger
}

func NewProductService(products repo.ProductRepository, shops repo.ShopRepository, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *ProductService {
	return &ProductService{
		Products:        products,
		Shops:           shops,
		GCS:             gcs,
		GCSBucket:       gcsBucket,
		ES:              es,
		ESProductsIndex: esIndex,
		Logger:          logger,
	}
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

// CreateProduct lists a new product under the caller's shop. Fails with
// ErrOwnerHasNoShop when the caller has no non-deleted shop.
func (s *ProductService) CreateProduct(ctx context.Context, ownerID string, in CreateProductInput) (*entity.Product, error) {
	shop, err := s.ownerShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if in.Price.Sign() <= 0 {
		return nil, ErrInvalidPrice
	}

	p := &entity.Product{
		ID:          newID(),
		ShopID:      shop.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		IsActive:    true,
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.indexProduct(ctx, p, shop.Slug)
	return p, nil
}

// ListOwnerProducts returns the caller's products, name ascending, including
// inactive ones.
func (s *ProductService) ListOwnerProducts(ctx context.Context, ownerID string) ([]entity.Product, error) {
	shop, err := s.ownerShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.Products.ListByShop(ctx, shop.ID)
}

type UpdateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal // zero means unchanged
	IsActive    *bool
}

// UpdateProduct applies a partial update to one of the caller's products.
// Products outside the caller's shop are reported as absent.
func (s *ProductService) UpdateProduct(ctx context.Context, ownerID, productID string, in UpdateProductInput) (*entity.Product, error) {
	p, shop, err := s.ownedProduct(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if !in.Price.IsZero() {
		if in.Price.Sign() <= 0 {
			return nil, ErrInvalidPrice
		}
		p.Price = in.Price
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.indexProduct(ctx, p, shop.Slug)
	return p, nil
}

// DeleteProduct soft-deletes one of the caller's products and removes it
// from the search index. Existing order items keep their snapshots.
func (s *ProductService) DeleteProduct(ctx context.Context, ownerID, productID string) error {
	p, _, err := s.ownedProduct(ctx, ownerID, productID)
	if err != nil {
		return err
	}
	if err := s.Products.SoftDelete(ctx, p.ID); err != nil {
		return err
	}
	s.removeFromIndex(ctx, p.ID)
	return nil
}

// UploadImage stores a product image in GCS and records its public URL.
func (s *ProductService) UploadImage(ctx context.Context, ownerID, productID string, r io.Reader, filename, contentType string) (string, error) {
	p, shop, err := s.ownedProduct(ctx, ownerID, productID)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("products", shop.ID, newID()+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	p.ImageURL = url
	if err := s.Products.Update(ctx, p); err != nil {
		return "", err
	}
	s.indexProduct(ctx, p, shop.Slug)
	return url, nil
}

func (s *ProductService) ownerShop(ctx context.Context, ownerID string) (*entity.Shop, error) {
	shop, err := s.Shops.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOwnerHasNoShop
		}
		return nil, err
	}
	return shop, nil
}

func (s *ProductService) ownedProduct(ctx context.Context, ownerID, productID string) (*entity.Product, *entity.Shop, error) {
	shop, err := s.ownerShop(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if p.ShopID != shop.ID {
		return nil, nil, repo.ErrNotFound
	}
	return p, shop, nil
}

func (s *ProductService) indexProduct(ctx context.Context, p *entity.Product, shopSlug string) {
	if s.ES == nil || s.ESProductsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          p.ID,
		"shop_id":     p.ShopID,
		"shop_slug":   shopSlug,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"is_active":   p.IsActive,
		"created_at":  p.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESProductsIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
}

func (s *ProductService) removeFromIndex(ctx context.Context, productID string) {
	if s.ES == nil || s.ESProductsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESProductsIndex, DocumentID: productID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", productID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
