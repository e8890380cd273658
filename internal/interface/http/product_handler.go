package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	app "github.com/artisanmarket/marketplace-api/internal/application"
	"github.com/artisanmarket/marketplace-api/internal/domain/entity"
	repo "github.com/artisanmarket/marketplace-api/internal/domain/repository"
	"github.com/artisanmarket/marketplace-api/pkg/response"
	"github.com/artisanmarket/marketplace-api/pkg/validation"
)

const maxImageSize = 5 << 20 // 5 MiB

type ProductHandler struct {
	Svc    *app.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *app.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type createProductRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=5000"`
	Price       string `json:"price" binding:"required"`
}

type updateProductRequest struct {
	Name        string `json:"name" binding:"omitempty,max=200"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	Price       string `json:"price"`
	IsActive    *bool  `json:"is_active"`
}

func productView(p *entity.Product) gin.H {
	return gin.H{
		"id":          p.ID,
		"shop_id":     p.ShopID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.StringFixed(2),
		"is_active":   p.IsActive,
		"image_url":   p.ImageURL,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
}

func productViews(products []entity.Product) []gin.H {
	out := make([]gin.H, 0, len(products))
	for i := range products {
		out = append(out, productView(&products[i]))
	}
	return out
}

func (h *ProductHandler) Create(c *gin.Context) {
	uid := c.GetString("userID")
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"price": "must be a decimal number"})
		return
	}

	p, err := h.Svc.CreateProduct(c.Request.Context(), uid, app.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
	})
	if err != nil {
		h.writeProductError(c, err, "create product failed")
		return
	}
	response.Success(c, http.StatusCreated, productView(p), "product created", nil)
}

func (h *ProductHandler) ListMine(c *gin.Context) {
	uid := c.GetString("userID")
	products, err := h.Svc.ListOwnerProducts(c.Request.Context(), uid)
	if err != nil {
		h.writeProductError(c, err, "list products failed")
		return
	}
	response.Success(c, http.StatusOK, productViews(products), "products", map[string]any{"count": len(products)})
}

func (h *ProductHandler) Update(c *gin.Context) {
	uid := c.GetString("userID")
	id := c.Param("id")
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := app.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if req.Price != "" {
		price, err := decimal.NewFromString(req.Price)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"price": "must be a decimal number"})
			return
		}
		in.Price = price
	}

	p, err := h.Svc.UpdateProduct(c.Request.Context(), uid, id, in)
	if err != nil {
		h.writeProductError(c, err, "update product failed")
		return
	}
	response.Success(c, http.StatusOK, productView(p), "product updated", nil)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	uid := c.GetString("userID")
	id := c.Param("id")
	if err := h.Svc.DeleteProduct(c.Request.Context(), uid, id); err != nil {
		h.writeProductError(c, err, "delete product failed")
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "product deleted", nil)
}

func (h *ProductHandler) UploadImage(c *gin.Context) {
	uid := c.GetString("userID")
	id := c.Param("id")

	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "missing image file", nil)
		return
	}
	if fh.Size > maxImageSize {
		response.Error(c, http.StatusBadRequest, "image too large", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "unreadable image file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadImage(c.Request.Context(), uid, id, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		h.writeProductError(c, err, "upload image failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"image_url": url}, "image uploaded", nil)
}

func (h *ProductHandler) writeProductError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, app.ErrOwnerHasNoShop):
		response.Error(c, http.StatusConflict, "you have no shop", nil)
	case errors.Is(err, app.ErrInvalidPrice):
		response.Error(c, http.StatusBadRequest, "price must be positive", nil)
	case errors.Is(err, repo.ErrNotFound):
		response.Error(c, http.StatusNotFound, "product not found", nil)
	default:
		h.Logger.WithError(err).Error(logMsg)
		response.Error(c, http.StatusInternalServerError, "something went wrong", nil)
	}
}
