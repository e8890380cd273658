package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/artisanmarket/marketplace-api/internal/application"
	"github.com/artisanmarket/marketplace-api/internal/domain/entity"
	repo "github.com/artisanmarket/marketplace-api/internal/domain/repository"
	"github.com/artisanmarket/marketplace-api/pkg/response"
)

type CatalogHandler struct {
	Svc    *app.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *app.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

func publicShopView(s *entity.Shop) gin.H {
	return gin.H{
		"name":          s.Name,
		"slug":          s.Slug,
		"description":   s.Description,
		"contact_email": s.ContactEmail,
		"phone":         s.Phone,
	}
}

func (h *CatalogHandler) ListShops(c *gin.Context) {
	shops, err := h.Svc.ListShops(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list shops failed")
		response.Error(c, http.StatusInternalServerError, "failed to load shops", nil)
		return
	}
	out := make([]gin.H, 0, len(shops))
	for i := range shops {
		out = append(out, publicShopView(&shops[i]))
	}
	response.Success(c, http.StatusOK, out, "shops", map[string]any{"count": len(out)})
}

func (h *CatalogHandler) GetShop(c *gin.Context) {
	slug := c.Param("slug")
	shop, err := h.Svc.GetShopBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "shop not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get shop failed")
		response.Error(c, http.StatusInternalServerError, "failed to load shop", nil)
		return
	}
	response.Success(c, http.StatusOK, publicShopView(shop), "shop", nil)
}

func (h *CatalogHandler) ListShopProducts(c *gin.Context) {
	slug := c.Param("slug")
	products, err := h.Svc.ListShopProducts(c.Request.Context(), slug)
	if err != nil {
		h.Logger.WithError(err).Error("list shop products failed")
		response.Error(c, http.StatusInternalServerError, "failed to load products", nil)
		return
	}
	response.Success(c, http.StatusOK, productViews(products), "products", map[string]any{"count": len(products)})
}

func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "missing query", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.SearchProducts(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("product search failed")
		response.Error(c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
