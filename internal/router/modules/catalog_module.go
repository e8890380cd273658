package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/artisanmarket/marketplace-api/internal/container"
	handlers "github.com/artisanmarket/marketplace-api/internal/interface/http"
	"github.com/artisanmarket/marketplace-api/internal/interface/middleware"
)

// CatalogModule wires the public storefront routes. No auth; per-IP limits.

type CatalogModule struct {
	Handler *handlers.CatalogHandler
}

func NewCatalogModule(h *handlers.CatalogHandler) *CatalogModule {
	return &CatalogModule{Handler: h}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	searchRL := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/catalog/shops", rl, m.Handler.ListShops)
	rg.GET("/catalog/shops/:slug", rl, m.Handler.GetShop)
	rg.GET("/catalog/shops/:slug/products", rl, m.Handler.ListShopProducts)
	rg.GET("/catalog/products/search", searchRL, m.Handler.SearchProducts)
}
