package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/artisanmarket/marketplace-api/internal/container"
	handlers "github.com/artisanmarket/marketplace-api/internal/interface/http"
	"github.com/artisanmarket/marketplace-api/internal/interface/middleware"
	"github.com/artisanmarket/marketplace-api/pkg/helpers"
)

// ProductModule wires seller product management routes, all protected.

type ProductModule struct {
	Handler *handlers.ProductHandler
	JWT     *helpers.JWTManager
}

func NewProductModule(h *handlers.ProductHandler, jwt *helpers.JWTManager) *ProductModule {
	return &ProductModule{Handler: h, JWT: jwt}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/products", m.Handler.Create)
		auth.GET("/products/mine", m.Handler.ListMine)
		auth.PUT("/products/:id", m.Handler.Update)
		auth.DELETE("/products/:id", m.Handler.Delete)
		auth.POST("/products/:id/image", m.Handler.UploadImage)
	}
}
