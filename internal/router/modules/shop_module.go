package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/artisanmarket/marketplace-api/internal/container"
	handlers "github.com/artisanmarket/marketplace-api/internal/interface/http"
	"github.com/artisanmarket/marketplace-api/internal/interface/middleware"
	"github.com/artisanmarket/marketplace-api/pkg/helpers"
)

// ShopModule wires seller shop management routes, all protected.

type ShopModule struct {
	Handler *handlers.ShopHandler
	JWT     *helpers.JWTManager
}

func NewShopModule(h *handlers.ShopHandler, jwt *helpers.JWTManager) *ShopModule {
	return &ShopModule{Handler: h, JWT: jwt}
}

func (m *ShopModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/shops", m.Handler.Create)
		auth.GET("/shops/mine", m.Handler.GetMine)
		auth.DELETE("/shops/mine", m.Handler.DeleteMine)
	}
}
