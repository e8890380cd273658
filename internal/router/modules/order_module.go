package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/artisanmarket/marketplace-api/internal/container"
	handlers "github.com/artisanmarket/marketplace-api/internal/interface/http"
	"github.com/artisanmarket/marketplace-api/internal/interface/middleware"
	"github.com/artisanmarket/marketplace-api/pkg/helpers"
)

// OrderModule wires checkout and order management routes, all protected.

type OrderModule struct {
	Handler *handlers.OrderHandler
	JWT     *helpers.JWTManager
}

func NewOrderModule(h *handlers.OrderHandler, jwt *helpers.JWTManager) *OrderModule {
	return &OrderModule{Handler: h, JWT: jwt}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/orders", m.Handler.Create)
		auth.GET("/orders", m.Handler.List)
		auth.GET("/orders/:id", m.Handler.Get)
		auth.POST("/orders/:id/confirm", m.Handler.Confirm)
		auth.POST("/orders/:id/ship", m.Handler.Ship)
	}
}
