package router

import (
	app "github.com/artisanmarket/marketplace-api/internal/application"
	"github.com/artisanmarket/marketplace-api/internal/container"
	pginfra "github.com/artisanmarket/marketplace-api/internal/infrastructure/postgres"
	handlers "github.com/artisanmarket/marketplace-api/internal/interface/http"
	"github.com/artisanmarket/marketplace-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	shops := pginfra.NewShopRepository(pool)
	products := pginfra.NewProductRepository(pool)
	orders := pginfra.NewOrderRepository(pool)

	userSvc := app.NewUserService(users, container.GetJWT(), container.GetRedis(), container.GetRabbitPub(), logger)
	shopSvc := app.NewShopService(shops, container.GetRedis(), logger)
	productSvc := app.NewProductService(products, shops, container.GetGCS(), cfg.GCSBucket, container.GetES(), cfg.ESProductsIndex, logger)
	catalogSvc := app.NewCatalogService(shops, products, container.GetRedis(), container.GetES(), cfg.ESProductsIndex, logger)
	orderSvc := app.NewOrderService(orders, products, shops, users, container.GetRabbitPub(), logger)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger, cfg.CookieDomain, cfg.CookieSecure), container.GetJWT()))
	r.Add(modules.NewShopModule(handlers.NewShopHandler(shopSvc, logger), container.GetJWT()))
	r.Add(modules.NewProductModule(handlers.NewProductHandler(productSvc, logger), container.GetJWT()))
	r.Add(modules.NewCatalogModule(handlers.NewCatalogHandler(catalogSvc, logger)))
	r.Add(modules.NewOrderModule(handlers.NewOrderHandler(orderSvc, logger), container.GetJWT()))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
