package main

import (
	"github.com/gin-gonic/gin"

	"github.com/ridloal/saas-storefront/internal/order/api"
	"github.com/ridloal/saas-storefront/internal/order/service"
	"github.com/ridloal/saas-storefront/internal/platform/config"
	"github.com/ridloal/saas-storefront/internal/platform/logger"
	"github.com/ridloal/saas-storefront/internal/platform/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", err)
		return
	}
	if err := logger.Init(logger.Config(cfg.Log)); err != nil {
		logger.Error("Failed to initialize logger", err)
		return
	}
	defer logger.Sync()

	logger.Info("Starting Order Service...")

	ordService := service.NewOrderService()
	orderHandler := api.NewOrderHandler(ordService)

	router := gin.Default()
	router.Use(middleware.CORS(cfg.Order.CORSAllowOrigins))
	orderHandler.RegisterRoutes(router.Group("/api"))

	logger.Info("Order Service running on port " + cfg.Order.Addr())
	if errSrv := router.Run(cfg.Order.Addr()); errSrv != nil {
		logger.Error("Failed to run Order Service server", errSrv)
	}
}
