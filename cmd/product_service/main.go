package main

import (
	"github.com/gin-gonic/gin"

	productAPI "github.com/ridloal/saas-storefront/internal/catalog/api"
	productRepo "github.com/ridloal/saas-storefront/internal/catalog/repository"
	productService "github.com/ridloal/saas-storefront/internal/catalog/service"
	"github.com/ridloal/saas-storefront/internal/platform/config"
	"github.com/ridloal/saas-storefront/internal/platform/database"
	"github.com/ridloal/saas-storefront/internal/platform/logger"
	"github.com/ridloal/saas-storefront/internal/platform/middleware"
)

func main() {
	// Load Config
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

	logger.Info("Starting Product Service...")

	// Catalog source: Postgres when a DSN is configured, the products file otherwise
	var repo productRepo.ProductRepository
	if cfg.Catalog.DatabaseDSN != "" {
		db, err := database.Connect(cfg.Catalog.DatabaseDSN)
		if err != nil {
			logger.Error("Failed to connect to database for Product Service", err)
			return
		}
		defer db.Close()
		repo = productRepo.NewPostgresProductRepository(db)
	} else {
		logger.Info("Serving catalog from " + cfg.Catalog.ProductsFile)
		repo = productRepo.NewFileProductRepository(cfg.Catalog.ProductsFile)
	}

	prodService := productService.NewProductService(repo, cfg.Catalog.RefreshSpec)
	if err := prodService.Start(); err != nil {
		logger.Error("Failed to start catalog refresh", err)
		return
	}
	defer prodService.Stop()
	productHandler := productAPI.NewProductHandler(prodService)

	// Setup Gin Router
	router := gin.Default()
	router.Use(middleware.CORS(cfg.Product.CORSAllowOrigins))

	api := router.Group("/api")
	productHandler.RegisterRoutes(api)

	logger.Info("Product Service running on port " + cfg.Product.Addr())
	if err := router.Run(cfg.Product.Addr()); err != nil {
		logger.Error("Failed to run Product Service server", err)
	}
}
