package main

import (
	"fmt"
	"net/http"

	"github.com/ridloal/saas-storefront/internal/gateway"
	"github.com/ridloal/saas-storefront/internal/platform/config"
	"github.com/ridloal/saas-storefront/internal/platform/logger"
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

	// PaaS hosts hand the listen port over in PORT.
	cfg.Gateway.ListenPort = config.GetEnv("PORT", cfg.Gateway.ListenPort)
	logger.Info("Starting API Gateway on port " + cfg.Gateway.ListenPort)

	handler, err := gateway.NewHandler(cfg.Gateway)
	if err != nil {
		logger.Error("Failed to configure API Gateway routes", err)
		return
	}

	server := &http.Server{
		Addr:    ":" + cfg.Gateway.ListenPort,
		Handler: handler,
	}

	logger.Info(fmt.Sprintf("API Gateway successfully configured and listening on :%s", cfg.Gateway.ListenPort))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("API Gateway failed to start or crashed", err)
	}
}
