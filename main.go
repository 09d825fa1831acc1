package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/config"
	"storefront-service/controllers"
	"storefront-service/middleware"
	"storefront-service/providers"
	"storefront-service/repository"
	"storefront-service/routes"
	servicepkg "storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Stores and DI chain
	catalogRepo := repository.NewCSVCatalogRepository(cfg.CatalogPath())
	cartRepo := repository.NewCSVCartRepository(cfg.CartPath(), logger)
	paymentProvider := providers.NewPayOSProvider(cfg.PayOSClientID, cfg.PayOSAPIKey, cfg.PayOSChecksumKey)
	checkoutService := servicepkg.NewCheckoutService(cartRepo, paymentProvider, cfg.WebDomain, logger)
	storefrontController := controllers.NewStorefrontController(catalogRepo, cartRepo, checkoutService, cfg.UploadDir, logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	r.LoadHTMLGlob("templates/*.html")
	r.Static("/static", "static")

	routes.RegisterStorefrontRoutes(r, storefrontController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Storefront is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error", zap.Error(err))
	}
	logger.Info("Server shutdown complete")
}
