package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Madhav-Gupta-28/storefront-backend-go/cache"
	"github.com/Madhav-Gupta-28/storefront-backend-go/config"
	"github.com/Madhav-Gupta-28/storefront-backend-go/database"
	"github.com/Madhav-Gupta-28/storefront-backend-go/logger"
	customMiddleware "github.com/Madhav-Gupta-28/storefront-backend-go/middleware"
	"github.com/Madhav-Gupta-28/storefront-backend-go/routes"
	"github.com/Madhav-Gupta-28/storefront-backend-go/services"
	"github.com/Madhav-Gupta-28/storefront-backend-go/store"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type backend interface {
	store.CatalogStore
	store.OrderStore
}

func main() {
	// Load environment variables
	config.LoadEnv()
	cfg := config.Load()

	log := logger.New(cfg.IsDevelopment())
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db backend
	switch cfg.Mongo.Driver {
	case "memory":
		log.Warn("using in-memory store, data is lost on restart")
		db = store.NewMemoryStore()
	default:
		client, mdb, err := database.ConnectDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()
		if err := database.EnsureIndexes(ctx, mdb); err != nil {
			log.Fatal("failed to create indexes", zap.Error(err))
		}
		log.Info("connected to MongoDB", zap.String("database", cfg.Mongo.Database))
		db = store.NewMongoStore(mdb)
	}

	var responseCache cache.Cache = cache.Nop{}
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("redis unavailable, caching disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			defer client.Close()
			responseCache = cache.NewRedisCache(client, log)
		}
	}

	workflow := services.OpenWorkflow()
	if cfg.Orders.StrictStatusTransitions {
		workflow = services.StrictWorkflow()
	}

	catalog := services.NewCatalogService(db, services.DataURIProcessor{}, responseCache, services.CatalogServiceConfig{
		ProductCacheTTL: cfg.Catalog.ProductCacheTTL,
		PageLimit:       cfg.Catalog.ProductsPageLimit,
	}, log)
	orders := services.NewOrderService(db, db, responseCache, services.OrderServiceConfig{
		Workflow:  workflow,
		StatsTTL:  cfg.Orders.StatsCacheTTL,
		PageLimit: cfg.Orders.PageLimit,
	}, log)

	if cfg.Catalog.ReconcileInterval > 0 {
		go catalog.RunReconciler(ctx, cfg.Catalog.ReconcileInterval)
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true
	if err := customMiddleware.SetupMiddleware(e, log, cfg.Server); err != nil {
		log.Fatal("invalid server configuration", zap.Error(err))
	}

	routes.SetupRoutes(e, cfg, routes.Services{Catalog: catalog, Orders: orders})

	go func() {
		log.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
