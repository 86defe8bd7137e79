package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eve-s3951140/pharmacy/internal/app"
	"github.com/eve-s3951140/pharmacy/internal/catalog/products"
	"github.com/eve-s3951140/pharmacy/internal/catalog/shared"
	"github.com/eve-s3951140/pharmacy/internal/catalog/suppliers"
	"github.com/eve-s3951140/pharmacy/internal/platform/cache"
	"github.com/eve-s3951140/pharmacy/internal/platform/db"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	var listCache *cache.Cache
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// The cache is advisory; listings fall back to direct reads.
		logger.Warn("redis unavailable, running without list cache", slog.Any("error", err))
		listCache = cache.NewCache(nil, cfg.CacheTTL)
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		listCache = cache.NewCache(redisClient, cfg.CacheTTL)
	}

	auditLogger := shared.NewAuditLogger(pool)

	productRepo := products.NewRepository(pool)
	supplierRepo := suppliers.NewRepository(pool)

	supplierService := suppliers.NewService(supplierRepo, productRepo, listCache, auditLogger, logger)
	productService := products.NewService(productRepo, supplierService, listCache, auditLogger, logger)

	supplierHandler := suppliers.NewHandler(logger, supplierService)
	productHandler := products.NewHandler(logger, productService)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		SupplierHandler: supplierHandler,
		ProductHandler:  productHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
