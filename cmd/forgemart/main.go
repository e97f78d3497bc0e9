package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgemart/forgemart/internal/addresses"
	"github.com/forgemart/forgemart/internal/app"
	"github.com/forgemart/forgemart/internal/auth"
	"github.com/forgemart/forgemart/internal/categories"
	"github.com/forgemart/forgemart/internal/orders"
	"github.com/forgemart/forgemart/internal/platform/cache"
	"github.com/forgemart/forgemart/internal/platform/db"
	"github.com/forgemart/forgemart/internal/products"
	"github.com/forgemart/forgemart/internal/shipping"
	"github.com/forgemart/forgemart/internal/storage"
	"github.com/forgemart/forgemart/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, codec)
	authHandler := auth.NewHandler(logger, authService)
	resolver := auth.NewResolver(codec, authRepo, logger, cfg.AuthExemptPaths)
	guard := auth.Guard{Logger: logger}

	var images storage.ImageStore = storage.Disabled{}
	if cfg.ImageUploadURL != "" {
		images = storage.NewHTTPStore(cfg.ImageUploadURL, cfg.ImageUploadPreset)
	}

	shippingBaseURL := cfg.ShippingBaseURL
	if shippingBaseURL == "" {
		shippingBaseURL = shipping.DefaultBaseURL
	}
	estimator := shipping.NewService(shipping.Config{
		APIKey:          cfg.ShippingAPIKey,
		BaseURL:         shippingBaseURL,
		WarehouseCoords: cfg.WarehouseCoords,
		RatePerKm:       cfg.ShippingRatePerKm,
		FallbackCost:    cfg.ShippingFallbackCost,
		CacheTTL:        cfg.ShippingCacheTTL,
	}, redisClient, logger)

	usersRepo := users.NewRepository(dbpool)
	usersService := users.NewService(usersRepo, images)
	usersHandler := users.NewHandler(logger, usersService, guard)

	categoriesRepo := categories.NewRepository(dbpool)
	categoriesService := categories.NewService(categoriesRepo)
	categoriesHandler := categories.NewHandler(logger, categoriesService, guard)

	productsRepo := products.NewRepository(dbpool)
	productsService := products.NewService(productsRepo)
	productsHandler := products.NewHandler(logger, productsService, guard)

	addressesRepo := addresses.NewRepository(dbpool)
	addressesService := addresses.NewService(addressesRepo)
	addressesHandler := addresses.NewHandler(logger, addressesService, guard)

	ordersRepo := orders.NewRepository(dbpool)
	ordersService := orders.NewService(ordersRepo, usersService, productsService, addressesService, estimator)
	ordersHandler := orders.NewHandler(logger, ordersService, guard)

	router := app.NewRouter(app.RouterParams{
		Config: cfg,
		Middleware: app.MiddlewareStack(app.MiddlewareConfig{
			Logger:       logger,
			Config:       cfg,
			AuthResolver: resolver.Middleware,
		}),
		AuthHandler:      authHandler,
		UsersHandler:     usersHandler,
		ProductsHandler:  productsHandler,
		CategoryHandler:  categoriesHandler,
		OrdersHandler:    ordersHandler,
		AddressesHandler: addressesHandler,
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
