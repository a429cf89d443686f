package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/relooped/reloop-backend/api/routes"
	authsvc "github.com/relooped/reloop-backend/internal/auth"
	cartsvc "github.com/relooped/reloop-backend/internal/cart"
	catalogsvc "github.com/relooped/reloop-backend/internal/catalog"
	ordersvc "github.com/relooped/reloop-backend/internal/orders"
	productsvc "github.com/relooped/reloop-backend/internal/products"
	usersvc "github.com/relooped/reloop-backend/internal/users"
	"github.com/relooped/reloop-backend/pkg/config"
	"github.com/relooped/reloop-backend/pkg/logger"
	"github.com/relooped/reloop-backend/pkg/metrics"
	"github.com/relooped/reloop-backend/pkg/store"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	db := store.New()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	authService, err := authsvc.NewService(db, cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	catalogService, err := catalogsvc.NewService(db)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	productService, err := productsvc.NewService(db)
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}
	cartService, err := cartsvc.NewService(db)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}
	ordersService, err := ordersvc.NewService(db)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	usersService, err := usersvc.NewService(db)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			httpMetrics,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			authService,
			catalogService,
			productService,
			cartService,
			ordersService,
			usersService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
