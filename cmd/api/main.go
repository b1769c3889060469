package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/nasim-ferdous/garment-pilot-server/internal/app"
	"github.com/nasim-ferdous/garment-pilot-server/internal/auth"
	"github.com/nasim-ferdous/garment-pilot-server/internal/clock"
	"github.com/nasim-ferdous/garment-pilot-server/internal/config"
	"github.com/nasim-ferdous/garment-pilot-server/internal/logging"
	"github.com/nasim-ferdous/garment-pilot-server/internal/payment/stripe"
	"github.com/nasim-ferdous/garment-pilot-server/internal/storage/postgres"
	"github.com/nasim-ferdous/garment-pilot-server/internal/tracking"
	transporthttp "github.com/nasim-ferdous/garment-pilot-server/internal/transport/http"
	"github.com/nasim-ferdous/garment-pilot-server/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := postgres.Connect(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	clk := clock.NewSystem()
	gateway := stripe.New(cfg.StripeAPIKey, cfg.SiteDomain)

	orderRepo := postgres.NewOrderRepository(pool)
	orderSvc := app.NewOrderService(orderRepo, gateway, tracking.NewGenerator(clk), clk,
		app.WithRestockOnCancel(cfg.RestockOnCancel))
	productRepo := postgres.NewProductRepository(pool)
	catalogSvc := app.NewCatalogService(productRepo, clk)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler := transporthttp.NewRouter(transporthttp.RouterDeps{
		Logger:      logger,
		Verifier:    auth.NewJWTVerifier(cfg.AuthSecret),
		Orders:      orderSvc,
		Canceller:   orderSvc,
		OrderLister: orderSvc,
		Reconciler:  orderSvc,
		Checkout:    orderSvc,
		Catalog:     catalogSvc,
		CORSOrigins: cfg.CORSOrigins,
		Registry:    registry,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("api listening", zap.String("port", cfg.Port))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
