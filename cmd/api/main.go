package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/museshop/backend/api/routes"
	"github.com/museshop/backend/internal/auth"
	"github.com/museshop/backend/internal/cart"
	"github.com/museshop/backend/internal/checkout"
	"github.com/museshop/backend/internal/ledger"
	"github.com/museshop/backend/internal/payments"
	"github.com/museshop/backend/internal/prefs"
	"github.com/museshop/backend/internal/products"
	"github.com/museshop/backend/internal/reports"
	"github.com/museshop/backend/internal/users"
	"github.com/museshop/backend/pkg/auth/session"
	"github.com/museshop/backend/pkg/config"
	"github.com/museshop/backend/pkg/db"
	"github.com/museshop/backend/pkg/logger"
	"github.com/museshop/backend/pkg/metrics"
	"github.com/museshop/backend/pkg/migrate"
	"github.com/museshop/backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	closeClients := func() {
		err := multierr.Combine(dbClient.Close(), redisClient.Close())
		if err != nil {
			logg.Error(context.Background(), "error closing clients", err)
		}
	}
	defer closeClients()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	prefsService, err := prefs.NewService(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create prefs service", err)
		os.Exit(1)
	}

	productsRepo := products.NewRepository(dbClient.DB())
	productsService, err := products.NewService(productsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	ledgerRepo := ledger.NewRepository(dbClient.DB())
	ledgerService, err := ledger.NewService(ledgerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}

	paymentsRepo := payments.NewRepository(dbClient.DB())
	paymentsService, err := payments.NewService(paymentsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(dbClient, paymentsRepo, productsRepo, ledgerRepo, checkoutMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	reportsService, err := reports.NewService(ledgerService)
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	if cfg.FeatureFlags.SeedOnBoot {
		if err := seedDemoData(context.Background(), logg, productsService, ledgerService); err != nil {
			logg.Error(context.Background(), "failed to seed demo data", err)
			os.Exit(1)
		}
	}

	router := routes.NewRouter(routes.Deps{
		Config:   cfg,
		Logger:   logg,
		DB:       dbClient,
		Redis:    redisClient,
		Sessions: sessionManager,
		Registry: registry,
		Auth:     authService,
		Prefs:    prefsService,
		Products: productsService,
		Carts:    cart.NewManager(),
		Checkout: checkoutService,
		Payments: paymentsService,
		Reports:  reportsService,
	})

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
		Addr:    addr,
		Handler: router,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			closeClients()
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	logg.Info(ctx, "api server stopped")
}

// seedDemoData fills an empty catalog and sales ledger so a fresh
// environment has something to show.
func seedDemoData(ctx context.Context, logg *logger.Logger, productsSvc products.Service, ledgerSvc ledger.Service) error {
	productCount, productsErr := productsSvc.SeedIfEmpty(ctx)
	dayCount, ledgerErr := ledgerSvc.SeedIfEmpty(ctx)
	if err := multierr.Combine(productsErr, ledgerErr); err != nil {
		return err
	}
	if productCount > 0 || dayCount > 0 {
		logg.Info(logg.WithFields(ctx, map[string]any{
			"seeded_products":   productCount,
			"seeded_sales_days": dayCount,
		}), "demo data seeded")
	}
	return nil
}
