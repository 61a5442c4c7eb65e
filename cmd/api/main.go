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

	"github.com/solbazaar/solbazaar-backend/api/routes"
	"github.com/solbazaar/solbazaar-backend/internal/analytics"
	authsvc "github.com/solbazaar/solbazaar-backend/internal/auth"
	"github.com/solbazaar/solbazaar-backend/internal/catalog"
	"github.com/solbazaar/solbazaar-backend/internal/consultations"
	"github.com/solbazaar/solbazaar-backend/internal/escalations"
	"github.com/solbazaar/solbazaar-backend/internal/identity"
	"github.com/solbazaar/solbazaar-backend/internal/installations"
	"github.com/solbazaar/solbazaar-backend/internal/orders"
	"github.com/solbazaar/solbazaar-backend/internal/pricing"
	"github.com/solbazaar/solbazaar-backend/internal/solutions"
	"github.com/solbazaar/solbazaar-backend/internal/support"
	"github.com/solbazaar/solbazaar-backend/internal/surveys"
	"github.com/solbazaar/solbazaar-backend/internal/warehouses"
	"github.com/solbazaar/solbazaar-backend/pkg/assistant"
	"github.com/solbazaar/solbazaar-backend/pkg/config"
	"github.com/solbazaar/solbazaar-backend/pkg/db"
	"github.com/solbazaar/solbazaar-backend/pkg/env"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
	"github.com/solbazaar/solbazaar-backend/pkg/metrics"
	"github.com/solbazaar/solbazaar-backend/pkg/migrate"
	"github.com/solbazaar/solbazaar-backend/pkg/redis"
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
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	recomputeMetrics := metrics.NewRecomputeMetrics(registry)

	gdb := dbClient.DB()
	identityRepo := identity.NewRepository(gdb)

	identityService, err := identity.NewService(identityRepo, logg)
	if err != nil {
		fatal(logg, "identity service", err)
	}
	authService, err := authsvc.NewService(identityRepo, cfg.JWT, cfg.Password, logg)
	if err != nil {
		fatal(logg, "auth service", err)
	}
	pricingService, err := pricing.NewService(pricing.NewRepository(gdb), dbClient, recomputeMetrics, logg)
	if err != nil {
		fatal(logg, "pricing service", err)
	}
	catalogService, err := catalog.NewService(catalog.NewRepository(gdb), identityRepo, pricingService, dbClient, logg)
	if err != nil {
		fatal(logg, "catalog service", err)
	}
	ordersService, err := orders.NewService(orders.NewRepository(gdb), dbClient, logg)
	if err != nil {
		fatal(logg, "orders service", err)
	}
	warehousesService, err := warehouses.NewService(warehouses.NewRepository(gdb), logg)
	if err != nil {
		fatal(logg, "warehouses service", err)
	}
	solutionsService, err := solutions.NewService(solutions.NewRepository(gdb), logg)
	if err != nil {
		fatal(logg, "solutions service", err)
	}
	surveysService, err := surveys.NewService(surveys.NewRepository(gdb), dbClient, logg)
	if err != nil {
		fatal(logg, "surveys service", err)
	}
	installationsService, err := installations.NewService(installations.NewRepository(gdb), logg)
	if err != nil {
		fatal(logg, "installations service", err)
	}
	escalationsService, err := escalations.NewService(escalations.NewRepository(gdb), identityRepo, dbClient, logg)
	if err != nil {
		fatal(logg, "escalations service", err)
	}
	consultationsService, err := consultations.NewService(consultations.NewRepository(gdb), identityRepo, logg)
	if err != nil {
		fatal(logg, "consultations service", err)
	}
	analyticsService, err := analytics.NewService(analytics.NewRepository(gdb), logg)
	if err != nil {
		fatal(logg, "analytics service", err)
	}

	var supportService support.Service
	if cfg.Assistant.APIKey != "" {
		opts := []assistant.Option{assistant.WithModel(cfg.Assistant.Model)}
		if cfg.Assistant.BaseURL != "" {
			opts = append(opts, assistant.WithBaseURL(cfg.Assistant.BaseURL))
		}
		if cfg.Assistant.Timeout > 0 {
			opts = append(opts, assistant.WithHTTPClient(&http.Client{Timeout: cfg.Assistant.Timeout}))
		}
		assistantClient, err := assistant.NewClient(cfg.Assistant.APIKey, opts...)
		if err != nil {
			fatal(logg, "assistant client", err)
		}
		supportService, err = support.NewService(assistantClient, logg)
		if err != nil {
			fatal(logg, "support service", err)
		}
	} else {
		logg.Warn(context.Background(), "assistant not configured, support chat disabled")
	}

	handler := routes.NewRouter(cfg, logg, dbClient, redisClient, registry, routes.Services{
		Auth:          authService,
		Identity:      identityService,
		Catalog:       catalogService,
		Pricing:       pricingService,
		Orders:        ordersService,
		Warehouses:    warehousesService,
		Solutions:     solutionsService,
		Surveys:       surveysService,
		Installations: installationsService,
		Escalations:   escalationsService,
		Consultations: consultationsService,
		Analytics:     analyticsService,
		Support:       supportService,
	})

	addr := ":" + env.Get("PORT", cfg.App.Port)

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

func fatal(logg *logger.Logger, what string, err error) {
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
