package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wastewise/wastewise-backend/api/routes"
	"github.com/wastewise/wastewise-backend/internal/ai"
	"github.com/wastewise/wastewise-backend/internal/cart"
	"github.com/wastewise/wastewise-backend/internal/chat"
	"github.com/wastewise/wastewise-backend/internal/estimator"
	"github.com/wastewise/wastewise-backend/internal/orders"
	"github.com/wastewise/wastewise-backend/internal/pickups"
	"github.com/wastewise/wastewise-backend/internal/rewards"
	"github.com/wastewise/wastewise-backend/pkg/config"
	"github.com/wastewise/wastewise-backend/pkg/db"
	"github.com/wastewise/wastewise-backend/pkg/logger"
	"github.com/wastewise/wastewise-backend/pkg/metrics"
	"github.com/wastewise/wastewise-backend/pkg/migrate"
	wwredis "github.com/wastewise/wastewise-backend/pkg/redis"
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
		ServiceName: cfg.ServiceName,
		Level:       logger.ParseLevel(cfg.LogLevel),
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.Features, logg)
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

	redisClient, err := wwredis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var provider ai.CompletionProvider = ai.Disabled{}
	if cfg.Gemini.APIKey != "" {
		gemini, err := ai.NewGemini(context.Background(), cfg.Gemini)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap gemini, assistant runs local-only", err)
		} else {
			provider = gemini
		}
	}

	cartService, err := cart.NewService(cart.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	rewardsService, err := rewards.NewService(rewards.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create rewards service", err)
		os.Exit(1)
	}

	cartRepo := cart.NewRepository(dbClient.DB())
	ordersService, err := orders.NewService(
		orders.NewRepository(dbClient.DB()),
		cartService,
		cartRepo,
		dbClient,
		rewardsService,
		cfg.Features.DemoTracking,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	pickupsService, err := pickups.NewService(
		pickups.NewRepository(dbClient.DB()),
		redisClient,
		cfg.Limits.WizardDraftTTL,
		rewardsService,
		cfg.Features.DemoTracking,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create pickups service", err)
		os.Exit(1)
	}

	estimatorService, err := estimator.NewService(estimator.NewRepository(dbClient.DB()), provider, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create estimator service", err)
		os.Exit(1)
	}

	chatService, err := chat.NewService(chat.NewRepository(dbClient.DB()), provider, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create chat service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.Environment,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			cartService,
			ordersService,
			pickupsService,
			estimatorService,
			chatService,
			rewardsService,
		),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
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
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server stopped")
}
