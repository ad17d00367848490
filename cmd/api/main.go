package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mpalmerin/storefront-backend/api/routes"
	"github.com/mpalmerin/storefront-backend/internal/orders"
	"github.com/mpalmerin/storefront-backend/internal/products"
	"github.com/mpalmerin/storefront-backend/internal/users"
	"github.com/mpalmerin/storefront-backend/pkg/config"
	"github.com/mpalmerin/storefront-backend/pkg/db"
	"github.com/mpalmerin/storefront-backend/pkg/logger"
	"github.com/mpalmerin/storefront-backend/pkg/migrate"
	"github.com/mpalmerin/storefront-backend/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Missing .env is fine; containers inject real environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Options{ServiceName: "storefront-api"})
		fallback.Error(context.Background(), "configuration failed", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "server exited", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	client, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, client.Close())
	}()

	if migErr := migrate.MaybeRunDev(ctx, cfg, logg, client); migErr != nil {
		return migErr
	}

	var limiter *redis.Client
	if cfg.Redis.Enabled() {
		limiter, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, limiter.Close())
		}()
	} else {
		logg.Warn(ctx, "redis not configured, login throttling disabled")
	}

	usersSvc, err := users.NewService(users.ServiceParams{
		Repo:        users.NewRepository(client.DB()),
		PasswordCfg: cfg.Password,
		JWTCfg:      cfg.JWT,
	})
	if err != nil {
		return err
	}
	productsSvc, err := products.NewService(products.NewRepository(client.DB()))
	if err != nil {
		return err
	}
	ordersSvc, err := orders.NewService(orders.NewRepository(client.DB()))
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := routes.New(routes.Params{
		Config:      cfg,
		Logger:      logg,
		DB:          client,
		Users:       usersSvc,
		Products:    productsSvc,
		Orders:      ordersSvc,
		RateLimiter: limiter,
		Registry:    registry,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "addr", srv.Addr), "server listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if sdErr := srv.Shutdown(shutdownCtx); sdErr != nil {
			err = multierr.Append(err, sdErr)
		}
		if srvErr := <-serveErr; srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
			err = multierr.Append(err, srvErr)
		}
	case srvErr := <-serveErr:
		if srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
			err = multierr.Append(err, srvErr)
		}
	}
	return err
}
