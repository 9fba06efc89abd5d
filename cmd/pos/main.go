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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/FuadAliah/celtis-pos/api/routes"
	"github.com/FuadAliah/celtis-pos/internal/catalog"
	"github.com/FuadAliah/celtis-pos/internal/history"
	"github.com/FuadAliah/celtis-pos/internal/kitchen"
	"github.com/FuadAliah/celtis-pos/internal/kvstore"
	"github.com/FuadAliah/celtis-pos/internal/order"
	"github.com/FuadAliah/celtis-pos/internal/pricing"
	"github.com/FuadAliah/celtis-pos/internal/sales"
	"github.com/FuadAliah/celtis-pos/internal/session"
	"github.com/FuadAliah/celtis-pos/internal/staff"
	"github.com/FuadAliah/celtis-pos/pkg/config"
	"github.com/FuadAliah/celtis-pos/pkg/db"
	"github.com/FuadAliah/celtis-pos/pkg/logger"
	"github.com/FuadAliah/celtis-pos/pkg/metrics"
	"github.com/FuadAliah/celtis-pos/pkg/migrate"
	"github.com/FuadAliah/celtis-pos/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "pos"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "pos",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"backend": cfg.Store.Kind(),
	})

	var closers []func() error
	defer func() {
		var closeErr error
		for i := len(closers) - 1; i >= 0; i-- {
			closeErr = multierr.Append(closeErr, closers[i]())
		}
		if closeErr != nil {
			logg.Error(ctx, "error releasing resources", closeErr)
		}
	}()

	medium, closeMedium, err := openMedium(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap store medium", err)
		os.Exit(1)
	}
	closers = append(closers, closeMedium)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	posMetrics := metrics.NewPOSMetrics(registry)

	store, err := sales.NewStore(medium, logg, sales.Options{
		PersistEmpty: cfg.Store.PersistEmpty,
		Timeout:      cfg.Store.Timeout,
		Metrics:      posMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create transaction store", err)
		os.Exit(1)
	}
	if err := store.Load(ctx); err != nil {
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "transaction store degraded, continuing in memory")
	}

	directory := staff.NewDirectory()
	state, err := session.New(medium, store, directory, logg, session.Options{
		RestoreView: cfg.Session.RestoreView,
		Timeout:     cfg.Store.Timeout,
	})
	if err != nil {
		logg.Error(ctx, "failed to create session state", err)
		os.Exit(1)
	}
	if err := state.Load(ctx); err != nil {
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "could not restore last view")
	}

	menu, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logg.Error(ctx, "failed to load catalog", err)
		os.Exit(1)
	}

	var notifier kitchen.Notifier = kitchen.Nop{}
	if cfg.Kitchen.Enabled() {
		publisher, err := kitchen.Dial(ctx, cfg.Kitchen, logg)
		if err != nil {
			logg.Error(ctx, "kitchen publisher unavailable, tickets disabled", err)
		} else {
			notifier = publisher
			closers = append(closers, publisher.Close)
		}
	}

	engine, err := order.NewEngine(order.Deps{
		Store:         store,
		Session:       state,
		Calculator:    pricing.NewCalculator(cfg.Pricing.TaxRate),
		Notifier:      notifier,
		Metrics:       posMetrics,
		Logger:        logg,
		NotifyTimeout: cfg.Kitchen.Timeout,
	})
	if err != nil {
		logg.Error(ctx, "failed to create order engine", err)
		os.Exit(1)
	}

	loc, err := cfg.App.Location()
	if err != nil {
		logg.Warn(logg.WithField(ctx, "timezone", cfg.App.Timezone), "unknown timezone, using local time")
		loc = time.Local
	}

	hist, err := history.NewService(store, loc)
	if err != nil {
		logg.Error(ctx, "failed to create sales history", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithField(ctx, "addr", addr)

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			Store:    store,
			Session:  state,
			Engine:   engine,
			Menu:     menu,
			Staff:    directory,
			History:  hist,
			Location: loc,
			Gatherer: registry,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting pos server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(ctx, "pos server stopped unexpectedly", err)
		}
	case <-sigCtx.Done():
		logg.Info(ctx, "shutting down pos server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

// openMedium connects the backend named by POS_STORE_BACKEND and returns the
// key-value medium on top of it.
func openMedium(ctx context.Context, cfg *config.Config, logg *logger.Logger) (kvstore.Medium, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Kind() {
	case config.StoreBackendSQLite, config.StoreBackendPostgres:
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, noop, err
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
			return nil, noop, multierr.Append(err, dbClient.Close())
		}
		medium, err := kvstore.New(cfg.Store, kvstore.Deps{SQL: dbClient})
		if err != nil {
			return nil, noop, multierr.Append(err, dbClient.Close())
		}
		return medium, dbClient.Close, nil

	case config.StoreBackendRedis:
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, noop, err
		}
		medium, err := kvstore.New(cfg.Store, kvstore.Deps{Redis: redisClient})
		if err != nil {
			return nil, noop, multierr.Append(err, redisClient.Close())
		}
		return medium, redisClient.Close, nil
	}

	medium, err := kvstore.New(cfg.Store, kvstore.Deps{})
	return medium, noop, err
}
