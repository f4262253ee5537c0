// Package main is the entry point of the SGP calculation service.
//
// A single process serves the calculation engine (areas, Brazilian money,
// validation, production batches), the calculation cache and the order
// store over HTTP.
//
// Usage:
//
//	go run ./cmd/sgp-api [--config path/to/config.yaml]
//
// Environment Variables:
//
//	SGP_SERVER_PORT    - HTTP server port (default: 8080, PORT also honored)
//	SGP_DATABASE_PATH  - SQLite database file (default: sgp.db)
//	SGP_LOG_LEVEL      - debug, info, warn or error (default: info)
//	SGP_CACHE_CAPACITY - calculation cache entries (default: 1024)
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/hapkiduki/sgp-engine/internal/application/port"
	"github.com/hapkiduki/sgp-engine/internal/application/usecase"
	"github.com/hapkiduki/sgp-engine/internal/infrastructure/cache"
	"github.com/hapkiduki/sgp-engine/internal/infrastructure/config"
	"github.com/hapkiduki/sgp-engine/internal/infrastructure/persistance/sqlite"
	"github.com/hapkiduki/sgp-engine/internal/interfaces/http/handler"
	"github.com/hapkiduki/sgp-engine/internal/interfaces/http/middleware"
	"github.com/hapkiduki/sgp-engine/pkg/logger"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	configFile := pflag.StringP("config", "c", "", "path to a YAML config file")
	pflag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "sgp-api: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	started := time.Now()

	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	if version != "dev" {
		cfg.App.Version = version
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.App.Debug,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting SGP engine",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logAdapter := &loggerAdapter{log}

	store, err := sqlite.Open(ctx, sqlite.Config{
		Path:        cfg.Database.Path,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx, &loggerAdapter{log.Named("migrations")}); err != nil {
		return err
	}

	calcCache := cache.NewMemory(cfg.Cache.Capacity)
	calculator := usecase.NewCalculatorService(calcCache, logAdapter, cfg.Benchmark.MaxIterations)
	orders := usecase.NewOrderService(sqlite.NewOrderRepository(store), logAdapter)

	routerCfg := handler.RouterConfig{
		Version:            cfg.App.Version,
		RequestTimeout:     cfg.Server.RequestTimeout,
		MaxRequestSize:     cfg.Server.MaxRequestSize,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	}
	if cfg.RateLimit.Enabled {
		rl := middleware.DefaultRateLimiterConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		routerCfg.RateLimit = &rl
	}

	router := handler.NewRouter(routerCfg, handler.Dependencies{
		Calculator: calculator,
		Orders:     orders,
		Checks:     map[string]port.HealthChecker{"database": store},
		Log:        logAdapter,
		Started:    started,
	})

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return err
	}

	log.Info("server shutdown complete")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

var _ port.Logger = (*loggerAdapter)(nil)

// loggerAdapter adapts *logger.Logger to port.Logger.
type loggerAdapter struct {
	*logger.Logger
}

// With implements port.Logger.
func (l *loggerAdapter) With(keysAndValues ...any) port.Logger {
	return &loggerAdapter{l.Logger.With(keysAndValues...)}
}

// WithContext implements port.Logger.
func (l *loggerAdapter) WithContext(ctx context.Context) port.Logger {
	return &loggerAdapter{l.Logger.WithContext(ctx)}
}
