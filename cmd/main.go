package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventscore/rankd/internal/adapters/cache"
	"github.com/eventscore/rankd/internal/adapters/http/api"
	"github.com/eventscore/rankd/internal/adapters/http/site"
	"github.com/eventscore/rankd/internal/adapters/http/swagger"
	"github.com/eventscore/rankd/internal/adapters/repository"
	service "github.com/eventscore/rankd/internal/app"
	"github.com/eventscore/rankd/internal/config"
	"github.com/eventscore/rankd/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		log.Error(ctx, "failed to open store", logger.String("backend", cfg.StoreBackend), logger.Error(err))
		return
	}
	snapshots := buildCache(cfg)

	svc := service.New(
		service.WithLogger(log),
		service.WithStore(store),
		service.WithCache(snapshots),
		service.WithCacheTTL(time.Duration(cfg.CacheTTLSeconds)*time.Second),
	)
	defer func() {
		if err := svc.Close(); err != nil {
			log.Error(ctx, "service close failed", logger.Error(err))
		}
	}()
	log.Info(ctx, "service ready",
		logger.String("store", cfg.StoreBackend),
		logger.String("cache", cfg.CacheBackend),
		logger.Int("cache_ttl_seconds", cfg.CacheTTLSeconds),
	)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Landing page at /, API docs under /api-docs
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

func buildStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	if cfg.StoreBackend == config.BackendSQLite {
		return repository.OpenSQLite(ctx, cfg.SQLitePath)
	}
	return repository.NewMemStore(), nil
}

func buildCache(cfg *config.Config) cache.Cache {
	if cfg.CacheBackend == config.BackendRedis {
		return cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	return cache.NewMemoryCache()
}
